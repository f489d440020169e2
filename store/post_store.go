package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/utils"
)

// PostStore manages Post records.
type PostStore struct {
	db    *gorm.DB
	cache *utils.Cache
}

// NewPostStore creates a new PostStore. cache may be nil.
func NewPostStore(db *gorm.DB, cache *utils.Cache) *PostStore {
	return &PostStore{db: db, cache: cache}
}

func postKey(id uint) string {
	return fmt.Sprintf("cache:post:%d", id)
}

// Create inserts a new post and fills in its ID and CreatedAt.
func (s *PostStore) Create(ctx context.Context, p *models.Post) error {
	if p.ID != 0 {
		return fmt.Errorf("create post: id already assigned (%d)", p.ID)
	}
	if err := p.Validate(); err != nil {
		utils.Sugar.Infow("post rejected", "title", p.Title, "err", err)
		return err
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return postWriteError("create post", err)
	}
	utils.Sugar.Debugw("post created", "id", p.ID)
	return nil
}

// Update writes every mutable column of p and refreshes UpdatedAt.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	if p.ID == 0 {
		return fmt.Errorf("update post: %w", ErrNotFound)
	}
	if err := p.Validate(); err != nil {
		utils.Sugar.Infow("post update rejected", "id", p.ID, "err", err)
		return err
	}
	res := s.db.WithContext(ctx).Model(p).Select("*").Updates(p)
	if res.Error != nil {
		return postWriteError("update post", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update post %d: %w", p.ID, ErrNotFound)
	}
	s.cache.Delete(ctx, postKey(p.ID))
	utils.Sugar.Debugw("post updated", "id", p.ID)
	return nil
}

// Get loads the post with id, consulting the cache first.
func (s *PostStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if s.cache.GetJSON(ctx, postKey(id), &p) {
		return &p, nil
	}
	if err := s.db.WithContext(ctx).Take(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load post %d: %w", id, err)
	}
	s.cache.SetJSON(ctx, postKey(id), &p)
	return &p, nil
}

// Delete removes the post with id.
func (s *PostStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	s.cache.Delete(ctx, postKey(id))
	utils.Sugar.Debugw("post deleted", "id", id)
	return nil
}

func postWriteError(op string, err error) error {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Count returns the number of stored posts.
func (s *PostStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}
