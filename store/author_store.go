// Package store persists authors and posts through gorm. Every write re-runs
// the record validation; author names are additionally checked against the
// table and guarded by a unique index.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/utils"
)

// AuthorStore manages Author records.
type AuthorStore struct {
	db    *gorm.DB
	cache *utils.Cache
}

// NewAuthorStore creates a new AuthorStore. cache may be nil.
func NewAuthorStore(db *gorm.DB, cache *utils.Cache) *AuthorStore {
	return &AuthorStore{db: db, cache: cache}
}

func authorKey(id uint) string {
	return fmt.Sprintf("cache:author:%d", id)
}

// ExistsByName reports whether an author other than excludeID uses name.
// excludeID 0 checks every author.
func (s *AuthorStore) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.Author{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("lookup author name: %w", err)
	}
	return n > 0, nil
}

// checkName runs the name rules that need the table: the record must be valid
// and no other author may hold the name.
func (s *AuthorStore) checkName(ctx context.Context, a *models.Author) error {
	if err := a.Validate(); err != nil {
		return err
	}
	taken, err := s.ExistsByName(ctx, a.Name, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return models.NameTakenError()
	}
	return nil
}

// Create inserts a new author and fills in its ID and CreatedAt.
func (s *AuthorStore) Create(ctx context.Context, a *models.Author) error {
	if a.ID != 0 {
		return fmt.Errorf("create author: id already assigned (%d)", a.ID)
	}
	if err := s.checkName(ctx, a); err != nil {
		utils.Sugar.Infow("author rejected", "name", a.Name, "err", err)
		return err
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return translateAuthorError("create author", err)
	}
	utils.Sugar.Debugw("author created", "id", a.ID)
	return nil
}

// Update writes every mutable column of a and refreshes UpdatedAt.
func (s *AuthorStore) Update(ctx context.Context, a *models.Author) error {
	if a.ID == 0 {
		return fmt.Errorf("update author: %w", ErrNotFound)
	}
	if err := s.checkName(ctx, a); err != nil {
		utils.Sugar.Infow("author update rejected", "id", a.ID, "err", err)
		return err
	}
	res := s.db.WithContext(ctx).Model(a).Select("*").Updates(a)
	if res.Error != nil {
		return translateAuthorError("update author", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update author %d: %w", a.ID, ErrNotFound)
	}
	s.cache.Delete(ctx, authorKey(a.ID))
	utils.Sugar.Debugw("author updated", "id", a.ID)
	return nil
}

// Get loads the author with id, consulting the cache first.
func (s *AuthorStore) Get(ctx context.Context, id uint) (*models.Author, error) {
	var a models.Author
	if s.cache.GetJSON(ctx, authorKey(id), &a) {
		return &a, nil
	}
	if err := s.db.WithContext(ctx).Take(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("author %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load author %d: %w", id, err)
	}
	s.cache.SetJSON(ctx, authorKey(id), &a)
	return &a, nil
}

// Delete removes the author with id.
func (s *AuthorStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Author{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete author %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("author %d: %w", id, ErrNotFound)
	}
	s.cache.Delete(ctx, authorKey(id))
	utils.Sugar.Debugw("author deleted", "id", id)
	return nil
}

// translateAuthorError maps a unique-index violation, which means another
// writer took the name between the lookup and the insert, to the same
// ValidationError the lookup produces.
func translateAuthorError(op string, err error) error {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	if isDuplicateKey(err) {
		utils.Sugar.Infow("author name taken at commit", "err", err)
		return models.NameTakenError()
	}
	return fmt.Errorf("%s: %w", op, err)
}
