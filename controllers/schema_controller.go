package controllers

import (
	"context"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/blogstore/config"
	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/store"
	"github.com/cppla/blogstore/utils"
)

// SchemaController creates the tables and loads sample data.
type SchemaController struct {
	db      *gorm.DB
	authors *store.AuthorStore
	posts   *store.PostStore
	cache   *utils.Cache
}

// NewSchemaController creates a new SchemaController instance.
func NewSchemaController(db *gorm.DB, authors *store.AuthorStore, posts *store.PostStore, cache *utils.Cache) *SchemaController {
	return &SchemaController{db: db, authors: authors, posts: posts, cache: cache}
}

// Migrate creates any missing table and reports the table names.
func (s *SchemaController) Migrate(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("migrate")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tables := models.Tables()
	if err := config.Migrate(s.db.WithContext(ctx), tables...); err != nil {
		return err
	}
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.(interface{ TableName() string }).TableName())
	}
	utils.Sugar.Infow("schema ready", "tables", names)
	return utils.Success(w, map[string][]string{"tables": names})
}

// Seed inserts the sample authors that are not present yet, and the sample
// posts when the posts table is empty.
func (s *SchemaController) Seed(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("seed")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var authorsCreated, postsCreated int
	for _, sa := range sampleAuthors {
		taken, err := s.authors.ExistsByName(ctx, sa.name, 0)
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		a, err := models.NewAuthor(sa.name, sa.phone)
		if err != nil {
			return err
		}
		if err := s.authors.Create(ctx, a); err != nil {
			return err
		}
		authorsCreated++
	}

	n, err := s.posts.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		for _, in := range samplePosts() {
			p, err := models.NewPost(in)
			if err != nil {
				return err
			}
			if err := s.posts.Create(ctx, p); err != nil {
				return err
			}
			postsCreated++
		}
	}

	s.cache.InvalidateByPrefix(ctx, "cache:")
	utils.Sugar.Infow("seed finished", "authors", authorsCreated, "posts", postsCreated)
	return utils.Success(w, map[string]int{
		"authors_created": authorsCreated,
		"posts_created":   postsCreated,
	})
}

type sampleAuthor struct {
	name  string
	phone *string
}

func text(s string) *string { return &s }

var sampleAuthors = []sampleAuthor{
	{name: "Ursula K. Le Guin", phone: text("5035550142")},
	{name: "Octavia E. Butler"},
	{name: "Carl Sagan", phone: text("6075550199")},
}

func samplePosts() []models.PostInput {
	body := func(sentence string) *string {
		s := strings.Repeat(sentence+" ", models.ContentMinLength/len(sentence)+1)
		s = strings.TrimSpace(s)
		return &s
	}
	fiction := models.CategoryFiction
	nonFiction := models.CategoryNonFiction
	return []models.PostInput{
		{
			Title:    "Top 10 Lighthouses Worth the Drive",
			Content:  body("The lamp turns all night and the keepers log every ship that passes the point."),
			Summary:  text("A tour of coastal lighthouses."),
			Category: &nonFiction,
		},
		{
			Title:    "The Secret Life of Tide Pools",
			Content:  body("Anemones close when the water leaves and open again when the tide returns."),
			Category: &nonFiction,
		},
		{
			Title:    "You Won't Believe What the Archivist Found",
			Content:  body("Behind the last shelf was a door nobody on the staff remembered installing."),
			Summary:  text("A short story about a hidden room."),
			Category: &fiction,
		},
		{
			Title: "Guess Which Planet Rains Diamonds",
		},
	}
}
