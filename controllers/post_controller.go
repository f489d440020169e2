package controllers

import (
	"context"
	"io"

	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/store"
	"github.com/cppla/blogstore/utils"
)

// PostController handles the post commands.
type PostController struct {
	posts *store.PostStore
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *store.PostStore) *PostController {
	return &PostController{posts: posts}
}

// Add creates a post from -title and the optional -content, -summary and -category.
func (p *PostController) Add(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("post add")
	title := fs.String("title", "", "post title; must contain a clickbait phrase")
	fs.String("content", "", "post body, at least 250 characters")
	fs.String("summary", "", "post summary, at most 250 characters")
	fs.String("category", "", "Fiction or Non-Fiction")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	post, err := models.NewPost(models.PostInput{
		Title:    utils.StripTags(*title),
		Content:  optionalText(fs, "content"),
		Summary:  optionalText(fs, "summary"),
		Category: optionalText(fs, "category"),
	})
	if err != nil {
		return err
	}
	if err := p.posts.Create(ctx, post); err != nil {
		return err
	}
	return utils.Success(w, post)
}

// Get prints the post with -id.
func (p *PostController) Get(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("post get")
	id := fs.Uint("id", 0, "post id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs.Name(), *id); err != nil {
		return err
	}

	post, err := p.posts.Get(ctx, *id)
	if err != nil {
		return err
	}
	return utils.Success(w, post)
}

// Update changes the fields of post -id that were given on the command line.
// An empty -summary or -category clears the column; content can only be replaced.
func (p *PostController) Update(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("post update")
	id := fs.Uint("id", 0, "post id")
	fs.String("title", "", "new title")
	fs.String("content", "", "new body")
	fs.String("summary", "", "new summary; empty clears it")
	fs.String("category", "", "new category; empty clears it")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs.Name(), *id); err != nil {
		return err
	}

	post, err := p.posts.Get(ctx, *id)
	if err != nil {
		return err
	}
	if v := optionalText(fs, "title"); v != nil {
		if err := post.SetTitle(*v); err != nil {
			return err
		}
	}
	if v := optionalText(fs, "content"); v != nil {
		if err := post.SetContent(*v); err != nil {
			return err
		}
	}
	if v := optionalText(fs, "summary"); v != nil {
		if *v == "" {
			post.ClearSummary()
		} else if err := post.SetSummary(*v); err != nil {
			return err
		}
	}
	if v := optionalText(fs, "category"); v != nil {
		if *v == "" {
			post.ClearCategory()
		} else if err := post.SetCategory(*v); err != nil {
			return err
		}
	}
	if err := p.posts.Update(ctx, post); err != nil {
		return err
	}
	return utils.Success(w, post)
}

// Delete removes the post with -id.
func (p *PostController) Delete(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("post delete")
	id := fs.Uint("id", 0, "post id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs.Name(), *id); err != nil {
		return err
	}

	if err := p.posts.Delete(ctx, *id); err != nil {
		return err
	}
	return utils.Success(w, map[string]uint{"id": *id})
}
