package controllers

import (
	"context"
	"io"

	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/store"
	"github.com/cppla/blogstore/utils"
)

// AuthorController handles the author commands.
type AuthorController struct {
	authors *store.AuthorStore
}

// NewAuthorController creates a new AuthorController instance.
func NewAuthorController(authors *store.AuthorStore) *AuthorController {
	return &AuthorController{authors: authors}
}

// Add creates an author from -name and the optional -phone.
func (a *AuthorController) Add(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("author add")
	name := fs.String("name", "", "author name, unique across authors")
	fs.String("phone", "", "phone number, exactly 10 digits")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	author, err := models.NewAuthor(utils.StripTags(*name), optionalText(fs, "phone"))
	if err != nil {
		return err
	}
	if err := a.authors.Create(ctx, author); err != nil {
		return err
	}
	return utils.Success(w, author)
}

// Get prints the author with -id.
func (a *AuthorController) Get(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("author get")
	id := fs.Uint("id", 0, "author id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs.Name(), *id); err != nil {
		return err
	}

	author, err := a.authors.Get(ctx, *id)
	if err != nil {
		return err
	}
	return utils.Success(w, author)
}

// Update changes the fields of author -id that were given on the command line.
// An empty -phone clears the phone number.
func (a *AuthorController) Update(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("author update")
	id := fs.Uint("id", 0, "author id")
	fs.String("name", "", "new author name")
	fs.String("phone", "", "new phone number; empty clears it")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs.Name(), *id); err != nil {
		return err
	}

	author, err := a.authors.Get(ctx, *id)
	if err != nil {
		return err
	}
	if name := optionalText(fs, "name"); name != nil {
		if err := author.SetName(*name); err != nil {
			return err
		}
	}
	if phone := optionalText(fs, "phone"); phone != nil {
		if *phone == "" {
			author.ClearPhoneNumber()
		} else if err := author.SetPhoneNumber(*phone); err != nil {
			return err
		}
	}
	if err := a.authors.Update(ctx, author); err != nil {
		return err
	}
	return utils.Success(w, author)
}

// Delete removes the author with -id.
func (a *AuthorController) Delete(ctx context.Context, args []string, w io.Writer) error {
	fs := newFlagSet("author delete")
	id := fs.Uint("id", 0, "author id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireID(fs.Name(), *id); err != nil {
		return err
	}

	if err := a.authors.Delete(ctx, *id); err != nil {
		return err
	}
	return utils.Success(w, map[string]uint{"id": *id})
}
