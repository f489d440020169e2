package store

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/blogstore/models"
)

func newValidPost(t *testing.T) *models.Post {
	t.Helper()
	p, err := models.NewPost(models.PostInput{
		Title:    "Top 5 Lighthouses",
		Content:  strPtr(strings.Repeat("a", models.ContentMinLength)),
		Category: strPtr(models.CategoryNonFiction),
		Summary:  strPtr("Short."),
	})
	require.NoError(t, err)
	return p
}

func TestPostStore_Mock(t *testing.T) {
	ctx := context.Background()

	t.Run("insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `posts`")).
			WillReturnResult(sqlmock.NewResult(3, 1))

		p := newValidPost(t)
		require.NoError(t, NewPostStore(db, nil).Create(ctx, p))
		assert.Equal(t, uint(3), p.ID)
		assert.Nil(t, p.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid title issues no SQL", func(t *testing.T) {
		db, mock := newMockDB(t)
		err := NewPostStore(db, nil).Create(ctx, &models.Post{Title: "Plain title"})
		var ve *models.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "No clickbait found", ve.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update missing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `posts` SET")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		p := newValidPost(t)
		p.ID = 12
		assert.ErrorIs(t, NewPostStore(db, nil).Update(ctx, p), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostStore_EndToEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := NewPostStore(newSQLiteDB(t), nil)
		p := newValidPost(t)
		require.NoError(t, s.Create(ctx, p))
		require.NotZero(t, p.ID)

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		opts := cmpopts.IgnoreFields(models.Post{}, "CreatedAt")
		if diff := cmp.Diff(*p, *got, opts); diff != "" {
			t.Fatalf("stored post mismatch (-want +got):\n%s", diff)
		}
		assert.Nil(t, got.UpdatedAt)
	})

	t.Run("optional fields stay NULL", func(t *testing.T) {
		s := NewPostStore(newSQLiteDB(t), nil)
		p, err := models.NewPost(models.PostInput{Title: "Guess Who"})
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, p))

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Content)
		assert.Nil(t, got.Summary)
		assert.Nil(t, got.Category)
	})

	t.Run("update refreshes updated_at only", func(t *testing.T) {
		s := NewPostStore(newSQLiteDB(t), nil)
		p := newValidPost(t)
		require.NoError(t, s.Create(ctx, p))
		before, err := s.Get(ctx, p.ID)
		require.NoError(t, err)

		require.NoError(t, before.SetCategory(models.CategoryFiction))
		before.ClearSummary()
		require.NoError(t, s.Update(ctx, before))

		after, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, after.UpdatedAt)
		assert.True(t, after.CreatedAt.Equal(before.CreatedAt))
		assert.Equal(t, models.CategoryFiction, *after.Category)
		assert.Nil(t, after.Summary)
	})

	t.Run("invalid update leaves the row alone", func(t *testing.T) {
		s := NewPostStore(newSQLiteDB(t), nil)
		p := newValidPost(t)
		require.NoError(t, s.Create(ctx, p))

		short := "too short"
		p.Content = &short
		assert.ErrorIs(t, s.Update(ctx, p), models.ErrValidation)

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, *got.Content, models.ContentMinLength)
		assert.Nil(t, got.UpdatedAt)
	})

	t.Run("delete", func(t *testing.T) {
		s := NewPostStore(newSQLiteDB(t), nil)
		p := newValidPost(t)
		require.NoError(t, s.Create(ctx, p))
		require.NoError(t, s.Delete(ctx, p.ID))
		_, err := s.Get(ctx, p.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)
	})
}
