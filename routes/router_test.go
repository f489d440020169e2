package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/blogstore/controllers"
	"github.com/cppla/blogstore/middleware"
	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/store"
	"github.com/cppla/blogstore/utils"
)

func TestDispatch(t *testing.T) {
	var gotArgs []string
	r := NewRouter()
	r.Handle("author get", func(_ context.Context, args []string, w io.Writer) error {
		gotArgs = args
		return utils.Success(w, "ok")
	})
	r.Handle("migrate", func(context.Context, []string, io.Writer) error { return nil })

	var stdout, stderr bytes.Buffer
	code := r.Dispatch(context.Background(), []string{"author", "get", "-id", "3"}, &stdout, &stderr)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, []string{"-id", "3"}, gotArgs)
	assert.Contains(t, stdout.String(), `"message": "success"`)

	assert.Equal(t, []string{"author get", "migrate"}, r.Commands())

	stderr.Reset()
	code = r.Dispatch(context.Background(), []string{"post", "get"}, &stdout, &stderr)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr.String(), "author get, migrate")
}

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantExit int
		wantCode int
		wantMsg  string
	}{
		{"validation", models.NewValidationError("name", "Name must be unique."), ExitFailure, utils.CodeValidation, "Name must be unique."},
		{"wrapped validation", fmt.Errorf("x: %w", models.NameTakenError()), ExitFailure, utils.CodeValidation, "Name must be unique."},
		{"not found", fmt.Errorf("author 4: %w", store.ErrNotFound), ExitFailure, utils.CodeNotFound, "author 4: record not found"},
		{"usage", fmt.Errorf("%w: -id is required", controllers.ErrUsage), ExitUsage, utils.CodeUsage, "usage: -id is required"},
		{"internal", errors.New("disk I/O error"), ExitFailure, utils.CodeInternal, "disk I/O error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.wantExit, report(tt.err, &stdout, &stderr))
			assert.Empty(t, stdout.String())

			var resp utils.JSONResponse
			require.NoError(t, json.Unmarshal(stderr.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestDispatch_RecoversPanics(t *testing.T) {
	r := NewRouter()
	r.Use(middleware.Recovery())
	r.Handle("seed", func(context.Context, []string, io.Writer) error { panic("nil map") })

	var stdout, stderr bytes.Buffer
	code := r.Dispatch(context.Background(), []string{"seed"}, &stdout, &stderr)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr.String(), "panic: nil map")
}
