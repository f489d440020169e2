package routes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/cppla/blogstore/controllers"
	"github.com/cppla/blogstore/middleware"
	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/store"
	"github.com/cppla/blogstore/utils"
)

// Exit codes returned by Dispatch.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Router maps command paths such as "author add" to handlers.
type Router struct {
	routes map[string]middleware.HandlerFunc
	global []middleware.Middleware
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{routes: map[string]middleware.HandlerFunc{}}
}

// Use appends middleware applied to every route registered afterwards.
func (r *Router) Use(mws ...middleware.Middleware) {
	r.global = append(r.global, mws...)
}

// Handle registers h under path, a space separated command.
func (r *Router) Handle(path string, h middleware.HandlerFunc) {
	mws := append([]middleware.Middleware{middleware.CommandLogger(path)}, r.global...)
	r.routes[path] = middleware.Chain(h, mws...)
}

// Commands lists the registered command paths in order.
func (r *Router) Commands() []string {
	out := make([]string, 0, len(r.routes))
	for path := range r.routes {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// match picks the longest registered path that prefixes args.
func (r *Router) match(args []string) (middleware.HandlerFunc, []string, bool) {
	for n := 2; n >= 1; n-- {
		if len(args) < n {
			continue
		}
		if h, ok := r.routes[strings.Join(args[:n], " ")]; ok {
			return h, args[n:], true
		}
	}
	return nil, nil, false
}

// Dispatch runs the command named by args. Results go to stdout as a JSON
// envelope, failures to stderr. The return value is the process exit code.
func (r *Router) Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	h, rest, ok := r.match(args)
	if !ok {
		msg := "missing command"
		if len(args) > 0 {
			msg = fmt.Sprintf("unknown command %q", strings.Join(args, " "))
		}
		_ = utils.Error(stderr, utils.CodeUsage, msg+"; commands: "+strings.Join(r.Commands(), ", "))
		return ExitUsage
	}
	return report(h(ctx, rest, stdout), stdout, stderr)
}

func report(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	var ve *models.ValidationError
	switch {
	case errors.Is(err, flag.ErrHelp):
		_, _ = fmt.Fprintln(stdout, err.Error())
		return ExitOK
	case errors.As(err, &ve):
		_ = utils.Error(stderr, utils.CodeValidation, ve.Message)
		return ExitFailure
	case errors.Is(err, store.ErrNotFound):
		_ = utils.Error(stderr, utils.CodeNotFound, err.Error())
		return ExitFailure
	case errors.Is(err, controllers.ErrUsage):
		_ = utils.Error(stderr, utils.CodeUsage, err.Error())
		return ExitUsage
	default:
		utils.Sugar.Errorw("command error", "err", err)
		_ = utils.Error(stderr, utils.CodeInternal, err.Error())
		return ExitFailure
	}
}

// SetupRouter wires stores, controllers and middleware into a Router.
func SetupRouter(db *gorm.DB, cache *utils.Cache) *Router {
	authors := store.NewAuthorStore(db, cache)
	posts := store.NewPostStore(db, cache)

	schema := controllers.NewSchemaController(db, authors, posts, cache)
	authorCtrl := controllers.NewAuthorController(authors)
	postCtrl := controllers.NewPostController(posts)

	r := NewRouter()
	r.Use(middleware.Recovery())

	r.Handle("migrate", schema.Migrate)
	r.Handle("seed", schema.Seed)

	r.Handle("author add", authorCtrl.Add)
	r.Handle("author get", authorCtrl.Get)
	r.Handle("author update", authorCtrl.Update)
	r.Handle("author delete", authorCtrl.Delete)

	r.Handle("post add", postCtrl.Add)
	r.Handle("post get", postCtrl.Get)
	r.Handle("post update", postCtrl.Update)
	r.Handle("post delete", postCtrl.Delete)

	return r
}
