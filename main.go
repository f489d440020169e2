// Command blogstore manages authors and posts from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cppla/blogstore/config"
	"github.com/cppla/blogstore/models"
	"github.com/cppla/blogstore/routes"
	"github.com/cppla/blogstore/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("blogstore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML or JSON config file (default config/config.yaml, then config/config.json)")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: blogstore [-config path] <command> [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return routes.ExitOK
		}
		return routes.ExitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return routes.ExitFailure
	}

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "init logger: %v\n", err)
		return routes.ExitFailure
	}
	defer utils.Sync()

	db, err := config.OpenDatabase(cfg, utils.StdLogger())
	if err != nil {
		utils.Sugar.Errorw("open database", "driver", cfg.DBDriver, "err", err)
		_, _ = fmt.Fprintln(stderr, err.Error())
		return routes.ExitFailure
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := config.Migrate(db, models.Tables()...); err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return routes.ExitFailure
	}

	rc := utils.NewRedis(cfg)
	if rc != nil {
		defer rc.Close()
	}
	cache := utils.NewCache(rc, time.Duration(cfg.CacheTTLSec)*time.Second)

	r := routes.SetupRouter(db, cache)
	return r.Dispatch(ctx, fs.Args(), stdout, stderr)
}
