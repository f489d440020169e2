package controllers

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/cppla/blogstore/utils"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage")

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args and rejects positional leftovers. -h yields an error
// wrapping flag.ErrHelp that carries the usage text.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return fmt.Errorf("%w\n\n%s", err, Usage(fs))
		}
		return fmt.Errorf("%w: %v\n\n%s", ErrUsage, err, Usage(fs))
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", ErrUsage, fs.Args())
	}
	return nil
}

// Usage renders the flag defaults of fs.
func Usage(fs *flag.FlagSet) string {
	if fs == nil {
		return ""
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "Usage of %s:\n", fs.Name())
	out := fs.Output()
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	fs.SetOutput(out)
	return buf.String()
}

// optionalText returns the tag-stripped value of flag name, or nil when the
// flag was not given. An explicit empty value is returned as "".
func optionalText(fs *flag.FlagSet, name string) *string {
	var v *string
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			s := utils.StripTags(f.Value.String())
			v = &s
		}
	})
	return v
}

func requireID(name string, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: %s -id is required", ErrUsage, name)
	}
	return nil
}
