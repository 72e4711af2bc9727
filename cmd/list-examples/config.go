package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/taigrr/list-examples/internal/reporoot"
)

const (
	envRoot     = "LIST_EXAMPLES_ROOT"
	envFile     = "LIST_EXAMPLES_FILE"
	envFormat   = "LIST_EXAMPLES_FORMAT"
	envFallback = "LIST_EXAMPLES_FALLBACK"
	envRuby     = "RUBY"
)

// options holds the settings shared by the list and serve commands.
type options struct {
	root            string
	file            string
	format          string
	include         []string
	exclude         []string
	fallback        bool
	ruby            string
	fallbackTimeout time.Duration
	debug           bool
}

func (o *options) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.root, "root", "", "Repository root (default: nearest parent holding examples.yaml or .git)")
	flags.StringVar(&o.file, "file", "examples.yaml", "Path to examples registry YAML, relative to the repository root")
	flags.StringVar(&o.format, "format", "json", "Output format: json|gha-matrix|gha-matrix-grouped|paths")
	flags.StringArrayVar(&o.include, "include", nil, "Only keep examples whose path matches this glob (repeatable)")
	flags.StringArrayVar(&o.exclude, "exclude", nil, "Drop examples whose path matches this glob (repeatable)")
	flags.BoolVar(&o.fallback, "fallback", false, "Retry parsing with Ruby's YAML library when the built-in parser fails")
	flags.StringVar(&o.ruby, "ruby", "ruby", "Ruby interpreter used by --fallback")
	flags.DurationVar(&o.fallbackTimeout, "fallback-timeout", 0, "Time limit for the fallback interpreter (0 waits indefinitely)")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging on stderr")
}

// resolve fills in the repository root and applies environment overrides for
// flags the user did not set. Variables from <root>/.env apply only when the
// process environment leaves them empty.
func (o *options) resolve(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if o.root == "" {
		o.root = os.Getenv(envRoot)
	}
	if o.root == "" {
		root, err := findRoot()
		if err != nil {
			return err
		}
		o.root = root
	}

	abs, err := filepath.Abs(o.root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %s: %w", o.root, err)
	}
	o.root = abs

	dotenv, err := readDotenv(filepath.Join(o.root, ".env"))
	if err != nil {
		return err
	}
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := lookup(envFile); v != "" && !flags.Changed("file") {
		o.file = v
	}
	if v := lookup(envFormat); v != "" && !flags.Changed("format") {
		o.format = v
	}
	if v := lookup(envRuby); v != "" && !flags.Changed("ruby") {
		o.ruby = v
	}
	if v := lookup(envFallback); v != "" && !flags.Changed("fallback") {
		o.fallback = v == "1" || v == "true"
	}

	return nil
}

func (o *options) registryPath() string {
	return reporoot.Resolve(o.root, o.file)
}

func findRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	root, err := reporoot.Find(wd)
	if errors.Is(err, reporoot.ErrNotFound) {
		return wd, nil
	}
	return root, err
}

func readDotenv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}
