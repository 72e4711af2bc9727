package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/taigrr/list-examples/internal/loader"
	"github.com/taigrr/list-examples/internal/output"
	"github.com/taigrr/list-examples/internal/pathfilter"
	"github.com/taigrr/list-examples/internal/registry"
	"github.com/taigrr/list-examples/internal/types"
)

var errNoMatch = errors.New("no examples match the given filters")

// loadRegistry loads and validates the registry named by opts. The whole
// registry is validated before any filter applies.
func loadRegistry(ctx context.Context, opts *options, logger *slog.Logger) ([]types.Example, error) {
	loaderOpts := []loader.Option{loader.WithLogger(logger)}
	if opts.fallback {
		fb := loader.NewRubyFallback(opts.ruby)
		fb.Timeout = opts.fallbackTimeout
		loaderOpts = append(loaderOpts, loader.WithFallback(fb))
	}

	path := opts.registryPath()
	doc, err := loader.New(loaderOpts...).Load(ctx, path)
	if err != nil {
		return nil, err
	}

	examples, err := registry.Validate(doc, opts.root, registry.WithSource(opts.file))
	if err != nil {
		return nil, err
	}

	logger.Debug("registry.validated", "path", path, "examples", len(examples))
	return examples, nil
}

// filterExamples applies include/exclude globs. An empty result is an error
// because every output mode needs at least one example.
func filterExamples(examples []types.Example, include, exclude []string) ([]types.Example, error) {
	pf := pathfilter.New(&types.PathFilterConfig{Include: include, Exclude: exclude})
	if pf.IsEmpty() {
		return examples, nil
	}

	filtered := pf.Filter(examples)
	if len(filtered) == 0 {
		return nil, errNoMatch
	}
	return filtered, nil
}

// render formats examples and checks the result against the mode's schema.
func render(examples []types.Example, mode output.Mode, warn output.WarnFunc) ([]byte, error) {
	var buf bytes.Buffer
	if err := output.Format(&buf, examples, mode, warn); err != nil {
		return nil, err
	}
	if err := output.Verify(mode, buf.Bytes()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
