// Package loader turns a registry file into an untyped document tree.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/taigrr/list-examples/internal/types"
	"gopkg.in/yaml.v3"
)

const reasonNotMapping = "root document must be a mapping"

// Loader parses registry documents with yaml.v3 and, when configured,
// retries through an external interpreter.
type Loader struct {
	fallback *Fallback
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithFallback enables the external interpreter retry.
func WithFallback(fb *Fallback) Option {
	return func(l *Loader) {
		l.fallback = fb
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a new Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the document at path. The fallback, if any, only runs when the
// primary parser fails.
func (l *Loader) Load(ctx context.Context, path string) (types.RawDocument, error) {
	doc, err := l.loadYAML(path)
	if err == nil {
		return doc, nil
	}
	if l.fallback == nil || l.fallback.Interpreter == "" {
		return nil, err
	}

	l.logger.Debug("loader.fallback", "path", path, "interpreter", l.fallback.Interpreter, "cause", err)
	return l.fallback.Load(ctx, path)
}

func (l *Loader) loadYAML(path string) (types.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		reason := "failed to read file"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "file not found"
		}
		return nil, &LoadError{Path: path, Reason: reason, Err: err}
	}

	doc, err := Parse(content)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Reason: "invalid YAML", Err: err}
	}

	l.logger.Debug("loader.parsed", "path", path, "keys", len(doc))
	return doc, nil
}

// Parse decodes YAML content into a document tree. The root must be a mapping.
func Parse(content []byte) (types.RawDocument, error) {
	var root any
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, err
	}
	return asDocument(root)
}

func asDocument(root any) (types.RawDocument, error) {
	doc, ok := normalize(root).(map[string]any)
	if !ok {
		return nil, &LoadError{Reason: reasonNotMapping}
	}
	return doc, nil
}

// normalize rewrites mappings with non-string keys so every mapping in the
// tree is a map[string]any, whichever parser produced it.
func normalize(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = normalize(child)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range v {
			v[i] = normalize(child)
		}
		return v
	default:
		return node
	}
}
