// Package registry validates a loaded registry document and normalizes its
// entries into examples.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/list-examples/internal/types"
)

// DefaultSource is the registry file name used in error messages.
const DefaultSource = "examples.yaml"

const (
	foundryPrefix = "foundry"
	hardhatPrefix = "hardhat"
)

type validator struct {
	source   string
	repoRoot string
}

// Option configures validation.
type Option func(*validator)

// WithSource sets the file name that prefixes error messages.
func WithSource(name string) Option {
	return func(v *validator) {
		if name != "" {
			v.source = name
		}
	}
}

// Validate checks doc against the registry schema and returns its entries in
// source order. It stops at the first violation.
func Validate(doc types.RawDocument, repoRoot string, opts ...Option) ([]types.Example, error) {
	v := &validator{source: DefaultSource, repoRoot: repoRoot}
	for _, opt := range opts {
		opt(v)
	}
	return v.validate(doc)
}

func (v *validator) validate(doc types.RawDocument) ([]types.Example, error) {
	if !isVersionOne(doc["version"]) {
		return nil, v.fail(-1, "version", "`version` must be 1")
	}

	entries, ok := doc["examples"].([]any)
	if !ok || len(entries) == 0 {
		return nil, v.fail(-1, "examples", "`examples` must be a non-empty list")
	}

	seen := make(map[string]struct{}, len(entries))
	examples := make([]types.Example, 0, len(entries))

	for i, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, v.fail(i, "", fmt.Sprintf("examples[%d] must be a mapping", i))
		}

		ex, err := v.entry(i, entry, seen)
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}

	return examples, nil
}

func (v *validator) entry(i int, entry map[string]any, seen map[string]struct{}) (types.Example, error) {
	path, ok := nonEmptyString(entry["path"])
	if !ok {
		return types.Example{}, v.fail(i, "path", fmt.Sprintf("examples[%d].path must be a non-empty string", i))
	}

	if _, dup := seen[path]; dup {
		return types.Example{}, v.fail(i, "path", "duplicate path: "+path)
	}
	seen[path] = struct{}{}

	if !v.isDir(path) {
		return types.Example{}, v.fail(i, "path", fmt.Sprintf("examples[%d].path does not exist: %s", i, path))
	}

	exType, ok := nonEmptyString(entry["type"])
	if !ok {
		return types.Example{}, v.fail(i, "type", fmt.Sprintf("examples[%d].type must be a non-empty string", i))
	}

	desc, ok := nonEmptyString(entry["description"])
	if !ok {
		return types.Example{}, v.fail(i, "description", fmt.Sprintf("examples[%d].description must be a non-empty string", i))
	}

	if !types.ExampleType(exType).IsAllowed() {
		return types.Example{}, v.fail(i, "type", fmt.Sprintf("examples[%d].type must be one of: %s", i, allowedList()))
	}

	return types.Example{
		Path:        path,
		Type:        types.ExampleType(exType),
		Description: desc,
		Foundry:     foundryFlags(entry),
		Hardhat:     hardhatFlags(entry),
	}, nil
}

func foundryFlags(entry map[string]any) types.FoundryFlags {
	base := []string{"test", "solidity", foundryPrefix}
	at := func(keys ...string) []string {
		return append(append([]string{}, base...), keys...)
	}

	return types.FoundryFlags{
		Fmt:   flagOr(entry, true, at("fmt")...),
		Build: flagOr(entry, true, at("build")...),
		// test is always on; the nested block only carries options such as offline.
		Test:    true,
		Lint:    flagOr(entry, true, at("lint")...),
		Offline: isTrue(entry, at("test", "offline")...),
	}
}

func hardhatFlags(entry map[string]any) types.HardhatFlags {
	at := func(key string) []string {
		return []string{"test", "solidity", hardhatPrefix, key}
	}

	return types.HardhatFlags{
		Compile: flagOr(entry, false, at("compile")...),
		Test:    flagOr(entry, false, at("test")...),
		Lint:    flagOr(entry, false, at("lint")...),
	}
}

func (v *validator) isDir(path string) bool {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(v.repoRoot, path)
	}
	info, err := os.Stat(full)
	return err == nil && info.IsDir()
}

func (v *validator) fail(index int, field, msg string) *SchemaError {
	return &SchemaError{Source: v.source, Index: index, Field: field, Message: msg}
}

func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// isVersionOne accepts the integer 1 in any numeric representation the
// parsers produce. Booleans and strings never match.
func isVersionOne(v any) bool {
	switch n := v.(type) {
	case int:
		return n == 1
	case int64:
		return n == 1
	case uint64:
		return n == 1
	case float64:
		return n == 1
	default:
		return false
	}
}

func allowedList() string {
	names := make([]string, len(types.AllowedTypes))
	for i, t := range types.AllowedTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
