// Package output renders validated examples as JSON or GitHub Actions matrices.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/taigrr/list-examples/internal/types"
)

// WarnFunc receives non-fatal diagnostics such as mixed example types.
type WarnFunc func(msg string)

// Format writes examples to w in the given mode, followed by a newline.
// examples must not be empty.
func Format(w io.Writer, examples []types.Example, mode Mode, warn WarnFunc) error {
	warn = orNoop(warn)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	var v any
	switch mode {
	case ModeJSON:
		enc.SetIndent("", "  ")
		v = examples
	case ModeMatrix:
		v = Matrix(examples)
	case ModeMatrixGrouped:
		v = GroupedMatrix(examples, warn)
	case ModePaths:
		v = Paths(examples, warn)
	default:
		return fmt.Errorf("unsupported format: %s", mode)
	}

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s output: %w", mode, err)
	}
	return nil
}

// Matrix builds one matrix job per example.
func Matrix(examples []types.Example) types.Matrix[types.MatrixEntry] {
	include := make([]types.MatrixEntry, 0, len(examples))
	for _, ex := range examples {
		include = append(include, types.MatrixEntry{
			Path:           ex.Path,
			Type:           ex.Type,
			FoundryOffline: ex.Foundry.Offline,
		})
	}
	return types.Matrix[types.MatrixEntry]{Include: include}
}

// GroupedMatrix builds one matrix job per top-level directory, in sorted
// group order. The first member's type is used for the whole group; offline
// is set when any solidity member needs it. warn may be nil.
func GroupedMatrix(examples []types.Example, warn WarnFunc) types.Matrix[types.GroupedMatrixEntry] {
	warn = orNoop(warn)
	groups := make(map[string][]types.Example)
	for _, ex := range examples {
		name := topDir(ex.Path)
		groups[name] = append(groups[name], ex)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	include := make([]types.GroupedMatrixEntry, 0, len(names))
	for _, name := range names {
		members := groups[name]
		if mixed := typeSet(members); len(mixed) > 1 {
			warn(fmt.Sprintf("Group %s has mixed types: %s", name, strings.Join(mixed, ", ")))
		}

		include = append(include, types.GroupedMatrixEntry{
			Group:          name,
			Paths:          joinPaths(members),
			Type:           members[0].Type,
			FoundryOffline: anyOffline(members),
		})
	}
	return types.Matrix[types.GroupedMatrixEntry]{Include: include}
}

// Paths collapses every example into a single job description. warn may be nil.
func Paths(examples []types.Example, warn WarnFunc) types.PathsSummary {
	warn = orNoop(warn)
	if mixed := typeSet(examples); len(mixed) > 1 {
		warn("Mixed types found: " + strings.Join(mixed, ", "))
	}

	var exType types.ExampleType
	if len(examples) > 0 {
		exType = examples[0].Type
	}

	return types.PathsSummary{
		Paths:          joinPaths(examples),
		Type:           exType,
		FoundryOffline: anyOffline(examples),
	}
}

// topDir returns the path segment before the first slash.
func topDir(path string) string {
	name, _, _ := strings.Cut(path, "/")
	return name
}

func joinPaths(examples []types.Example) string {
	paths := make([]string, len(examples))
	for i, ex := range examples {
		paths[i] = ex.Path
	}
	return strings.Join(paths, " ")
}

// anyOffline reports whether any solidity example in the set needs offline
// forge tests. Other types never contribute.
func anyOffline(examples []types.Example) bool {
	for _, ex := range examples {
		if ex.Type == types.TypeSolidity && ex.Foundry.Offline {
			return true
		}
	}
	return false
}

func orNoop(warn WarnFunc) WarnFunc {
	if warn == nil {
		return func(string) {}
	}
	return warn
}

// typeSet returns the distinct types in sorted order.
func typeSet(examples []types.Example) []string {
	seen := make(map[string]struct{})
	for _, ex := range examples {
		seen[string(ex.Type)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
