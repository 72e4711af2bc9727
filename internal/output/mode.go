package output

import (
	"fmt"
	"strings"
)

// Mode selects the shape of the rendered registry.
type Mode string

const (
	ModeJSON          Mode = "json"
	ModeMatrix        Mode = "gha-matrix"
	ModeMatrixGrouped Mode = "gha-matrix-grouped"
	ModePaths         Mode = "paths"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeJSON, ModeMatrix, ModeMatrixGrouped, ModePaths}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of %s", name, ModeNames())
}

// ModeNames returns the supported mode names joined for help text.
func ModeNames() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, "|")
}
