// Package pathfilter narrows a registry to the examples matching glob patterns.
package pathfilter

import (
	"regexp"
	"strings"

	"github.com/taigrr/list-examples/internal/types"
)

// PathFilter selects example paths by include and exclude globs.
type PathFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// New creates a new PathFilter with the given configuration. Patterns that
// fail to compile never match.
func New(config *types.PathFilterConfig) *PathFilter {
	pf := &PathFilter{}
	if config == nil {
		return pf
	}

	pf.include = compileAll(config.Include)
	pf.exclude = compileAll(config.Exclude)
	return pf
}

func compileAll(patterns []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if re := globToRegexp(p); re != nil {
			out = append(out, re)
		}
	}
	return out
}

// globToRegexp converts a glob pattern to an anchored regex.
func globToRegexp(pattern string) *regexp.Regexp {
	// Normalize pattern path separators (Windows compatibility)
	normalizedPattern := strings.TrimSuffix(strings.ReplaceAll(pattern, "\\", "/"), "/")

	// Escape all regex special chars first
	regexPattern := regexp.QuoteMeta(normalizedPattern)

	// Convert glob patterns (unescape the escaped versions)
	regexPattern = strings.ReplaceAll(regexPattern, `\*\*`, ".*")  // ** matches any
	regexPattern = strings.ReplaceAll(regexPattern, `\*`, "[^/]*") // * matches non-slash
	regexPattern = strings.ReplaceAll(regexPattern, `\?`, "[^/]")  // ? matches single char

	re, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil
	}
	return re
}

// IsAllowed checks if a path passes the filter. Exclusions win over inclusions;
// with no include patterns every path is included.
func (pf *PathFilter) IsAllowed(path string) bool {
	normalizedPath := strings.TrimSuffix(strings.ReplaceAll(path, "\\", "/"), "/")
	normalizedPath = strings.TrimPrefix(normalizedPath, "./")

	for _, re := range pf.exclude {
		if re.MatchString(normalizedPath) {
			return false
		}
	}

	if len(pf.include) == 0 {
		return true
	}
	for _, re := range pf.include {
		if re.MatchString(normalizedPath) {
			return true
		}
	}
	return false
}

// Filter returns the examples whose paths are allowed, preserving order.
func (pf *PathFilter) Filter(examples []types.Example) []types.Example {
	var allowed []types.Example
	for _, ex := range examples {
		if pf.IsAllowed(ex.Path) {
			allowed = append(allowed, ex)
		}
	}
	return allowed
}

// IsEmpty reports whether the filter has no patterns at all.
func (pf *PathFilter) IsEmpty() bool {
	return len(pf.include) == 0 && len(pf.exclude) == 0
}
