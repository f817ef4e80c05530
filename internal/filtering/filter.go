// Package filtering restricts a coverage tree to the files selected by
// include and exclude patterns.
package filtering

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// IFilter decides whether a path takes part in the evaluation.
type IFilter interface {
	IsIncluded(path string) bool
	HasCustomFilters() bool
}

// DefaultFilter is the default implementation of IFilter.
type DefaultFilter struct {
	includeFilters []*regexp.Regexp
	excludeFilters []*regexp.Regexp
	hasCustom      bool
}

// NewDefaultFilter compiles filters of the form "+pattern" (include) and
// "-pattern" (exclude). '*' matches any run of characters, '?' a single
// one, and '/' and '\' both match either separator. Empty entries are
// ignored. Without include filters every path is included.
func NewDefaultFilter(filters []string) (*DefaultFilter, error) {
	df := &DefaultFilter{}
	var errs []string

	for _, f := range filters {
		f = strings.TrimSpace(f)
		switch {
		case f == "":
			continue
		case strings.HasPrefix(f, "+"), strings.HasPrefix(f, "-"):
			re, err := createFilterRegex(f)
			if err != nil {
				errs = append(errs, fmt.Sprintf("invalid filter '%s': %v", f, err))
				continue
			}
			if f[0] == '+' {
				df.includeFilters = append(df.includeFilters, re)
			} else {
				df.excludeFilters = append(df.excludeFilters, re)
			}
		default:
			errs = append(errs, fmt.Sprintf("filter '%s' must start with '+' or '-'", f))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("error creating file filter: %s", strings.Join(errs, "; "))
	}
	df.hasCustom = len(df.includeFilters) > 0 || len(df.excludeFilters) > 0
	return df, nil
}

// IsIncluded applies the exclude filters first, then the include filters.
func (df *DefaultFilter) IsIncluded(path string) bool {
	for _, re := range df.excludeFilters {
		if re.MatchString(path) {
			return false
		}
	}
	if len(df.includeFilters) == 0 {
		return true
	}
	for _, re := range df.includeFilters {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

func (df *DefaultFilter) HasCustomFilters() bool {
	return df.hasCustom
}

func createFilterRegex(filter string) (*regexp.Regexp, error) {
	pattern := filter[1:]
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	pattern = regexp.QuoteMeta(strings.ReplaceAll(pattern, "\\", "/"))
	pattern = strings.ReplaceAll(pattern, `\*`, ".*")
	pattern = strings.ReplaceAll(pattern, `\?`, ".")
	pattern = strings.ReplaceAll(pattern, "/", `[/\\]`)
	return regexp.Compile("(?i)^" + pattern + "$")
}

// FilterFiles detaches every file node of t whose path is rejected by f and
// returns how many were removed.
func FilterFiles(t *tree.Tree, f IFilter) int {
	if !f.HasCustomFilters() {
		return 0
	}
	removed := 0
	for _, file := range t.AllFiles(t.Root()) {
		if !f.IsIncluded(t.Path(file)) {
			t.Remove(file)
			removed++
		}
	}
	return removed
}
