// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"fmt"
	"regexp"
	"strings"
)

// Glob compiles given glob pattern into an anchored case-insensitive
// regular expression.  The asterisk matches any sequence of characters
// while all other characters match literally, i.e. "suite.*" matches
// "Suite.one" but not "other.one".  Glob fails with ErrFilter for an
// empty pattern.
func Glob(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrFilter)
	}
	// replace asterisks with zero bytes to escape the meta characters
	re := strings.ReplaceAll(pattern, "*", "\000")
	re = regexp.QuoteMeta(re)
	re = strings.ReplaceAll(re, "\000", ".*")
	rx, err := regexp.Compile("(?i)^" + re + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFilter, pattern, err)
	}
	return rx, nil
}

// filter selects the tests of a run by their ids.
type filter []*regexp.Regexp

func newFilter(patterns []string) (filter, error) {
	f := make(filter, 0, len(patterns))
	for _, p := range patterns {
		rx, err := Glob(p)
		if err != nil {
			return nil, err
		}
		f = append(f, rx)
	}
	return f, nil
}

// matches returns true if the filter is empty or if one of its patterns
// matches given id.
func (f filter) matches(id string) bool {
	if len(f) == 0 {
		return true
	}
	for _, rx := range f {
		if rx.MatchString(id) {
			return true
		}
	}
	return false
}
