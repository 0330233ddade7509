// Package fzf filters path lists with fzf-style search patterns.
//
// A pattern is a space-separated list of terms, all of which must hold for a
// path to pass. Each term may carry modifiers:
//
//	foo      substring
//	^foo     path prefix
//	foo$     path suffix
//	'foo     word-prefix boundary
//	'foo'    whole-word
//	!foo     negation, combinable with the above
//
// Matching is case-insensitive and slash-normalized, so patterns behave the
// same on every platform.
package fzf

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Matcher deterministically filters paths by multi-term rules.
type Matcher struct {
	terms []term
}

type term struct {
	raw        string
	text       string // lower-cased core text
	negate     bool   // !foo
	anchorHead bool   // ^foo
	anchorTail bool   // foo$
	wordPrefix bool   // 'foo
	wordExact  bool   // 'foo'
}

// NewMatcher parses pattern. An empty pattern matches everything.
func NewMatcher(pattern string) (Matcher, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return Matcher{}, nil
	}
	parts := strings.Fields(pattern)
	terms := make([]term, 0, len(parts))

	for _, p := range parts {
		t := term{raw: p}

		if strings.HasPrefix(p, "!") {
			t.negate = true
			p = p[1:]
			if p == "" {
				return Matcher{}, fmt.Errorf("empty term after negation in %q", t.raw)
			}
		}

		if strings.HasPrefix(p, "'") {
			p = p[1:]
			if len(p) == 0 {
				return Matcher{}, fmt.Errorf("empty term after leading quote in %q", t.raw)
			}
			if strings.HasSuffix(p, "'") {
				t.wordExact = true
				p = p[:len(p)-1]
				if p == "" {
					return Matcher{}, fmt.Errorf("empty term in %q", t.raw)
				}
			} else {
				t.wordPrefix = true
			}
		}

		if strings.HasPrefix(p, "^") {
			t.anchorHead = true
			p = p[1:]
		}
		if strings.HasSuffix(p, "$") {
			t.anchorTail = true
			p = p[:len(p)-1]
		}
		if p == "" {
			return Matcher{}, fmt.Errorf("empty term after stripping modifiers in %q", t.raw)
		}

		// normalise for case-insensitive, platform-independent comparison
		t.text = strings.ToLower(filepath.ToSlash(p))
		terms = append(terms, t)
	}
	return Matcher{terms: terms}, nil
}

// Match returns the subset of paths satisfying every term, preserving the
// input order.
func (m Matcher) Match(paths []string) ([]string, error) {
	if len(m.terms) == 0 {
		return paths, nil
	}
	var out []string
NextPath:
	for _, path := range paths {
		normal := strings.ToLower(filepath.ToSlash(path))

		for _, t := range m.terms {
			ok := termMatches(t, normal)
			if t.negate {
				ok = !ok
			}
			if !ok {
				continue NextPath
			}
		}
		out = append(out, path)
	}
	return out, nil
}

func termMatches(t term, path string) bool {
	// fast path: ^foo$ with no boundary mods is whole-path equality
	if t.anchorHead && t.anchorTail && !(t.wordExact || t.wordPrefix) {
		return path == t.text
	}

	// narrow the slice to inspect according to ^ / $
	sub := path
	if t.anchorHead {
		if !strings.HasPrefix(path, t.text) {
			return false
		}
		sub = path[:len(t.text)]
	}
	if t.anchorTail {
		if !strings.HasSuffix(path, t.text) {
			return false
		}
		sub = path[len(path)-len(t.text):]
	}

	switch {
	case t.wordExact:
		return containsWordExact(sub, t.text)
	case t.wordPrefix:
		return containsWordPrefix(sub, t.text)
	default:
		return strings.Contains(sub, t.text)
	}
}

// containsWordExact reports whether needle appears in s delimited on both
// sides by a word boundary (start/end of string, or non-word rune).
func containsWordExact(s, needle string) bool {
	if needle == "" {
		return false
	}

	for start := 0; start <= len(s)-len(needle); {
		rel := strings.Index(s[start:], needle)
		if rel < 0 {
			break
		}
		idx := start + rel

		if hasWordBoundary(s, idx, len(needle)) {
			return true
		}
		start = idx + 1
	}
	return false
}

// hasWordBoundary checks both sides of s[idx : idx+size] for boundaries.
func hasWordBoundary(s string, idx, size int) bool {
	leftOK := idx == 0 || !isWordChar(rune(s[idx-1]))
	rightOK := idx+size == len(s) || !isWordChar(rune(s[idx+size]))
	return leftOK && rightOK
}

// containsWordPrefix is like containsWordExact but only the left-hand
// boundary must hold.
func containsWordPrefix(s, needle string) bool {
	if needle == "" {
		return false
	}

	for start := 0; start <= len(s)-len(needle); {
		rel := strings.Index(s[start:], needle)
		if rel < 0 {
			break
		}
		idx := start + rel

		if idx == 0 || !isWordChar(rune(s[idx-1])) {
			return true
		}
		start = idx + 1
	}
	return false
}

// word chars are Unicode letters, digits, and underscore.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
