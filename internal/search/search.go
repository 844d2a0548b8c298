// Package search filters small in-memory collections by free text and tags.
//
// Matching is a case-insensitive substring test on title and description,
// combined with an AND over the selected tags. There is no ranking, fuzzy
// matching or pagination: results keep the input order.
package search

import (
	"slices"
	"strings"
)

// Searchable is implemented by records that can be filtered.
type Searchable interface {
	SearchTitle() string
	SearchDescription() string
	SearchTags() []string
}

// Query is a text + tag filter.
type Query struct {
	// Text is matched case-insensitively against title and description,
	// as is: surrounding spaces are part of the term. Empty matches
	// everything.
	Text string
	// Tags must all be present on a record for it to match.
	Tags []string
}

// Match reports whether item satisfies q.
func Match(item Searchable, q Query) bool {
	if text := strings.ToLower(q.Text); text != "" {
		if !strings.Contains(strings.ToLower(item.SearchTitle()), text) &&
			!strings.Contains(strings.ToLower(item.SearchDescription()), text) {
			return false
		}
	}
	if len(q.Tags) == 0 {
		return true
	}
	have := item.SearchTags()
	for _, want := range q.Tags {
		if !slices.Contains(have, want) {
			return false
		}
	}
	return true
}

// Filter returns the items matching q, in input order. It never returns nil.
func Filter[T Searchable](items []T, q Query) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Match(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// Tags returns the sorted union of all tags present across items.
func Tags[T Searchable](items []T) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.SearchTags() {
			if tag == "" {
				continue
			}
			seen[tag] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

// ParseTags splits a comma separated list of tags, dropping blanks.
func ParseTags(values ...string) []string {
	var out []string
	for _, v := range values {
		for tag := range strings.SplitSeq(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" && !slices.Contains(out, tag) {
				out = append(out, tag)
			}
		}
	}
	return out
}
