// Package gallery implements the "What's next" idea gallery: ideas submitted
// by the team, searchable by text and tags, with upvote counts.
package gallery

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/maruel/ksid"
)

var (
	// ErrIdeaNotFound is returned when no idea has the requested ID.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrInvalidIdea is wrapped by validation failures of a NewIdea.
	ErrInvalidIdea = errors.New("invalid idea")
)

// Idea is a project proposal shown in the gallery.
type Idea struct {
	ID          ksid.ID   `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Products    []string  `json:"products"`
	Tags        []string  `json:"tags"`
	Link        string    `json:"link,omitempty"`
	Created     time.Time `json:"created"`
}

// Clone implements jsonldb.Row.
func (i *Idea) Clone() *Idea {
	c := *i
	c.Products = slices.Clone(i.Products)
	c.Tags = slices.Clone(i.Tags)
	return &c
}

// Key implements jsonldb.Row.
func (i *Idea) Key() string {
	return i.ID.String()
}

// SearchTitle implements search.Searchable.
func (i *Idea) SearchTitle() string { return i.Title }

// SearchDescription implements search.Searchable.
func (i *Idea) SearchDescription() string { return i.Description }

// SearchTags implements search.Searchable.
func (i *Idea) SearchTags() []string { return i.Tags }

// NewIdea is the user input of the "Add idea" form.
type NewIdea struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Products    []string `json:"products,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// FieldError describes the first invalid field of a NewIdea.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap makes FieldError match ErrInvalidIdea.
func (e *FieldError) Unwrap() error {
	return ErrInvalidIdea
}

// normalize trims every field and validates the result.
func (n *NewIdea) normalize() error {
	n.Title = strings.TrimSpace(n.Title)
	n.Description = strings.TrimSpace(n.Description)
	n.Link = strings.TrimSpace(n.Link)
	n.Products = cleanList(n.Products)
	n.Tags = cleanList(n.Tags)
	if n.Title == "" {
		return &FieldError{Field: "title", Message: "required"}
	}
	if len(n.Title) > 200 {
		return &FieldError{Field: "title", Message: "too long"}
	}
	if n.Description == "" {
		return &FieldError{Field: "description", Message: "required"}
	}
	if n.Link != "" {
		u, err := url.Parse(n.Link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &FieldError{Field: "link", Message: "must be an absolute http(s) URL"}
		}
	}
	return nil
}

// cleanList trims entries and drops blanks and duplicates, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
