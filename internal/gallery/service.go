package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/hqo/showcase/internal/jsonldb"
	"github.com/hqo/showcase/internal/search"
	"github.com/maruel/ksid"
)

// IdeaService stores gallery ideas in a JSONL table.
type IdeaService struct {
	table *jsonldb.Table[*Idea]
	now   func() time.Time
}

// NewIdeaService opens (or creates) the idea table at path.
func NewIdeaService(path string) (*IdeaService, error) {
	table, err := jsonldb.NewTable[*Idea](path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ideas table: %w", err)
	}
	return &IdeaService{table: table, now: time.Now}, nil
}

// Add validates n and stores it as a new idea.
func (s *IdeaService) Add(ctx context.Context, n NewIdea) (*Idea, error) {
	if err := n.normalize(); err != nil {
		return nil, err
	}
	idea := &Idea{
		ID:          ksid.NewID(),
		Title:       n.Title,
		Description: n.Description,
		Products:    n.Products,
		Tags:        n.Tags,
		Link:        n.Link,
		Created:     s.now().UTC(),
	}
	if err := s.table.Append(idea); err != nil {
		return nil, fmt.Errorf("failed to store idea: %w", err)
	}
	slog.InfoContext(ctx, "Idea added", "id", idea.ID, "title", idea.Title)
	return idea.Clone(), nil
}

// Get returns the idea with the given ID.
func (s *IdeaService) Get(ctx context.Context, id string) (*Idea, error) {
	idea, err := s.table.Get(id)
	if errors.Is(err, jsonldb.ErrNotFound) {
		return nil, ErrIdeaNotFound
	}
	return idea, err
}

// Delete removes the idea with the given ID.
func (s *IdeaService) Delete(ctx context.Context, id string) error {
	if err := s.table.Delete(id); err != nil {
		if errors.Is(err, jsonldb.ErrNotFound) {
			return ErrIdeaNotFound
		}
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	slog.InfoContext(ctx, "Idea deleted", "id", id)
	return nil
}

// List returns the ideas matching q, newest first.
func (s *IdeaService) List(ctx context.Context, q search.Query) []*Idea {
	return search.Filter(s.all(), q)
}

// Tags returns the sorted union of tags across all ideas.
func (s *IdeaService) Tags(ctx context.Context) []string {
	return search.Tags(s.all())
}

func (s *IdeaService) all() []*Idea {
	ideas := slices.Collect(s.table.All())
	slices.SortStableFunc(ideas, func(a, b *Idea) int {
		return b.Created.Compare(a.Created)
	})
	return ideas
}
