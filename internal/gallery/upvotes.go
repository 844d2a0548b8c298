package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/hqo/showcase/internal/prefs"
)

// ErrEmptyProjectID is returned when upvoting without a project ID.
var ErrEmptyProjectID = errors.New("project id is required")

// Upvotes counts votes per project ID. The whole map is persisted verbatim as
// JSON under prefs.KeyProjectUpvotes.
type Upvotes struct {
	store *prefs.Store
}

// NewUpvotes returns vote counts kept in store.
func NewUpvotes(store *prefs.Store) *Upvotes {
	return &Upvotes{store: store}
}

// Upvote adds one vote to id and returns the new count.
func (u *Upvotes) Upvote(ctx context.Context, id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, ErrEmptyProjectID
	}
	counts := map[string]int{}
	if err := u.store.Update(prefs.KeyProjectUpvotes, &counts, func() error {
		counts[id]++
		return nil
	}); err != nil {
		return 0, fmt.Errorf("failed to persist upvote: %w", err)
	}
	slog.DebugContext(ctx, "Upvoted", "project", id, "count", counts[id])
	return counts[id], nil
}

// Count returns the votes of id.
func (u *Upvotes) Count(ctx context.Context, id string) (int, error) {
	counts, err := u.Counts(ctx)
	if err != nil {
		return 0, err
	}
	return counts[id], nil
}

// Counts returns a copy of every vote count.
func (u *Upvotes) Counts(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	if _, err := u.store.Get(prefs.KeyProjectUpvotes, &counts); err != nil {
		slog.WarnContext(ctx, "Ignoring undecodable upvotes", "err", err)
		return map[string]int{}, nil
	}
	return maps.Clone(counts), nil
}
