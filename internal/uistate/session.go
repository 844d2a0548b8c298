package uistate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hqo/showcase/internal/prefs"
)

var (
	// ErrUnknownUser is returned when selecting a user outside the current
	// mode's list.
	ErrUnknownUser = errors.New("unknown user for customer mode")
	// ErrNoProvider is returned by FromContext when no Session was installed.
	ErrNoProvider = errors.New("ui state session not provided")
)

// State is a point-in-time copy of a Session.
type State struct {
	Mode             CustomerMode `json:"mode"`
	Persona          Persona      `json:"persona"`
	User             User         `json:"user"`
	Users            []User       `json:"users"`
	NavigationHidden bool         `json:"navigationHidden"`
}

// Session owns the UI state cells.
//
// Changing the mode resets the selected user to the first user of the new
// mode. The navigation-hidden flag is persisted in the preference store.
type Session struct {
	// mu serializes mutations so a user selection is always validated against
	// the mode it is stored with.
	mu sync.Mutex

	store     *prefs.Store
	mode      *Cell[CustomerMode]
	persona   *Cell[Persona]
	user      *Cell[User]
	navHidden *Cell[bool]
}

// NewSession returns a session in the default mode and persona, with the
// navigation-hidden flag read back from store. A nil store keeps everything
// in memory.
func NewSession(store *prefs.Store) *Session {
	hidden := false
	if store != nil {
		if _, err := store.Get(prefs.KeyNavigationHidden, &hidden); err != nil {
			slog.Warn("Ignoring undecodable preference", "key", prefs.KeyNavigationHidden, "err", err)
			hidden = false
		}
	}
	s := &Session{
		store:     store,
		mode:      NewCell(CustomerModes[0]),
		persona:   NewCell(Personas[0]),
		user:      NewCell(firstUser(CustomerModes[0])),
		navHidden: NewCell(hidden),
	}
	s.mode.Subscribe(func(m CustomerMode) {
		s.user.Set(firstUser(m))
	})
	return s
}

// Mode returns the cell holding the customer mode. Use SetMode to change it.
func (s *Session) Mode() *Cell[CustomerMode] { return s.mode }

// Persona returns the cell holding the persona.
func (s *Session) Persona() *Cell[Persona] { return s.persona }

// User returns the cell holding the selected user.
func (s *Session) User() *Cell[User] { return s.user }

// NavigationHidden returns the cell holding the navigation visibility.
func (s *Session) NavigationHidden() *Cell[bool] { return s.navHidden }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.mode.Get()
	return State{
		Mode:             m,
		Persona:          s.persona.Get(),
		User:             s.user.Get(),
		Users:            UsersFor(m),
		NavigationHidden: s.navHidden.Get(),
	}
}

// SetMode switches the customer mode. The selected user is reset even when m
// equals the current mode.
func (s *Session) SetMode(ctx context.Context, m CustomerMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode.Set(m)
	slog.InfoContext(ctx, "Customer mode changed", "mode", m)
	return nil
}

// SetPersona switches the persona.
func (s *Session) SetPersona(ctx context.Context, p Persona) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPersona, p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persona.Set(p)
	slog.DebugContext(ctx, "Persona changed", "persona", p)
	return nil
}

// SelectUser selects the user id of the current mode.
func (s *Session) SelectUser(ctx context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.mode.Get()
	u, ok := findUser(m, id)
	if !ok {
		return User{}, fmt.Errorf("%w: %q in %s", ErrUnknownUser, id, m)
	}
	s.user.Set(u)
	slog.DebugContext(ctx, "User selected", "user", id)
	return u, nil
}

// SetNavigationHidden persists hidden then updates the cell. The cell is left
// untouched when persisting fails.
func (s *Session) SetNavigationHidden(ctx context.Context, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Set(prefs.KeyNavigationHidden, hidden); err != nil {
			return fmt.Errorf("failed to persist navigation visibility: %w", err)
		}
	}
	s.navHidden.Set(hidden)
	slog.DebugContext(ctx, "Navigation visibility changed", "hidden", hidden)
	return nil
}

func firstUser(m CustomerMode) User {
	if users := usersByMode[m]; len(users) > 0 {
		return users[0]
	}
	return User{}
}

type sessionKey struct{}

// WithSession returns a context carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session installed by WithSession, or ErrNoProvider.
func FromContext(ctx context.Context) (*Session, error) {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok && s != nil {
		return s, nil
	}
	return nil, ErrNoProvider
}
