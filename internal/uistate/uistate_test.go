package uistate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hqo/showcase/internal/prefs"
)

func TestCell(t *testing.T) {
	c := NewCell(1)
	var got []int
	unsub := c.Subscribe(func(v int) { got = append(got, v) })
	var other []int
	c.Subscribe(func(v int) { other = append(other, v*10) })

	c.Set(2)
	c.Set(3)
	unsub()
	unsub()
	c.Set(4)

	if c.Get() != 4 {
		t.Errorf("Get() = %d, want 4", c.Get())
	}
	if diff := cmp.Diff([]int{2, 3}, got); diff != "" {
		t.Errorf("unsubscribed listener mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{20, 30, 40}, other); diff != "" {
		t.Errorf("listener mismatch (-want +got):\n%s", diff)
	}
}

func TestCellSubscriberCanRead(t *testing.T) {
	c := NewCell("a")
	var seen string
	c.Subscribe(func(string) { seen = c.Get() })
	c.Set("b")
	if seen != "b" {
		t.Errorf("subscriber saw %q, want %q", seen, "b")
	}
}

func TestParse(t *testing.T) {
	if m, err := ParseCustomerMode(" Piedmont "); err != nil || m != ModePiedmont {
		t.Errorf("ParseCustomerMode() = %q, %v", m, err)
	}
	if _, err := ParseCustomerMode("acme"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseCustomerMode(acme) error = %v", err)
	}
	if p, err := ParsePersona("asset-manager"); err != nil || p != PersonaAssetManager {
		t.Errorf("ParsePersona() = %q, %v", p, err)
	}
	if _, err := ParsePersona("janitor"); !errors.Is(err, ErrInvalidPersona) {
		t.Errorf("ParsePersona(janitor) error = %v", err)
	}
}

func TestUsersFor(t *testing.T) {
	for _, m := range CustomerModes {
		if len(UsersFor(m)) == 0 {
			t.Errorf("UsersFor(%s) is empty", m)
		}
	}
	if got := UsersFor("acme"); len(got) != 0 {
		t.Errorf("UsersFor(acme) = %v", got)
	}
	users := UsersFor(ModeGeneric)
	users[0].Name = "changed"
	if UsersFor(ModeGeneric)[0].Name == "changed" {
		t.Error("UsersFor must return a copy")
	}
}

func TestSessionModeResetsUser(t *testing.T) {
	ctx := context.Background()
	s := NewSession(nil)
	if got := s.Snapshot(); got.Mode != ModeGeneric || got.Persona != PersonaExecutive || got.User != UsersFor(ModeGeneric)[0] {
		t.Fatalf("initial state = %+v", got)
	}

	second := UsersFor(ModeGeneric)[1]
	if _, err := s.SelectUser(ctx, second.ID); err != nil {
		t.Fatalf("SelectUser() error = %v", err)
	}
	if s.User().Get() != second {
		t.Fatalf("User() = %+v, want %+v", s.User().Get(), second)
	}

	var notified []CustomerMode
	s.Mode().Subscribe(func(m CustomerMode) { notified = append(notified, m) })
	if err := s.SetMode(ctx, ModeCousins); err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}
	if got, want := s.User().Get(), UsersFor(ModeCousins)[0]; got != want {
		t.Errorf("user after mode change = %+v, want %+v", got, want)
	}
	if diff := cmp.Diff([]CustomerMode{ModeCousins}, notified); diff != "" {
		t.Errorf("mode notifications mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.SelectUser(ctx, second.ID); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("SelectUser(other mode user) error = %v", err)
	}
	if err := s.SetMode(ctx, "acme"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("SetMode(acme) error = %v", err)
	}
	if err := s.SetPersona(ctx, PersonaLeasingManager); err != nil || s.Persona().Get() != PersonaLeasingManager {
		t.Errorf("SetPersona() = %v, persona %q", err, s.Persona().Get())
	}
	if err := s.SetPersona(ctx, "janitor"); !errors.Is(err, ErrInvalidPersona) {
		t.Errorf("SetPersona(janitor) error = %v", err)
	}
}

func TestSessionNavigationPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.json")
	store, err := prefs.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(store)
	if s.NavigationHidden().Get() {
		t.Fatal("navigation should be visible by default")
	}
	if err := s.SetNavigationHidden(ctx, true); err != nil {
		t.Fatalf("SetNavigationHidden() error = %v", err)
	}
	if raw := string(store.Raw(prefs.KeyNavigationHidden)); raw != "true" {
		t.Errorf("persisted %s = %s", prefs.KeyNavigationHidden, raw)
	}

	reopened, err := prefs.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if !NewSession(reopened).Snapshot().NavigationHidden {
		t.Error("navigation-hidden was not rehydrated")
	}
}

func TestFromContext(t *testing.T) {
	if _, err := FromContext(context.Background()); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("FromContext() error = %v, want ErrNoProvider", err)
	}
	s := NewSession(nil)
	got, err := FromContext(WithSession(context.Background(), s))
	if err != nil || got != s {
		t.Fatalf("FromContext() = %p, %v", got, err)
	}
}
