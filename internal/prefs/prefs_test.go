package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := s.Get(KeyNavigationHidden, new(bool)); ok || err != nil {
		t.Fatalf("Get on empty store = %v, %v", ok, err)
	}
	if err := s.Set(KeyNavigationHidden, true); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	var hidden bool
	ok, err := reopened.Get(KeyNavigationHidden, &hidden)
	if err != nil || !ok || !hidden {
		t.Fatalf("Get after reopen = %v, %v, %v", hidden, ok, err)
	}
	if got := string(reopened.Raw(KeyNavigationHidden)); got != "true" {
		t.Errorf("Raw = %q, want %q", got, "true")
	}
}

func TestStoreUpdate(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatal(err)
	}
	for range 2 {
		counts := map[string]int{}
		if err := s.Update(KeyProjectUpvotes, &counts, func() error {
			counts["p1"]++
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	if got := string(s.Raw(KeyProjectUpvotes)); got != `{"p1":2}` {
		t.Errorf("Raw = %s", got)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open should tolerate corrupt files: %v", err)
	}
	if raw := s.Raw(KeyProjectUpvotes); raw != nil {
		t.Errorf("Raw = %s, want nil", raw)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m["k"] != "v" {
		t.Errorf("file = %s, err = %v", data, err)
	}
}
