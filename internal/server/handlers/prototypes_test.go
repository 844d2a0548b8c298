package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/hqo/showcase/internal/registry"
	"github.com/hqo/showcase/internal/server/bandwidth"
	"github.com/hqo/showcase/internal/server/dto"
)

func testRegistry() *registry.Registry {
	return registry.NewFS(fstest.MapFS{
		"gamma/prototype.json": {Data: []byte(`{"name":"Gamma","description":"Tenant app","screenshot":"Gamma.JPG"}`)},
		"gamma/Gamma.JPG":      {Data: bytes.Repeat([]byte{0xff}, 4096)},
		"delta/prototype.json": {Data: []byte(`{"name":"Delta","description":"Access control"}`)},
	})
}

func TestServeScreenshot(t *testing.T) {
	h := NewPrototypeHandler(testRegistry(), bandwidth.NewLimiter(1<<20))

	r := httptest.NewRequest(http.MethodGet, "/api/prototypes/gamma/screenshot", nil)
	r.SetPathValue("id", "gamma")
	w := httptest.NewRecorder()
	h.ServeScreenshot(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cl := w.Header().Get("Content-Length"); cl != "4096" {
		t.Errorf("Content-Length = %q", cl)
	}
	if w.Body.Len() != 4096 {
		t.Errorf("body length = %d", w.Body.Len())
	}

	r = httptest.NewRequest(http.MethodHead, "/api/prototypes/gamma/screenshot", nil)
	r.SetPathValue("id", "gamma")
	w = httptest.NewRecorder()
	h.ServeScreenshot(w, r)
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Errorf("HEAD: status %d, %d bytes", w.Code, w.Body.Len())
	}

	r = httptest.NewRequest(http.MethodGet, "/api/prototypes/delta/screenshot", nil)
	r.SetPathValue("id", "delta")
	w = httptest.NewRecorder()
	h.ServeScreenshot(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("delta: status = %d", w.Code)
	}
}

func TestListPrototypes(t *testing.T) {
	h := NewPrototypeHandler(testRegistry(), nil)
	list, err := h.ListPrototypes(context.Background(), &dto.ListPrototypesRequest{Query: "tenant"})
	if err != nil {
		t.Fatal(err)
	}
	if len(*list) != 1 || (*list)[0].ID != "gamma" {
		t.Fatalf("list = %+v", *list)
	}
	p := (*list)[0]
	if p.Tags == nil || p.Products == nil {
		t.Error("empty lists must encode as []")
	}
	mp, err := h.GetMainPrototype(context.Background(), &dto.GetMainPrototypeRequest{})
	if err != nil || mp != nil {
		t.Errorf("GetMainPrototype() = %v, %v; want nil, nil", mp, err)
	}
}
