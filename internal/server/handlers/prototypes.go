// Handles the prototype registry endpoints.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hqo/showcase/internal/registry"
	"github.com/hqo/showcase/internal/search"
	"github.com/hqo/showcase/internal/server/bandwidth"
	"github.com/hqo/showcase/internal/server/dto"
	"github.com/invopop/jsonschema"
)

const screenshotCacheControl = "public, max-age=31536000, immutable"

// PrototypeHandler serves prototypes and their screenshots.
type PrototypeHandler struct {
	registry *registry.Registry
	egress   *bandwidth.Limiter
}

// NewPrototypeHandler creates a new prototype handler. egress may be nil.
func NewPrototypeHandler(reg *registry.Registry, egress *bandwidth.Limiter) *PrototypeHandler {
	return &PrototypeHandler{registry: reg, egress: egress}
}

// ListPrototypes returns every prototype matching the optional filters.
func (h *PrototypeHandler) ListPrototypes(ctx context.Context, req *dto.ListPrototypesRequest) (*dto.PrototypeList, error) {
	all, err := h.registry.List(ctx)
	if err != nil {
		return nil, toAPIError(err, "Failed to list prototypes")
	}
	matched := search.Filter(all, search.Query{Text: req.Query, Tags: req.Tags})
	out := make(dto.PrototypeList, 0, len(matched))
	for _, p := range matched {
		out = append(out, prototypeToDTO(p))
	}
	return &out, nil
}

// GetPrototype returns one prototype by folder name.
func (h *PrototypeHandler) GetPrototype(ctx context.Context, req *dto.GetPrototypeRequest) (*dto.Prototype, error) {
	p, err := h.registry.Get(ctx, req.ID)
	if err != nil {
		return nil, toAPIError(err, "Failed to read prototype")
	}
	out := prototypeToDTO(p)
	return &out, nil
}

// GetMainPrototype returns the featured prototype, or null when there is none.
func (h *PrototypeHandler) GetMainPrototype(ctx context.Context, req *dto.GetMainPrototypeRequest) (*dto.Prototype, error) {
	p, err := h.registry.Main(ctx)
	if err != nil {
		return nil, toAPIError(err, "Failed to read main prototype")
	}
	if p == nil {
		return nil, nil
	}
	out := prototypeToDTO(p)
	return &out, nil
}

// GetSchema returns the JSON schema of prototype.json.
func (h *PrototypeHandler) GetSchema(ctx context.Context, req *dto.GetPrototypeSchemaRequest) (*jsonschema.Schema, error) {
	return registry.Schema(), nil
}

// ServeScreenshot writes the screenshot image of the prototype in the path.
func (h *PrototypeHandler) ServeScreenshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	img, err := h.registry.Screenshot(ctx, r.PathValue("id"))
	if err != nil {
		apiErr := toAPIError(err, "Failed to read screenshot")
		if dtoErr, ok := apiErr.(*dto.APIError); ok && dtoErr.StatusCode() >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "Failed to serve screenshot", "id", r.PathValue("id"), "err", err)
		}
		writeErrorResponse(w, apiErr)
		return
	}
	hdr := w.Header()
	hdr.Set("Content-Type", img.MimeType)
	hdr.Set("Content-Length", strconv.Itoa(len(img.Data)))
	hdr.Set("Cache-Control", screenshotCacheControl)
	if !img.ModTime.IsZero() {
		hdr.Set("Last-Modified", img.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := h.egress.Writer(ctx, w).Write(img.Data); err != nil {
		slog.WarnContext(ctx, "Failed to write screenshot", "id", r.PathValue("id"), "err", err)
	}
}
