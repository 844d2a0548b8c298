package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hqo/showcase/internal/crm"
	"github.com/hqo/showcase/internal/gallery"
	"github.com/hqo/showcase/internal/registry"
	"github.com/hqo/showcase/internal/server/dto"
	"github.com/hqo/showcase/internal/uistate"
)

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"prototype", registry.ErrPrototypeNotFound, http.StatusNotFound, dto.ErrorCodePrototypeNotFound},
		{"manifest", fmt.Errorf("%w: bad json", registry.ErrManifestNotFound), http.StatusNotFound, dto.ErrorCodeManifestNotFound},
		{"screenshot", registry.ErrScreenshotNotFound, http.StatusNotFound, dto.ErrorCodeScreenshotNotFound},
		{"idea", gallery.ErrIdeaNotFound, http.StatusNotFound, dto.ErrorCodeIdeaNotFound},
		{"required field", &gallery.FieldError{Field: "title", Message: "required"}, http.StatusBadRequest, dto.ErrorCodeMissingField},
		{"invalid field", &gallery.FieldError{Field: "link", Message: "must be an absolute http(s) URL"}, http.StatusBadRequest, dto.ErrorCodeInvalidFormat},
		{"empty project", gallery.ErrEmptyProjectID, http.StatusBadRequest, dto.ErrorCodeMissingField},
		{"mode", fmt.Errorf("%w: %q", uistate.ErrInvalidMode, "acme"), http.StatusBadRequest, dto.ErrorCodeInvalidFormat},
		{"persona", uistate.ErrInvalidPersona, http.StatusBadRequest, dto.ErrorCodeInvalidFormat},
		{"user", uistate.ErrUnknownUser, http.StatusBadRequest, dto.ErrorCodeUnknownUser},
		{"dataset", crm.ErrUnknownMode, http.StatusNotFound, dto.ErrorCodeNotFound},
		{"location", crm.ErrUnknownLocation, http.StatusBadRequest, dto.ErrorCodeInvalidFormat},
		{"api error kept", dto.InvalidField("year", "out of range"), http.StatusBadRequest, dto.ErrorCodeInvalidFormat},
		{"other", errors.New("disk full"), http.StatusInternalServerError, dto.ErrorCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *dto.APIError
			if !errors.As(toAPIError(tt.err, "Failed"), &apiErr) {
				t.Fatalf("toAPIError(%v) is not an APIError", tt.err)
			}
			if apiErr.StatusCode() != tt.status || apiErr.Code() != tt.code {
				t.Errorf("got (%d, %s), want (%d, %s)", apiErr.StatusCode(), apiErr.Code(), tt.status, tt.code)
			}
		})
	}
	if toAPIError(nil, "Failed") != nil {
		t.Error("toAPIError(nil) should be nil")
	}
}

func TestWriteErrorResponse(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeErrorResponse(w, dto.NotFoundWithCode(dto.ErrorCodeScreenshotNotFound, "screenshot").Wrap(errors.New("secret path")))
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d", w.Code)
		}
		var got dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		want := dto.ErrorResponse{Error: dto.ErrorDetails{Code: dto.ErrorCodeScreenshotNotFound, Message: "screenshot not found"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("response mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("plain error", func(t *testing.T) {
		w := httptest.NewRecorder()
		writeErrorResponse(w, errors.New("boom"))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
	})
}
