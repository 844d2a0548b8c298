// Provides helper functions for writing error responses.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hqo/showcase/internal/crm"
	"github.com/hqo/showcase/internal/gallery"
	"github.com/hqo/showcase/internal/registry"
	"github.com/hqo/showcase/internal/server/dto"
	"github.com/hqo/showcase/internal/uistate"
)

// writeErrorResponse writes an APIError as a JSON response.
// Use this in raw http.HandlerFunc handlers that don't use server.Wrap.
func writeErrorResponse(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorCode := dto.ErrorCodeInternal
	message := "internal error"
	var details map[string]any

	var apiErr *dto.APIError
	var ewsErr dto.ErrorWithStatus
	switch {
	case errors.As(err, &apiErr):
		statusCode = apiErr.StatusCode()
		errorCode = apiErr.Code()
		message = apiErr.Message()
		details = apiErr.Details()
	case errors.As(err, &ewsErr):
		statusCode = ewsErr.StatusCode()
		errorCode = ewsErr.Code()
		message = ewsErr.Error()
		details = ewsErr.Details()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := dto.ErrorResponse{
		Error: dto.ErrorDetails{
			Code:    errorCode,
			Message: message,
		},
		Details: details,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// toAPIError translates a domain error into an APIError. msg is the message
// of the 500 returned for errors without a dedicated mapping.
func toAPIError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var apiErr *dto.APIError
	if errors.As(err, &apiErr) {
		return err
	}
	var fieldErr *gallery.FieldError
	switch {
	case errors.Is(err, registry.ErrPrototypeNotFound):
		return dto.NotFoundWithCode(dto.ErrorCodePrototypeNotFound, "prototype").Wrap(err)
	case errors.Is(err, registry.ErrManifestNotFound):
		return dto.NotFoundWithCode(dto.ErrorCodeManifestNotFound, "manifest").Wrap(err)
	case errors.Is(err, registry.ErrScreenshotNotFound):
		return dto.NotFoundWithCode(dto.ErrorCodeScreenshotNotFound, "screenshot").Wrap(err)
	case errors.Is(err, gallery.ErrIdeaNotFound):
		return dto.NotFoundWithCode(dto.ErrorCodeIdeaNotFound, "idea").Wrap(err)
	case errors.As(err, &fieldErr):
		if fieldErr.Message == "required" {
			return dto.MissingField(fieldErr.Field).Wrap(err)
		}
		return dto.InvalidField(fieldErr.Field, fieldErr.Message).Wrap(err)
	case errors.Is(err, gallery.ErrEmptyProjectID):
		return dto.MissingField("id").Wrap(err)
	case errors.Is(err, uistate.ErrInvalidMode):
		return dto.InvalidField("mode", err.Error()).Wrap(err)
	case errors.Is(err, uistate.ErrInvalidPersona):
		return dto.InvalidField("persona", err.Error()).Wrap(err)
	case errors.Is(err, uistate.ErrUnknownUser):
		return dto.NewAPIError(http.StatusBadRequest, dto.ErrorCodeUnknownUser, err.Error()).Wrap(err)
	case errors.Is(err, crm.ErrUnknownMode):
		return dto.NotFound("dataset").Wrap(err)
	case errors.Is(err, crm.ErrUnknownLocation):
		return dto.InvalidField("locations", err.Error()).Wrap(err)
	}
	return dto.InternalWithError(msg, err)
}
