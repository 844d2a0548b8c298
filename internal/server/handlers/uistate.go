// Handles the CRM demo UI state: customer mode, persona, user and navigation.

package handlers

import (
	"context"

	"github.com/hqo/showcase/internal/server/dto"
	"github.com/hqo/showcase/internal/uistate"
)

// UIStateHandler reads and changes the session installed in the request
// context.
type UIStateHandler struct{}

// NewUIStateHandler creates a new UI state handler.
func NewUIStateHandler() *UIStateHandler {
	return &UIStateHandler{}
}

func session(ctx context.Context) (*uistate.Session, error) {
	s, err := uistate.FromContext(ctx)
	if err != nil {
		return nil, dto.InternalWithError("UI state unavailable", err)
	}
	return s, nil
}

// GetState returns the current UI state.
func (h *UIStateHandler) GetState(ctx context.Context, req *dto.GetUIStateRequest) (*dto.UIStateResponse, error) {
	s, err := session(ctx)
	if err != nil {
		return nil, err
	}
	return stateToDTO(s.Snapshot()), nil
}

// SetMode switches the customer mode and resets the selected user.
func (h *UIStateHandler) SetMode(ctx context.Context, req *dto.SetModeRequest) (*dto.UIStateResponse, error) {
	s, err := session(ctx)
	if err != nil {
		return nil, err
	}
	m, err := uistate.ParseCustomerMode(req.Mode)
	if err != nil {
		return nil, toAPIError(err, "Failed to change mode")
	}
	if err := s.SetMode(ctx, m); err != nil {
		return nil, toAPIError(err, "Failed to change mode")
	}
	return stateToDTO(s.Snapshot()), nil
}

// SetPersona switches the persona.
func (h *UIStateHandler) SetPersona(ctx context.Context, req *dto.SetPersonaRequest) (*dto.UIStateResponse, error) {
	s, err := session(ctx)
	if err != nil {
		return nil, err
	}
	p, err := uistate.ParsePersona(req.Persona)
	if err != nil {
		return nil, toAPIError(err, "Failed to change persona")
	}
	if err := s.SetPersona(ctx, p); err != nil {
		return nil, toAPIError(err, "Failed to change persona")
	}
	return stateToDTO(s.Snapshot()), nil
}

// SelectUser selects a user of the current customer mode.
func (h *UIStateHandler) SelectUser(ctx context.Context, req *dto.SelectUserRequest) (*dto.UIStateResponse, error) {
	s, err := session(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.SelectUser(ctx, req.UserID); err != nil {
		return nil, toAPIError(err, "Failed to select user")
	}
	return stateToDTO(s.Snapshot()), nil
}

// SetNavigation shows or hides the navigation. The choice survives restarts.
func (h *UIStateHandler) SetNavigation(ctx context.Context, req *dto.SetNavigationRequest) (*dto.UIStateResponse, error) {
	s, err := session(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.SetNavigationHidden(ctx, *req.Hidden); err != nil {
		return nil, toAPIError(err, "Failed to store navigation visibility")
	}
	return stateToDTO(s.Snapshot()), nil
}
