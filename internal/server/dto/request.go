package dto

import (
	"strings"

	"github.com/hqo/showcase/internal/search"
	"github.com/maruel/ksid"
)

// --- Health ---

// HealthRequest is a request to check server health.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}

// --- Prototypes ---

// ListPrototypesRequest is a request to list prototypes, optionally filtered.
type ListPrototypesRequest struct {
	Query string   `query:"q"`
	Tags  []string `query:"tag"`
}

// Validate normalizes the tag filters. The text query is kept verbatim.
func (r *ListPrototypesRequest) Validate() error {
	r.Tags = search.ParseTags(r.Tags...)
	return nil
}

// GetPrototypeRequest is a request to get one prototype.
type GetPrototypeRequest struct {
	ID string `path:"id"`
}

// Validate validates the get prototype request fields.
func (r *GetPrototypeRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// GetMainPrototypeRequest is a request to get the main prototype.
type GetMainPrototypeRequest struct{}

// Validate is a no-op for GetMainPrototypeRequest.
func (r *GetMainPrototypeRequest) Validate() error {
	return nil
}

// GetPrototypeSchemaRequest is a request for the manifest JSON schema.
type GetPrototypeSchemaRequest struct{}

// Validate is a no-op for GetPrototypeSchemaRequest.
func (r *GetPrototypeSchemaRequest) Validate() error {
	return nil
}

// --- Ideas ---

// ListIdeasRequest is a request to list ideas, optionally filtered.
type ListIdeasRequest struct {
	Query string   `query:"q"`
	Tags  []string `query:"tag"`
}

// Validate normalizes the tag filters. The text query is kept verbatim.
func (r *ListIdeasRequest) Validate() error {
	r.Tags = search.ParseTags(r.Tags...)
	return nil
}

// ListIdeaTagsRequest is a request for the tag universe of ideas.
type ListIdeaTagsRequest struct{}

// Validate is a no-op for ListIdeaTagsRequest.
func (r *ListIdeaTagsRequest) Validate() error {
	return nil
}

// CreateIdeaRequest is a request to add an idea.
type CreateIdeaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Products    []string `json:"products,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// Validate validates the create idea request fields.
func (r *CreateIdeaRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return MissingField("title")
	}
	if strings.TrimSpace(r.Description) == "" {
		return MissingField("description")
	}
	return nil
}

// DeleteIdeaRequest is a request to delete an idea.
type DeleteIdeaRequest struct {
	ID ksid.ID `path:"id"`
}

// Validate validates the delete idea request fields.
func (r *DeleteIdeaRequest) Validate() error {
	if r.ID.IsZero() {
		return InvalidField("id", "not a valid idea ID")
	}
	return nil
}

// --- Upvotes ---

// ListUpvotesRequest is a request for every upvote count.
type ListUpvotesRequest struct{}

// Validate is a no-op for ListUpvotesRequest.
func (r *ListUpvotesRequest) Validate() error {
	return nil
}

// UpvoteRequest is a request to upvote a project.
type UpvoteRequest struct {
	ID string `path:"id"`
}

// Validate validates the upvote request fields.
func (r *UpvoteRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return MissingField("id")
	}
	return nil
}

// --- UI state ---

// GetUIStateRequest is a request for the current UI state.
type GetUIStateRequest struct{}

// Validate is a no-op for GetUIStateRequest.
func (r *GetUIStateRequest) Validate() error {
	return nil
}

// SetModeRequest switches the customer mode.
type SetModeRequest struct {
	Mode string `json:"mode"`
}

// Validate validates the set mode request fields.
func (r *SetModeRequest) Validate() error {
	if r.Mode == "" {
		return MissingField("mode")
	}
	return nil
}

// SetPersonaRequest switches the persona.
type SetPersonaRequest struct {
	Persona string `json:"persona"`
}

// Validate validates the set persona request fields.
func (r *SetPersonaRequest) Validate() error {
	if r.Persona == "" {
		return MissingField("persona")
	}
	return nil
}

// SelectUserRequest selects a user of the current customer mode.
type SelectUserRequest struct {
	UserID string `json:"userId"`
}

// Validate validates the select user request fields.
func (r *SelectUserRequest) Validate() error {
	if r.UserID == "" {
		return MissingField("userId")
	}
	return nil
}

// SetNavigationRequest shows or hides the navigation.
type SetNavigationRequest struct {
	Hidden *bool `json:"hidden"`
}

// Validate validates the set navigation request fields.
func (r *SetNavigationRequest) Validate() error {
	if r.Hidden == nil {
		return MissingField("hidden")
	}
	return nil
}

// --- CRM ---

// PortfolioRequest is a request for the portfolio summary of a customer mode.
type PortfolioRequest struct {
	Mode      string   `path:"mode"`
	Locations []string `query:"locations"`
}

// Validate validates the portfolio request fields.
func (r *PortfolioRequest) Validate() error {
	if r.Mode == "" {
		return MissingField("mode")
	}
	r.Locations = search.ParseTags(r.Locations...)
	return nil
}

// LeaseExpirationsRequest is a request for upcoming lease expirations.
type LeaseExpirationsRequest struct {
	Mode string `path:"mode"`
	// Year filters on the expiration year; 0 returns every lease.
	Year int `query:"year"`
}

// Validate validates the lease expirations request fields.
func (r *LeaseExpirationsRequest) Validate() error {
	if r.Mode == "" {
		return MissingField("mode")
	}
	if r.Year < 0 || r.Year > 9999 {
		return InvalidField("year", "out of range")
	}
	return nil
}

// NOITrendRequest is a request for the monthly NOI series.
type NOITrendRequest struct {
	Mode string `path:"mode"`
}

// Validate validates the NOI trend request fields.
func (r *NOITrendRequest) Validate() error {
	if r.Mode == "" {
		return MissingField("mode")
	}
	return nil
}

// ListLocationsRequest is a request for the locations of a customer mode.
type ListLocationsRequest struct {
	Mode string `path:"mode"`
}

// Validate validates the list locations request fields.
func (r *ListLocationsRequest) Validate() error {
	if r.Mode == "" {
		return MissingField("mode")
	}
	return nil
}
