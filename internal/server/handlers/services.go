// Defines shared service dependencies for handlers.

package handlers

import (
	"github.com/hqo/showcase/internal/config"
	"github.com/hqo/showcase/internal/crm"
	"github.com/hqo/showcase/internal/gallery"
	"github.com/hqo/showcase/internal/registry"
	"github.com/hqo/showcase/internal/server/bandwidth"
	"github.com/hqo/showcase/internal/uistate"
)

// Services holds all service dependencies for handlers.
type Services struct {
	Registry *registry.Registry
	Ideas    *gallery.IdeaService
	Upvotes  *gallery.Upvotes
	Session  *uistate.Session
	CRM      *crm.Catalog
	Egress   *bandwidth.Limiter // may be nil
}

// Config holds configuration values needed by handlers.
type Config struct {
	Version string
	Quotas  config.ServerQuotas
}
