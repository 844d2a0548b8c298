// Package server implements the HTTP server and routing logic.
package server

import (
	"net/http"

	"github.com/hqo/showcase/internal/config"
	"github.com/hqo/showcase/internal/server/handlers"
	"github.com/hqo/showcase/internal/server/ipgeo"
	"github.com/hqo/showcase/internal/server/ratelimit"
)

// Config holds the server configuration.
type Config struct {
	ServerConfig *config.ServerConfig
	Version      string
	// IPGeo resolves client countries for the access log. May be nil.
	IPGeo *ipgeo.Checker
	// Limits rate limits requests per client IP. May be nil.
	Limits *ratelimit.Config
}

// NewRouter creates and configures the HTTP router.
// Serves API endpoints at /api/*.
func NewRouter(svc *handlers.Services, cfg *Config) http.Handler {
	hcfg := &handlers.Config{Version: cfg.Version, Quotas: config.DefaultServerQuotas()}
	if cfg.ServerConfig != nil {
		hcfg.Quotas = cfg.ServerConfig.Quotas
	}
	limits := cfg.Limits
	mux := &http.ServeMux{}

	hh := handlers.NewHealthHandler(cfg.Version)
	ph := handlers.NewPrototypeHandler(svc.Registry, svc.Egress)
	ih := handlers.NewIdeaHandler(svc.Ideas)
	uh := handlers.NewUpvoteHandler(svc.Upvotes)
	sh := handlers.NewUIStateHandler()
	ch := handlers.NewCRMHandler(svc.CRM)

	// Health check
	mux.Handle("GET /api/health", Wrap(hh.Health, hcfg, limits))

	// Prototype registry
	mux.Handle("GET /api/prototypes", Wrap(ph.ListPrototypes, hcfg, limits))
	mux.Handle("GET /api/prototypes/schema", Wrap(ph.GetSchema, hcfg, limits))
	mux.Handle("GET /api/prototypes/{id}", Wrap(ph.GetPrototype, hcfg, limits))
	mux.Handle("GET /api/prototypes/{id}/screenshot", WrapRaw(ph.ServeScreenshot, limits))
	mux.Handle("GET /api/main-prototype", Wrap(ph.GetMainPrototype, hcfg, limits))

	// Idea gallery
	mux.Handle("GET /api/ideas", Wrap(ih.ListIdeas, hcfg, limits))
	mux.Handle("GET /api/ideas/tags", Wrap(ih.ListTags, hcfg, limits))
	mux.Handle("POST /api/ideas", Wrap(ih.CreateIdea, hcfg, limits))
	mux.Handle("DELETE /api/ideas/{id}", Wrap(ih.DeleteIdea, hcfg, limits))

	// Upvotes
	mux.Handle("GET /api/upvotes", Wrap(uh.ListUpvotes, hcfg, limits))
	mux.Handle("POST /api/upvotes/{id}", Wrap(uh.Upvote, hcfg, limits))

	// UI state
	mux.Handle("GET /api/ui-state", Wrap(sh.GetState, hcfg, limits))
	mux.Handle("PUT /api/ui-state/mode", Wrap(sh.SetMode, hcfg, limits))
	mux.Handle("PUT /api/ui-state/persona", Wrap(sh.SetPersona, hcfg, limits))
	mux.Handle("PUT /api/ui-state/user", Wrap(sh.SelectUser, hcfg, limits))
	mux.Handle("PUT /api/ui-state/navigation", Wrap(sh.SetNavigation, hcfg, limits))

	// CRM demo data
	mux.Handle("GET /api/crm/{mode}/locations", Wrap(ch.ListLocations, hcfg, limits))
	mux.Handle("GET /api/crm/{mode}/portfolio", Wrap(ch.GetPortfolio, hcfg, limits))
	mux.Handle("GET /api/crm/{mode}/leases", Wrap(ch.ListLeaseExpirations, hcfg, limits))
	mux.Handle("GET /api/crm/{mode}/noi", Wrap(ch.GetNOITrend, hcfg, limits))

	return requestMetadata(cfg.IPGeo, accessLog(withSession(svc.Session, mux)))
}
