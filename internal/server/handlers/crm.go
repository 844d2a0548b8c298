package handlers

import (
	"context"

	"github.com/hqo/showcase/internal/crm"
	"github.com/hqo/showcase/internal/server/dto"
	"github.com/hqo/showcase/internal/uistate"
)

// CRMHandler serves the mock portfolio metrics of each customer mode.
type CRMHandler struct {
	catalog *crm.Catalog
}

// NewCRMHandler creates a new CRM handler.
func NewCRMHandler(catalog *crm.Catalog) *CRMHandler {
	return &CRMHandler{catalog: catalog}
}

func parseMode(s string) (uistate.CustomerMode, error) {
	m, err := uistate.ParseCustomerMode(s)
	if err != nil {
		return "", toAPIError(err, "")
	}
	return m, nil
}

// ListLocations returns the buildings of a customer mode.
func (h *CRMHandler) ListLocations(ctx context.Context, req *dto.ListLocationsRequest) (*dto.ListLocationsResponse, error) {
	m, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	locations, err := h.catalog.Locations(m)
	if err != nil {
		return nil, toAPIError(err, "Failed to read locations")
	}
	resp := &dto.ListLocationsResponse{Locations: make([]dto.Location, 0, len(locations))}
	for _, l := range locations {
		resp.Locations = append(resp.Locations, locationToDTO(l))
	}
	return resp, nil
}

// GetPortfolio summarizes the selected locations, or all of them.
func (h *CRMHandler) GetPortfolio(ctx context.Context, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error) {
	m, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	p, err := h.catalog.Portfolio(m, req.Locations)
	if err != nil {
		return nil, toAPIError(err, "Failed to compute portfolio")
	}
	return portfolioToDTO(p), nil
}

// ListLeaseExpirations returns upcoming lease expirations, soonest first.
func (h *CRMHandler) ListLeaseExpirations(ctx context.Context, req *dto.LeaseExpirationsRequest) (*dto.LeaseExpirationsResponse, error) {
	m, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	leases, err := h.catalog.LeaseExpirations(m, req.Year)
	if err != nil {
		return nil, toAPIError(err, "Failed to read leases")
	}
	resp := &dto.LeaseExpirationsResponse{Leases: make([]dto.Lease, 0, len(leases))}
	for _, l := range leases {
		resp.Leases = append(resp.Leases, leaseToDTO(l))
	}
	return resp, nil
}

// GetNOITrend returns the monthly NOI series with month over month changes.
func (h *CRMHandler) GetNOITrend(ctx context.Context, req *dto.NOITrendRequest) (*dto.NOITrendResponse, error) {
	m, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	points, err := h.catalog.NOITrend(m)
	if err != nil {
		return nil, toAPIError(err, "Failed to read NOI trend")
	}
	resp := &dto.NOITrendResponse{Points: make([]dto.NOIPoint, 0, len(points))}
	for _, p := range points {
		resp.Points = append(resp.Points, dto.NOIPoint{Month: p.Month, NOI: p.NOI, Change: p.Change})
	}
	return resp, nil
}
