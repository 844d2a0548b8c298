// Converts domain types to API responses.

package handlers

import (
	"maps"
	"slices"
	"time"

	"github.com/hqo/showcase/internal/crm"
	"github.com/hqo/showcase/internal/gallery"
	"github.com/hqo/showcase/internal/registry"
	"github.com/hqo/showcase/internal/server/dto"
	"github.com/hqo/showcase/internal/uistate"
)

func prototypeToDTO(p *registry.Prototype) dto.Prototype {
	return dto.Prototype{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Products:        nonNil(p.Products),
		Status:          p.Status,
		Type:            p.Type,
		Author:          p.Author,
		Created:         p.Created,
		Updated:         p.Updated,
		Tags:            nonNil(p.Tags),
		Link:            p.Link,
		Repository:      p.Repository,
		Screenshot:      p.Screenshot,
		Priority:        string(p.Priority),
		IsMainPrototype: p.IsMainPrototype,
		CallToAction:    p.CallToAction,
		HeroDescription: p.HeroDescription,
	}
}

func ideaToDTO(i *gallery.Idea) dto.Idea {
	return dto.Idea{
		ID:          i.ID.String(),
		Title:       i.Title,
		Description: i.Description,
		Products:    nonNil(i.Products),
		Tags:        nonNil(i.Tags),
		Link:        i.Link,
		Created:     i.Created.Format(time.RFC3339),
	}
}

func userToDTO(u uistate.User) dto.User {
	return dto.User{ID: u.ID, Name: u.Name, Title: u.Title}
}

func stateToDTO(s uistate.State) *dto.UIStateResponse {
	resp := &dto.UIStateResponse{
		Mode:             string(s.Mode),
		Persona:          string(s.Persona),
		User:             userToDTO(s.User),
		Users:            make([]dto.User, 0, len(s.Users)),
		NavigationHidden: s.NavigationHidden,
		Modes:            make([]string, 0, len(uistate.CustomerModes)),
		Personas:         make([]string, 0, len(uistate.Personas)),
	}
	for _, u := range s.Users {
		resp.Users = append(resp.Users, userToDTO(u))
	}
	for _, m := range uistate.CustomerModes {
		resp.Modes = append(resp.Modes, string(m))
	}
	for _, p := range uistate.Personas {
		resp.Personas = append(resp.Personas, string(p))
	}
	return resp
}

func locationToDTO(l crm.Location) dto.Location {
	noi := maps.Clone(l.NOI)
	if noi == nil {
		noi = map[int]float64{}
	}
	return dto.Location{Name: l.Name, Occupancy: l.Occupancy, SquareFeet: l.SquareFeet, NOI: noi}
}

func portfolioToDTO(p *crm.Portfolio) *dto.PortfolioResponse {
	return &dto.PortfolioResponse{
		Mode:            string(p.Mode),
		Locations:       nonNil(p.Locations),
		TotalSquareFeet: p.TotalSquareFeet,
		Occupancy:       p.Occupancy,
		Year:            p.Year,
		NOI:             p.NOI,
		PreviousNOI:     p.PreviousNOI,
		NOIChange:       p.NOIChange,
	}
}

func leaseToDTO(l crm.Lease) dto.Lease {
	return dto.Lease{
		Tenant:     l.Tenant,
		Location:   l.Location,
		SquareFeet: l.SquareFeet,
		Expires:    l.Expires,
		AnnualRent: l.AnnualRent,
	}
}

// nonNil makes empty lists encode as [] instead of null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
