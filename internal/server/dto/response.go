package dto

import "encoding/json"

// --- Common Responses ---

// OkResponse is a simple success response.
type OkResponse struct {
	Ok bool `json:"ok"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// --- Prototype Responses ---

// Prototype is a showcase entry. ID is the folder name.
type Prototype struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Products        []string        `json:"products"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
	Author          string          `json:"author"`
	Created         string          `json:"created"`
	Updated         string          `json:"updated"`
	Tags            []string        `json:"tags"`
	Link            string          `json:"link"`
	Repository      string          `json:"repository"`
	Screenshot      string          `json:"screenshot"`
	Priority        string          `json:"priority"`
	IsMainPrototype bool            `json:"isMainPrototype,omitempty"`
	CallToAction    json.RawMessage `json:"callToAction,omitempty"`
	HeroDescription string          `json:"heroDescription,omitempty"`
}

// PrototypeList is the listing response. It encodes as a JSON array, never
// null.
type PrototypeList []Prototype

// --- Idea Responses ---

// Idea is a gallery idea.
type Idea struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Products    []string `json:"products"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link,omitempty"`
	Created     string   `json:"created"`
}

// ListIdeasResponse is a response containing a list of ideas.
type ListIdeasResponse struct {
	Ideas []Idea `json:"ideas"`
}

// TagsResponse lists tags, sorted.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// --- Upvote Responses ---

// UpvoteCounts maps a project ID to its vote count.
type UpvoteCounts map[string]int

// UpvoteResponse is the response of an upvote.
type UpvoteResponse struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// --- UI State Responses ---

// User is a mock CRM account.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// UIStateResponse is the full UI state with the choices available.
type UIStateResponse struct {
	Mode             string   `json:"mode"`
	Persona          string   `json:"persona"`
	User             User     `json:"user"`
	Users            []User   `json:"users"`
	NavigationHidden bool     `json:"navigationHidden"`
	Modes            []string `json:"modes"`
	Personas         []string `json:"personas"`
}

// --- CRM Responses ---

// Location is a building of a portfolio.
type Location struct {
	Name       string          `json:"name"`
	Occupancy  float64         `json:"occupancy"`
	SquareFeet int             `json:"squareFeet"`
	NOI        map[int]float64 `json:"noi"`
}

// ListLocationsResponse lists the locations of a customer mode.
type ListLocationsResponse struct {
	Locations []Location `json:"locations"`
}

// PortfolioResponse summarizes a set of locations.
type PortfolioResponse struct {
	Mode            string   `json:"mode"`
	Locations       []string `json:"locations"`
	TotalSquareFeet int      `json:"totalSquareFeet"`
	Occupancy       float64  `json:"occupancy"`
	Year            int      `json:"year"`
	NOI             float64  `json:"noi"`
	PreviousNOI     float64  `json:"previousNoi"`
	NOIChange       float64  `json:"noiChange"`
}

// Lease is an upcoming lease expiration.
type Lease struct {
	Tenant     string  `json:"tenant"`
	Location   string  `json:"location"`
	SquareFeet int     `json:"squareFeet"`
	Expires    string  `json:"expires"`
	AnnualRent float64 `json:"annualRent"`
}

// LeaseExpirationsResponse lists leases, soonest first.
type LeaseExpirationsResponse struct {
	Leases []Lease `json:"leases"`
}

// NOIPoint is a month of net operating income.
type NOIPoint struct {
	Month  string  `json:"month"`
	NOI    float64 `json:"noi"`
	Change float64 `json:"change"`
}

// NOITrendResponse is the monthly NOI series.
type NOITrendResponse struct {
	Points []NOIPoint `json:"points"`
}
