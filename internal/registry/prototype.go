// Defines the prototype manifest and its listing order.

package registry

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// ManifestName is the file describing one prototype folder.
const ManifestName = "prototype.json"

// MainFolder is the reserved folder holding the main prototype.
const MainFolder = "main"

// Priority orders prototypes in the listing.
type Priority string

// Known priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort rank of p; lower ranks are listed first. Unknown and
// empty priorities rank after low.
func (p Priority) Rank() int {
	switch Priority(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Manifest is the content of a prototype.json file. It is hand edited and
// read-only at runtime.
type Manifest struct {
	Name            string          `json:"name" jsonschema:"description=Display name"`
	Description     string          `json:"description" jsonschema:"description=Short description shown on the card"`
	Products        []string        `json:"products,omitempty" jsonschema:"description=Products the prototype touches"`
	Status          string          `json:"status,omitempty" jsonschema:"description=Lifecycle status, e.g. concept or in-review"`
	Type            string          `json:"type,omitempty" jsonschema:"description=Kind of prototype"`
	Author          string          `json:"author,omitempty"`
	Created         string          `json:"created,omitempty" jsonschema:"description=Creation date, YYYY-MM-DD or RFC 3339"`
	Updated         string          `json:"updated,omitempty" jsonschema:"description=Last update date, YYYY-MM-DD or RFC 3339"`
	Tags            []string        `json:"tags,omitempty"`
	Link            string          `json:"link,omitempty" jsonschema:"description=Where the running prototype lives"`
	Repository      string          `json:"repository,omitempty"`
	Screenshot      string          `json:"screenshot,omitempty" jsonschema:"description=Image file name inside the prototype folder"`
	Priority        Priority        `json:"priority,omitempty" jsonschema:"enum=high,enum=medium,enum=low"`
	IsMainPrototype bool            `json:"isMainPrototype,omitempty"`
	CallToAction    json.RawMessage `json:"callToAction,omitempty"`
	HeroDescription string          `json:"heroDescription,omitempty"`
}

// Prototype is a manifest as served by the API: the folder name is its ID and
// Screenshot holds the URL of the screenshot endpoint instead of a file name.
type Prototype struct {
	ID string `json:"id"`
	Manifest
}

// SearchTitle implements search.Searchable.
func (p *Prototype) SearchTitle() string { return p.Name }

// SearchDescription implements search.Searchable.
func (p *Prototype) SearchDescription() string { return p.Description }

// SearchTags implements search.Searchable.
func (p *Prototype) SearchTags() []string { return p.Tags }

// UpdatedAt parses Updated. It returns the zero time when the date is absent
// or unparsable.
func (p *Prototype) UpdatedAt() time.Time {
	return parseDate(p.Updated)
}

// ScreenshotURL returns the URL serving the screenshot of the prototype id.
func ScreenshotURL(id string) string {
	return "/api/prototypes/" + id + "/screenshot"
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// compareListing orders by priority rank, then most recently updated first.
func compareListing(a, b *Prototype) int {
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	return b.UpdatedAt().Compare(a.UpdatedAt())
}

// Sort orders prototypes for the listing. Equal entries keep their order.
func Sort(prototypes []*Prototype) {
	slices.SortStableFunc(prototypes, compareListing)
}
