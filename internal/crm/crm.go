// Package crm serves the mock portfolio data of the CRM demo and the metrics
// derived from it.
package crm

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hqo/showcase/internal/uistate"
	"gopkg.in/yaml.v3"
)

//go:embed datasets.yaml
var embeddedDatasets []byte

var (
	// ErrUnknownMode is returned for a customer mode without a dataset.
	ErrUnknownMode = errors.New("no dataset for customer mode")
	// ErrUnknownLocation is returned when a location filter names a location
	// absent from the dataset.
	ErrUnknownLocation = errors.New("unknown location")
)

// Location is one building of a portfolio.
type Location struct {
	Name       string          `yaml:"name" json:"name"`
	Occupancy  float64         `yaml:"occupancy" json:"occupancy"`
	SquareFeet int             `yaml:"squareFeet" json:"squareFeet"`
	NOI        map[int]float64 `yaml:"noi" json:"noi"`
}

// MonthlyNOI is one point of the NOI trend. Month is formatted as 2006-01.
type MonthlyNOI struct {
	Month string  `yaml:"month" json:"month"`
	NOI   float64 `yaml:"noi" json:"noi"`
}

// Lease is an upcoming lease expiration.
type Lease struct {
	Tenant     string  `yaml:"tenant" json:"tenant"`
	Location   string  `yaml:"location" json:"location"`
	SquareFeet int     `yaml:"squareFeet" json:"squareFeet"`
	Expires    string  `yaml:"expires" json:"expires"`
	AnnualRent float64 `yaml:"annualRent" json:"annualRent"`

	expiresAt time.Time
}

// Dataset is the mock data of one customer mode.
type Dataset struct {
	Locations []Location   `yaml:"locations"`
	NOITrend  []MonthlyNOI `yaml:"noiTrend"`
	Leases    []Lease      `yaml:"leases"`
}

// Catalog holds a dataset per customer mode.
type Catalog struct {
	sets map[uistate.CustomerMode]*Dataset
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embeddedDatasets)
})

// Default returns the catalog built from the embedded datasets.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// Parse decodes a YAML document mapping customer modes to datasets and
// validates it.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]*Dataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode datasets: %w", err)
	}
	c := &Catalog{sets: make(map[uistate.CustomerMode]*Dataset, len(raw))}
	for name, ds := range raw {
		mode, err := uistate.ParseCustomerMode(name)
		if err != nil {
			return nil, err
		}
		if ds == nil {
			ds = &Dataset{}
		}
		if err := ds.validate(); err != nil {
			return nil, fmt.Errorf("dataset %s: %w", mode, err)
		}
		c.sets[mode] = ds
	}
	return c, nil
}

func (d *Dataset) validate() error {
	seen := make(map[string]bool, len(d.Locations))
	for _, l := range d.Locations {
		switch {
		case l.Name == "":
			return errors.New("location without a name")
		case seen[l.Name]:
			return fmt.Errorf("duplicate location %q", l.Name)
		case l.Occupancy < 0 || l.Occupancy > 1:
			return fmt.Errorf("location %q: occupancy %v out of [0,1]", l.Name, l.Occupancy)
		case l.SquareFeet < 0:
			return fmt.Errorf("location %q: negative square feet", l.Name)
		}
		seen[l.Name] = true
	}
	for _, p := range d.NOITrend {
		if _, err := time.Parse("2006-01", p.Month); err != nil {
			return fmt.Errorf("noi trend month %q: %w", p.Month, err)
		}
	}
	for i := range d.Leases {
		l := &d.Leases[i]
		t, err := time.Parse(time.DateOnly, l.Expires)
		if err != nil {
			return fmt.Errorf("lease %q: %w", l.Tenant, err)
		}
		l.expiresAt = t
	}
	return nil
}

// Modes returns the modes that have a dataset, sorted.
func (c *Catalog) Modes() []uistate.CustomerMode {
	return slices.Sorted(maps.Keys(c.sets))
}

func (c *Catalog) dataset(mode uistate.CustomerMode) (*Dataset, error) {
	ds, ok := c.sets[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return ds, nil
}

// Locations returns a copy of the locations of mode.
func (c *Catalog) Locations(mode uistate.CustomerMode) ([]Location, error) {
	ds, err := c.dataset(mode)
	if err != nil {
		return nil, err
	}
	out := make([]Location, len(ds.Locations))
	for i, l := range ds.Locations {
		l.NOI = maps.Clone(l.NOI)
		out[i] = l
	}
	return out, nil
}

// Portfolio summarizes a set of locations.
type Portfolio struct {
	Mode            uistate.CustomerMode `json:"mode"`
	Locations       []string             `json:"locations"`
	TotalSquareFeet int                  `json:"totalSquareFeet"`
	Occupancy       float64              `json:"occupancy"`
	Year            int                  `json:"year"`
	NOI             float64              `json:"noi"`
	PreviousNOI     float64              `json:"previousNoi"`
	NOIChange       float64              `json:"noiChange"`
}

// Portfolio aggregates the locations of mode named in names, or all of them
// when names is empty. Year is the latest year with NOI data; NOIChange is the
// year over year change against the year before.
func (c *Catalog) Portfolio(mode uistate.CustomerMode, names []string) (*Portfolio, error) {
	ds, err := c.dataset(mode)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if !slices.ContainsFunc(ds.Locations, func(l Location) bool { return l.Name == n }) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, n)
		}
	}
	p := &Portfolio{
		Mode:      mode,
		Locations: []string{},
		Occupancy: WeightedOccupancy(ds.Locations, names),
	}
	byYear := map[int]float64{}
	for _, l := range selected(ds.Locations, names) {
		p.Locations = append(p.Locations, l.Name)
		p.TotalSquareFeet += l.SquareFeet
		for y, v := range l.NOI {
			byYear[y] += v
		}
	}
	if len(byYear) != 0 {
		p.Year = slices.Max(slices.Collect(maps.Keys(byYear)))
		p.NOI = byYear[p.Year]
		p.PreviousNOI = byYear[p.Year-1]
		p.NOIChange = YearOverYear(p.NOI, p.PreviousNOI)
	}
	return p, nil
}

// LeaseExpirations returns the leases of mode expiring in year, or all of
// them when year is 0, soonest first.
func (c *Catalog) LeaseExpirations(mode uistate.CustomerMode, year int) ([]Lease, error) {
	ds, err := c.dataset(mode)
	if err != nil {
		return nil, err
	}
	out := []Lease{}
	for _, l := range ds.Leases {
		if year == 0 || l.expiresAt.Year() == year {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, func(a, b Lease) int {
		if n := a.expiresAt.Compare(b.expiresAt); n != 0 {
			return n
		}
		return strings.Compare(a.Tenant, b.Tenant)
	})
	return out, nil
}

// TrendPoint is a month of NOI with its change against the previous month.
type TrendPoint struct {
	Month  string  `json:"month"`
	NOI    float64 `json:"noi"`
	Change float64 `json:"change"`
}

// NOITrend returns the monthly NOI series of mode. The first point has no
// change.
func (c *Catalog) NOITrend(mode uistate.CustomerMode) ([]TrendPoint, error) {
	ds, err := c.dataset(mode)
	if err != nil {
		return nil, err
	}
	out := make([]TrendPoint, len(ds.NOITrend))
	for i, p := range ds.NOITrend {
		out[i] = TrendPoint{Month: p.Month, NOI: p.NOI}
		if i > 0 {
			out[i].Change = YearOverYear(p.NOI, ds.NOITrend[i-1].NOI)
		}
	}
	return out, nil
}

// WeightedOccupancy returns Σ(occupancy×squareFeet)/Σ(squareFeet) over the
// locations named in names, or over all locations when names is empty. It is
// 0 when the selection has no area.
func WeightedOccupancy(locations []Location, names []string) float64 {
	var weighted float64
	var total int
	for _, l := range selected(locations, names) {
		weighted += l.Occupancy * float64(l.SquareFeet)
		total += l.SquareFeet
	}
	if total == 0 {
		return 0
	}
	return weighted / float64(total)
}

// YearOverYear returns (current-previous)/previous, or 0 when previous is 0.
func YearOverYear(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous
}

func selected(locations []Location, names []string) []Location {
	if len(names) == 0 {
		return locations
	}
	var out []Location
	for _, l := range locations {
		if slices.Contains(names, l.Name) {
			out = append(out, l)
		}
	}
	return out
}
