package crm

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hqo/showcase/internal/uistate"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeightedOccupancy(t *testing.T) {
	locs := []Location{
		{Name: "a", Occupancy: 1, SquareFeet: 100},
		{Name: "b", Occupancy: 0.5, SquareFeet: 300},
		{Name: "c", Occupancy: 0.2, SquareFeet: 0},
	}
	tests := []struct {
		name  string
		locs  []Location
		names []string
		want  float64
	}{
		{"all", locs, nil, (100 + 150) / 400.0},
		{"subset", locs, []string{"b"}, 0.5},
		{"zero area", locs, []string{"c"}, 0},
		{"unknown name", locs, []string{"zzz"}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedOccupancy(tt.locs, tt.names); !approx(got, tt.want) {
				t.Errorf("WeightedOccupancy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearOverYear(t *testing.T) {
	tests := []struct {
		cur, prev, want float64
	}{
		{110, 100, 0.1},
		{90, 100, -0.1},
		{100, 0, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := YearOverYear(tt.cur, tt.prev); !approx(got, tt.want) {
			t.Errorf("YearOverYear(%v, %v) = %v, want %v", tt.cur, tt.prev, got, tt.want)
		}
	}
}

const testYAML = `
generic:
  locations:
    - {name: A, occupancy: 0.5, squareFeet: 100, noi: {2023: 100, 2024: 150}}
    - {name: B, occupancy: 1, squareFeet: 300, noi: {2023: 200, 2024: 150}}
  noiTrend:
    - {month: "2024-01", noi: 100}
    - {month: "2024-02", noi: 125}
    - {month: "2024-03", noi: 100}
  leases:
    - {tenant: Zed, location: A, squareFeet: 10, expires: "2025-06-30", annualRent: 1}
    - {tenant: Abe, location: B, squareFeet: 10, expires: "2025-06-30", annualRent: 1}
    - {tenant: Cat, location: A, squareFeet: 10, expires: "2026-01-31", annualRent: 1}
    - {tenant: Dan, location: B, squareFeet: 10, expires: "2025-02-28", annualRent: 1}
`

func TestCatalog(t *testing.T) {
	c, err := Parse([]byte(testYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	p, err := c.Portfolio(uistate.ModeGeneric, nil)
	if err != nil {
		t.Fatalf("Portfolio() error = %v", err)
	}
	want := &Portfolio{
		Mode:            uistate.ModeGeneric,
		Locations:       []string{"A", "B"},
		TotalSquareFeet: 400,
		Occupancy:       0.875,
		Year:            2024,
		NOI:             300,
		PreviousNOI:     300,
		NOIChange:       0,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Portfolio() mismatch (-want +got):\n%s", diff)
	}

	p, err = c.Portfolio(uistate.ModeGeneric, []string{"A"})
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalSquareFeet != 100 || p.Occupancy != 0.5 || !approx(p.NOIChange, 0.5) {
		t.Errorf("Portfolio(A) = %+v", p)
	}
	if _, err := c.Portfolio(uistate.ModeGeneric, []string{"nope"}); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("Portfolio(nope) error = %v", err)
	}
	if _, err := c.Portfolio(uistate.ModeCousins, nil); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Portfolio(cousins) error = %v", err)
	}

	leases, err := c.LeaseExpirations(uistate.ModeGeneric, 0)
	if err != nil {
		t.Fatal(err)
	}
	var tenants []string
	for _, l := range leases {
		tenants = append(tenants, l.Tenant)
	}
	if diff := cmp.Diff([]string{"Dan", "Abe", "Zed", "Cat"}, tenants); diff != "" {
		t.Errorf("LeaseExpirations() mismatch (-want +got):\n%s", diff)
	}
	if leases, _ := c.LeaseExpirations(uistate.ModeGeneric, 2026); len(leases) != 1 || leases[0].Tenant != "Cat" {
		t.Errorf("LeaseExpirations(2026) = %+v", leases)
	}
	if leases, _ := c.LeaseExpirations(uistate.ModeGeneric, 1999); leases == nil || len(leases) != 0 {
		t.Errorf("LeaseExpirations(1999) = %#v, want empty", leases)
	}

	trend, err := c.NOITrend(uistate.ModeGeneric)
	if err != nil {
		t.Fatal(err)
	}
	if len(trend) != 3 || trend[0].Change != 0 || !approx(trend[1].Change, 0.25) || !approx(trend[2].Change, -0.2) {
		t.Errorf("NOITrend() = %+v", trend)
	}

	locs, err := c.Locations(uistate.ModeGeneric)
	if err != nil {
		t.Fatal(err)
	}
	locs[0].NOI[2024] = 0
	if again, _ := c.Locations(uistate.ModeGeneric); again[0].NOI[2024] != 150 {
		t.Error("Locations() must return a copy")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":       "generic: [",
		"unknown mode": "acme: {}",
		"occupancy":    "generic: {locations: [{name: A, occupancy: 1.5}]}",
		"duplicate":    "generic: {locations: [{name: A}, {name: A}]}",
		"lease date":   "generic: {leases: [{tenant: T, expires: soon}]}",
		"month":        "generic: {noiTrend: [{month: January}]}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Error("Parse() succeeded, want error")
			}
		})
	}
}

var sortModes = cmpopts.SortSlices(func(a, b uistate.CustomerMode) bool { return a < b })

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if diff := cmp.Diff(uistate.CustomerModes, c.Modes(), sortModes); diff != "" {
		t.Errorf("Modes() mismatch (-want +got):\n%s", diff)
	}
	for _, m := range c.Modes() {
		p, err := c.Portfolio(m, nil)
		if err != nil {
			t.Fatalf("Portfolio(%s) error = %v", m, err)
		}
		if p.Occupancy <= 0 || p.Occupancy > 1 || p.Year == 0 {
			t.Errorf("Portfolio(%s) = %+v", m, p)
		}
	}
}
