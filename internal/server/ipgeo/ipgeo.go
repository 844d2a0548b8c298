// Package ipgeo resolves client IPs to countries with a MaxMind MMDB file.
package ipgeo

import (
	"fmt"
	"net/netip"

	"github.com/oschwald/maxminddb-golang/v2"
)

// Checker resolves IP addresses to ISO 3166-1 alpha-2 country codes.
type Checker struct {
	reader *maxminddb.Reader
}

// Open opens an MMDB file for country lookups.
func Open(dbPath string) (*Checker, error) {
	r, err := maxminddb.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open geo database: %w", err)
	}
	return &Checker{reader: r}, nil
}

// Close releases the MMDB reader resources.
func (c *Checker) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// tailscalePrefix is the CGNAT range used by Tailscale.
var tailscalePrefix = netip.MustParsePrefix("100.64.0.0/10")

// CountryCode returns the country of ip.
//
// It returns "local" for loopback, private, link-local and unspecified
// addresses, "tailscale" for 100.64.0.0/10, and "" when ip does not parse, the
// lookup fails or c is nil.
func (c *Checker) CountryCode(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ""
	}
	addr = addr.Unmap()
	switch {
	case addr.IsLoopback(), addr.IsPrivate(), addr.IsUnspecified(), addr.IsLinkLocalUnicast():
		return "local"
	case tailscalePrefix.Contains(addr):
		return "tailscale"
	case c == nil || c.reader == nil:
		return ""
	}
	var rec countryRecord
	if err := c.reader.Lookup(addr).Decode(&rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}
