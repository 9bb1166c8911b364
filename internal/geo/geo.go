// Package geo maps client addresses to ISO country codes for the visit summary.
package geo

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/maxminddb-golang"
)

// Reader is safe for concurrent use. The zero value and a nil *Reader resolve
// nothing.
type Reader struct {
	db *maxminddb.Reader
}

// Open opens a MaxMind country or city database. An empty path yields a no-op
// reader so deployments without GeoIP data still run.
func Open(path string) (*Reader, error) {
	if path == "" {
		return &Reader{}, nil
	}
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip db %s: %w", path, err)
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Enabled() bool {
	return r != nil && r.db != nil
}

func (r *Reader) Close() {
	if r.Enabled() {
		r.db.Close()
	}
}

// Country returns the upper-case ISO 3166 code for ip, or "" when unknown.
func (r *Reader) Country(ip string) string {
	if !r.Enabled() {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}

	var record struct {
		Country struct {
			ISOCode string `maxminddb:"iso_code"`
		} `maxminddb:"country"`
		RegisteredCountry struct {
			ISOCode string `maxminddb:"iso_code"`
		} `maxminddb:"registered_country"`
	}
	if err := r.db.Lookup(parsed, &record); err != nil {
		return ""
	}
	if record.Country.ISOCode != "" {
		return strings.ToUpper(record.Country.ISOCode)
	}
	return strings.ToUpper(record.RegisteredCountry.ISOCode)
}
