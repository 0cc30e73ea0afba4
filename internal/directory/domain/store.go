package domain

import (
	"strings"
	"time"
)

// GeoJSONPoint is the only location type the directory persists.
const GeoJSONPoint = "Point"

// Store represents a directory listing owned by a user.
type Store struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Tags        []string
	Location    Location
	Photo       string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location is a GeoJSON point paired with a display address.
// Coordinates are ordered longitude, latitude.
type Location struct {
	Type        string
	Coordinates []float64
	Address     string
}

// StoreCard is the trimmed projection returned by proximity queries.
type StoreCard struct {
	Slug        string
	Name        string
	Description string
	Location    Location
	Photo       string
}

// Normalize trims free-text fields and forces the location type to
// "Point". The location type is never user-controlled.
func (s *Store) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Location.Address = strings.TrimSpace(s.Location.Address)
	s.Location.Type = GeoJSONPoint
}

// Validate checks every schema invariant and reports all violations at
// once, not just the first.
func (s *Store) Validate() error {
	v := NewValidationError()
	if strings.TrimSpace(s.Name) == "" {
		v.Add("name", "Please enter a store name")
	}
	if len(s.Location.Coordinates) != 2 {
		v.Add("location.coordinates", "You must supply coordinates")
	}
	if strings.TrimSpace(s.Location.Address) == "" {
		v.Add("location.address", "You must supply an address")
	}
	if strings.TrimSpace(s.AuthorID) == "" {
		v.Add("author", "You must supply an author")
	}
	if v.HasViolations() {
		return v
	}
	return nil
}
