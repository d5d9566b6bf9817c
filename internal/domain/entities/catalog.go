package entities

import "time"

// CatalogSnapshot is the immutable collection a listing query runs against
type CatalogSnapshot struct {
	Businesses []*Business `json:"businesses"`
	Totems     []*Totem    `json:"totems"`
	LoadedAt   time.Time   `json:"loaded_at"`
}

// ListingResult is a business decorated for display
type ListingResult struct {
	*Business
	DistanceKm    *float64 `json:"distance_km,omitempty"`
	DistanceLabel string   `json:"distance_label,omitempty"`
	IsOpen        bool     `json:"is_open"`
	PriceLabel    string   `json:"price_label"`
	PlusCode      string   `json:"plus_code,omitempty"`
	DirectionsURL string   `json:"directions_url,omitempty"`
}

// TotemResult is a totem decorated with its distance from the visitor
type TotemResult struct {
	*Totem
	DistanceKm    *float64 `json:"distance_km,omitempty"`
	DistanceLabel string   `json:"distance_label,omitempty"`
	IsNearest     bool     `json:"is_nearest"`
	DirectionsURL string   `json:"directions_url"`
}
