package entities

import "time"

// TotemStatus reports whether a parking kiosk is reachable
type TotemStatus string

const (
	TotemStatusOnline  TotemStatus = "online"
	TotemStatusOffline TotemStatus = "offline"
)

// Totem is a parking-ticket kiosk shown in the totem finder
type Totem struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Location  Location    `json:"location" db:"-"`
	Status    TotemStatus `json:"status" db:"status"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
