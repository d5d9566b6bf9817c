package entities

// BusinessStatus is the moderation state of a listing
type BusinessStatus string

const (
	BusinessStatusPublished       BusinessStatus = "published"
	BusinessStatusPendingApproval BusinessStatus = "pending_approval"
	BusinessStatusPendingDelete   BusinessStatus = "pending_delete"
)

// Business represents a directory listing (restaurant, landmark, trail, ...)
type Business struct {
	ID              string            `json:"id" db:"id"`
	Name            string            `json:"name" db:"name"`
	Category        string            `json:"category" db:"category"`
	Description     string            `json:"description" db:"description"`
	LongDescription string            `json:"long_description,omitempty" db:"long_description"`
	Rating          float64           `json:"rating" db:"rating"`
	ReviewCount     int               `json:"review_count" db:"review_count"`
	PriceLevel      int               `json:"price_level" db:"price_level"`
	ImageURL        string            `json:"image_url" db:"image_url"`
	Gallery         []string          `json:"gallery,omitempty" db:"-"`
	Location        Location          `json:"location" db:"-"`
	Amenities       []string          `json:"amenities,omitempty" db:"-"`
	OpeningHours    map[string]string `json:"opening_hours,omitempty" db:"-"`
	IsFeatured      bool              `json:"is_featured" db:"is_featured"`
	Status          BusinessStatus    `json:"status,omitempty" db:"status"`
}

// IsPublished reports whether the listing is visible to visitors. Rows
// created before moderation existed carry no status and count as published.
func (b *Business) IsPublished() bool {
	return b.Status == "" || b.Status == BusinessStatusPublished
}

// Location represents geographical coordinates with a display address
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Address   string  `json:"address,omitempty" db:"address"`
}

// HasCoordinates reports whether the location carries a usable point.
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// UserLocation is the visitor's device position. A nil *UserLocation means
// the position is unknown.
type UserLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
