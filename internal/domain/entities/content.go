package entities

import "time"

// FeaturedEvent is the event promoted on the home page
type FeaturedEvent struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	ImageURL    string     `json:"image_url" db:"image_url"`
	ButtonText  string     `json:"button_text" db:"button_text"`
	ButtonLink  string     `json:"button_link" db:"button_link"`
	Schedule    string     `json:"schedule,omitempty" db:"schedule"`
	Location    string     `json:"location,omitempty" db:"location"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	StartsAt    *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// FeaturedEventResult is a featured event with its add-to-calendar link
type FeaturedEventResult struct {
	*FeaturedEvent
	CalendarURL string `json:"calendar_url"`
}

// SiteSettings holds the editable look of the public site
type SiteSettings struct {
	ID                string    `json:"id" db:"id"`
	HeroBackgroundURL string    `json:"hero_background_url" db:"hero_background_url"`
	UpdatedAt         time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// CategoryItem is an editor-managed listing category
type CategoryItem struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}
