// Package calendar builds "add to calendar" links for promoted events.
package calendar

import (
	"net/url"
	"time"
)

const (
	googleRenderURL = "https://www.google.com/calendar/render"

	// DefaultLocation is used when an event does not name a venue.
	DefaultLocation = "Paraty, RJ"

	// DefaultDuration is the length assumed for events without an end.
	DefaultDuration = 2 * time.Hour

	stampLayout = "20060102T150405Z"
)

// Event is the subset of an event a calendar entry needs.
type Event struct {
	Title       string
	Description string
	Location    string
	Start       *time.Time
	End         *time.Time
}

// GoogleCalendarURL returns a Google Calendar template link for ev. A
// missing start means now; a missing end means start plus DefaultDuration.
func GoogleCalendarURL(ev Event, now time.Time) string {
	start := now
	if ev.Start != nil {
		start = *ev.Start
	}
	end := start.Add(DefaultDuration)
	if ev.End != nil && ev.End.After(start) {
		end = *ev.End
	}

	location := ev.Location
	if location == "" {
		location = DefaultLocation
	}

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", ev.Title)
	q.Set("details", ev.Description)
	q.Set("location", location)
	q.Set("dates", stamp(start)+"/"+stamp(end))

	return googleRenderURL + "?" + q.Encode()
}

func stamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}
