// Package hours evaluates business opening-hours maps such as
//
//	{"monday": "09:00-18:00", "saturday": "24h", "sunday": "closed"}
//
// against a wall-clock instant.
//
// The weekday of the instant being evaluated always selects the entry. An
// interval that crosses midnight ("18:00-02:00") is checked against the
// minutes of that same day, so Friday 01:00 is inside Friday's
// "18:00-02:00" and Friday 05:00 is not.
package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/goparaty/pkg/textnorm"
)

// Kind classifies a parsed hours value.
type Kind int

const (
	KindClosed Kind = iota
	KindAllDay
	KindInterval
)

var (
	closedMarkers = map[string]struct{}{"closed": {}, "fechado": {}, "fecha": {}}
	allDayMarkers = map[string]struct{}{"24h": {}, "24 hours": {}, "24 horas": {}}
)

// Labels are matched after folding, so "Sábado" and "sabado" are the same key.
var dayNames = map[string]time.Weekday{
	"sunday":        time.Sunday,
	"monday":        time.Monday,
	"tuesday":       time.Tuesday,
	"wednesday":     time.Wednesday,
	"thursday":      time.Thursday,
	"friday":        time.Friday,
	"saturday":      time.Saturday,
	"domingo":       time.Sunday,
	"segunda":       time.Monday,
	"segunda-feira": time.Monday,
	"terca":         time.Tuesday,
	"terca-feira":   time.Tuesday,
	"quarta":        time.Wednesday,
	"quarta-feira":  time.Wednesday,
	"quinta":        time.Thursday,
	"quinta-feira":  time.Thursday,
	"sexta":         time.Friday,
	"sexta-feira":   time.Friday,
	"sabado":        time.Saturday,
	"sun":           time.Sunday,
	"mon":           time.Monday,
	"tue":           time.Tuesday,
	"wed":           time.Wednesday,
	"thu":           time.Thursday,
	"fri":           time.Friday,
	"sat":           time.Saturday,
	"dom":           time.Sunday,
	"seg":           time.Monday,
	"ter":           time.Tuesday,
	"qua":           time.Wednesday,
	"qui":           time.Thursday,
	"sex":           time.Friday,
	"sab":           time.Saturday,
}

// Schedule is one day's parsed hours. Start and End are minutes since
// midnight and only meaningful for KindInterval.
type Schedule struct {
	Kind  Kind
	Start int
	End   int
}

// Parse parses a single hours value.
func Parse(value string) (Schedule, error) {
	v := textnorm.Fold(strings.TrimSpace(value))
	if v == "" {
		return Schedule{}, fmt.Errorf("empty hours value")
	}
	if _, ok := closedMarkers[v]; ok {
		return Schedule{Kind: KindClosed}, nil
	}
	if _, ok := allDayMarkers[v]; ok {
		return Schedule{Kind: KindAllDay}, nil
	}

	start, end, found := strings.Cut(v, "-")
	if !found {
		return Schedule{}, fmt.Errorf("hours %q: missing '-' separator", value)
	}

	startMin, err := parseClock(start)
	if err != nil {
		return Schedule{}, fmt.Errorf("hours %q: start: %w", value, err)
	}
	endMin, err := parseClock(end)
	if err != nil {
		return Schedule{}, fmt.Errorf("hours %q: end: %w", value, err)
	}

	return Schedule{Kind: KindInterval, Start: startMin, End: endMin}, nil
}

func parseClock(s string) (int, error) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, fmt.Errorf("%q is not HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour %q", hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute %q", mm)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%q out of range", s)
	}
	return h*60 + m, nil
}

// OpenAt reports whether the schedule covers the given minute of the day.
func (s Schedule) OpenAt(minute int) bool {
	switch s.Kind {
	case KindAllDay:
		return true
	case KindInterval:
		if s.End < s.Start {
			return minute >= s.Start || minute <= s.End
		}
		return minute >= s.Start && minute <= s.End
	default:
		return false
	}
}

// Lookup returns the hours value that applies to day. An exact day label
// ("friday") wins over a range label ("monday-friday").
func Lookup(openingHours map[string]string, day time.Weekday) (string, bool) {
	var (
		ranged      string
		rangedLabel string
		hasRange    bool
	)

	for label, value := range openingHours {
		key := textnorm.Fold(strings.TrimSpace(label))
		if d, ok := dayNames[key]; ok {
			if d == day {
				return value, true
			}
			continue
		}
		// overlapping ranges resolve to the smallest label so lookups are stable
		if rangeCovers(key, day) && (!hasRange || key < rangedLabel) {
			ranged, rangedLabel, hasRange = value, key, true
		}
	}

	return ranged, hasRange
}

// rangeCovers matches group labels: "monday-friday", "segunda a sexta"
// (inclusive, may wrap past sunday) and "sabado e domingo" (a list).
func rangeCovers(label string, day time.Weekday) bool {
	if parts := strings.Split(label, " e "); len(parts) > 1 {
		for _, part := range parts {
			d, ok := dayNames[strings.TrimSpace(part)]
			if !ok {
				return false
			}
			if d == day {
				return true
			}
		}
		return false
	}

	first, last, ok := splitRange(label)
	if !ok {
		return false
	}
	if first <= last {
		return day >= first && day <= last
	}
	return day >= first || day <= last
}

// splitRange finds the two ends of a day range. Day names may contain a
// dash themselves ("segunda-feira"), so a bare "-" is tried at every
// position until both sides name a day.
func splitRange(label string) (time.Weekday, time.Weekday, bool) {
	for _, sep := range []string{" a ", " - "} {
		if from, to, found := strings.Cut(label, sep); found {
			return dayPair(from, to)
		}
	}

	for i := strings.Index(label, "-"); i >= 0; {
		if first, last, ok := dayPair(label[:i], label[i+1:]); ok {
			return first, last, true
		}
		next := strings.Index(label[i+1:], "-")
		if next < 0 {
			break
		}
		i += next + 1
	}
	return 0, 0, false
}

func dayPair(from, to string) (time.Weekday, time.Weekday, bool) {
	first, ok := dayNames[strings.TrimSpace(from)]
	if !ok {
		return 0, 0, false
	}
	last, ok := dayNames[strings.TrimSpace(to)]
	if !ok {
		return 0, 0, false
	}
	return first, last, true
}

// Evaluate resolves the entry for now's weekday and reports whether it is
// open at now. Missing hours, a missing day entry and parse failures all
// report false; the parse error, if any, is returned for diagnostics.
func Evaluate(openingHours map[string]string, now time.Time) (bool, error) {
	if len(openingHours) == 0 {
		return false, nil
	}

	value, ok := Lookup(openingHours, now.Weekday())
	if !ok {
		return false, nil
	}

	schedule, err := Parse(value)
	if err != nil {
		return false, err
	}

	minute := now.Hour()*60 + now.Minute()
	return schedule.OpenAt(minute), nil
}

// IsOpenNow reports whether a business with the given opening hours is open
// at now.
func IsOpenNow(openingHours map[string]string, now time.Time) bool {
	open, _ := Evaluate(openingHours, now)
	return open
}
