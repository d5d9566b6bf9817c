package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-12 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.October, day, hour, minute, 0, 0, time.UTC)
}

func TestIsOpenNow_SameDayInterval(t *testing.T) {
	hours := map[string]string{"monday": "09:00-18:00"}

	assert.True(t, IsOpenNow(hours, at(12, 10, 0)))
	assert.True(t, IsOpenNow(hours, at(12, 9, 0)))
	assert.True(t, IsOpenNow(hours, at(12, 18, 0)))
	assert.False(t, IsOpenNow(hours, at(12, 19, 0)))
	assert.False(t, IsOpenNow(hours, at(12, 8, 59)))
}

func TestIsOpenNow_OvernightInterval(t *testing.T) {
	hours := map[string]string{"friday": "18:00-02:00"}

	assert.True(t, IsOpenNow(hours, at(16, 23, 0)))
	assert.True(t, IsOpenNow(hours, at(16, 1, 30)))
	assert.False(t, IsOpenNow(hours, at(16, 5, 0)))
	// Saturday 01:00 looks up Saturday, which has no entry.
	assert.False(t, IsOpenNow(hours, at(17, 1, 0)))
}

func TestIsOpenNow_Markers(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"closed", "closed", false},
		{"closed upper", "Closed", false},
		{"fechado", "Fechado", false},
		{"24h", "24h", true},
		{"24 hours", "24 Hours", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := map[string]string{"monday": tt.value}
			assert.Equal(t, tt.expected, IsOpenNow(hours, at(12, 3, 0)))
		})
	}
}

func TestIsOpenNow_MissingData(t *testing.T) {
	assert.False(t, IsOpenNow(nil, at(12, 10, 0)))
	assert.False(t, IsOpenNow(map[string]string{}, at(12, 10, 0)))
	assert.False(t, IsOpenNow(map[string]string{"tuesday": "09:00-18:00"}, at(12, 10, 0)))
}

func TestIsOpenNow_MalformedValues(t *testing.T) {
	for _, value := range []string{"", "9-18", "09:00", "ab:cd-18:00", "09:00-xx:00", "25:00-26:00", "open"} {
		t.Run(value, func(t *testing.T) {
			hours := map[string]string{"monday": value}
			assert.False(t, IsOpenNow(hours, at(12, 10, 0)))
		})
	}
}

func TestEvaluate_ReturnsParseError(t *testing.T) {
	open, err := Evaluate(map[string]string{"monday": "9-18"}, at(12, 10, 0))
	assert.False(t, open)
	assert.Error(t, err)

	open, err = Evaluate(map[string]string{"monday": "09:00-18:00"}, at(12, 10, 0))
	assert.True(t, open)
	assert.NoError(t, err)
}

func TestLookup_ExactDayWinsOverRange(t *testing.T) {
	hours := map[string]string{
		"monday-friday": "09:00-18:00",
		"Monday":        "closed",
	}

	value, ok := Lookup(hours, time.Monday)
	require.True(t, ok)
	assert.Equal(t, "closed", value)

	value, ok = Lookup(hours, time.Wednesday)
	require.True(t, ok)
	assert.Equal(t, "09:00-18:00", value)

	_, ok = Lookup(hours, time.Saturday)
	assert.False(t, ok)
}

func TestLookup_WrappingRange(t *testing.T) {
	hours := map[string]string{"friday - monday": "10:00-22:00"}

	for _, day := range []time.Weekday{time.Friday, time.Saturday, time.Sunday, time.Monday} {
		_, ok := Lookup(hours, day)
		assert.True(t, ok, day.String())
	}
	_, ok := Lookup(hours, time.Wednesday)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	s, err := Parse(" 08:30 - 17:45 ")
	require.NoError(t, err)
	assert.Equal(t, Schedule{Kind: KindInterval, Start: 8*60 + 30, End: 17*60 + 45}, s)

	s, err = Parse("22:00-24:00")
	require.NoError(t, err)
	assert.Equal(t, 24*60, s.End)

	_, err = Parse("24:30-01:00")
	assert.Error(t, err)
}

func TestLookup_PortugueseLabels(t *testing.T) {
	hours := map[string]string{
		"Segunda a Sexta":  "09:00 - 18:00",
		"Sábado e Domingo": "10:00 - 22:00",
	}

	value, ok := Lookup(hours, time.Wednesday)
	require.True(t, ok)
	assert.Equal(t, "09:00 - 18:00", value)

	value, ok = Lookup(hours, time.Sunday)
	require.True(t, ok)
	assert.Equal(t, "10:00 - 22:00", value)

	// Friday 20:00 is outside the weekday interval; Saturday 21:00 is inside.
	assert.False(t, IsOpenNow(hours, at(16, 20, 0)))
	assert.True(t, IsOpenNow(hours, at(17, 21, 0)))
}

func TestLookup_PortugueseDayWithSuffix(t *testing.T) {
	hours := map[string]string{
		"segunda-feira a sexta-feira": "08:00-12:00",
		"terça-feira":                 "fechado",
	}

	value, ok := Lookup(hours, time.Tuesday)
	require.True(t, ok)
	assert.Equal(t, "fechado", value)

	value, ok = Lookup(hours, time.Thursday)
	require.True(t, ok)
	assert.Equal(t, "08:00-12:00", value)

	_, ok = Lookup(hours, time.Saturday)
	assert.False(t, ok)

	for _, label := range []string{
		"segunda-feira - sexta-feira",
		"Segunda-Feira - Sexta-Feira",
		"segunda-feira-sexta-feira",
		"segunda-sexta-feira",
	} {
		value, ok := Lookup(map[string]string{label: "09:00-17:00"}, time.Wednesday)
		assert.True(t, ok, label)
		assert.Equal(t, "09:00-17:00", value, label)

		_, ok = Lookup(map[string]string{label: "09:00-17:00"}, time.Sunday)
		assert.False(t, ok, label)
	}
}

func TestLookup_AbbreviatedLabels(t *testing.T) {
	hours := map[string]string{
		"Seg - Sex": "09:00 - 18:00",
		"Sáb":       "09:00 - 14:00",
		"Dom":       "Fecha",
	}

	assert.True(t, IsOpenNow(hours, at(14, 17, 0)))
	assert.True(t, IsOpenNow(hours, at(17, 13, 59)))
	assert.False(t, IsOpenNow(hours, at(17, 15, 0)))
	assert.False(t, IsOpenNow(hours, at(18, 12, 0)))

	open, err := Evaluate(hours, at(18, 12, 0))
	assert.NoError(t, err)
	assert.False(t, open)
}
