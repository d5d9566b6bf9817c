package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/goparaty/internal/domain/entities"
)

func TestBuildDocument(t *testing.T) {
	business := &entities.Business{
		ID:          "b1",
		Name:        "Trilha do Pão de Açúcar",
		Category:    "Aventura",
		Description: "Vista da baía",
		Rating:      4.9,
		ReviewCount: 42,
		PriceLevel:  1,
		IsFeatured:  true,
		Location: entities.Location{
			Latitude:  -23.21,
			Longitude: -44.70,
			Address:   "Estrada Paraty-Cunha",
		},
		Amenities: []string{"guia"},
	}

	doc := buildDocument(business)

	assert.Equal(t, "b1", doc["id"])
	assert.Equal(t, "aventura", doc["category_normalized"])
	assert.Equal(t, []float64{-23.21, -44.70}, doc["location"])
	assert.Equal(t, "Estrada Paraty-Cunha", doc["address"])
	assert.Equal(t, []string{"guia"}, doc["amenities"])
	assert.Equal(t, true, doc["is_featured"])
}

func TestBuildDocument_OmitsEmptyOptionalFields(t *testing.T) {
	doc := buildDocument(&entities.Business{ID: "b2", Name: "Quiosque", Category: "História"})

	assert.Equal(t, "historia", doc["category_normalized"])
	assert.NotContains(t, doc, "address")
	assert.NotContains(t, doc, "amenities")
}
