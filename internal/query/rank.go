package query

import (
	"slices"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/pkg/geo"
)

// Rank returns a reordered copy of businesses. With a visitor location the
// order is ascending distance; without one, featured listings come first.
// Both sorts are stable, so ties keep their input order.
func Rank(businesses []*entities.Business, user *entities.UserLocation) []*entities.Business {
	out := slices.Clone(businesses)
	if out == nil {
		out = []*entities.Business{}
	}

	if user != nil {
		SortByDistance(out, *user, func(b *entities.Business) entities.Location {
			if b == nil {
				return entities.Location{}
			}
			return b.Location
		})
		return out
	}

	slices.SortStableFunc(out, func(a, b *entities.Business) int {
		return featuredKey(a) - featuredKey(b)
	})
	return out
}

func featuredKey(b *entities.Business) int {
	if b != nil && b.IsFeatured {
		return 0
	}
	return 1
}

// SortByDistance stable-sorts items in place by ascending distance from the
// visitor. Distances are computed once per item.
func SortByDistance[T any](items []T, user entities.UserLocation, locate func(T) entities.Location) {
	type keyed struct {
		item T
		km   float64
	}

	tmp := make([]keyed, len(items))
	for i, it := range items {
		loc := locate(it)
		tmp[i] = keyed{item: it, km: geo.DistanceKm(user.Latitude, user.Longitude, loc.Latitude, loc.Longitude)}
	}

	slices.SortStableFunc(tmp, func(a, b keyed) int {
		switch {
		case a.km < b.km:
			return -1
		case a.km > b.km:
			return 1
		default:
			return 0
		}
	})

	for i := range tmp {
		items[i] = tmp[i].item
	}
}
