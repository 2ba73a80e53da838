package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// SortKey selects the catalog ordering.
type SortKey string

// Supported sort keys. Recommended is the default and orders by rating.
const (
	SortRecommended  SortKey = "recommended"
	SortRatingDesc   SortKey = "rating-desc"
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortDurationAsc  SortKey = "duration-asc"
	SortDurationDesc SortKey = "duration-desc"
)

// SortKeys lists every accepted key in display order.
var SortKeys = []SortKey{
	SortRecommended,
	SortRatingDesc,
	SortPriceAsc,
	SortPriceDesc,
	SortDurationAsc,
	SortDurationDesc,
}

// Comparator orders two packages, following the cmp.Compare contract.
type Comparator func(a, b *model.TourPackage) int

var comparators = map[SortKey]Comparator{
	SortRecommended: byRatingDesc,
	SortRatingDesc:  byRatingDesc,
	SortPriceAsc: func(a, b *model.TourPackage) int {
		return cmp.Compare(a.Price, b.Price)
	},
	SortPriceDesc: func(a, b *model.TourPackage) int {
		return cmp.Compare(b.Price, a.Price)
	},
	// Duration orders compare the raw label lexically, so "10 Days" sorts
	// before "2 Days". Clients rely on this order.
	SortDurationAsc: func(a, b *model.TourPackage) int {
		return strings.Compare(a.Duration, b.Duration)
	},
	SortDurationDesc: func(a, b *model.TourPackage) int {
		return strings.Compare(b.Duration, a.Duration)
	},
}

func byRatingDesc(a, b *model.TourPackage) int {
	return cmp.Compare(b.Rating, a.Rating)
}

// ParseSortKey maps s onto a SortKey. Unknown or empty input yields
// SortRecommended and ok == false (ok is true for "").
func ParseSortKey(s string) (key SortKey, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortRecommended, true
	}
	k := SortKey(s)
	if _, known := comparators[k]; known {
		return k, true
	}
	return SortRecommended, false
}

// Valid reports whether k is a supported key.
func (k SortKey) Valid() bool {
	_, ok := comparators[k]
	return ok
}

// ComparatorFor returns the comparator for k, falling back to the
// recommended order for unknown keys.
func ComparatorFor(k SortKey) Comparator {
	if c, ok := comparators[k]; ok {
		return c
	}
	return comparators[SortRecommended]
}

// Sort stably orders pkgs in place. Ties keep their incoming order.
func Sort(pkgs []model.TourPackage, k SortKey) {
	c := ComparatorFor(k)
	slices.SortStableFunc(pkgs, func(a, b model.TourPackage) int {
		return c(&a, &b)
	})
}
