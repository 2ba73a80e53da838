package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// AllSentinel is the UI value meaning "no constraint" for string selections.
const AllSentinel = "all"

// ErrInvalidBracket is returned when a bracket string cannot be parsed.
var ErrInvalidBracket = errors.New("invalid bracket")

// Bracket is an inclusive numeric range. An open bracket has no upper bound.
// The zero value is inactive and matches everything.
type Bracket struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max,omitempty"`
	Open   bool    `json:"open,omitempty"`
	Active bool    `json:"-"`
}

// ParseBracket parses UI bracket strings: "1000-2500", "5000+", or the
// "all" sentinel (also ""), which yields an inactive bracket.
func ParseBracket(s string) (Bracket, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllSentinel) {
		return Bracket{}, nil
	}

	if lo, ok := strings.CutSuffix(s, "+"); ok {
		floor, err := parseBound(lo)
		if err != nil {
			return Bracket{}, err
		}
		return Bracket{Min: floor, Open: true, Active: true}, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Bracket{}, ErrInvalidBracket
	}
	floor, err := parseBound(lo)
	if err != nil {
		return Bracket{}, err
	}
	ceiling, err := parseBound(hi)
	if err != nil {
		return Bracket{}, err
	}
	if ceiling < floor {
		return Bracket{}, ErrInvalidBracket
	}
	return Bracket{Min: floor, Max: ceiling, Active: true}, nil
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, ErrInvalidBracket
	}
	return v, nil
}

// Contains reports whether v lies within the bracket, bounds included.
func (b Bracket) Contains(v float64) bool {
	if !b.Active {
		return true
	}
	if v < b.Min {
		return false
	}
	return b.Open || v <= b.Max
}

// String renders the bracket back in its UI form.
func (b Bracket) String() string {
	if !b.Active {
		return AllSentinel
	}
	lo := strconv.FormatFloat(b.Min, 'f', -1, 64)
	if b.Open {
		return lo + "+"
	}
	return lo + "-" + strconv.FormatFloat(b.Max, 'f', -1, 64)
}

// Selection is the set of user-chosen filter constraints. Each field is
// independent; its zero value (or the "all" sentinel) means no constraint.
type Selection struct {
	MinRating   float64 `json:"min_rating,omitempty"`
	Price       Bracket `json:"price"`
	Duration    Bracket `json:"duration"`
	Destination string  `json:"destination,omitempty"`
	Category    string  `json:"category,omitempty"`
	TourType    string  `json:"tour_type,omitempty"`
}

// Match reports whether pkg satisfies every constraint.
func (s Selection) Match(pkg *model.TourPackage) bool {
	return MatchRating(pkg, s.MinRating) &&
		MatchPrice(pkg, s.Price) &&
		MatchDuration(pkg, s.Duration) &&
		MatchDestination(pkg, s.Destination) &&
		MatchCategory(pkg, s.Category) &&
		MatchTourType(pkg, s.TourType)
}

// Key returns a canonical string for the selection, used for memoization.
func (s Selection) Key() string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(s.MinRating, 'f', -1, 64))
	for _, part := range []string{
		s.Price.String(),
		s.Duration.String(),
		normalize(s.Destination),
		normalize(s.Category),
		normalize(s.TourType),
	} {
		b.WriteByte('|')
		b.WriteString(part)
	}
	return b.String()
}

// MatchRating passes packages rated at least minRating. Zero passes everything.
func MatchRating(pkg *model.TourPackage, minRating float64) bool {
	return minRating <= 0 || pkg.Rating >= minRating
}

// MatchPrice passes packages whose price lies in the bracket.
func MatchPrice(pkg *model.TourPackage, b Bracket) bool {
	return b.Contains(pkg.Price)
}

// MatchDuration passes packages whose parsed day count lies in the bracket.
// Packages with an unknown duration never satisfy an active bracket.
func MatchDuration(pkg *model.TourPackage, b Bracket) bool {
	if !b.Active {
		return true
	}
	days := ParseDurationDays(pkg.Duration)
	return days > 0 && b.Contains(float64(days))
}

// MatchDestination passes packages whose destination equals or contains the
// selected destination, ignoring case and surrounding whitespace.
func MatchDestination(pkg *model.TourPackage, destination string) bool {
	want := normalize(destination)
	if isUnconstrained(want) {
		return true
	}
	have := normalize(pkg.Destination)
	return have == want || strings.Contains(have, want)
}

// MatchCategory passes packages in the given category, ignoring case.
func MatchCategory(pkg *model.TourPackage, category string) bool {
	want := normalize(category)
	return isUnconstrained(want) || normalize(pkg.Category) == want
}

// MatchTourType passes packages of the given tour type, ignoring case.
func MatchTourType(pkg *model.TourPackage, tourType string) bool {
	want := normalize(tourType)
	return isUnconstrained(want) || normalize(pkg.TourType) == want
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isUnconstrained(normalized string) bool {
	return normalized == "" || normalized == AllSentinel
}
