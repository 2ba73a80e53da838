package catalog

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minorWords stay lowercase inside a title-cased label.
var minorWords = map[string]bool{"and": true, "of": true, "the": true, "in": true, "to": true}

// Slugify turns a label into a URL slug: lowercase ASCII words joined by
// hyphens. "Beach & Island Escapes" becomes "beach-island-escapes".
func Slugify(label string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		label,
	)
	if err != nil {
		stripped = label
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(stripped) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// FormatCategoryLabel normalizes a raw category value such as
// "hill_stations" or "  BEACH-and-island " into a title-cased label.
func FormatCategoryLabel(raw string) string {
	words := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	caser := cases.Title(language.English)
	for i, w := range words {
		lw := strings.ToLower(w)
		if i > 0 && minorWords[lw] {
			words[i] = lw
			continue
		}
		words[i] = caser.String(lw)
	}
	return strings.Join(words, " ")
}

// CategoryFromSlug turns a slug back into a display label.
// "hill-stations" becomes "Hill Stations".
func CategoryFromSlug(slug string) string {
	return FormatCategoryLabel(slug)
}

// Category is a catalog category with its slug and package count.
type Category struct {
	Label string `json:"label" example:"Beach & Island"`
	Slug  string `json:"slug" example:"beach-island"`
	Count int    `json:"count" example:"12"`
}

// Resolver maps slugs onto the category labels present in a package list.
type Resolver struct {
	bySlug map[string]*Category
	order  []string
}

// NewResolver indexes the labels found in labels, counting repeats.
func NewResolver(labels []string) *Resolver {
	r := &Resolver{bySlug: make(map[string]*Category)}
	for _, l := range labels {
		l = strings.TrimSpace(l)
		slug := Slugify(l)
		if slug == "" {
			continue
		}
		if c, ok := r.bySlug[slug]; ok {
			c.Count++
			continue
		}
		r.bySlug[slug] = &Category{Label: l, Slug: slug, Count: 1}
		r.order = append(r.order, slug)
	}
	return r
}

// Resolve returns the label of the category behind slug, or false when no
// indexed label has that slug.
func (r *Resolver) Resolve(slug string) (label string, known bool) {
	if c, ok := r.bySlug[Slugify(slug)]; ok {
		return c.Label, true
	}
	return "", false
}

// Categories lists categories sorted by label.
func (r *Resolver) Categories() []Category {
	out := make([]Category, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, *r.bySlug[slug])
	}
	slices.SortFunc(out, func(a, b Category) int {
		return strings.Compare(a.Label, b.Label)
	})
	return out
}
