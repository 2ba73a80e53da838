// Package source loads tour packages from the external package-list API
// and from seed files.
package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"github.com/guttosm/tour-package-service/internal/catalog"
	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// ErrUnrecognizedShape is the single failure for any response body that is
// neither a package array nor an envelope holding one.
var ErrUnrecognizedShape = errors.New("unrecognized package list shape")

// EnvelopeKeys are tried in order for the package array inside an object body.
var EnvelopeKeys = []string{"data", "packages", "destinations", "results", "items"}

// Shape is the discriminated form of a package-list response.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	// ShapeArray is a bare top-level array.
	ShapeArray
	// ShapeEnvelope is an object with the array under one of EnvelopeKeys.
	ShapeEnvelope
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeEnvelope:
		return "envelope"
	default:
		return "unrecognized"
	}
}

// Decoded is the result of decoding a package-list body.
type Decoded struct {
	Packages []model.TourPackage
	Shape    Shape
	// Path is the gjson path of the array for envelopes, e.g. "data" or "data.items".
	Path string
	// Skipped counts array elements that were not objects.
	Skipped int
}

// Decode classifies body once and decodes the package array it carries.
// Numeric fields are read leniently: numbers, numeric strings, or 0.
func Decode(body []byte) (Decoded, error) {
	if !gjson.ValidBytes(body) {
		return Decoded{}, fmt.Errorf("%w: body is not valid JSON", ErrUnrecognizedShape)
	}

	list, shape, path := discriminate(gjson.ParseBytes(body))
	if shape == ShapeUnrecognized {
		return Decoded{}, ErrUnrecognizedShape
	}

	out := Decoded{Shape: shape, Path: path, Packages: make([]model.TourPackage, 0)}
	list.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			out.Skipped++
			return true
		}
		out.Packages = append(out.Packages, decodePackage(v))
		return true
	})
	assignFallbackIDs(out.Packages)
	return out, nil
}

// assignFallbackIDs gives records without an upstream id a unique one. The
// slug is used when no other record in the batch claims it, otherwise the
// slug plus the record's 1-based position.
func assignFallbackIDs(pkgs []model.TourPackage) {
	taken := make(map[string]bool, len(pkgs))
	slugUses := make(map[string]int)
	for _, p := range pkgs {
		if p.ID != "" {
			taken[p.ID] = true
		} else {
			slugUses[p.Slug]++
		}
	}

	for i := range pkgs {
		if pkgs[i].ID != "" {
			continue
		}
		base := pkgs[i].Slug
		if base == "" {
			base = "upstream"
		}
		id := base
		if base == pkgs[i].Slug && slugUses[base] == 1 && !taken[base] {
			taken[id] = true
			pkgs[i].ID = id
			continue
		}
		for n := i + 1; ; n++ {
			id = base + "-" + strconv.Itoa(n)
			if !taken[id] {
				break
			}
		}
		taken[id] = true
		pkgs[i].ID = id
	}
}

func discriminate(root gjson.Result) (gjson.Result, Shape, string) {
	if root.IsArray() {
		return root, ShapeArray, ""
	}
	if !root.IsObject() {
		return gjson.Result{}, ShapeUnrecognized, ""
	}
	for _, key := range EnvelopeKeys {
		v := root.Get(key)
		if v.IsArray() {
			return v, ShapeEnvelope, key
		}
	}
	// {"data": {"items": [...]}} nests one more level.
	if data := root.Get("data"); data.IsObject() {
		for _, key := range EnvelopeKeys {
			if v := data.Get(key); v.IsArray() {
				return v, ShapeEnvelope, "data." + key
			}
		}
	}
	return gjson.Result{}, ShapeUnrecognized, ""
}

func decodePackage(v gjson.Result) model.TourPackage {
	title := firstString(v, "title", "name")
	pkg := model.TourPackage{
		ID:            decodeID(v),
		Title:         title,
		Slug:          firstString(v, "slug"),
		Duration:      firstString(v, "duration", "duration_label", "durationLabel"),
		Destination:   firstString(v, "destination", "location"),
		Price:         firstNumber(v, "price", "sale_price", "salePrice"),
		OriginalPrice: firstNumber(v, "original_price", "originalPrice", "old_price"),
		Rating:        firstNumber(v, "rating"),
		Category:      firstString(v, "category", "category.name"),
		TourType:      firstString(v, "tour_type", "tourType", "type"),
		Images:        stringList(v, "images", "image"),
		Highlights:    stringList(v, "highlights"),
		Source:        model.SourceUpstream,
		Active:        true,
	}
	if pkg.Slug == "" {
		pkg.Slug = catalog.Slugify(title)
	}
	return pkg
}

func decodeID(v gjson.Result) string {
	for _, path := range []string{"id", "_id.$oid", "_id", "package_id"} {
		r := v.Get(path)
		if r.Exists() && (r.Type == gjson.String || r.Type == gjson.Number) {
			if s := strings.TrimSpace(r.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstString(v gjson.Result, paths ...string) string {
	for _, p := range paths {
		r := v.Get(p)
		if r.Type == gjson.String || r.Type == gjson.Number {
			if s := strings.TrimSpace(r.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstNumber(v gjson.Result, paths ...string) float64 {
	for _, p := range paths {
		r := v.Get(p)
		if !r.Exists() {
			continue
		}
		return lenientNumber(r)
	}
	return 0
}

// lenientNumber reads numbers and numeric strings such as "1,299",
// "$1299.50" or "899 USD". Anything else is 0.
func lenientNumber(r gjson.Result) float64 {
	switch r.Type {
	case gjson.Number:
		return r.Float()
	case gjson.String:
		s := strings.TrimFunc(r.Str, func(c rune) bool {
			return !unicode.IsDigit(c) && c != '.' && c != '-'
		})
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func stringList(v gjson.Result, paths ...string) []string {
	for _, p := range paths {
		r := v.Get(p)
		switch {
		case r.IsArray():
			var out []string
			for _, item := range r.Array() {
				if s := strings.TrimSpace(item.String()); s != "" && item.Type == gjson.String {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		case r.Type == gjson.String && strings.TrimSpace(r.Str) != "":
			return []string{strings.TrimSpace(r.Str)}
		}
	}
	return nil
}
