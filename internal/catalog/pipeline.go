package catalog

import "github.com/guttosm/tour-package-service/internal/domain/model"

// Apply filters source by sel and orders the survivors by key.
// The result is a new slice; source is never modified.
func Apply(source []model.TourPackage, sel Selection, key SortKey) []model.TourPackage {
	out := make([]model.TourPackage, 0, len(source))
	for i := range source {
		if sel.Match(&source[i]) {
			out = append(out, source[i])
		}
	}
	Sort(out, key)
	return out
}
