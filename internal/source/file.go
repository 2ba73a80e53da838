package source

import (
	"context"
	"fmt"
	"os"

	"github.com/guttosm/tour-package-service/internal/domain/model"
)

// FileLoader reads a package list from a local JSON file using the same
// shape rules as the HTTP client.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// FetchPackages implements Fetcher.
func (l *FileLoader) FetchPackages(ctx context.Context) ([]model.TourPackage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	decoded, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", l.path, err)
	}
	for i := range decoded.Packages {
		decoded.Packages[i].Source = model.SourceSeed
	}
	return decoded.Packages, nil
}
