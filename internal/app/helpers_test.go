package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tour-package-service/config"
	"github.com/guttosm/tour-package-service/internal/domain/model"
)

const seedPackages = `[
	{"id": "bali-7", "title": "Bali Escape", "destination": "Bali", "duration": "7 Days", "price": 1200, "rating": 4.8, "category": "Beach Holidays"},
	{"id": "kyoto-5", "title": "Kyoto Temples", "destination": "Kyoto", "duration": "5 Days", "price": "980", "rating": 4.6, "category": "Cultural Tours"}
]`

func init() {
	gin.SetMode(gin.TestMode)
}

func writeSeedFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packages.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// testConfig returns a database-less configuration serving the seed file.
func testConfig(seedFile string) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
		},
		Log:   config.LogConfig{Level: "error"},
		Cache: config.CacheConfig{Size: 16, TTL: time.Minute, Shards: 2},
		Catalog: config.CatalogConfig{
			SeedFile:     seedFile,
			FetchTimeout: time.Second,
			PageSize:     6,
		},
		Database: config.DatabaseConfig{
			CircuitBreakerFailureThreshold: 3,
			CircuitBreakerSuccessThreshold: 1,
			CircuitBreakerTimeout:          time.Second,
		},
	}
}

type recordingSink struct {
	mu      sync.Mutex
	entries []*model.LogEntry
}

func (s *recordingSink) Log(entry *model.LogEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return true
}

func (s *recordingSink) snapshot() []*model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.LogEntry(nil), s.entries...)
}
