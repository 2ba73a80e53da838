package app

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/tour-package-service/config"
)

func TestNewServer(t *testing.T) {
	tests := []struct {
		name             string
		cfg              config.ServerConfig
		wantAddr         string
		wantWriteTimeout time.Duration
	}{
		{
			name:             "write timeout outlasts request timeout",
			cfg:              config.ServerConfig{Port: "8080", RequestTimeout: 30 * time.Second},
			wantAddr:         ":8080",
			wantWriteTimeout: 35 * time.Second,
		},
		{
			name:             "default write timeout",
			cfg:              config.ServerConfig{Port: "9090"},
			wantAddr:         ":9090",
			wantWriteTimeout: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(http.NotFoundHandler(), tt.cfg)

			assert.Equal(t, tt.wantAddr, s.httpServer.Addr)
			assert.Equal(t, tt.wantWriteTimeout, s.httpServer.WriteTimeout)
			assert.Equal(t, 15*time.Second, s.httpServer.ReadTimeout)
		})
	}
}

func TestServer_RunStopsOnSignal(t *testing.T) {
	s := NewServer(http.NotFoundHandler(), config.ServerConfig{Port: "0"})
	quit := make(chan os.Signal, 1)
	quit <- os.Interrupt

	done := make(chan error, 1)
	go func() { done <- s.run(quit) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunReturnsListenError(t *testing.T) {
	s := NewServer(http.NotFoundHandler(), config.ServerConfig{Port: "not-a-port"})

	done := make(chan error, 1)
	go func() { done <- s.run(make(chan os.Signal)) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("expected listen error")
	}
}
