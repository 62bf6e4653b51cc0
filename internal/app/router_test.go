//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conektaolatam-netizen/conektao-sub003/config"
)

func TestInitializeRouter(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{
			Port:        "8080",
			RateLimit:   100,
			RateWindow:  time.Minute,
			CORSOrigins: []string{"https://app.conektao.com"},
		},
		Auth: config.AuthConfig{
			Enabled: true,
			APIKeys: map[string]bool{"test-key": true},
		},
	}

	services := InitializeServices(cfg.Costing, nil)
	t.Cleanup(services.CostingService.Stop)

	components := InitializeRouter(services, nil, cfg)
	require.NotNil(t, components)

	assert.NotNil(t, components.HealthHandler)
	assert.Equal(t, 100, components.Config.RateLimit)
	assert.Equal(t, time.Minute, components.Config.RateWindow)
	assert.Equal(t, 30*time.Second, components.Config.RequestTimeout)
	assert.True(t, components.Config.EnableAuth)
	assert.Equal(t, []string{"https://app.conektao.com"}, components.Config.CORSOrigins)
	assert.NotNil(t, components.Config.CostingService)

	// Without a database there is no user repository to back JWT auth.
	assert.Nil(t, components.Config.AuthService)
	assert.Nil(t, components.Config.LoggingService)
	assert.Nil(t, components.Config.ProductService)
}

func TestInitializeRouter_AuthDisabled(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{Port: "8080"},
	}

	services := InitializeServices(cfg.Costing, nil)
	t.Cleanup(services.CostingService.Stop)

	components := InitializeRouter(services, nil, cfg)
	require.NotNil(t, components)
	assert.False(t, components.Config.EnableAuth)
	assert.Nil(t, components.Config.AuthService)
}
