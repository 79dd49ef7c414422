package main

import (
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8000,
			LogLevel:        "debug",
			ShutdownTimeout: 2 * time.Second,
			CORS:            config.CORSConfig{AllowedOrigins: []string{"*"}},
		},
		API: config.APIConfig{
			DefaultPageLimit: 50,
			MaxPageLimit:     100,
		},
	}
}

// newTestApplication wires the application with a fixed clock and a captured logger.
func newTestApplication(t *testing.T, now time.Time) (*application, *logger.TestLogBuffer) {
	t.Helper()

	buf, log := logger.NewTestLogger()
	app, err := newApplication(testConfig(), log, memory.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return app, buf
}
