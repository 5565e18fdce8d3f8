/* config_test.go
 * Contains unit tests for configuration loading and validation
 * Authors: Zachary Bower
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "worldcup", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.Pipeline.StatsTTL)
	assert.Equal(t, 5, cfg.Pipeline.RecentFixtureCount)
	assert.Equal(t, "gemini-2.5-flash", cfg.Providers.GeminiModel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
}

func TestLoad_YamlOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
  allowed_origins:
    - "https://worldcup.example.com"
pipeline:
  stats_ttl: 1h
  update_interval: 30m
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://worldcup.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Pipeline.StatsTTL)
	assert.Equal(t, 30*time.Minute, cfg.Pipeline.UpdateInterval)
	// Untouched sections keep their defaults
	assert.Equal(t, "worldcup", cfg.Database.Name)
	assert.Equal(t, 5, cfg.Pipeline.RecentFixtureCount)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_SecretsFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("API_FOOTBALL_KEY", "foot-key")
	t.Setenv("DISCORD_TOKEN", "disc-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.MongoURI)
	assert.Equal(t, "gem-key", cfg.GeminiAPIKey)
	assert.Equal(t, "foot-key", cfg.FootballAPIKey)
	assert.Equal(t, "disc-token", cfg.DiscordToken)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	assert.NoError(t, cfg.Validate(false))

	// Bot requires a token
	assert.Error(t, cfg.Validate(true))
	cfg.DiscordToken = "token"
	assert.NoError(t, cfg.Validate(true))

	cfg.Pipeline.StatsTTL = 0
	assert.Error(t, cfg.Validate(false))

	cfg = defaults()
	cfg.Database.Name = ""
	assert.Error(t, cfg.Validate(false))
}
