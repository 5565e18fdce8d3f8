/* config.go
 * Contains the application configuration. Non-secret settings come from a yaml file,
 * secrets (tokens, connection strings, API keys) come from the environment, loaded
 * from .env in development. Every yaml field has a working default so a missing
 * config file is not an error.
 * Authors: Zachary Bower
 */

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Providers ProvidersConfig `yaml:"providers"`

	// Secrets, environment only
	MongoURI       string `yaml:"-"`
	GeminiAPIKey   string `yaml:"-"`
	FootballAPIKey string `yaml:"-"`
	DiscordToken   string `yaml:"-"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Name string `yaml:"name"`
}

type PipelineConfig struct {
	StatsTTL           time.Duration `yaml:"stats_ttl"`
	RecentFixtureCount int           `yaml:"recent_fixture_count"`
	UpdateInterval     time.Duration `yaml:"update_interval"`
	RankingInterval    time.Duration `yaml:"ranking_interval"`
}

type ProvidersConfig struct {
	GeminiModel string `yaml:"gemini_model"`
}

// defaults returns the configuration used when no yaml file overrides it
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Name: "worldcup",
		},
		Pipeline: PipelineConfig{
			StatsTTL:           24 * time.Hour,
			RecentFixtureCount: 5,
			UpdateInterval:     time.Hour,
			RankingInterval:    24 * time.Hour,
		},
		Providers: ProvidersConfig{
			GeminiModel: "gemini-2.5-flash",
		},
	}
}

// Load builds the configuration from the optional yaml file at configPath and
// the environment.
// Preconditions: Receives the yaml path; an empty path or missing file keeps the defaults
// Postconditions: Returns the merged configuration, or an error if the file is unreadable
// or malformed
func Load(configPath string) (*Config, error) {
	config := defaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.MongoURI = os.Getenv("MONGO_URI")
	if config.MongoURI == "" {
		config.MongoURI = "mongodb://localhost:27017"
	}
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	config.FootballAPIKey = os.Getenv("API_FOOTBALL_KEY")
	config.DiscordToken = os.Getenv("DISCORD_TOKEN")

	return config, nil
}

// Validate checks that the configuration can actually run the requested services.
// Preconditions: Receives flags for which services will start
// Postconditions: Returns nil, or an error naming the missing setting
func (c *Config) Validate(withBot bool) error {
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Pipeline.StatsTTL <= 0 {
		return fmt.Errorf("stats_ttl must be positive")
	}
	if c.Pipeline.RecentFixtureCount <= 0 {
		return fmt.Errorf("recent_fixture_count must be positive")
	}
	if withBot && c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required when the bot is enabled")
	}
	return nil
}
