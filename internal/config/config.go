// Package config assembles the application configuration.
package config

import (
	"github.com/neuroblog/neuroblog/internal/agent"
	"github.com/neuroblog/neuroblog/internal/agent/gen"
	"github.com/neuroblog/neuroblog/pkg/config"
	"github.com/neuroblog/neuroblog/pkg/storage"
)

// Config is the full application configuration. Missing provider keys
// degrade to fallback behavior; nothing here is allowed to be fatal
// except an unreadable config file.
type Config struct {
	Port      string         `yaml:"port" env:"API_PORT"`
	JWTSecret string         `yaml:"jwt_secret" env:"JWT_SECRET"`
	Database  storage.Config `yaml:"database"`

	NewsAPIKey   string `yaml:"news_api_key" env:"NEWS_API_KEY"`
	PexelsAPIKey string `yaml:"pexels_api_key" env:"PEXELS_API_KEY"`

	Generation gen.Config   `yaml:"generation"`
	Agent      agent.Config `yaml:"agent"`

	RSSFeeds []string `yaml:"rss_feeds"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Port:       "8080",
		JWTSecret:  "neuroblog-dev-secret",
		Generation: gen.DefaultConfig(),
		Agent:      agent.DefaultConfig(),
	}
}

// Load reads configuration from path (optional) over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := config.LoadOrDefault(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
