package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var conf = mustLoad()

type Config struct {
	Configuration struct {
		// Spotify OAuth app credentials
		SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID" default:""`
		SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET" default:""`
		RedirectURI         string `envconfig:"REDIRECT_URI" default:"http://127.0.0.1:8000/callback"`
		FrontendURI         string `envconfig:"FRONTEND_URI" default:"http://127.0.0.1:5173"`

		// Gemini API configuration
		GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" default:""`
		GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-001"`
		GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`

		SearchResultLimit    int `envconfig:"SEARCH_RESULT_LIMIT" default:"5"`
		StateTTLInSeconds    int `envconfig:"STATE_TTL_IN_SECONDS" default:"600"`
		HTTPTimeoutInSeconds int `envconfig:"HTTP_TIMEOUT_IN_SECONDS" default:"15"`

		RateLimitPerSecond  int `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`
		RateLimitBurstLimit int `envconfig:"RATE_LIMIT_BURST_LIMIT" default:"10"`

		StatsAccessToken string `envconfig:"STATS_ACCESS_TOKEN" default:""`
	}
}

// load loads the configuration from the environment.
func load() (Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Warnf("Error loading env config: %v", err)
	}

	cfg := Config{}
	err = envconfig.Process("", &cfg)
	return cfg, err
}

func mustLoad() Config {
	c, err := load()
	if err != nil {
		log.WithError(err).Warnf("Unable to load configuration")
	}

	return c
}

func Get() Config {
	return conf
}

// Reload re-reads the environment, replacing the cached configuration.
// Intended for tests that mutate the environment after package init.
func Reload() Config {
	conf = mustLoad()
	return conf
}
