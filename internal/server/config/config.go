package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application configuration parameters.
// Each field corresponds to an expected environment variable.
type Config struct {
	EnvLogsLevel    string `env:"LOG_LEVEL" envDefault:"info"`                                             // Log level for the application (e.g., DEBUG, INFO)
	EnvLogFileName  string `env:"LOG_FILE_NAME" envDefault:"clovaHome.log"`                                // File's name for log, empty logs to stdout only
	HTTPServer      string `env:"HTTP_SERVER" envDefault:":5000"`                                          // Address of the HTTP server
	ApplicationID   string `env:"APPLICATION_ID" envDefault:"my.application.id"`                           // CEK extension id requests must be addressed to
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`                                        // Language of the answers: en, ja or ko
	DebugMode       bool   `env:"DEBUG_MODE" envDefault:"true"`                                            // Turns off request verification, development only
	SoundURL        string `env:"SOUND_URL" envDefault:"http://soundbible.com/grab.php?id=2215&type=mp3"` // Audio played by PlayASound
	StateCacheSize  int    `env:"STATE_CACHE_SIZE" envDefault:"10000"`                                     // Max homes kept in memory
	RateLimit       int    `env:"RATE_LIMIT" envDefault:"0"`                                               // CEK requests per second, 0 disables the limit
	RateBurst       int    `env:"RATE_BURST" envDefault:"10"`                                              // Burst size of the rate limit
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"5"`                                         // Seconds to wait for in-flight requests on shutdown
}

var supportedLanguages = map[string]bool{"en": true, "ja": true, "ko": true}

// NewConfig initializes a new Config instance from environment variables.
// Variables are first loaded from envFile when it exists.
// It returns a pointer to the Config struct and an error if any of the environment variables are invalid.
func NewConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("new load %s: %w", envFile, err)
			}
			logrus.Infof("env file %s not found, using environment only", envFile)
		}
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if !supportedLanguages[c.DefaultLanguage] {
		return fmt.Errorf("unsupported DEFAULT_LANGUAGE %q (expected en, ja or ko)", c.DefaultLanguage)
	}
	if c.ApplicationID == "" {
		return errors.New("APPLICATION_ID must be non-empty")
	}
	if c.StateCacheSize <= 0 {
		return fmt.Errorf("STATE_CACHE_SIZE must be positive, got %d", c.StateCacheSize)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.New("RATE_LIMIT and RATE_BURST must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %d", c.ShutdownTimeout)
	}
	return nil
}
