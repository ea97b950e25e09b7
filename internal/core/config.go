package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teachpad/learning-assist/pkg/resync"
)

// Default configuration, used when no config file exists.
const DefaultConfig = `
[server]
listen_addr = "127.0.0.1:8080"

[database]
path = "learning-assist.db"

[ai]
default_model = "gemini-2.5-pro"
timeout_seconds = 80
max_daily_requests = 1000
`

var (
	// Lazy-load configuration and ensure a single read
	configOnce      resync.Once
	configSingleton *Config
)

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Server   ConfigServer
	Database ConfigDatabase
	AI       ConfigAI
}
type ConfigServer struct {
	ListenAddr string `toml:"listen_addr"`
}
type ConfigDatabase struct {
	Path string `toml:"path"`
}
type ConfigAI struct {
	DefaultModel     string `toml:"default_model"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	MaxDailyRequests int    `toml:"max_daily_requests"`
}

type Config struct {
	// Path of the config file actually read (empty when defaults applied)
	ConfigFilepath string

	ConfigFile ConfigFile

	// Secrets, read from the environment only
	GeminiAPIKey  string
	ClaudeAPIKey  string
	YouTubeAPIKey string
	JWTSecret     string
}

// CurrentConfig returns the process configuration, reading it on first use.
func CurrentConfig() *Config {
	configOnce.Do(func() {
		config, err := ReadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		configSingleton = config
	})
	return configSingleton
}

// ReadConfig loads the TOML config file, falling back to defaults.
// The file is searched at $LA_CONFIG, then ~/.learning-assist.toml.
func ReadConfig() (*Config, error) {
	path := os.Getenv("LA_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			candidate := filepath.Join(home, ".learning-assist.toml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	raw := []byte(DefaultConfig)
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config file %q: %w", path, err)
		}
		raw = content
	}

	var file ConfigFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("unable to parse config file %q: %w", path, err)
	}
	applyConfigDefaults(&file)

	return &Config{
		ConfigFilepath: path,
		ConfigFile:     file,
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ClaudeAPIKey:   os.Getenv("CLAUDE_API_KEY"),
		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
		JWTSecret:      os.Getenv("LA_JWT_SECRET"),
	}, nil
}

func applyConfigDefaults(file *ConfigFile) {
	if file.Server.ListenAddr == "" {
		file.Server.ListenAddr = "127.0.0.1:8080"
	}
	if file.Database.Path == "" {
		file.Database.Path = "learning-assist.db"
	}
	if file.AI.DefaultModel == "" {
		file.AI.DefaultModel = "gemini-2.5-pro"
	}
	if file.AI.TimeoutSeconds == 0 {
		file.AI.TimeoutSeconds = 80
	}
	if file.AI.MaxDailyRequests == 0 {
		file.AI.MaxDailyRequests = 1000
	}
}

// SetVerboseLevel is a convenience to configure the logger from CLI flags.
func (c *Config) SetVerboseLevel(level VerboseLevel) *Config {
	CurrentLogger().SetVerboseLevel(level)
	return c
}

// Reset clears the config singleton. Only used by tests.
func Reset() {
	configOnce.Reset()
	configSingleton = nil
}
