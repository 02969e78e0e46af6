package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vietbites/discovery/internal/gazetteer"
)

// Config holds the discovery API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Search    SearchConfig    `yaml:"search"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds catalog store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// GeocodingConfig holds geocoding provider and gazetteer settings.
type GeocodingConfig struct {
	SearchBaseURL  string            `yaml:"search_base_url"`  // suggest/retrieve API
	GeocodeBaseURL string            `yaml:"geocode_base_url"` // plain forward geocoding API
	AccessToken    string            `yaml:"access_token"`
	Country        string            `yaml:"country"`  // ISO country restriction, e.g. "vn"
	Language       string            `yaml:"language"` // preferred-language hint
	BBox           BBox              `yaml:"bbox"`     // operating-region bounding box
	Limit          int               `yaml:"limit"`    // max provider candidates per call
	TimeoutSec     int               `yaml:"timeout_sec"`
	DefaultCenter  LatLon            `yaml:"default_center"` // fallback coordinate
	Gazetteer      []gazetteer.Entry `yaml:"gazetteer"`      // empty = built-in table
}

// BBox is a west,south,east,north bounding box in degrees.
type BBox struct {
	West  float64 `yaml:"west"`
	South float64 `yaml:"south"`
	East  float64 `yaml:"east"`
	North float64 `yaml:"north"`
}

// IsZero reports whether the box is unset.
func (b BBox) IsZero() bool {
	return b.West == 0 && b.South == 0 && b.East == 0 && b.North == 0
}

// String formats the box as the provider expects: "west,south,east,north".
func (b BBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.West, b.South, b.East, b.North)
}

// LatLon is a plain coordinate pair for config use.
type LatLon struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// SearchConfig holds search pipeline settings.
type SearchConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
	MaxCandidates   int `yaml:"max_candidates"` // catalog fetch cap for in-memory ranking
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
// The geocoding defaults target the operating region: Vietnam, centered on Đà Nẵng.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "discovery:"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Geocoding.SearchBaseURL == "" {
		c.Geocoding.SearchBaseURL = "https://api.mapbox.com/search/searchbox/v1"
	}
	if c.Geocoding.GeocodeBaseURL == "" {
		c.Geocoding.GeocodeBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"
	}
	if c.Geocoding.Country == "" {
		c.Geocoding.Country = "vn"
	}
	if c.Geocoding.Language == "" {
		c.Geocoding.Language = "vi"
	}
	if c.Geocoding.BBox.IsZero() {
		c.Geocoding.BBox = BBox{West: 102.14, South: 8.18, East: 109.46, North: 23.39}
	}
	if c.Geocoding.Limit <= 0 {
		c.Geocoding.Limit = 5
	}
	if c.Geocoding.TimeoutSec <= 0 {
		c.Geocoding.TimeoutSec = 5
	}
	if c.Geocoding.DefaultCenter == (LatLon{}) {
		c.Geocoding.DefaultCenter = LatLon{Lat: 16.0544, Lon: 108.2022}
	}
	if len(c.Geocoding.Gazetteer) == 0 {
		c.Geocoding.Gazetteer = gazetteer.Default()
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 20
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.MaxCandidates <= 0 {
		c.Search.MaxCandidates = 5000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Geocoding.DefaultCenter.Lat < -90 || c.Geocoding.DefaultCenter.Lat > 90 ||
		c.Geocoding.DefaultCenter.Lon < -180 || c.Geocoding.DefaultCenter.Lon > 180 {
		return fmt.Errorf("geocoding.default_center out of range")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
