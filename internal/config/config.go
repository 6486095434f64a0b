package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Directory for the local database (saved sessions and call journal)
	// Default: ~/.local/share/grooveshark
	DataDir string

	// Grooveshark API credentials and endpoint
	API APIConfig

	// Terminal output settings
	Output OutputConfig

	// Call journal settings
	Journal JournalConfig
}

// APIConfig holds Grooveshark specific configuration
type APIConfig struct {
	ClientKey    string
	ClientSecret string
	BaseURL      string // Empty means the public endpoint
	Timeout      int    // Total call timeout in seconds, 0 means the client default
}

// OutputConfig holds output formatting options
type OutputConfig struct {
	Width int // Maximum column width for tables, 0 disables truncation
}

// JournalConfig controls recording of API calls
type JournalConfig struct {
	Enabled   bool
	Retention int // Days to keep journal entries, 0 keeps everything
}

// envKeyReplacer maps nested keys onto environment names
var envKeyReplacer = strings.NewReplacer(".", "_")

// GetTimeout returns the API timeout as a time.Duration
func (a APIConfig) GetTimeout() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	return loadFrom(getConfigDir())
}

func loadFrom(configDir string) (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 0)
	v.SetDefault("output.width", 40)
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.retention", 30)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables, e.g. GROOVESHARK_API_CLIENT_KEY
	v.SetEnvPrefix("GROOVESHARK")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		DataDir: v.GetString("data_dir"),
		API: APIConfig{
			ClientKey:    v.GetString("api.client_key"),
			ClientSecret: v.GetString("api.client_secret"),
			BaseURL:      v.GetString("api.base_url"),
			Timeout:      v.GetInt("api.timeout"),
		},
		Output: OutputConfig{
			Width: v.GetInt("output.width"),
		},
		Journal: JournalConfig{
			Enabled:   v.GetBool("journal.enabled"),
			Retention: v.GetInt("journal.retention"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "grooveshark")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "grooveshark")
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.saveTo(getConfigDir())
}

func (c *Config) saveTo(configDir string) error {
	v := viper.New()

	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("data_dir", c.DataDir)
	v.Set("api.client_key", c.API.ClientKey)
	v.Set("api.client_secret", c.API.ClientSecret)
	v.Set("api.base_url", c.API.BaseURL)
	v.Set("api.timeout", c.API.Timeout)
	v.Set("output.width", c.Output.Width)
	v.Set("journal.enabled", c.Journal.Enabled)
	v.Set("journal.retention", c.Journal.Retention)

	// Write to file
	return v.WriteConfigAs(configFile)
}
