package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

// Environment variables that override the active profile.
const (
	EnvHome      = "MEDASSIST_HOME"
	EnvAPIKey    = "MEDASSIST_API_KEY"
	EnvBaseURL   = "MEDASSIST_BASE_URL"
	EnvSiteTitle = "MEDASSIST_SITE_TITLE"
	EnvReferer   = "MEDASSIST_REFERER"
)

type Profile struct {
	APIKey    string `json:"api_key"`
	BaseURL   string `json:"base_url,omitempty"`
	SiteTitle string `json:"site_title,omitempty"`
	Referer   string `json:"referer,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
}

// LoadConfig reads the profile file, creating it on first use, then applies
// any MEDASSIST_* overrides from the environment or a local .env file.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}
	config.applyEnv()

	return config, nil
}

// UseProfile makes name the active profile for this process without saving.
func (c *Config) UseProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	if err := c.setCurrentProfile(); err != nil {
		return err
	}
	c.applyEnv()
	return nil
}

// IsValid reports whether the active profile has enough to reach the endpoint.
// An invalid profile is still usable; the request failure tells the user why.
func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != "" && c.currentProfile.BaseURL != ""
}

func (c *Config) GetAPIKey() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.APIKey
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

func (c *Config) GetSiteTitle() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.SiteTitle
}

func (c *Config) GetReferer() string {
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.Referer
}

// Dir is the directory holding config.json and the log file.
func Dir() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

func getConfigPath() (string, error) {
	var configDir string

	if home := os.Getenv(EnvHome); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".medassist", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultProfile is the profile written on first run.
func DefaultProfile() Profile {
	return Profile{BaseURL: DefaultBaseURL}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": DefaultProfile(),
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	// The file holds API keys.
	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to any profile, preferring "default".
		name := "default"
		if _, ok := c.Profiles[name]; !ok {
			for n := range c.Profiles {
				name = n
				break
			}
		}
		c.ActiveProfile = name
		profile = c.Profiles[name]
	}

	c.currentProfile = &profile
	return nil
}

// applyEnv overrides the in-memory copy of the active profile only; Save
// never persists environment values.
func (c *Config) applyEnv() {
	if c.currentProfile == nil {
		return
	}
	overrides := map[string]*string{
		EnvAPIKey:    &c.currentProfile.APIKey,
		EnvBaseURL:   &c.currentProfile.BaseURL,
		EnvSiteTitle: &c.currentProfile.SiteTitle,
		EnvReferer:   &c.currentProfile.Referer,
	}
	for env, field := range overrides {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*field = v
		}
	}
}
