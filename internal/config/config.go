// Package config provides configuration management for mailbox-report-go.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the entire configuration for the application.
type Config struct {
	Organization string `json:"organization"       yaml:"organization"`       // Tenant organization, e.g. contoso.onmicrosoft.com
	Endpoint     string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"` // Optional admin API base URL override
	Auth         Auth   `json:"auth"               yaml:"auth"`               // Azure AD app credentials
	Output       Output `json:"output,omitempty"   yaml:"output,omitempty"`   // Report output settings
}

// Auth holds the Azure AD client-credential triple.
type Auth struct {
	TenantID     string `json:"tenantId"     yaml:"tenantId"`     // Azure AD tenant ID
	ClientID     string `json:"clientId"     yaml:"clientId"`     // Application (client) ID
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"` // Client secret
}

// Output holds report output settings.
type Output struct {
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"` // Default output directory; CLI flag overrides
}

// New loads configuration from the file specified in CLI context.
// It automatically detects the format (JSON or YAML) based on file extension.
// Supported extensions: .json, .yaml, .yml
// It returns an error if the file cannot be read or contains invalid data.
func New(cCtx *cli.Context) (*Config, error) {
	configPath := cCtx.String("config")
	filePath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for config file %q: %w", configPath, err)
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %q does not exist", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %q: %w", filePath, err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid JSON in config file %q: %w", filePath, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in config file %q: %w", filePath, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format %q; supported: .json, .yaml, .yml", ext)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.Organization == "" {
		return fmt.Errorf("organization is required")
	}
	if c.Auth.TenantID == "" {
		return fmt.Errorf("auth tenantId is required")
	}
	if c.Auth.ClientID == "" {
		return fmt.Errorf("auth clientId is required")
	}
	if c.Auth.ClientSecret == "" {
		return fmt.Errorf("auth clientSecret is required")
	}
	return nil
}
