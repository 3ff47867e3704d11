// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"os"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/gophercloud/gophercloud/v2/openstack"
	"gopkg.in/yaml.v3"
)

// Defaults for the validation limits when the config file leaves them unset.
// They match the control plane's stock quota values.
const (
	DefaultMaxSubnetHostRoutes = 20
	DefaultMaxFixedIPsPerPort  = 5
)

// ExtensionClassNone marks an extension that is advertised by name only,
// with no implementation behind it.
const ExtensionClassNone = "None"

// ExtensionDescriptor declares one pluggable extension: a name and an
// optional implementation reference. An empty (or literal "None") class
// enables the extension by name only, with no method overrides.
type ExtensionDescriptor struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
}

// Config holds the driver configuration.
// Note: only endpoints and limits live in the config file. Credentials
// (Username, Password, ProjectID, DomainName) are always read from
// environment variables to keep secrets out of config management.
type Config struct {
	// Endpoint is the SDN controller API server base URL,
	// e.g. http://opensdn-api:8082
	Endpoint string `yaml:"endpoint"`

	// AuthURL is the Keystone identity endpoint used to authenticate
	// against the controller, e.g. https://keystone:5000/v3
	AuthURL string `yaml:"auth_url"`
	Region  string `yaml:"region"`

	// Extensions are loaded in declaration order at driver construction.
	Extensions []ExtensionDescriptor `yaml:"extensions"`

	MaxSubnetHostRoutes int `yaml:"max_subnet_host_routes"`
	MaxFixedIPsPerPort  int `yaml:"max_fixed_ips_per_port"`

	// Read from environment variables only (never stored)
	Username   string `yaml:"-"` // From OS_USERNAME
	Password   string `yaml:"-"` // From OS_PASSWORD
	ProjectID  string `yaml:"-"` // From OS_PROJECT_ID
	DomainName string `yaml:"-"` // From OS_USER_DOMAIN_NAME
}

// Load reads a YAML config file and merges in environment defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes and merges in environment defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.Endpoint == "" {
		c.Endpoint = os.Getenv("SDN_API_ENDPOINT")
	}
	if c.AuthURL == "" {
		c.AuthURL = os.Getenv("OS_AUTH_URL")
	}
	if c.Region == "" {
		c.Region = os.Getenv("OS_REGION_NAME")
	}

	// Credentials are ALWAYS read from environment variables
	c.Username = os.Getenv("OS_USERNAME")
	c.Password = os.Getenv("OS_PASSWORD")
	c.ProjectID = os.Getenv("OS_PROJECT_ID")
	c.DomainName = os.Getenv("OS_USER_DOMAIN_NAME")
	if c.DomainName == "" {
		c.DomainName = "Default"
	}
}

func (c *Config) applyDefaults() {
	if c.MaxSubnetHostRoutes == 0 {
		c.MaxSubnetHostRoutes = DefaultMaxSubnetHostRoutes
	}
	if c.MaxFixedIPsPerPort == 0 {
		c.MaxFixedIPsPerPort = DefaultMaxFixedIPsPerPort
	}
}

// Validate checks the fields every driver needs regardless of transport.
// Credential presence is checked by Authenticate, not here, so offline
// tooling can work with a credential-less config.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required (set SDN_API_ENDPOINT or provide in config file)")
	}
	if c.MaxSubnetHostRoutes < 0 {
		return fmt.Errorf("max_subnet_host_routes must not be negative")
	}
	if c.MaxFixedIPsPerPort < 0 {
		return fmt.Errorf("max_fixed_ips_per_port must not be negative")
	}
	for _, ext := range c.Extensions {
		if ext.Name == "" {
			return fmt.Errorf("extension with class %q has no name", ext.Class)
		}
	}
	return nil
}

// ToAuthOptions converts Config to gophercloud AuthOptions.
func (c *Config) ToAuthOptions() gophercloud.AuthOptions {
	return gophercloud.AuthOptions{
		IdentityEndpoint: c.AuthURL,
		Username:         c.Username,
		Password:         c.Password,
		TenantID:         c.ProjectID,
		DomainName:       c.DomainName,
		AllowReauth:      true,
	}
}

// Authenticate creates an authenticated provider client for the controller
// transport.
func (c *Config) Authenticate(ctx context.Context) (*gophercloud.ProviderClient, error) {
	if c.AuthURL == "" {
		return nil, fmt.Errorf("auth_url is required (set OS_AUTH_URL or provide in config file)")
	}
	if c.Username == "" {
		return nil, fmt.Errorf("OS_USERNAME environment variable is required")
	}
	if c.Password == "" {
		return nil, fmt.Errorf("OS_PASSWORD environment variable is required")
	}

	opts := c.ToAuthOptions()
	provider, err := openstack.NewClient(opts.IdentityEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity client: %w", err)
	}
	if err := openstack.Authenticate(ctx, provider, opts); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return provider, nil
}
