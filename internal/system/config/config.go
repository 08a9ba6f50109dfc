/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/asgardeo/thunder-oauth/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// Supported store types.
const (
	StoreTypeMemory   = "memory"
	StoreTypeDatabase = "database"
	StoreTypeRedis    = "redis"
)

const (
	defaultHostname            = "localhost"
	defaultPort                = 8090
	defaultTokenValidityPeriod = 3600
	defaultIdentityHeader      = "X-Authenticated-User"
	defaultRedisKeyPrefix      = "oauth2:"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
	InitSchema      bool   `yaml:"init_schema"`
}

// DatabaseConfig holds the database configuration details.
type DatabaseConfig struct {
	Runtime DataSource `yaml:"runtime"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
}

// JWTConfig holds the configuration of the identity tokens signed by the server.
type JWTConfig struct {
	Issuer string `yaml:"issuer"`
}

// TokenConfig holds the access token configuration details.
type TokenConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// StoreConfig selects the backend holding authorization codes and tokens.
type StoreConfig struct {
	Type string `yaml:"type"`
}

// PKCEConfig holds the PKCE configuration details.
type PKCEConfig struct {
	Enforce bool `yaml:"enforce"`
}

// AuthorizeConfig holds the authorization endpoint configuration details.
type AuthorizeConfig struct {
	IdentityHeader string `yaml:"identity_header"`
}

// ClientConfig holds a registered OAuth client.
type ClientConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURIs []string `yaml:"redirect_uris"`
	Confidential bool     `yaml:"confidential"`
}

// ServiceAccountConfig holds a service account allowed to use the JWT bearer grant.
type ServiceAccountConfig struct {
	Issuer     string                 `yaml:"issuer"`
	IdentityID string                 `yaml:"identity_id"`
	Name       string                 `yaml:"name"`
	Email      string                 `yaml:"email"`
	KeyFile    string                 `yaml:"key_file"`
	Claims     map[string]interface{} `yaml:"claims"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	JWT             JWTConfig              `yaml:"jwt"`
	Token           TokenConfig            `yaml:"token"`
	Store           StoreConfig            `yaml:"store"`
	PKCE            PKCEConfig             `yaml:"pkce"`
	Authorize       AuthorizeConfig        `yaml:"authorize"`
	Clients         []ClientConfig         `yaml:"clients"`
	ServiceAccounts []ServiceAccountConfig `yaml:"service_accounts"`
}

// CORSConfig holds the browser origins allowed to call the endpoints.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	CORS     CORSConfig     `yaml:"cors"`
	OAuth    OAuthConfig    `yaml:"oauth"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills the values that are optional in the deployment configuration.
func applyDefaults(cfg *Config) {
	if cfg.Server.Hostname == "" {
		cfg.Server.Hostname = defaultHostname
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.OAuth.Token.ValidityPeriod <= 0 {
		cfg.OAuth.Token.ValidityPeriod = defaultTokenValidityPeriod
	}
	if cfg.OAuth.Store.Type == "" {
		cfg.OAuth.Store.Type = StoreTypeMemory
	}
	if cfg.OAuth.Authorize.IdentityHeader == "" {
		cfg.OAuth.Authorize.IdentityHeader = defaultIdentityHeader
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = defaultRedisKeyPrefix
	}
}

// validate checks the combinations that cannot be defaulted.
func validate(cfg *Config) error {
	switch cfg.OAuth.Store.Type {
	case StoreTypeMemory:
	case StoreTypeDatabase:
		if cfg.Database.Runtime.Type == "" {
			return errors.New("database.runtime must be configured for the database store")
		}
	case StoreTypeRedis:
		if cfg.Redis.URL == "" {
			return errors.New("redis.url must be configured for the redis store")
		}
	default:
		return fmt.Errorf("unsupported store type: %s", cfg.OAuth.Store.Type)
	}

	seen := make(map[string]bool, len(cfg.OAuth.Clients))
	for _, client := range cfg.OAuth.Clients {
		if client.ClientID == "" {
			return errors.New("client_id is required for every registered client")
		}
		if seen[client.ClientID] {
			return fmt.Errorf("duplicate client_id: %s", client.ClientID)
		}
		seen[client.ClientID] = true
	}
	return nil
}
