// Package config loads and validates the console server configuration.
package config

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"corebo/console/internal/logger"
)

// Config is the top-level application configuration.
type Config struct {
	App        AppConfig      `yaml:"app"`
	Server     ServerConfig   `yaml:"server"`
	Database   DatabaseConfig `yaml:"database"`
	Redis      RedisConfig    `yaml:"redis"`
	Log        logger.Config  `yaml:"log"`
	SaToken    SaTokenConfig  `yaml:"sa_token"`
	Workflow   WorkflowConfig `yaml:"workflow"`
	Search     SearchConfig   `yaml:"search"`
	Dictionary DictConfig     `yaml:"dictionary"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"` // dev, test, prod
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
}

// DatabaseConfig holds relational database settings.
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // mysql, postgres
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	Charset         string `yaml:"charset"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SaTokenConfig holds session token settings.
type SaTokenConfig struct {
	TokenName     string `yaml:"token_name"`
	Timeout       int64  `yaml:"timeout"`        // seconds
	ActiveTimeout int64  `yaml:"active_timeout"` // seconds
	IsConcurrent  bool   `yaml:"is_concurrent"`
	IsShare       bool   `yaml:"is_share"`
	MaxLoginCount int    `yaml:"max_login_count"`
	IsLog         bool   `yaml:"is_log"`
}

// WorkflowConfig holds the upstream core-banking workflow service settings.
type WorkflowConfig struct {
	BaseURL     string `yaml:"base_url"`
	ExecutePath string `yaml:"execute_path"` // request path for workflow execution
	Timeout     int    `yaml:"timeout"`      // seconds, client-side per-call timeout
}

// SearchConfig bounds paginated and unranged search calls.
type SearchConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
	MaxUnrangedRows int `yaml:"max_unranged_rows"` // safety cap for load-all lookups
}

// DictConfig points at the locale message dictionary.
type DictConfig struct {
	Path          string `yaml:"path"`
	DefaultLocale string `yaml:"default_locale"`
}

var (
	globalConfig *Config
	once         sync.Once
)

// LoadConfig reads, parses and validates the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := NewValidator().Validate(&cfg); err != nil {
		return nil, err
	}

	once.Do(func() {
		globalConfig = &cfg
	})

	return &cfg, nil
}

// GetConfig returns the loaded global configuration.
func GetConfig() *Config {
	return globalConfig
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5800
	}
	if c.Workflow.ExecutePath == "" {
		c.Workflow.ExecutePath = "/api/v1/execute"
	}
	if c.Workflow.Timeout == 0 {
		c.Workflow.Timeout = 30
	}
	if c.Search.DefaultPageSize == 0 {
		c.Search.DefaultPageSize = 10
	}
	if c.Search.MaxPageSize == 0 {
		c.Search.MaxPageSize = 200
	}
	if c.Search.MaxUnrangedRows == 0 {
		c.Search.MaxUnrangedRows = 1000
	}
	if c.Dictionary.DefaultLocale == "" {
		c.Dictionary.DefaultLocale = "en"
	}
	if c.SaToken.TokenName == "" {
		c.SaToken.TokenName = "satoken"
	}
	if c.SaToken.Timeout == 0 {
		c.SaToken.Timeout = 86400
	}
}
