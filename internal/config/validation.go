package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration values.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: message})
}

// Validate validates the entire configuration and returns any errors.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = make(ValidationErrors, 0)

	v.validateServer(&cfg.Server)
	v.validateDatabase(&cfg.Database)
	v.validateWorkflow(&cfg.Workflow)
	v.validateSearch(&cfg.Search)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

func (v *Validator) validateServer(cfg *ServerConfig) {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		v.addError("server.port", "port must be between 1 and 65535")
	}
	if cfg.ReadTimeout < 0 {
		v.addError("server.read_timeout", "read timeout must be non-negative")
	}
	if cfg.WriteTimeout < 0 {
		v.addError("server.write_timeout", "write timeout must be non-negative")
	}
}

func (v *Validator) validateDatabase(cfg *DatabaseConfig) {
	switch cfg.Driver {
	case "mysql", "postgres":
	case "":
		v.addError("database.driver", "driver is required")
	default:
		v.addError("database.driver", fmt.Sprintf("unsupported driver %q, expected mysql or postgres", cfg.Driver))
	}
	if cfg.Host == "" {
		v.addError("database.host", "host is required")
	}
	if cfg.Database == "" {
		v.addError("database.database", "database name is required")
	}
	if cfg.MaxIdleConns < 0 {
		v.addError("database.max_idle_conns", "must be non-negative")
	}
	if cfg.MaxOpenConns < 0 {
		v.addError("database.max_open_conns", "must be non-negative")
	}
}

func (v *Validator) validateWorkflow(cfg *WorkflowConfig) {
	if cfg.BaseURL == "" {
		v.addError("workflow.base_url", "base_url is required")
	} else if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		v.addError("workflow.base_url", "base_url must start with http:// or https://")
	}
	if cfg.Timeout <= 0 {
		v.addError("workflow.timeout", "timeout must be positive")
	}
}

func (v *Validator) validateSearch(cfg *SearchConfig) {
	if cfg.DefaultPageSize <= 0 {
		v.addError("search.default_page_size", "must be positive")
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		v.addError("search.max_page_size", "must be >= default_page_size")
	}
	if cfg.MaxUnrangedRows <= 0 {
		v.addError("search.max_unranged_rows", "must be positive")
	}
}
