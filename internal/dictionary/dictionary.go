// Package dictionary provides the locale-keyed message dictionary consumed
// by handlers and the form orchestrator. Loading lives here; locale
// negotiation is the caller's concern.
package dictionary

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Dictionary maps locale -> message key -> template string.
type Dictionary struct {
	mu            sync.RWMutex
	messages      map[string]map[string]string
	defaultLocale string
}

// New creates an empty dictionary with a fallback locale.
func New(defaultLocale string) *Dictionary {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	return &Dictionary{
		messages:      make(map[string]map[string]string),
		defaultLocale: defaultLocale,
	}
}

// Load reads a YAML file of the form locale -> key -> message.
func Load(path, defaultLocale string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}

	var messages map[string]map[string]string
	if err := yaml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}

	d := New(defaultLocale)
	d.messages = messages
	return d, nil
}

// Set stores one message. Used by tests and for built-in fallbacks.
func (d *Dictionary) Set(locale, key, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.messages[locale] == nil {
		d.messages[locale] = make(map[string]string)
	}
	d.messages[locale][key] = message
}

// T resolves a message key for the locale, falling back to the default
// locale and finally to the key itself, and applies Sprintf args.
func (d *Dictionary) T(locale, key string, args ...any) string {
	d.mu.RLock()
	template, ok := d.messages[locale][key]
	if !ok {
		template, ok = d.messages[d.defaultLocale][key]
	}
	d.mu.RUnlock()

	if !ok {
		template = key
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

// Has reports whether the key exists for the locale or the fallback.
func (d *Dictionary) Has(locale, key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if _, ok := d.messages[locale][key]; ok {
		return true
	}
	_, ok := d.messages[d.defaultLocale][key]
	return ok
}
