// Package config loads runtime settings for the tzcatalog binaries.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// dotenv files, then the process environment. Environment keys are the YAML
// keys upper-cased with a TZCATALOG_ prefix, e.g. TZCATALOG_DEV_PORT.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/baseurl"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TZCATALOG_"

type Config struct {
	Env          string `yaml:"env"`
	DevFlag      string `yaml:"dev_flag"`
	DevPort      int    `yaml:"dev_port"`
	Addr         string `yaml:"addr"`
	Locale       string `yaml:"locale"`
	ZonesFile    string `yaml:"zones_file"`
	BasePath     string `yaml:"base_path"`
	DefaultLimit int    `yaml:"default_limit"`
	MaxLimit     int    `yaml:"max_limit"`
	EmptySearch  string `yaml:"empty_search"`
	LogLevel     string `yaml:"log_level"`
	HelpHTML     string `yaml:"help_html"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	defaults := timezones.DefaultOptions()
	return Config{
		Env:          "production",
		DevPort:      baseurl.DefaultDevPort,
		Addr:         ":8080",
		DefaultLimit: defaults.DefaultLimit,
		MaxLimit:     defaults.MaxLimit,
		EmptySearch:  string(defaults.EmptySearchMode),
		LogLevel:     "info",
	}
}

// Load reads path (skipped when empty) and envFiles on top of the defaults,
// then applies the process environment. Missing dotenv files are ignored.
func Load(path string, envFiles ...string) (Config, error) {
	return LoadWith(path, os.LookupEnv, envFiles...)
}

// LoadWith is Load with an explicit environment lookup.
func LoadWith(path string, lookup func(string) (string, bool), envFiles ...string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	for _, file := range envFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
		if err := cfg.applyEnv(mapLookup(values)); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", file, err)
		}
	}

	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return Config{}, fmt.Errorf("config: environment: %w", err)
		}
	}

	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func mapLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ENV":          &c.Env,
		"DEV_FLAG":     &c.DevFlag,
		"ADDR":         &c.Addr,
		"LOCALE":       &c.Locale,
		"ZONES_FILE":   &c.ZonesFile,
		"BASE_PATH":    &c.BasePath,
		"EMPTY_SEARCH": &c.EmptySearch,
		"LOG_LEVEL":    &c.LogLevel,
		"HELP_HTML":    &c.HelpHTML,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"DEV_PORT":      &c.DevPort,
		"DEFAULT_LIMIT": &c.DefaultLimit,
		"MAX_LIMIT":     &c.MaxLimit,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s%s: invalid integer %q", EnvPrefix, key, v)
		}
		*dst = n
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if c.DevPort <= 0 || c.DevPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("config: dev_port %d out of range", c.DevPort))
	}
	if c.DefaultLimit <= 0 {
		result = multierror.Append(result, fmt.Errorf("config: default_limit must be positive"))
	}
	if c.MaxLimit <= 0 {
		result = multierror.Append(result, fmt.Errorf("config: max_limit must be positive"))
	}
	if c.DefaultLimit > 0 && c.MaxLimit > 0 && c.DefaultLimit > c.MaxLimit {
		result = multierror.Append(result, fmt.Errorf("config: default_limit %d exceeds max_limit %d", c.DefaultLimit, c.MaxLimit))
	}
	switch timezones.EmptySearchMode(c.EmptySearch) {
	case timezones.EmptySearchNone, timezones.EmptySearchTop:
	default:
		result = multierror.Append(result, fmt.Errorf("config: empty_search %q must be %q or %q", c.EmptySearch, timezones.EmptySearchNone, timezones.EmptySearchTop))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("config: log_level: %w", err))
	}
	return result.ErrorOrNil()
}

// BaseURL returns the environment resolver for these settings.
func (c Config) BaseURL() baseurl.Resolver {
	return baseurl.Resolver{Env: c.Env, DevFlag: c.DevFlag, DevPort: c.DevPort}
}

// Zones reads ZonesFile. A nil slice means the embedded default list.
func (c Config) Zones() ([]string, error) {
	if strings.TrimSpace(c.ZonesFile) == "" {
		return nil, nil
	}
	f, err := os.Open(c.ZonesFile)
	if err != nil {
		return nil, fmt.Errorf("config: open zones file: %w", err)
	}
	defer f.Close()

	zones, err := timezones.LoadZones(f)
	if err != nil {
		return nil, fmt.Errorf("config: zones file %s: %w", c.ZonesFile, err)
	}
	return zones, nil
}

// TimezoneOptions converts the settings into catalog options, loading the
// zones file when one is configured.
func (c Config) TimezoneOptions() ([]timezones.OptionFn, error) {
	zones, err := c.Zones()
	if err != nil {
		return nil, err
	}
	fns := []timezones.OptionFn{
		timezones.WithDefaultLimit(c.DefaultLimit),
		timezones.WithMaxLimit(c.MaxLimit),
		timezones.WithEmptySearchMode(timezones.EmptySearchMode(c.EmptySearch)),
	}
	if zones != nil {
		fns = append(fns, timezones.WithZones(zones))
	}
	return fns, nil
}
