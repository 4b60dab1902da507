// Package config loads dynform settings from defaults, an optional YAML
// config file, an optional .env file and DYNFORM_* environment variables,
// in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configFileName = "dynform"
	configFileType = "yaml"
	envPrefix      = "DYNFORM_"
	defaultEnvFile = ".env"

	KeyCatalog      = "catalog"
	KeyOpenAPI      = "openapi"
	KeyAddr         = "addr"
	KeyRenderer     = "renderer"
	KeyLogLevel     = "log_level"
	KeyTheme        = "theme"
	KeyThemeVariant = "theme_variant"
	KeyFormType     = "form_type"
	KeyTemplatesDir = "templates_dir"
)

// Config is the resolved application configuration.
type Config struct {
	// Catalog is a YAML/JSON catalog file or directory. Empty uses the
	// embedded default catalog.
	Catalog string `mapstructure:"catalog" env:"CATALOG"`
	// OpenAPI is an OpenAPI document whose operations become form types.
	// It replaces Catalog when set.
	OpenAPI string `mapstructure:"openapi" env:"OPENAPI"`
	// Addr is the HTTP listen address for serve.
	Addr string `mapstructure:"addr" env:"ADDR"`
	// Renderer names the default renderer (vanilla, json, text).
	Renderer string `mapstructure:"renderer" env:"RENDERER"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" env:"LOG_LEVEL"`
	// Theme and ThemeVariant select the go-theme palette.
	Theme        string `mapstructure:"theme" env:"THEME"`
	ThemeVariant string `mapstructure:"theme_variant" env:"THEME_VARIANT"`
	// FormType is the initially selected form type. Empty means the first
	// catalog entry.
	FormType string `mapstructure:"form_type" env:"FORM_TYPE"`
	// TemplatesDir overrides the embedded HTML templates.
	TemplatesDir string `mapstructure:"templates_dir" env:"TEMPLATES_DIR"`
}

// LoadOptions locate the optional sources.
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string
	// ConfigDir is searched for dynform.yaml when ConfigFile is empty. A
	// missing file there is not an error. Defaults to the working directory.
	ConfigDir string
	// EnvFile is a .env file. The default ".env" may be absent; an explicit
	// path must exist.
	EnvFile string
	// Environ replaces the process environment, mainly for tests.
	Environ map[string]string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:     ":8080",
		Renderer: "vanilla",
		LogLevel: "info",
		Theme:    "dynform",
	}
}

// Load resolves the configuration.
func Load(opts LoadOptions) (Config, error) {
	v, err := readConfigFile(opts)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	environ, err := environment(opts)
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      envPrefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	cfg.normalize()
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if c.Renderer == "" {
		return errors.New("config: renderer is required")
	}
	return nil
}

func (c *Config) normalize() {
	c.Catalog = strings.TrimSpace(c.Catalog)
	c.OpenAPI = strings.TrimSpace(c.OpenAPI)
	c.Addr = strings.TrimSpace(c.Addr)
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Theme = strings.TrimSpace(c.Theme)
	c.ThemeVariant = strings.TrimSpace(c.ThemeVariant)
	c.FormType = strings.TrimSpace(c.FormType)
	c.TemplatesDir = strings.TrimSpace(c.TemplatesDir)
}

func readConfigFile(opts LoadOptions) (*viper.Viper, error) {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault(KeyAddr, defaults.Addr)
	v.SetDefault(KeyRenderer, defaults.Renderer)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyTheme, defaults.Theme)
	for _, key := range []string{KeyCatalog, KeyOpenAPI, KeyThemeVariant, KeyFormType, KeyTemplatesDir} {
		v.SetDefault(key, "")
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.ConfigFile, err)
		}
		return v, nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		dir = "."
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("config: read config: %w", err)
	}
	return v, nil
}

// environment merges the .env file under the real environment, so variables
// already set win over the file.
func environment(opts LoadOptions) (map[string]string, error) {
	base := opts.Environ
	if base == nil {
		base = env.ToMap(os.Environ())
	}

	path := opts.EnvFile
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, fmt.Errorf("config: read env file %s: %w", path, err)
	}

	merged := make(map[string]string, len(base)+len(fileVars))
	for key, value := range fileVars {
		merged[key] = value
	}
	for key, value := range base {
		merged[key] = value
	}
	return merged, nil
}
