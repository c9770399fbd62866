package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the specified file path.
// A missing file yields DefaultConfig. Variables from a .env file in the
// working directory are loaded first and ${VAR} patterns are substituted.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		substituteEnvVars(cfg)
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	// viper decodes weakly, so a scalar would silently become a one-element list
	for _, key := range []string{"index.valid_ext", "index.path_exclusions"} {
		if err := requireList(v, key); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// an explicit empty list must not fall back to the defaults
	if v.IsSet("index.valid_ext") {
		cfg.Index.ValidExt = v.GetStringSlice("index.valid_ext")
	}

	substituteEnvVars(cfg)
	return cfg, nil
}

func requireList(v *viper.Viper, key string) error {
	if !v.IsSet(key) {
		return nil
	}
	switch v.Get(key).(type) {
	case nil, []interface{}, []string:
		return nil
	default:
		return &ValidationError{Field: key, Message: "must be a list"}
	}
}

// SaveTo writes the config as YAML to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) {
	cfg.Source.Root = expandEnvVar(cfg.Source.Root)

	cfg.Source.Bucket.Endpoint = expandEnvVar(cfg.Source.Bucket.Endpoint)
	cfg.Source.Bucket.AccessKey = expandEnvVar(cfg.Source.Bucket.AccessKey)
	cfg.Source.Bucket.SecretKey = expandEnvVar(cfg.Source.Bucket.SecretKey)

	for i, p := range cfg.Index.PathExclusions {
		cfg.Index.PathExclusions[i] = expandEnvVar(p)
	}

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}
