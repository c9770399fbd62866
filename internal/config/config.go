// Package config provides configuration structures and loading for goiconindex.
package config

// Config represents the complete application configuration.
type Config struct {
	Index   IndexConfig   `yaml:"index" mapstructure:"index"`
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// IndexConfig controls which resource paths are enumerated.
type IndexConfig struct {
	ValidExt       []string `yaml:"valid_ext" mapstructure:"valid_ext"`             // each must start with "."
	PathExclusions []string `yaml:"path_exclusions" mapstructure:"path_exclusions"` // raw path prefixes
}

// SourceConfig describes where resources are enumerated from.
type SourceConfig struct {
	Root   string       `yaml:"root" mapstructure:"root"` // directory, .zip file or s3://bucket/prefix
	Bucket BucketConfig `yaml:"bucket" mapstructure:"bucket"`
}

// BucketConfig holds S3-compatible credentials for s3:// roots.
type BucketConfig struct {
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	Region    string `yaml:"region" mapstructure:"region"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
}

// OutputConfig represents presentation settings for the CLI.
type OutputConfig struct {
	Sort  string `yaml:"sort" mapstructure:"sort"` // name or path
	Color bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format     string `yaml:"format" mapstructure:"format"` // json or text
	Output     string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// DefaultValidExt is used when no extension list is configured.
var DefaultValidExt = []string{".png", ".svg"}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			ValidExt:       append([]string(nil), DefaultValidExt...),
			PathExclusions: []string{},
		},
		Source: SourceConfig{
			Root: ".",
			Bucket: BucketConfig{
				Region: "us-east-1",
				UseSSL: true,
			},
		},
		Output: OutputConfig{
			Sort:  "name",
			Color: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if len(o.ValidExt) > 0 {
		c.Index.ValidExt = o.ValidExt
	}
	if len(o.PathExclusions) > 0 {
		c.Index.PathExclusions = append(c.Index.PathExclusions, o.PathExclusions...)
	}
	if o.Sort != "" {
		c.Output.Sort = o.Sort
	}
	if o.Root != "" {
		c.Source.Root = o.Root
	}
	if o.NoColor {
		c.Output.Color = false
	}
}

// Overrides contains flag values that override config file settings.
type Overrides struct {
	LogLevel       string
	LogFormat      string
	ValidExt       []string
	PathExclusions []string
	Sort           string
	Root           string
	NoColor        bool
}
