package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
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
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// IsValidationError reports whether err is, or wraps, a configuration error.
func IsValidationError(err error) bool {
	var single ValidationError
	var singlePtr *ValidationError
	var many ValidationErrors
	return errors.As(err, &single) || errors.As(err, &singlePtr) || errors.As(err, &many)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, ValidateExtensions("index.valid_ext", c.Index.ValidExt)...)
	errors = append(errors, c.validateSource()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateExtensions checks that exts is non-empty and that every entry is a
// non-empty string beginning with ".".
func ValidateExtensions(field string, exts []string) ValidationErrors {
	var errors ValidationErrors

	if len(exts) == 0 {
		return append(errors, ValidationError{
			Field:   field,
			Message: "at least one extension is required",
		})
	}

	for i, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}

	return errors
}

func (c *Config) validateSource() ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(c.Source.Root) == "" {
		errors = append(errors, ValidationError{
			Field:   "source.root",
			Message: "root is required",
		})
	}

	if strings.HasPrefix(c.Source.Root, "s3://") {
		if c.Source.Bucket.Endpoint == "" {
			errors = append(errors, ValidationError{
				Field:   "source.bucket.endpoint",
				Message: "endpoint is required for s3:// roots",
			})
		}
		if c.Source.Bucket.AccessKey == "" || c.Source.Bucket.SecretKey == "" {
			errors = append(errors, ValidationError{
				Field:   "source.bucket",
				Message: "access_key and secret_key are required for s3:// roots",
			})
		}
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validSorts := map[string]bool{"name": true, "path": true}
	if !validSorts[c.Output.Sort] {
		errors = append(errors, ValidationError{
			Field:   "output.sort",
			Message: "sort must be 'name' or 'path'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging",
			Message: "rotation settings cannot be negative",
		})
	}

	return errors
}
