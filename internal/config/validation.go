package config

import (
	"fmt"
	"path/filepath"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validatePCI()...)
	errors = append(errors, c.validateProviders()...)

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		errors = append(errors, ValidationError{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validLevels, c.Logging.Level),
		})
	}

	validFormats := []string{"json", "console"}
	if !contains(validFormats, c.Logging.Format) {
		errors = append(errors, ValidationError{
			Path:    "logging.format",
			Message: fmt.Sprintf("must be one of %v, got '%s'", validFormats, c.Logging.Format),
		})
	}

	return errors
}

func (c *Config) validatePCI() []ValidationError {
	if c.PCI.SysfsRoot == "" || filepath.IsAbs(c.PCI.SysfsRoot) {
		return nil
	}

	return []ValidationError{{
		Path:    "pci.sysfs_root",
		Message: fmt.Sprintf("must be an absolute path, got '%s'", c.PCI.SysfsRoot),
	}}
}

func (c *Config) validateProviders() []ValidationError {
	var errors []ValidationError

	validVendors := []string{"intel", "amd", "nvidia"}
	for vendor, entries := range c.Providers {
		if !contains(validVendors, vendor) {
			errors = append(errors, ValidationError{
				Path:    "providers." + vendor,
				Message: fmt.Sprintf("vendor must be one of %v", validVendors),
			})
			continue
		}
		for i, entry := range entries {
			if entry.Package == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("providers.%s[%d].package", vendor, i),
					Message: "must not be empty",
				})
			}
			if entry.Module == "" {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("providers.%s[%d].module", vendor, i),
					Message: "must not be empty",
				})
			}
			if entry.Priority < 0 {
				errors = append(errors, ValidationError{
					Path:    fmt.Sprintf("providers.%s[%d].priority", vendor, i),
					Message: fmt.Sprintf("must be non-negative, got %d", entry.Priority),
				})
			}
		}
	}

	return errors
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
