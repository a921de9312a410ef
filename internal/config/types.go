package config

// Config represents the complete drivermgmt configuration
type Config struct {
	Logging     LoggingConfig              `yaml:"logging"`
	PCI         PCIConfig                  `yaml:"pci"`
	Providers   map[string][]ProviderEntry `yaml:"providers"`
	Diagnostics DiagnosticsConfig          `yaml:"diagnostics"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// PCIConfig represents PCI enumeration configuration
type PCIConfig struct {
	// SysfsRoot overrides the sysfs device directory; mainly useful
	// for inspecting captured sysfs trees.
	SysfsRoot string `yaml:"sysfs_root"`
}

// ProviderEntry represents one driver candidate in a vendor table.
// The map key in Config.Providers is the vendor name: intel, amd or
// nvidia. A configured vendor replaces the built-in table entirely.
type ProviderEntry struct {
	Name     string `yaml:"name"`
	Package  string `yaml:"package"`
	Module   string `yaml:"module"`
	Priority int    `yaml:"priority"`
}

// DiagnosticsConfig represents diagnostic bundle configuration
type DiagnosticsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Path + ": " + e.Message
}
