package config

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		PCI: PCIConfig{
			SysfsRoot: "/sys/bus/pci/devices",
		},
		Providers: map[string][]ProviderEntry{},
		Diagnostics: DiagnosticsConfig{
			OutputDir: ".",
		},
	}
}
