package provider

import "drivermgmt/internal/pci"

// Provider is a candidate driver package for a GPU device.
type Provider struct {
	// Name is the human-readable driver name.
	Name string `json:"name"`
	// Package is the distribution package providing the driver.
	Package string `json:"package"`
	// Module is the kernel module the driver loads.
	Module string `json:"module"`
	// Priority orders candidates; higher is preferred.
	Priority int `json:"priority"`
	// Current reports whether this driver is currently bound to the device.
	Current bool `json:"current,omitempty"`
	// Version is the installed driver version when it could be probed.
	Version string `json:"version,omitempty"`
}

// Resolver maps a detection device to an ordered list of driver
// providers, best candidate first. A nil device yields no providers.
type Resolver interface {
	Resolve(dev *pci.Device) []Provider
}

// DriverProbe reports the version of the installed NVIDIA driver. The
// real implementation talks to NVML and is only compiled in with the
// cuda build tag.
type DriverProbe interface {
	DriverVersion() (string, error)
}
