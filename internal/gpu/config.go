// Package gpu classifies the GPU topology of a system. Given the GPU
// devices discovered on the PCI bus, it determines the primary (boot
// display) device, the secondary discrete device in hybrid setups, and
// the topology category: single GPU, NVIDIA Optimus, AMD hybrid
// graphics, SLI/Crossfire composite, or an unclassified multi-GPU
// arrangement. The detection device it selects drives graphics driver
// selection for the whole system.
package gpu

import (
	"go.uber.org/zap"

	"drivermgmt/internal/pci"
	"drivermgmt/internal/provider"
)

// Config is the immutable result of a topology classification pass.
//
// A Config holds borrowed references into the catalog it was built
// from and must not outlive it. All accessors are safe on a nil
// receiver and return their type's zero value; a nil receiver is
// caller misuse, not a runtime condition.
type Config struct {
	count     uint
	primary   *pci.Device
	secondary *pci.Device
	topology  TopologyType
}

// NewConfig classifies the GPU topology from a device catalog snapshot.
func NewConfig(catalog pci.Catalog, logger *zap.Logger) *Config {
	return Classify(catalog.GPUDevices(), logger)
}

// Classify builds a Config from an ordered list of GPU devices. The
// input is assumed pre-filtered to GPU-class PCI devices, with index 0
// being the first device discovered.
//
// Classification is total: every input, including an empty list, yields
// a valid configuration. Only the zero-GPU case is logged.
func Classify(devices []*pci.Device, logger *zap.Logger) *Config {
	c := &Config{
		count:    uint(len(devices)),
		topology: Simple,
	}

	if c.count == 0 {
		if logger != nil {
			logger.Warn("failed to discover any GPUs")
		}
		return c
	}

	// Safety set: always have a primary.
	c.primary = devices[0]

	if c.count == 1 {
		return c
	}

	// The first device carrying boot_vga is the boot device; systems
	// without the attribute fall back to the first discovered device.
	boot := searchBoot(devices, true, nil)
	if boot == nil {
		boot = devices[0]
	}
	c.primary = boot

	// Find a non-boot device that isn't the boot device. May be nil
	// when every device claims boot_vga.
	nonBoot := searchBoot(devices, false, boot)

	if c.applyOptimus(boot, nonBoot) {
		return c
	}

	if c.applyAMDHybrid(boot, nonBoot) {
		return c
	}

	// Composite graphics: two discrete GPUs from the same vendor.
	if nonBoot != nil && boot.Vendor == nonBoot.Vendor {
		switch boot.Vendor {
		case pci.VendorAMD:
			c.topology = Composite | Crossfire
			return c
		case pci.VendorNVIDIA:
			c.topology = Composite | SLI
			return c
		}
	}

	// No heuristic matched; treat as a simple device.
	c.topology = Simple
	return c
}

// searchBoot returns the first device whose boot_vga attribute matches
// bootVGA, skipping notLike. Returns nil when no device matches.
func searchBoot(devices []*pci.Device, bootVGA bool, notLike *pci.Device) *pci.Device {
	for _, dev := range devices {
		if dev == notLike {
			continue
		}
		if dev.BootVGA == bootVGA {
			return dev
		}
	}
	return nil
}

// applyOptimus detects an NVIDIA Optimus system: the boot device must be
// an Intel iGPU with boot_vga, the non-boot device an NVIDIA dGPU.
func (c *Config) applyOptimus(boot, nonBoot *pci.Device) bool {
	if nonBoot == nil {
		return false
	}
	if !boot.BootVGA || nonBoot.BootVGA {
		return false
	}
	if boot.Vendor != pci.VendorIntel {
		return false
	}
	if nonBoot.Vendor != pci.VendorNVIDIA {
		return false
	}

	c.topology = Hybrid | Optimus
	c.primary = boot
	c.secondary = nonBoot
	return true
}

// applyAMDHybrid detects AMD hybrid graphics: the boot device must be an
// AMD APU or Intel iGPU with boot_vga, the non-boot device an AMD dGPU.
func (c *Config) applyAMDHybrid(boot, nonBoot *pci.Device) bool {
	if nonBoot == nil {
		return false
	}
	if !boot.BootVGA || nonBoot.BootVGA {
		return false
	}
	if boot.Vendor != pci.VendorIntel && boot.Vendor != pci.VendorAMD {
		return false
	}
	if nonBoot.Vendor != pci.VendorAMD {
		return false
	}

	c.topology = Hybrid
	c.primary = boot
	c.secondary = nonBoot
	return true
}

// Count returns the number of GPUs present on the system.
func (c *Config) Count() uint {
	if c == nil {
		return 0
	}
	return c.count
}

// Type returns the topology flag set for this configuration.
func (c *Config) Type() TopologyType {
	if c == nil {
		return Simple
	}
	return c.topology
}

// HasType reports whether every bit of mask is set in the topology.
// A zero mask is trivially true.
func (c *Config) HasType(mask TopologyType) bool {
	if c == nil {
		return false
	}
	return c.topology&mask == mask
}

// PrimaryDevice returns the boot/primary GPU. This is the baseline for
// driver detection in all non-hybrid cases.
func (c *Config) PrimaryDevice() *pci.Device {
	if c == nil {
		return nil
	}
	return c.primary
}

// SecondaryDevice returns the discrete GPU in hybrid configurations and
// nil otherwise.
func (c *Config) SecondaryDevice() *pci.Device {
	if c == nil {
		return nil
	}
	return c.secondary
}

// DetectionDevice returns the device whose vendor and model should
// drive driver selection: the secondary device for hybrid topologies,
// the primary device for everything else.
func (c *Config) DetectionDevice() *pci.Device {
	if c.HasType(Hybrid) {
		return c.secondary
	}
	return c.PrimaryDevice()
}

// Providers resolves the driver candidates for the detection device.
// Ordering and filtering are entirely the resolver's responsibility.
func (c *Config) Providers(resolver provider.Resolver) []provider.Provider {
	if c == nil || resolver == nil {
		return nil
	}
	return resolver.Resolve(c.DetectionDevice())
}
