// Package pci enumerates PCI devices from sysfs and exposes the subset
// relevant to graphics driver management.
package pci

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultSysfsRoot is the sysfs directory holding one entry per PCI device.
const DefaultSysfsRoot = "/sys/bus/pci/devices"

// Catalog enumerates GPU-class PCI devices. The returned slice preserves
// discovery order: index 0 is the first device discovered.
type Catalog interface {
	GPUDevices() []*Device
}

// SysfsCatalog reads PCI devices from a sysfs tree. Discovery order is
// the lexical order of the sysfs entries, which is stable across calls.
type SysfsCatalog struct {
	root   string
	logger *zap.Logger
}

// NewSysfsCatalog creates a catalog reading from DefaultSysfsRoot.
func NewSysfsCatalog(logger *zap.Logger) *SysfsCatalog {
	return NewSysfsCatalogRoot(DefaultSysfsRoot, logger)
}

// NewSysfsCatalogRoot creates a catalog reading from a specific sysfs
// root. Used by tests to point at a synthetic tree.
func NewSysfsCatalogRoot(root string, logger *zap.Logger) *SysfsCatalog {
	return &SysfsCatalog{root: root, logger: logger}
}

// GPUDevices returns all display-class PCI devices in discovery order.
// Entries that cannot be parsed are skipped with a debug log rather than
// failing the whole enumeration.
func (c *SysfsCatalog) GPUDevices() []*Device {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("failed to read PCI sysfs root",
				zap.String("root", c.root),
				zap.Error(err))
		}
		return nil
	}

	var devices []*Device
	for _, entry := range entries {
		dev, err := c.readDevice(entry.Name())
		if err != nil {
			if c.logger != nil {
				c.logger.Debug("skipping unreadable PCI entry",
					zap.String("address", entry.Name()),
					zap.Error(err))
			}
			continue
		}
		if !dev.IsGPU() {
			continue
		}
		devices = append(devices, dev)
	}
	return devices
}

// readDevice parses a single sysfs device directory into a Device.
func (c *SysfsCatalog) readDevice(address string) (*Device, error) {
	dir := filepath.Join(c.root, address)

	class, err := readHexFile(filepath.Join(dir, "class"))
	if err != nil {
		return nil, err
	}
	vendor, err := readHexFile(filepath.Join(dir, "vendor"))
	if err != nil {
		return nil, err
	}
	deviceID, err := readHexFile(filepath.Join(dir, "device"))
	if err != nil {
		return nil, err
	}

	dev := &Device{
		Address:  address,
		Vendor:   Vendor(vendor),
		DeviceID: uint16(deviceID),
		Class:    uint32(class),
	}

	// boot_vga only exists on display-class devices and may be absent
	// even there; absence means "not the boot display".
	if raw, err := os.ReadFile(filepath.Join(dir, "boot_vga")); err == nil {
		dev.BootVGA = strings.TrimSpace(string(raw)) == "1"
	}

	if target, err := os.Readlink(filepath.Join(dir, "driver")); err == nil {
		dev.Driver = filepath.Base(target)
	}

	if raw, err := os.ReadFile(filepath.Join(dir, "modalias")); err == nil {
		dev.Modalias = strings.TrimSpace(string(raw))
	}

	return dev, nil
}

// readHexFile reads a sysfs attribute formatted as a 0x-prefixed hex value.
func readHexFile(path string) (uint64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x")
	return strconv.ParseUint(text, 16, 32)
}
