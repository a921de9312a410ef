package pci

import "fmt"

// Vendor is a PCI vendor identifier.
type Vendor uint16

const (
	// VendorIntel is the PCI vendor ID assigned to Intel Corporation.
	VendorIntel Vendor = 0x8086
	// VendorAMD is the PCI vendor ID assigned to AMD/ATI.
	VendorAMD Vendor = 0x1002
	// VendorNVIDIA is the PCI vendor ID assigned to NVIDIA Corporation.
	VendorNVIDIA Vendor = 0x10de
)

// String returns a human-readable vendor name, falling back to the raw
// hex ID for vendors without a dedicated constant.
func (v Vendor) String() string {
	switch v {
	case VendorIntel:
		return "Intel"
	case VendorAMD:
		return "AMD"
	case VendorNVIDIA:
		return "NVIDIA"
	default:
		return fmt.Sprintf("0x%04x", uint16(v))
	}
}

// VendorByName maps a lower-case vendor name from configuration to its
// PCI vendor ID.
func VendorByName(name string) (Vendor, bool) {
	switch name {
	case "intel":
		return VendorIntel, true
	case "amd":
		return VendorAMD, true
	case "nvidia":
		return VendorNVIDIA, true
	default:
		return 0, false
	}
}

// classDisplay is the PCI base class for display controllers. It covers
// VGA (0x0300), 3D (0x0302) and other display subclasses (0x0380).
const classDisplay = 0x03

// Device describes a single PCI device as discovered on the bus.
//
// Device values are owned by the Catalog that produced them; consumers
// hold borrowed references and must not retain them past the catalog's
// lifetime.
type Device struct {
	// Address is the PCI bus address, e.g. "0000:01:00.0".
	Address string `json:"address"`
	// Vendor is the PCI vendor ID.
	Vendor Vendor `json:"vendor"`
	// DeviceID is the PCI device ID.
	DeviceID uint16 `json:"device_id"`
	// Class is the full 24-bit PCI class code.
	Class uint32 `json:"class"`
	// BootVGA reports whether firmware used this device to initialise
	// the boot display.
	BootVGA bool `json:"boot_vga"`
	// Driver is the kernel driver currently bound to the device,
	// empty when unbound.
	Driver string `json:"driver,omitempty"`
	// Modalias is the kernel module alias for the device.
	Modalias string `json:"modalias,omitempty"`
}

// IsGPU reports whether the device belongs to the display controller class.
func (d *Device) IsGPU() bool {
	return d != nil && (d.Class>>16)&0xff == classDisplay
}

// String returns a short identification used in logs and listings.
func (d *Device) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s [%04x:%04x]", d.Address, d.Vendor, uint16(d.Vendor), d.DeviceID)
}
