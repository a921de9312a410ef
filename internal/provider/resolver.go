// Package provider resolves driver package candidates for GPU devices.
package provider

import (
	"sort"

	"go.uber.org/zap"

	"drivermgmt/internal/pci"
)

// TableResolver resolves providers from per-vendor candidate tables.
// Tables are seeded with built-in defaults and may be overridden from
// configuration.
type TableResolver struct {
	tables map[pci.Vendor][]Provider
	probe  DriverProbe
	logger *zap.Logger
}

// NewTableResolver creates a resolver with the built-in vendor tables.
// probe may be nil when no NVIDIA driver probing is wanted.
func NewTableResolver(probe DriverProbe, logger *zap.Logger) *TableResolver {
	return &TableResolver{
		tables: defaultTables(),
		probe:  probe,
		logger: logger,
	}
}

// Override replaces the candidate table for a vendor. An empty slice
// removes the vendor from resolution entirely.
func (r *TableResolver) Override(vendor pci.Vendor, providers []Provider) {
	if len(providers) == 0 {
		delete(r.tables, vendor)
		return
	}
	r.tables[vendor] = append([]Provider(nil), providers...)
}

// Resolve returns the driver candidates for a device, sorted by
// descending priority. The currently bound driver is flagged, and for
// NVIDIA devices the installed driver version is filled in when the
// probe succeeds.
func (r *TableResolver) Resolve(dev *pci.Device) []Provider {
	if dev == nil {
		return nil
	}

	table, ok := r.tables[dev.Vendor]
	if !ok {
		if r.logger != nil {
			r.logger.Info("no driver providers known for vendor",
				zap.String("vendor", dev.Vendor.String()),
				zap.String("device", dev.String()))
		}
		return nil
	}

	providers := append([]Provider(nil), table...)
	for i := range providers {
		providers[i].Current = dev.Driver != "" && dev.Driver == providers[i].Module
	}

	if dev.Vendor == pci.VendorNVIDIA && r.probe != nil {
		r.annotateNvidia(providers)
	}

	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority > providers[j].Priority
	})
	return providers
}

// annotateNvidia fills in the installed driver version on the provider
// whose module is currently loaded.
func (r *TableResolver) annotateNvidia(providers []Provider) {
	version, err := r.probe.DriverVersion()
	if err != nil {
		if r.logger != nil {
			r.logger.Debug("NVIDIA driver probe unavailable", zap.Error(err))
		}
		return
	}
	for i := range providers {
		if providers[i].Current {
			providers[i].Version = version
		}
	}
}

// defaultTables returns the built-in per-vendor candidate tables.
func defaultTables() map[pci.Vendor][]Provider {
	return map[pci.Vendor][]Provider{
		pci.VendorNVIDIA: {
			{Name: "NVIDIA proprietary driver", Package: "nvidia-glx-driver", Module: "nvidia", Priority: 100},
			{Name: "NVIDIA open kernel module", Package: "nvidia-open-glx-driver", Module: "nvidia", Priority: 90},
			{Name: "Nouveau", Package: "xorg-driver-nouveau", Module: "nouveau", Priority: 10},
		},
		pci.VendorAMD: {
			{Name: "AMDGPU", Package: "xorg-driver-amdgpu", Module: "amdgpu", Priority: 100},
			{Name: "Radeon", Package: "xorg-driver-ati", Module: "radeon", Priority: 50},
		},
		pci.VendorIntel: {
			{Name: "Intel / Mesa", Package: "mesa", Module: "i915", Priority: 100},
		},
	}
}
