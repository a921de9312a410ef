package provider

import (
	"errors"
	"testing"

	"drivermgmt/internal/pci"
)

// fakeProbe returns a fixed driver version or error.
type fakeProbe struct {
	version string
	err     error
}

func (p *fakeProbe) DriverVersion() (string, error) {
	return p.version, p.err
}

func TestTableResolver_Resolve_NilDevice(t *testing.T) {
	resolver := NewTableResolver(nil, nil)
	if providers := resolver.Resolve(nil); providers != nil {
		t.Errorf("expected nil providers for nil device, got %d", len(providers))
	}
}

func TestTableResolver_Resolve_UnknownVendor(t *testing.T) {
	resolver := NewTableResolver(nil, nil)
	dev := &pci.Device{Address: "0000:05:00.0", Vendor: pci.Vendor(0x1af4)}
	if providers := resolver.Resolve(dev); providers != nil {
		t.Errorf("expected nil providers for unknown vendor, got %d", len(providers))
	}
}

func TestTableResolver_Resolve_NvidiaOrdering(t *testing.T) {
	resolver := NewTableResolver(nil, nil)
	dev := &pci.Device{Address: "0000:01:00.0", Vendor: pci.VendorNVIDIA, Driver: "nouveau"}

	providers := resolver.Resolve(dev)
	if len(providers) != 3 {
		t.Fatalf("expected 3 NVIDIA candidates, got %d", len(providers))
	}
	for i := 1; i < len(providers); i++ {
		if providers[i-1].Priority < providers[i].Priority {
			t.Errorf("providers not sorted by descending priority: %d before %d",
				providers[i-1].Priority, providers[i].Priority)
		}
	}
	if providers[0].Module != "nvidia" {
		t.Errorf("expected proprietary driver first, got %q", providers[0].Module)
	}

	// The bound kernel driver is flagged as current.
	var current []string
	for _, p := range providers {
		if p.Current {
			current = append(current, p.Package)
		}
	}
	if len(current) != 1 || current[0] != "xorg-driver-nouveau" {
		t.Errorf("expected nouveau flagged current, got %v", current)
	}
}

func TestTableResolver_Resolve_ProbeAnnotatesVersion(t *testing.T) {
	resolver := NewTableResolver(&fakeProbe{version: "550.54.14"}, nil)
	dev := &pci.Device{Address: "0000:01:00.0", Vendor: pci.VendorNVIDIA, Driver: "nvidia"}

	providers := resolver.Resolve(dev)
	found := false
	for _, p := range providers {
		if p.Current {
			found = true
			if p.Version != "550.54.14" {
				t.Errorf("expected probed version on current provider, got %q", p.Version)
			}
		} else if p.Version != "" {
			t.Errorf("expected no version on %q, got %q", p.Package, p.Version)
		}
	}
	if !found {
		t.Error("expected a current provider for the bound nvidia module")
	}
}

func TestTableResolver_Resolve_ProbeFailureIgnored(t *testing.T) {
	resolver := NewTableResolver(&fakeProbe{err: errors.New("no NVML")}, nil)
	dev := &pci.Device{Address: "0000:01:00.0", Vendor: pci.VendorNVIDIA, Driver: "nvidia"}

	providers := resolver.Resolve(dev)
	if len(providers) == 0 {
		t.Fatal("expected providers despite probe failure")
	}
	for _, p := range providers {
		if p.Version != "" {
			t.Errorf("expected no version when probe fails, got %q on %q", p.Version, p.Package)
		}
	}
}

func TestTableResolver_Resolve_ProbeNotUsedForAMD(t *testing.T) {
	probe := &fakeProbe{version: "550.54.14"}
	resolver := NewTableResolver(probe, nil)
	dev := &pci.Device{Address: "0000:03:00.0", Vendor: pci.VendorAMD, Driver: "amdgpu"}

	providers := resolver.Resolve(dev)
	if len(providers) != 2 {
		t.Fatalf("expected 2 AMD candidates, got %d", len(providers))
	}
	if !providers[0].Current || providers[0].Module != "amdgpu" {
		t.Errorf("expected amdgpu flagged current and first, got %+v", providers[0])
	}
	if providers[0].Version != "" {
		t.Error("NVML version must not be applied to AMD providers")
	}
}

func TestTableResolver_Override(t *testing.T) {
	resolver := NewTableResolver(nil, nil)
	resolver.Override(pci.VendorIntel, []Provider{
		{Name: "Xe", Package: "xe-driver", Module: "xe", Priority: 120},
		{Name: "Intel / Mesa", Package: "mesa", Module: "i915", Priority: 100},
	})

	dev := &pci.Device{Address: "0000:00:02.0", Vendor: pci.VendorIntel, Driver: "xe"}
	providers := resolver.Resolve(dev)
	if len(providers) != 2 {
		t.Fatalf("expected 2 overridden candidates, got %d", len(providers))
	}
	if providers[0].Package != "xe-driver" || !providers[0].Current {
		t.Errorf("expected overridden xe driver first and current, got %+v", providers[0])
	}

	resolver.Override(pci.VendorIntel, nil)
	if providers := resolver.Resolve(dev); providers != nil {
		t.Errorf("expected vendor removed after empty override, got %d providers", len(providers))
	}
}
