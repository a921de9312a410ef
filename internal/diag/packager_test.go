package diag

import (
	"archive/zip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"drivermgmt/internal/gpu"
	"drivermgmt/internal/pci"
	"drivermgmt/internal/provider"
)

func testTopology() (*gpu.Config, []*pci.Device) {
	devices := []*pci.Device{
		{Address: "0000:00:02.0", Vendor: pci.VendorIntel, Class: 0x030000, BootVGA: true, Driver: "i915"},
		{Address: "0000:01:00.0", Vendor: pci.VendorNVIDIA, Class: 0x030200, Driver: "nvidia"},
	}
	return gpu.Classify(devices, nil), devices
}

func TestPackager_CreatePackage(t *testing.T) {
	topology, devices := testTopology()
	outputDir := t.TempDir()

	opts := NewOptions("0.1.0-test", outputDir)
	opts.IncludeConfig = false

	resolver := provider.NewTableResolver(nil, nil)
	collector := NewCollector(opts, topology, devices, resolver, nil)
	packager := NewPackager(opts, collector, nil)

	bundlePath, err := packager.CreatePackage()
	if err != nil {
		t.Fatalf("expected package creation, got: %v", err)
	}
	if filepath.Dir(bundlePath) != outputDir {
		t.Errorf("expected bundle in %s, got %s", outputDir, bundlePath)
	}

	reader, err := zip.OpenReader(bundlePath)
	if err != nil {
		t.Fatalf("failed to open bundle: %v", err)
	}
	defer reader.Close()

	contents := map[string][]byte{}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", file.Name, err)
		}
		contents[file.Name] = data
	}

	for _, want := range []string{"topology_report.json", "devices.json", "system_info.json", "diag_manifest.json"} {
		if _, ok := contents[want]; !ok {
			t.Errorf("expected %s in bundle, have %v", want, keys(contents))
		}
	}

	// Topology report reflects the classification.
	var report struct {
		Topology string `json:"topology"`
		GPUCount uint   `json:"gpu_count"`
	}
	if err := json.Unmarshal(contents["topology_report.json"], &report); err != nil {
		t.Fatalf("failed to parse topology report: %v", err)
	}
	if report.Topology != "hybrid|optimus" || report.GPUCount != 2 {
		t.Errorf("unexpected topology report: %+v", report)
	}

	// Manifest checksums match the packaged content.
	var manifest Manifest
	if err := json.Unmarshal(contents["diag_manifest.json"], &manifest); err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	if manifest.Version != "0.1.0-test" {
		t.Errorf("unexpected manifest version: %q", manifest.Version)
	}
	for _, mf := range manifest.Files {
		content, ok := contents[mf.Path]
		if !ok {
			t.Errorf("manifest references missing file %s", mf.Path)
			continue
		}
		if got := CalculateChecksum(content); got != mf.BLAKE2b {
			t.Errorf("checksum mismatch for %s", mf.Path)
		}
		if mf.SizeBytes != int64(len(content)) {
			t.Errorf("size mismatch for %s", mf.Path)
		}
	}
}

func TestCollector_CollectConfig(t *testing.T) {
	topology, devices := testTopology()

	opts := NewOptions("0.1.0-test", t.TempDir())
	opts.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	collector := NewCollector(opts, topology, devices, nil, nil)

	// Missing config file is not an error.
	files, err := collector.CollectConfig()
	if err != nil {
		t.Fatalf("expected missing config to be tolerated, got: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files for missing config, got %d", len(files))
	}

	if err := os.WriteFile(opts.ConfigPath, []byte("logging:\n  level: info\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	files, err = collector.CollectConfig()
	if err != nil {
		t.Fatalf("expected config collection, got: %v", err)
	}
	if _, ok := files["config.yaml"]; !ok {
		t.Error("expected config.yaml artifact")
	}
}

func TestCalculateChecksum_Deterministic(t *testing.T) {
	a := CalculateChecksum([]byte("gpu topology"))
	b := CalculateChecksum([]byte("gpu topology"))
	if a != b {
		t.Error("expected deterministic checksums")
	}
	if a == CalculateChecksum([]byte("other")) {
		t.Error("expected different content to produce different checksums")
	}
	if len(a) != 64 {
		t.Errorf("expected 256-bit hex digest, got length %d", len(a))
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
