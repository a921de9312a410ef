// Package diag assembles diagnostic bundles describing the GPU
// configuration of a system, for attaching to support requests.
package diag

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"drivermgmt/internal/gpu"
	"drivermgmt/internal/pci"
	"drivermgmt/internal/provider"
)

// Collector gathers diagnostic artifacts
type Collector struct {
	opts     *Options
	topology *gpu.Config
	devices  []*pci.Device
	resolver provider.Resolver
	logger   *zap.Logger
}

// NewCollector creates a collector for the given classification result.
func NewCollector(opts *Options, topology *gpu.Config, devices []*pci.Device,
	resolver provider.Resolver, logger *zap.Logger) *Collector {
	return &Collector{
		opts:     opts,
		topology: topology,
		devices:  devices,
		resolver: resolver,
		logger:   logger,
	}
}

// topologyReport is the serialised form of a classification result.
type topologyReport struct {
	Topology  string              `json:"topology"`
	GPUCount  uint                `json:"gpu_count"`
	Primary   *pci.Device         `json:"primary,omitempty"`
	Secondary *pci.Device         `json:"secondary,omitempty"`
	Detection *pci.Device         `json:"detection,omitempty"`
	Providers []provider.Provider `json:"providers,omitempty"`
}

// CollectTopology serialises the classification result and resolved
// driver providers.
func (c *Collector) CollectTopology() (map[string][]byte, error) {
	report := topologyReport{
		Topology:  c.topology.Type().String(),
		GPUCount:  c.topology.Count(),
		Primary:   c.topology.PrimaryDevice(),
		Secondary: c.topology.SecondaryDevice(),
		Detection: c.topology.DetectionDevice(),
		Providers: c.topology.Providers(c.resolver),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"topology_report.json": data}, nil
}

// CollectDevices serialises the raw device enumeration.
func (c *Collector) CollectDevices() (map[string][]byte, error) {
	data, err := json.MarshalIndent(c.devices, "", "  ")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"devices.json": data}, nil
}

// CollectConfig gathers the configuration file when present.
func (c *Collector) CollectConfig() (map[string][]byte, error) {
	if !c.opts.IncludeConfig {
		return nil, nil
	}

	content, err := os.ReadFile(c.opts.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			if c.logger != nil {
				c.logger.Warn("config file not found for diagnostics",
					zap.String("path", c.opts.ConfigPath))
			}
			return map[string][]byte{}, nil
		}
		return nil, err
	}
	return map[string][]byte{"config.yaml": content}, nil
}

// systemInfo captures basic host identification.
type systemInfo struct {
	Hostname  string `json:"hostname"`
	Kernel    string `json:"kernel,omitempty"`
	Timestamp string `json:"timestamp"`
}

// CollectSystemInfo gathers host metadata. Kernel information is
// best-effort and omitted when /proc/version is unreadable.
func (c *Collector) CollectSystemInfo() (map[string][]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := systemInfo{
		Hostname:  hostname,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if raw, err := os.ReadFile("/proc/version"); err == nil {
		info.Kernel = string(raw)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"system_info.json": data}, nil
}

// CalculateChecksum returns the hex-encoded BLAKE2b-256 digest of data.
func CalculateChecksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
