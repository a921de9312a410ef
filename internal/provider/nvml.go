//go:build cuda

package provider

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// NVMLProbe reports the installed NVIDIA driver version via NVML.
type NVMLProbe struct{}

// NewNVMLProbe creates a probe backed by the NVML library.
func NewNVMLProbe() *NVMLProbe {
	return &NVMLProbe{}
}

// DriverVersion initialises NVML, reads the system driver version and
// shuts NVML down again. Errors indicate that no NVIDIA driver stack is
// loaded, not a fault in the caller.
func (p *NVMLProbe) DriverVersion() (string, error) {
	ret := nvml.Init()
	if ret != nvml.SUCCESS {
		return "", fmt.Errorf("failed to initialize NVML: %v", nvml.ErrorString(ret))
	}
	defer nvml.Shutdown()

	version, ret := nvml.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		return "", fmt.Errorf("failed to get driver version: %v", nvml.ErrorString(ret))
	}
	return version, nil
}
