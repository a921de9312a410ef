//go:build !cuda

package provider

import "errors"

// NVMLProbe is a no-op driver probe for builds without CUDA support.
type NVMLProbe struct{}

// NewNVMLProbe returns a probe that always reports NVML as unavailable.
func NewNVMLProbe() *NVMLProbe {
	return &NVMLProbe{}
}

// DriverVersion always fails when built without the cuda tag.
func (p *NVMLProbe) DriverVersion() (string, error) {
	return "", errors.New("NVML disabled: rebuild with -tags cuda")
}
