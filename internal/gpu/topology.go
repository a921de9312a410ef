package gpu

import "strings"

// TopologyType is a bit flag set describing the GPU topology of a system.
type TopologyType uint

const (
	// Simple is a single-GPU system, or one whose topology could not be
	// classified further.
	Simple TopologyType = 1 << iota
	// Hybrid pairs an integrated boot GPU with a discrete GPU.
	Hybrid
	// Optimus is the NVIDIA flavour of Hybrid (Intel iGPU + NVIDIA dGPU).
	Optimus
	// Composite is two same-vendor discrete GPUs operating jointly.
	Composite
	// SLI is the NVIDIA flavour of Composite.
	SLI
	// Crossfire is the AMD flavour of Composite.
	Crossfire
)

// String renders the flag set in a stable order, e.g. "hybrid|optimus".
func (t TopologyType) String() string {
	names := []struct {
		flag TopologyType
		name string
	}{
		{Simple, "simple"},
		{Hybrid, "hybrid"},
		{Optimus, "optimus"},
		{Composite, "composite"},
		{SLI, "sli"},
		{Crossfire, "crossfire"},
	}

	var parts []string
	for _, n := range names {
		if t&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
