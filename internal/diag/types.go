package diag

import (
	"path/filepath"
	"time"
)

// Manifest represents the diagnostic package manifest
type Manifest struct {
	Timestamp string         `json:"timestamp"`
	Host      string         `json:"host"`
	Version   string         `json:"drivermgmt_version"`
	Files     []ManifestFile `json:"files"`
}

// ManifestFile represents a file in the diagnostic package
type ManifestFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	BLAKE2b   string `json:"blake2b"`
}

// Options configures diagnostic collection
type Options struct {
	OutputDir     string
	ConfigPath    string
	IncludeConfig bool
	Version       string
}

// NewOptions creates default diagnostic options writing into outputDir
func NewOptions(version, outputDir string) *Options {
	return &Options{
		OutputDir:     outputDir,
		ConfigPath:    "/etc/drivermgmt/config.yaml",
		IncludeConfig: true,
		Version:       version,
	}
}

// OutputPath returns the bundle path for this invocation.
func (o *Options) OutputPath() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	return filepath.Join(o.OutputDir, "drivermgmt-diag-"+timestamp+".zip")
}
