package diag

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"drivermgmt/internal/fsutil"
)

// Packager creates diagnostic ZIP packages
type Packager struct {
	opts      *Options
	collector *Collector
	logger    *zap.Logger
}

// NewPackager creates a new diagnostic packager
func NewPackager(opts *Options, collector *Collector, logger *zap.Logger) *Packager {
	return &Packager{
		opts:      opts,
		collector: collector,
		logger:    logger,
	}
}

// CreatePackage collects all artifacts and writes the bundle. Failed
// collectors are logged and skipped so a partial bundle still ships.
func (p *Packager) CreatePackage() (string, error) {
	outputPath := p.opts.OutputPath()
	if p.logger != nil {
		p.logger.Info("creating diagnostic package", zap.String("output", outputPath))
	}

	allFiles := make(map[string][]byte)
	collectors := []struct {
		name    string
		collect func() (map[string][]byte, error)
	}{
		{"topology", p.collector.CollectTopology},
		{"devices", p.collector.CollectDevices},
		{"config", p.collector.CollectConfig},
		{"system info", p.collector.CollectSystemInfo},
	}

	for _, c := range collectors {
		files, err := c.collect()
		if err != nil {
			if p.logger != nil {
				p.logger.Error("failed to collect diagnostic artifact",
					zap.String("collector", c.name),
					zap.Error(err))
			}
			// Continue with partial package
			continue
		}
		for path, content := range files {
			allFiles[path] = content
		}
	}

	manifest := p.createManifest(allFiles)
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}
	allFiles["diag_manifest.json"] = manifestJSON

	archive, err := p.createZIP(allFiles)
	if err != nil {
		return "", fmt.Errorf("failed to create ZIP: %w", err)
	}

	if err := fsutil.EnsureDirectory(p.opts.OutputDir); err != nil {
		return "", err
	}
	if err := fsutil.AtomicWriteFile(outputPath, archive, fsutil.DefaultFilePermissions, p.logger); err != nil {
		return "", fmt.Errorf("failed to write bundle: %w", err)
	}

	if p.logger != nil {
		p.logger.Info("diagnostic package created",
			zap.String("output", outputPath),
			zap.Int("file_count", len(allFiles)))
	}
	return outputPath, nil
}

// createManifest generates the diagnostic manifest
func (p *Packager) createManifest(files map[string][]byte) *Manifest {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	manifest := &Manifest{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Host:      hostname,
		Version:   p.opts.Version,
		Files:     make([]ManifestFile, 0, len(files)),
	}

	for path, content := range files {
		manifest.Files = append(manifest.Files, ManifestFile{
			Path:      path,
			SizeBytes: int64(len(content)),
			BLAKE2b:   CalculateChecksum(content),
		})
	}
	return manifest
}

// createZIP builds the ZIP archive in memory; the caller persists it
// atomically.
func (p *Packager) createZIP(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for path, content := range files {
		writer, err := zipWriter.Create(path)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("failed to add file to ZIP",
					zap.String("path", path),
					zap.Error(err))
			}
			continue
		}
		if _, err := writer.Write(content); err != nil {
			if p.logger != nil {
				p.logger.Warn("failed to write file to ZIP",
					zap.String("path", path),
					zap.Error(err))
			}
			continue
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise ZIP: %w", err)
	}
	return buf.Bytes(), nil
}
