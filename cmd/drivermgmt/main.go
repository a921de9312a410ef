package main

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"drivermgmt/internal/config"
	"drivermgmt/internal/diag"
	"drivermgmt/internal/gpu"
	"drivermgmt/internal/logging"
	"drivermgmt/internal/pci"
	"drivermgmt/internal/provider"
	"drivermgmt/internal/tui"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) <= 1 {
		runTUI()
		return
	}

	command := strings.ToLower(os.Args[1])
	if handler, ok := commandHandlers()[command]; ok {
		handler()
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
	printUsage()
	os.Exit(1)
}

func commandHandlers() map[string]func() {
	return map[string]func(){
		"status":    runStatus,
		"devices":   runDevices,
		"providers": runProviders,
		"diag":      runDiag,
		"config":    runConfig,
		"version":   runVersion,
		"help":      printUsage,
		"--help":    printUsage,
		"-h":        printUsage,
	}
}

// setup loads configuration and builds the logger. Configuration
// problems fall back to defaults so the tool stays usable on a broken
// config file.
func setup() (config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load configuration: %v\n", err)
		cfg = config.DefaultConfig()
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not build logger: %v\n", err)
		logger = logging.NewNop()
	}
	return cfg, logger
}

// classify enumerates GPUs and runs the topology classification.
func classify(cfg config.Config, logger *zap.Logger) (*gpu.Config, []*pci.Device) {
	catalog := pci.NewSysfsCatalogRoot(cfg.PCI.SysfsRoot, logger)
	devices := catalog.GPUDevices()
	return gpu.Classify(devices, logger), devices
}

// buildResolver creates the provider resolver with configured overrides.
func buildResolver(cfg config.Config, logger *zap.Logger) *provider.TableResolver {
	resolver := provider.NewTableResolver(provider.NewNVMLProbe(), logger)

	for vendorName, entries := range cfg.Providers {
		vendor, ok := pci.VendorByName(vendorName)
		if !ok {
			continue // rejected by validation already
		}
		providers := make([]provider.Provider, 0, len(entries))
		for _, entry := range entries {
			providers = append(providers, provider.Provider{
				Name:     entry.Name,
				Package:  entry.Package,
				Module:   entry.Module,
				Priority: entry.Priority,
			})
		}
		resolver.Override(vendor, providers)
	}
	return resolver
}

func runTUI() {
	cfg, logger := setup()
	defer func() { _ = logger.Sync() }()

	topology, devices := classify(cfg, logger)
	resolver := buildResolver(cfg, logger)

	if err := tui.Run(logger, topology, devices, resolver); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	cfg, logger := setup()
	defer func() { _ = logger.Sync() }()

	topology, _ := classify(cfg, logger)

	fmt.Printf("GPUs detected: %d\n", topology.Count())
	fmt.Printf("Topology:      %s\n", topology.Type())
	if primary := topology.PrimaryDevice(); primary != nil {
		fmt.Printf("Primary:       %s\n", primary)
	}
	if secondary := topology.SecondaryDevice(); secondary != nil {
		fmt.Printf("Secondary:     %s\n", secondary)
	}
	if detection := topology.DetectionDevice(); detection != nil {
		fmt.Printf("Detection:     %s\n", detection)
	}
}

func runDevices() {
	cfg, logger := setup()
	defer func() { _ = logger.Sync() }()

	_, devices := classify(cfg, logger)
	if len(devices) == 0 {
		fmt.Println("No GPU devices discovered.")
		return
	}

	for _, dev := range devices {
		fmt.Println(dev)
		if dev.BootVGA {
			fmt.Println("  boot display adapter")
		}
		if dev.Driver != "" {
			fmt.Printf("  driver: %s\n", dev.Driver)
		} else {
			fmt.Println("  no driver bound")
		}
	}
}

func runProviders() {
	cfg, logger := setup()
	defer func() { _ = logger.Sync() }()

	topology, _ := classify(cfg, logger)
	resolver := buildResolver(cfg, logger)

	detection := topology.DetectionDevice()
	if detection == nil {
		fmt.Println("No GPU devices discovered.")
		return
	}
	fmt.Printf("Detection device: %s\n\n", detection)

	providers := topology.Providers(resolver)
	if len(providers) == 0 {
		fmt.Println("No driver providers known for this device.")
		return
	}
	for _, p := range providers {
		marker := " "
		if p.Current {
			marker = "*"
		}
		fmt.Printf("%s %s (%s)", marker, p.Name, p.Package)
		if p.Version != "" {
			fmt.Printf(" [installed: %s]", p.Version)
		}
		fmt.Println()
	}
}

func runDiag() {
	cfg, logger := setup()
	defer func() { _ = logger.Sync() }()

	topology, devices := classify(cfg, logger)
	resolver := buildResolver(cfg, logger)

	opts := diag.NewOptions(version, cfg.Diagnostics.OutputDir)
	opts.ConfigPath = config.SystemConfigPath()

	collector := diag.NewCollector(opts, topology, devices, resolver, logger)
	packager := diag.NewPackager(opts, collector, logger)

	bundlePath, err := packager.CreatePackage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating diagnostic package: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Diagnostic package written to %s\n", bundlePath)
}

func runConfig() {
	cfg, logger := setup()
	defer func() { _ = logger.Sync() }()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering configuration: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("# effective configuration (system: %s)\n", config.SystemConfigPath())
	fmt.Print(string(data))
}

func runVersion() {
	fmt.Printf("drivermgmt version %s\n", version)
}

func printUsage() {
	fmt.Println("Usage: drivermgmt [command]")
	fmt.Println()
	fmt.Println("Running without a command starts the interactive status view.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  status      Show the classified GPU topology")
	fmt.Println("  devices     List discovered GPU devices")
	fmt.Println("  providers   Show driver provider candidates for the detection device")
	fmt.Println("  diag        Create a diagnostic package")
	fmt.Println("  config      Print the effective configuration")
	fmt.Println("  version     Print the version")
	fmt.Println("  help        Show this help")
}
