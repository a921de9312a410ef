package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00d7ff")).MarginBottom(1)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd700")).MarginTop(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d7af"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#00d7ff")).Bold(true)
	descStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).PaddingLeft(2)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).MarginTop(1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// renderMenu renders the main menu screen
func (m Model) renderMenu() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("drivermgmt — Main Menu"))
	b.WriteString("\n\n")

	for i, item := range DefaultMenuItems() {
		prefix := fmt.Sprintf("[%s] ", item.Key)

		if i == m.selection {
			b.WriteString(selectedStyle.Render(prefix + item.Label))
		} else {
			b.WriteString(itemStyle.Render(prefix + item.Label))
		}
		b.WriteString("\n")
		b.WriteString(descStyle.Render(item.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Navigate: ↑/↓ or numbers | Select: Enter/Space | Back: Esc | Quit: q"))
	b.WriteString("\n")

	return b.String()
}

// renderStatusScreen renders the topology classification screen
func (m Model) renderStatusScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GPU Topology"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Detected: "))
	b.WriteString(valueStyle.Render(countLabel(m.topology.Count())))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Topology: "))
	b.WriteString(valueStyle.Render(m.topology.Type().String()))
	b.WriteString("\n")

	if primary := m.topology.PrimaryDevice(); primary != nil {
		b.WriteString(labelStyle.Render("Primary:  "))
		b.WriteString(valueStyle.Render(primary.String()))
		b.WriteString("\n")
	}
	if secondary := m.topology.SecondaryDevice(); secondary != nil {
		b.WriteString(labelStyle.Render("Secondary: "))
		b.WriteString(valueStyle.Render(secondary.String()))
		b.WriteString("\n")
	}
	if detection := m.topology.DetectionDevice(); detection != nil {
		b.WriteString(labelStyle.Render("Detection: "))
		b.WriteString(valueStyle.Render(detection.String()))
		b.WriteString("\n")
	}
	if m.topology.Count() == 0 {
		b.WriteString(mutedStyle.Render("No GPU devices discovered."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderDevicesScreen renders the raw device list
func (m Model) renderDevicesScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GPU Devices"))
	b.WriteString("\n\n")

	if len(m.devices) == 0 {
		b.WriteString(mutedStyle.Render("No GPU devices discovered."))
		b.WriteString("\n")
	}

	for _, dev := range m.devices {
		b.WriteString(valueStyle.Render(dev.String()))
		b.WriteString("\n")

		attrs := []string{}
		if dev.BootVGA {
			attrs = append(attrs, "boot display")
		}
		if dev.Driver != "" {
			attrs = append(attrs, "driver: "+dev.Driver)
		} else {
			attrs = append(attrs, "no driver bound")
		}
		b.WriteString(descStyle.Render(strings.Join(attrs, " | ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderProvidersScreen renders the resolved driver candidates
func (m Model) renderProvidersScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Driver Providers"))
	b.WriteString("\n\n")

	if detection := m.topology.DetectionDevice(); detection != nil {
		b.WriteString(labelStyle.Render("Detection device: "))
		b.WriteString(valueStyle.Render(detection.String()))
		b.WriteString("\n\n")
	}

	if len(m.providers) == 0 {
		b.WriteString(mutedStyle.Render("No driver providers resolved."))
		b.WriteString("\n")
	}

	for _, p := range m.providers {
		line := fmt.Sprintf("%s (%s)", p.Name, p.Package)
		if p.Current {
			line += " [current]"
		}
		if p.Version != "" {
			line += " " + p.Version
		}
		b.WriteString(valueStyle.Render(line))
		b.WriteString("\n")
		b.WriteString(descStyle.Render(fmt.Sprintf("module: %s | priority: %d", p.Module, p.Priority)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}

// renderHelpScreen renders the help screen
func (m Model) renderHelpScreen() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Help"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("↑/↓ or j/k   Move selection"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("Enter/Space  Open selected screen"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("Esc          Return to menu"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("q / Ctrl+C   Quit"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("About"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("drivermgmt classifies the GPU topology of this system and"))
	b.WriteString("\n")
	b.WriteString(valueStyle.Render("suggests the graphics driver packages matching it."))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("Press Esc to return to menu, 'q' to quit"))
	b.WriteString("\n")

	return b.String()
}
