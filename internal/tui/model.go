// Package tui implements the interactive status view launched when
// drivermgmt runs without a subcommand.
package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"drivermgmt/internal/gpu"
	"drivermgmt/internal/pci"
	"drivermgmt/internal/provider"
)

// Model represents the TUI application state
type Model struct {
	quitting bool

	logger *zap.Logger

	// UI State
	currentScreen Screen
	selection     int

	// System State, loaded once at startup. The topology holds
	// borrowed device references, so the devices slice must stay
	// alive as long as the model.
	topology  *gpu.Config
	devices   []*pci.Device
	providers []provider.Provider
}

// NewModel creates a TUI model from a completed classification pass.
func NewModel(logger *zap.Logger, topology *gpu.Config, devices []*pci.Device,
	resolver provider.Resolver) Model {
	return Model{
		logger:        logger,
		currentScreen: ScreenMenu,
		topology:      topology,
		devices:       devices,
		providers:     topology.Providers(resolver),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.currentScreen = ScreenMenu
		return m, nil
	}

	if m.currentScreen == ScreenMenu {
		return m.updateMenu(keyMsg)
	}
	return m, nil
}

// updateMenu handles navigation on the main menu.
func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := DefaultMenuItems()

	switch msg.String() {
	case "up", "k":
		if m.selection > 0 {
			m.selection--
		}
	case "down", "j":
		if m.selection < len(items)-1 {
			m.selection++
		}
	case "enter", " ":
		m.currentScreen = items[m.selection].Screen
	default:
		// Number/letter shortcuts jump straight to a screen.
		for i, item := range items {
			if msg.String() == item.Key {
				m.selection = i
				m.currentScreen = item.Screen
				break
			}
		}
	}
	return m, nil
}

// View renders the current screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.currentScreen {
	case ScreenStatus:
		return m.renderStatusScreen()
	case ScreenDevices:
		return m.renderDevicesScreen()
	case ScreenProviders:
		return m.renderProvidersScreen()
	case ScreenHelp:
		return m.renderHelpScreen()
	default:
		return m.renderMenu()
	}
}

// Run starts the TUI program and blocks until it exits.
func Run(logger *zap.Logger, topology *gpu.Config, devices []*pci.Device,
	resolver provider.Resolver) error {
	model := NewModel(logger, topology, devices, resolver)
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		if logger != nil {
			logger.Error("TUI terminated with error", zap.Error(err))
		}
		return err
	}
	return nil
}

// countLabel formats the GPU count for display.
func countLabel(count uint) string {
	if count == 1 {
		return "1 GPU"
	}
	return strconv.FormatUint(uint64(count), 10) + " GPUs"
}
