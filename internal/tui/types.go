package tui

// Screen represents different TUI screens
type Screen string

const (
	// ScreenMenu is the main menu screen
	ScreenMenu Screen = "menu"
	// ScreenStatus shows the classified GPU topology
	ScreenStatus Screen = "status"
	// ScreenDevices shows the enumerated GPU devices
	ScreenDevices Screen = "devices"
	// ScreenProviders shows the resolved driver providers
	ScreenProviders Screen = "providers"
	// ScreenHelp shows help overlay
	ScreenHelp Screen = "help"
)

// MenuItem represents a menu item
type MenuItem struct {
	Key         string // Number key or letter
	Label       string // Display label
	Description string // Short description
	Screen      Screen // Target screen
}

// DefaultMenuItems returns the default main menu items
func DefaultMenuItems() []MenuItem {
	return []MenuItem{
		{Key: "1", Label: "Status", Description: "View GPU topology classification", Screen: ScreenStatus},
		{Key: "2", Label: "Devices", Description: "List discovered GPU devices", Screen: ScreenDevices},
		{Key: "3", Label: "Providers", Description: "View driver provider candidates", Screen: ScreenProviders},
		{Key: "?", Label: "Help", Description: "Show help", Screen: ScreenHelp},
	}
}
