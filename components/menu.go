package components

import "github.com/yohamta/donburi"

// MainMenuOption represents the available main menu selections
type MainMenuOption int

const (
	MainMenuVsCPU MainMenuOption = iota
	MainMenuLocal
	MainMenuHostDuel
	MainMenuHostRoyale
	MainMenuJoin
	MainMenuVolume
	MainMenuExit
)

// MenuData stores the current state of the main menu
type MenuData struct {
	SelectedIndex  int              // Current selection index in VisibleOptions
	VisibleOptions []MainMenuOption // Options to display
	Volume         float64          // Shown next to the volume option
	Status         string           // Last error, shown under the options
}

// Menu is the component type for main menu state
var Menu = donburi.NewComponentType[MenuData]()
