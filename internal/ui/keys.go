package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewBooks     key.Binding
	ViewRequests  key.Binding
	ViewHistory   key.Binding
	ViewImport    key.Binding
	ViewReports   key.Binding
	ViewSettings  key.Binding

	// Books view
	Search     key.Binding
	ToggleView key.Binding
	Open       key.Binding
	AddBook    key.Binding

	// Detail view actions
	RequestBorrow key.Binding

	// Detail view actions (admin)
	EditTitle    key.Binding
	DeleteTitle  key.Binding
	AddCopy      key.Binding
	EditCopy     key.Binding
	DeleteCopy   key.Binding
	Assign       key.Binding
	PrintBarcode key.Binding
	PrintQR      key.Binding
	PrintSheet   key.Binding

	// List actions
	CycleFilter key.Binding
	Cancel      key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Confirm  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh / retry"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Dashboard"),
		),
		ViewBooks: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Books"),
		),
		ViewRequests: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "My requests"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "My history"),
		),
		ViewImport: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Import/export"),
		),
		ViewReports: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "Reports"),
		),
		ViewSettings: key.NewBinding(
			key.WithKeys("7"),
			key.WithHelp("7", "Settings"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Grid/list"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		AddBook: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add book"),
		),

		RequestBorrow: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Request to borrow"),
		),
		EditTitle: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit title"),
		),
		DeleteTitle: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete title"),
		),
		AddCopy: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add copy"),
		),
		EditCopy: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Edit copy"),
		),
		DeleteCopy: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete copy"),
		),
		Assign: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Assign to library"),
		),
		PrintBarcode: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Barcode label"),
		),
		PrintQR: key.NewBinding(
			key.WithKeys("Q"),
			key.WithHelp("Q", "QR label"),
		),
		PrintSheet: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "All barcodes"),
		),

		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle status filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cancel request"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "Left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "Right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "Page down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
