package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowDeck func()
	OnHideDeck func()
	OnNextPage func()
	OnQuit     func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	callbacks  Callbacks
	running    int
	idleIcon   fyne.Resource
	activeIcon fyne.Resource
}

// New creates a tray manager. The icons are shown when no stopwatch runs
// and when at least one does.
func New(app desktop.App, idleIcon, activeIcon fyne.Resource, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		idleIcon:   idleIcon,
		activeIcon: activeIcon,
	}

	manager.statusItem = fyne.NewMenuItem(statusLabel(0), nil)
	manager.statusItem.Disabled = true

	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// SetRunning updates the number of running stopwatches.
func (manager *Manager) SetRunning(running int) {
	if running == manager.running {
		return
	}
	manager.running = running
	manager.statusItem.Label = statusLabel(running)
	manager.refreshMenu()
	manager.refreshIcon()
}

func statusLabel(running int) string {
	switch running {
	case 0:
		return "No stopwatch running"
	case 1:
		return "1 stopwatch running"
	default:
		return fmt.Sprintf("%d stopwatches running", running)
	}
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	if manager.running > 0 {
		manager.app.SetSystemTrayIcon(manager.activeIcon)
	} else {
		manager.app.SetSystemTrayIcon(manager.idleIcon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("deckwatch",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show deck", manager.call(manager.callbacks.OnShowDeck)),
		fyne.NewMenuItem("Next page", manager.call(manager.callbacks.OnNextPage)),
		fyne.NewMenuItem("Hide deck", manager.call(manager.callbacks.OnHideDeck)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", manager.call(manager.callbacks.OnQuit)),
	))
}

func (manager *Manager) call(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
