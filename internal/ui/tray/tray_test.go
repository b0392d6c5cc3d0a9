package tray

import (
	"testing"

	"fyne.io/fyne/v2"
)

type fakeTray struct {
	menu *fyne.Menu
	icon fyne.Resource
}

func (tray *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) { tray.menu = menu }
func (tray *fakeTray) SetSystemTrayIcon(icon fyne.Resource) { tray.icon = icon }
func (tray *fakeTray) SetSystemTrayWindow(window fyne.Window) {}

func TestManagerStatusAndIcon(t *testing.T) {
	idle := fyne.NewStaticResource("idle.png", []byte{1})
	active := fyne.NewStaticResource("active.png", []byte{2})
	fake := &fakeTray{}
	shown := 0
	manager := New(fake, idle, active, Callbacks{OnShowDeck: func() { shown++ }})

	if fake.icon != idle {
		t.Fatalf("expected idle icon initially")
	}
	if got := fake.menu.Items[0].Label; got != "No stopwatch running" {
		t.Fatalf("unexpected status %q", got)
	}

	manager.SetRunning(2)
	if fake.icon != active {
		t.Fatalf("expected active icon")
	}
	if got := fake.menu.Items[0].Label; got != "2 stopwatches running" {
		t.Fatalf("unexpected status %q", got)
	}

	fake.menu.Items[2].Action()
	if shown != 1 {
		t.Fatalf("expected show callback, got %d", shown)
	}
	// Items without a callback must not panic.
	fake.menu.Items[3].Action()
}
