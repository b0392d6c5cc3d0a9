// Package deck provides a virtual control surface that hosts stopwatch keys
// in a Fyne window.
package deck

import (
	"context"
	"fmt"
	"log"
	"sync"

	"deckwatch/internal/core/model"
	"deckwatch/internal/core/stopwatch"
	"deckwatch/internal/render"
	"deckwatch/internal/storage"
	"deckwatch/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Handler receives the events produced by the surface.
type Handler interface {
	Handle(ctx context.Context, event stopwatch.Event)
}

// Window is the deck window. It implements stopwatch.Host.
type Window struct {
	window    fyne.Window
	config    model.DeckConfig
	store     *storage.KeyStore
	keys      []*keyButton
	pageLabel *widget.Label

	// visible maps instance ids to slots; only touched on the Fyne thread.
	visible map[string]*keyButton
	page    int
	do      func(func())

	mu       sync.Mutex
	handler  Handler
	onChange func()
}

// New creates the deck window. Attach must be called before Show.
func New(app fyne.App, config model.DeckConfig, store *storage.KeyStore) *Window {
	window := app.NewWindow("deckwatch")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	deck := &Window{
		window:    window,
		config:    config,
		store:     store,
		visible:   make(map[string]*keyButton),
		pageLabel: widget.NewLabel(""),
		do:        fyne.Do,
	}

	grid := container.NewGridWithColumns(config.Columns)
	for i := 0; i < config.KeysPerPage(); i++ {
		key := newKeyButton(float32(config.KeySize) / 2)
		key.onDown = deck.keyDown
		key.onUp = deck.keyUp
		key.onTap = deck.tap
		deck.keys = append(deck.keys, key)
		grid.Add(key)
	}

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		deck.ShowPage(deck.page - 1)
	})
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		deck.ShowPage(deck.page + 1)
	})
	hint := widget.NewLabel("click: start/stop  hold: reset  right click: reset")
	nav := container.NewHBox(prev, deck.pageLabel, next, layout.NewSpacer(), hint)

	window.SetContent(container.NewBorder(nil, nav, nil, nil, container.NewPadded(grid)))
	window.SetCloseIntercept(deck.Hide)
	return deck
}

// Attach sets the event handler and a callback run after settings change.
func (deck *Window) Attach(handler Handler, onChange func()) {
	deck.mu.Lock()
	defer deck.mu.Unlock()
	deck.handler = handler
	deck.onChange = onChange
}

// Show displays the window and brings the current page on screen.
func (deck *Window) Show() {
	if len(deck.visible) == 0 {
		deck.ShowPage(deck.page)
	}
	deck.window.Show()
	deck.window.RequestFocus()
}

// Hide takes every key off screen and hides the window. Running
// stopwatches keep counting.
func (deck *Window) Hide() {
	deck.HideAll()
	deck.window.Hide()
}

// Page returns the current page index.
func (deck *Window) Page() int {
	return deck.page
}

// ShowPage hides the keys of the current page and shows those of page.
// Pages wrap around.
func (deck *Window) ShowPage(page int) {
	pages := deck.config.Pages
	page = ((page % pages) + pages) % pages

	deck.HideAll()
	deck.page = page
	deck.pageLabel.SetText(fmt.Sprintf("Page %d/%d", page+1, pages))
	for slot, key := range deck.keys {
		instance := model.InstanceID(page, slot)
		key.instance = instance
		deck.visible[instance] = key
		deck.dispatch(stopwatch.Event{
			Type:     stopwatch.EventWillAppear,
			Instance: instance,
			Settings: deck.store.Load(instance),
		})
	}
}

// HideAll sends a disappear notification for every visible key.
func (deck *Window) HideAll() {
	for instance, key := range deck.visible {
		deck.dispatch(stopwatch.Event{Type: stopwatch.EventWillDisappear, Instance: instance})
		key.clear()
		delete(deck.visible, instance)
	}
}

// RunningCount counts stored keys whose stopwatch is running, on any page.
func (deck *Window) RunningCount() int {
	count := 0
	for _, instance := range deck.store.Instances() {
		if model.Normalize(deck.store.Load(instance)).Running {
			count++
		}
	}
	return count
}

// SetTitle implements stopwatch.Host.
func (deck *Window) SetTitle(_ context.Context, instance string, title string) error {
	deck.do(func() {
		if key, ok := deck.visible[instance]; ok {
			key.setTitle(title)
		}
	})
	return nil
}

// SetImage implements stopwatch.Host.
func (deck *Window) SetImage(_ context.Context, instance string, img *render.Image) error {
	resource := resources.KeyFace(img)
	deck.do(func() {
		if key, ok := deck.visible[instance]; ok {
			key.setFace(resource)
		}
	})
	return nil
}

// SetSettings implements stopwatch.Host.
func (deck *Window) SetSettings(_ context.Context, instance string, settings *model.RawSettings) error {
	if err := deck.store.Save(instance, settings); err != nil {
		return err
	}
	deck.mu.Lock()
	onChange := deck.onChange
	deck.mu.Unlock()
	if onChange != nil {
		deck.do(onChange)
	}
	return nil
}

func (deck *Window) keyDown(instance string) {
	deck.dispatch(stopwatch.Event{Type: stopwatch.EventKeyDown, Instance: instance, Settings: deck.store.Load(instance)})
}

func (deck *Window) keyUp(instance string) {
	deck.dispatch(stopwatch.Event{Type: stopwatch.EventKeyUp, Instance: instance, Settings: deck.store.Load(instance)})
}

func (deck *Window) tap(instance string, hold bool) {
	deck.dispatch(stopwatch.Event{Type: stopwatch.EventTap, Instance: instance, Settings: deck.store.Load(instance), Hold: hold})
}

func (deck *Window) dispatch(event stopwatch.Event) {
	deck.mu.Lock()
	handler := deck.handler
	deck.mu.Unlock()
	if handler == nil {
		log.Printf("deck: no handler for %s on %s", event.Type, event.Instance)
		return
	}
	handler.Handle(context.Background(), event)
}
