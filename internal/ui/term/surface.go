package term

import (
	"context"
	"sync"

	"deckwatch/internal/core/model"
	"deckwatch/internal/render"
	"deckwatch/internal/storage"
)

// face is what the terminal shows for one key.
type face struct {
	text  string
	title string
	mode  render.Mode
	blank bool
}

// Surface implements stopwatch.Host for the terminal deck. It only records
// faces; the Bubble Tea model repaints them on its own frame tick.
type Surface struct {
	mu    sync.Mutex
	faces map[string]face
	store *storage.KeyStore
}

// NewSurface creates a surface persisting settings to store.
func NewSurface(store *storage.KeyStore) *Surface {
	return &Surface{
		faces: make(map[string]face),
		store: store,
	}
}

// SetTitle implements stopwatch.Host.
func (surface *Surface) SetTitle(_ context.Context, instance string, title string) error {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	current := surface.faces[instance]
	current.title = title
	surface.faces[instance] = current
	return nil
}

// SetImage implements stopwatch.Host.
func (surface *Surface) SetImage(_ context.Context, instance string, img *render.Image) error {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	current := surface.faces[instance]
	if img == nil {
		current.blank = true
		current.text = ""
	} else {
		current.blank = false
		current.text = img.Text
		current.mode = img.Mode
	}
	surface.faces[instance] = current
	return nil
}

// SetSettings implements stopwatch.Host.
func (surface *Surface) SetSettings(_ context.Context, instance string, settings *model.RawSettings) error {
	return surface.store.Save(instance, settings)
}

func (surface *Surface) lookup(instance string) (face, bool) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	current, ok := surface.faces[instance]
	return current, ok
}

func (surface *Surface) forget(instance string) {
	surface.mu.Lock()
	defer surface.mu.Unlock()
	delete(surface.faces, instance)
}

func (surface *Surface) load(instance string) *model.RawSettings {
	return surface.store.Load(instance)
}
