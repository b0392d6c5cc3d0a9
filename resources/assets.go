package resources

import (
	"fmt"
	"sync"

	"deckwatch/internal/render"

	"fyne.io/fyne/v2"
)

const iconText = "DW"

var iconCache sync.Map

type iconKey struct {
	size    int
	running bool
}

// KeyFace wraps a rendered key image as a Fyne resource.
func KeyFace(img *render.Image) fyne.Resource {
	if img == nil {
		return nil
	}
	name := fmt.Sprintf("key-%s-%s.png", img.Mode, img.Text)
	return fyne.NewStaticResource(name, img.PNG)
}

// Icon returns the app icon in the running or idle palette.
func Icon(renderer *render.Renderer, running bool) (fyne.Resource, error) {
	key := iconKey{size: renderer.Size(), running: running}
	if cached, ok := iconCache.Load(key); ok {
		return cached.(fyne.Resource), nil
	}

	// A stopped face with time on it selects the dim palette.
	var elapsed int64 = 1
	img, err := renderer.Render(iconText, running, elapsed)
	if err != nil {
		return nil, fmt.Errorf("render icon: %w", err)
	}
	resource := fyne.NewStaticResource(fmt.Sprintf("icon-%d-%s.png", key.size, img.Mode), img.PNG)
	iconCache.Store(key, resource)
	return resource, nil
}

// MustIcon returns the icon or panics on error.
func MustIcon(renderer *render.Renderer, running bool) fyne.Resource {
	resource, err := Icon(renderer, running)
	if err != nil {
		panic(err)
	}
	return resource
}
