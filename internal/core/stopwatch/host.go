package stopwatch

import (
	"context"

	"deckwatch/internal/core/model"
	"deckwatch/internal/render"
)

// Host is the application that owns the keys.
type Host interface {
	SetTitle(ctx context.Context, instance string, title string) error
	// SetImage replaces the key face; a nil image restores the host default.
	SetImage(ctx context.Context, instance string, img *render.Image) error
	SetSettings(ctx context.Context, instance string, settings *model.RawSettings) error
}

// keyHandle pushes updates for one key instance to the host.
type keyHandle struct {
	host     Host
	instance string
}

func (handle keyHandle) clearTitle(ctx context.Context) error {
	return handle.host.SetTitle(ctx, handle.instance, "")
}

func (handle keyHandle) setImage(ctx context.Context, img *render.Image) error {
	return handle.host.SetImage(ctx, handle.instance, img)
}

func (handle keyHandle) persist(ctx context.Context, state model.StopwatchState) error {
	return handle.host.SetSettings(ctx, handle.instance, state.Raw())
}
