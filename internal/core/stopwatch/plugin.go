// Package stopwatch implements the per-key stopwatch: press handling,
// redraw and long-press schedules, and the registry of visible keys.
package stopwatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"deckwatch/internal/core/clock"
	"deckwatch/internal/core/model"
	"deckwatch/internal/core/schedule"
	"deckwatch/internal/core/timefmt"
	"deckwatch/internal/render"
)

// Options contains optional collaborators for Plugin.
type Options struct {
	Clock    clock.Clock
	Logger   *log.Logger
	Renderer *render.Renderer
}

// Snapshot describes a key instance at a point in time.
type Snapshot struct {
	Instance  string
	State     model.StopwatchState
	ElapsedMs int64
	Display   string
	Pressed   bool
}

// Plugin owns every visible key instance. Event handlers and timer
// callbacks are serialized, so each runs to completion before the next.
type Plugin struct {
	mu       sync.Mutex
	host     Host
	clock    clock.Clock
	logger   *log.Logger
	renderer *render.Renderer
	keys     map[string]*keyRuntime
	base     context.Context
	cancel   context.CancelFunc
	closed   bool
}

// New creates a plugin that pushes updates to host.
func New(host Host, options Options) (*Plugin, error) {
	if host == nil {
		return nil, errors.New("stopwatch: nil host")
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}
	if options.Renderer == nil {
		renderer, err := render.New(render.DefaultSize)
		if err != nil {
			return nil, fmt.Errorf("create renderer: %w", err)
		}
		options.Renderer = renderer
	}

	base, cancel := context.WithCancel(context.Background())
	return &Plugin{
		host:     host,
		clock:    options.Clock,
		logger:   options.Logger,
		renderer: options.Renderer,
		keys:     make(map[string]*keyRuntime),
		base:     base,
		cancel:   cancel,
	}, nil
}

// Handle processes one host event. Failures are logged and never returned;
// the key stays responsive to the next event.
func (plugin *Plugin) Handle(ctx context.Context, event Event) {
	plugin.mu.Lock()
	defer plugin.mu.Unlock()
	defer plugin.recoverFault(event.Instance, string(event.Type))

	if plugin.closed {
		return
	}

	var err error
	switch event.Type {
	case EventWillAppear:
		err = plugin.appearLocked(ctx, event)
	case EventWillDisappear:
		plugin.disappearLocked(event.Instance)
	case EventKeyDown:
		plugin.keyDownLocked(event)
	case EventKeyUp:
		err = plugin.keyUpLocked(ctx, event)
	case EventTap:
		err = plugin.tapLocked(ctx, event)
	case EventSettingsChanged:
		err = plugin.settingsChangedLocked(ctx, event)
	default:
		err = fmt.Errorf("unknown event type %q", event.Type)
	}
	if err != nil {
		plugin.logger.Printf("stopwatch %s: %s: %v", event.Instance, event.Type, err)
	}
}

// Snapshot returns the current state of a visible key instance.
func (plugin *Plugin) Snapshot(instance string) (Snapshot, bool) {
	plugin.mu.Lock()
	defer plugin.mu.Unlock()
	key, ok := plugin.keys[instance]
	if !ok {
		return Snapshot{}, false
	}
	elapsed := key.state.LiveElapsed(clock.NowMs(plugin.clock))
	return Snapshot{
		Instance:  instance,
		State:     key.state,
		ElapsedMs: elapsed,
		Display:   timefmt.Format(elapsed, key.state.Format),
		Pressed:   key.pressed,
	}, true
}

// Instances lists visible key instances in order.
func (plugin *Plugin) Instances() []string {
	plugin.mu.Lock()
	defer plugin.mu.Unlock()
	instances := make([]string, 0, len(plugin.keys))
	for instance := range plugin.keys {
		instances = append(instances, instance)
	}
	sort.Strings(instances)
	return instances
}

// Running counts visible key instances whose stopwatch is running.
func (plugin *Plugin) Running() int {
	plugin.mu.Lock()
	defer plugin.mu.Unlock()
	count := 0
	for _, key := range plugin.keys {
		if key.state.Running {
			count++
		}
	}
	return count
}

// Close cancels every schedule. Later events are ignored.
func (plugin *Plugin) Close() {
	plugin.mu.Lock()
	defer plugin.mu.Unlock()
	if plugin.closed {
		return
	}
	plugin.closed = true
	for instance, key := range plugin.keys {
		key.cancelSchedules()
		delete(plugin.keys, instance)
	}
	plugin.cancel()
}

func (plugin *Plugin) appearLocked(ctx context.Context, event Event) error {
	key := plugin.keys[event.Instance]
	if key == nil {
		key = plugin.newKeyLocked(event.Instance)
		plugin.keys[event.Instance] = key
	}
	key.cancelSchedules()
	key.pressed = false
	key.resetFired = false
	key.state = model.Normalize(event.Settings)

	var errs []error
	if !event.Settings.Complete() {
		if err := key.handle.persist(ctx, key.state); err != nil {
			errs = append(errs, fmt.Errorf("persist settings: %w", err))
		}
	}
	if err := key.handle.clearTitle(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear title: %w", err))
	}
	if err := plugin.refreshLocked(ctx, key); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (plugin *Plugin) disappearLocked(instance string) {
	key, ok := plugin.keys[instance]
	if !ok {
		return
	}
	key.cancelSchedules()
	delete(plugin.keys, instance)
}

func (plugin *Plugin) keyDownLocked(event Event) {
	key := plugin.adoptLocked(event)
	key.pressed = true
	key.pressedAt = plugin.clock.Now()
	key.resetFired = false
	key.redraw.Cancel()
	key.longPress.After(key.longPressDelay(), func() {
		plugin.longPressFired(event.Instance, key)
	})
}

// longPressFired runs on the serialized context from the long-press slot.
func (plugin *Plugin) longPressFired(instance string, key *keyRuntime) {
	if plugin.keys[instance] != key || !key.pressed {
		return
	}
	plugin.applyLocked(key, Interpret(Gesture{Kind: GestureHoldElapsed}, key.longPressDelay()))
	key.resetFired = true

	ctx := plugin.base
	if err := errors.Join(plugin.persistLocked(ctx, key), plugin.refreshLocked(ctx, key)); err != nil {
		plugin.logger.Printf("stopwatch %s: long press: %v", instance, err)
	}
}

func (plugin *Plugin) keyUpLocked(ctx context.Context, event Event) error {
	key, ok := plugin.keys[event.Instance]
	if !ok || !key.pressed {
		return nil
	}
	key.longPress.Cancel()
	key.pressed = false

	action := Interpret(Gesture{
		Kind:       GestureRelease,
		Held:       plugin.clock.Now().Sub(key.pressedAt),
		ResetFired: key.resetFired,
	}, key.longPressDelay())
	key.resetFired = false
	if action == ActionNone {
		// Nothing to apply; only resume the redraw the press froze.
		if !key.state.Running {
			return nil
		}
		return plugin.refreshLocked(ctx, key)
	}
	plugin.applyLocked(key, action)
	return errors.Join(plugin.persistLocked(ctx, key), plugin.refreshLocked(ctx, key))
}

func (plugin *Plugin) tapLocked(ctx context.Context, event Event) error {
	key := plugin.adoptLocked(event)
	key.longPress.Cancel()
	key.pressed = false
	key.resetFired = false
	plugin.applyLocked(key, Interpret(Gesture{Kind: GestureTap, Hold: event.Hold}, key.longPressDelay()))
	return errors.Join(plugin.persistLocked(ctx, key), plugin.refreshLocked(ctx, key))
}

func (plugin *Plugin) settingsChangedLocked(ctx context.Context, event Event) error {
	key, ok := plugin.keys[event.Instance]
	if !ok {
		return nil
	}
	key.state = model.Normalize(event.Settings)

	var errs []error
	if !event.Settings.Complete() {
		errs = append(errs, plugin.persistLocked(ctx, key))
	}
	if key.pressed {
		// Display stays frozen until release; the armed long press keeps
		// the threshold it was armed with.
		return errors.Join(errs...)
	}
	errs = append(errs, plugin.refreshLocked(ctx, key))
	return errors.Join(errs...)
}

// adoptLocked returns the runtime for an instance, creating it from the
// event snapshot when the host sent input before an appear notification.
func (plugin *Plugin) adoptLocked(event Event) *keyRuntime {
	key, ok := plugin.keys[event.Instance]
	if ok {
		return key
	}
	key = plugin.newKeyLocked(event.Instance)
	key.state = model.Normalize(event.Settings)
	plugin.keys[event.Instance] = key
	return key
}

func (plugin *Plugin) newKeyLocked(instance string) *keyRuntime {
	return &keyRuntime{
		handle:    keyHandle{host: plugin.host, instance: instance},
		state:     model.DefaultState(),
		redraw:    schedule.NewSlot(plugin.clock, plugin.serialize),
		longPress: schedule.NewSlot(plugin.clock, plugin.serialize),
	}
}

func (plugin *Plugin) applyLocked(key *keyRuntime, action Action) {
	switch action {
	case ActionToggle:
		key.state.Toggle(clock.NowMs(plugin.clock))
	case ActionReset:
		key.state.Reset()
	}
}

func (plugin *Plugin) persistLocked(ctx context.Context, key *keyRuntime) error {
	if err := key.handle.persist(ctx, key.state); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

// refreshLocked keeps the redraw schedule in line with the running flag
// and draws the key now. The schedule is armed first so a failed draw
// only costs this frame.
func (plugin *Plugin) refreshLocked(ctx context.Context, key *keyRuntime) error {
	key.redraw.Cancel()
	if key.state.Running {
		instance := key.handle.instance
		key.redraw.Repeat(key.tickPeriod(), func() {
			if err := plugin.drawLocked(plugin.base, key); err != nil {
				plugin.logger.Printf("stopwatch %s: redraw: %v", instance, err)
			}
		})
	}
	return plugin.drawLocked(ctx, key)
}

func (plugin *Plugin) drawLocked(ctx context.Context, key *keyRuntime) error {
	elapsed := key.state.LiveElapsed(clock.NowMs(plugin.clock))
	text := timefmt.Format(elapsed, key.state.Format)
	img, err := plugin.renderer.Render(text, key.state.Running, key.state.ElapsedMs)
	if err != nil {
		err = fmt.Errorf("render %q: %w", text, err)
		if fallbackErr := key.handle.setImage(ctx, nil); fallbackErr != nil {
			err = errors.Join(err, fmt.Errorf("set default image: %w", fallbackErr))
		}
		return err
	}
	if err := key.handle.setImage(ctx, img); err != nil {
		return fmt.Errorf("set image: %w", err)
	}
	return nil
}

// serialize runs timer callbacks under the plugin lock.
func (plugin *Plugin) serialize(fn func()) {
	plugin.mu.Lock()
	defer plugin.mu.Unlock()
	defer plugin.recoverFault("", "timer")
	if plugin.closed {
		return
	}
	fn()
}

func (plugin *Plugin) recoverFault(instance, operation string) {
	if recovered := recover(); recovered != nil {
		plugin.logger.Printf("stopwatch %s: %s: recovered: %v", instance, operation, recovered)
	}
}
