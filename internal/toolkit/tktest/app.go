package tktest

import (
	"image"
	"sync"

	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// PostedEvent is one event recorded by App.PostEvent.
type PostedEvent struct {
	Target toolkit.Object
	Event  toolkit.Event
}

// App is a scriptable toolkit.App. The zero value is usable. The event queue
// and deferred-callback list are mutex guarded so a pump goroutine can drain
// them while commands run.
type App struct {
	topWidgets []toolkit.Widget
	topWindows []toolkit.Object

	active toolkit.Widget
	modal  toolkit.Object
	popup  toolkit.Object
	focus  toolkit.Object

	mu sync.Mutex
	// Posted holds every event enqueued through PostEvent, in order.
	Posted []PostedEvent
	// Deferred holds callbacks scheduled through Defer; tests run them
	// with RunDeferred.
	Deferred  []func()
	QuitCount int

	// QuickEnabled makes the app report quick-item support.
	QuickEnabled bool
}

// NewApp builds an empty application surface.
func NewApp() *App { return &App{} }

// AddTopLevel registers a top level widget.
func (a *App) AddTopLevel(w toolkit.Widget) { a.topWidgets = append(a.topWidgets, w) }

// AddTopLevelWindow registers a top level window object.
func (a *App) AddTopLevelWindow(o toolkit.Object) { a.topWindows = append(a.topWindows, o) }

// RemoveTopLevel unregisters a top level widget, as the host does when a
// window is destroyed.
func (a *App) RemoveTopLevel(w toolkit.Widget) {
	for i, tw := range a.topWidgets {
		if tw == w {
			a.topWidgets = append(a.topWidgets[:i], a.topWidgets[i+1:]...)
			return
		}
	}
}

func (a *App) SetActiveWindow(w toolkit.Widget) { a.active = w }
func (a *App) SetActiveModal(o toolkit.Object)  { a.modal = o }
func (a *App) SetActivePopup(o toolkit.Object)  { a.popup = o }
func (a *App) SetFocusObject(o toolkit.Object)  { a.focus = o }

func (a *App) TopLevelWidgets() []toolkit.Widget { return a.topWidgets }
func (a *App) TopLevelWindows() []toolkit.Object { return a.topWindows }
func (a *App) ActiveWindow() toolkit.Widget      { return a.active }
func (a *App) ActiveModal() toolkit.Object       { return a.modal }
func (a *App) ActivePopup() toolkit.Object       { return a.popup }
func (a *App) FocusObject() toolkit.Object       { return a.focus }

func (a *App) PostEvent(target toolkit.Object, ev toolkit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Posted = append(a.Posted, PostedEvent{Target: target, Event: ev})
}

func (a *App) GrabScreen() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 640, 480))
}

func (a *App) Defer(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Deferred = append(a.Deferred, fn)
}

// RunDeferred executes and clears the deferred callbacks, simulating the
// next iteration of the host loop.
func (a *App) RunDeferred() {
	a.mu.Lock()
	fns := a.Deferred
	a.Deferred = nil
	a.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (a *App) Quit() { a.QuitCount++ }

// SupportsQuick implements toolkit.QuickCapable.
func (a *App) SupportsQuick() bool { return a.QuickEnabled }

// PostedFor filters the recorded events down to one target.
func (a *App) PostedFor(target toolkit.Object) []toolkit.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []toolkit.Event
	for _, p := range a.Posted {
		if p.Target == target {
			out = append(out, p.Event)
		}
	}
	return out
}
