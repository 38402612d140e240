package player

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/config"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
	"github.com/xkilldash9x/uiprobe/internal/toolkit/tktest"
)

// fixture is a small application: a main window with a button, plus whatever
// each test grafts onto it.
type fixture struct {
	app    *tktest.App
	p      *Player
	win    *tktest.Widget
	button *tktest.Widget
}

func newFixture() *fixture {
	app := tktest.NewApp()
	win := tktest.NewWidget("MainWindow", "MainWindow", "Widget", "Object")
	win.SetSize(800, 600)
	button := tktest.NewWidget("okButton", "Button", "Widget", "Object")
	win.AddChild(button)
	app.AddTopLevel(win)
	app.SetActiveWindow(win)
	p := New(app, config.PlayerConfig{GrabFormat: "PNG", DragSteps: 3}, zap.NewNop())
	return &fixture{app: app, p: p, win: win, button: button}
}

// run executes a non-delayed command.
func (f *fixture) run(t *testing.T, cmd schemas.Bag) schemas.Bag {
	t.Helper()
	result, delayed := f.p.Process(cmd)
	require.Nil(t, delayed)
	require.NotNil(t, result)
	return result
}

// find registers the object at path and returns its handle.
func (f *fixture) find(t *testing.T, path string) uint64 {
	t.Helper()
	result := f.run(t, schemas.Bag{"action": "widget_by_path", "path": path})
	require.False(t, result.IsError(), "find %s: %v", path, result)
	return result.Uint64("oid")
}

// eventKinds flattens the events posted to target into their type names.
func eventKinds(app *tktest.App, target toolkit.Object) []string {
	var kinds []string
	for _, ev := range app.PostedFor(target) {
		kinds = append(kinds, ev.Type().String())
	}
	return kinds
}

func TestWidgetByPath(t *testing.T) {
	f := newFixture()

	result := f.run(t, schemas.Bag{"action": "widget_by_path", "path": "MainWindow/okButton"})
	require.False(t, result.IsError())
	assert.NotZero(t, result.Uint64("oid"))
	assert.Equal(t, "MainWindow/okButton", result.String("path"))
	assert.Equal(t, []string{"Button", "Widget", "Object"}, result["classes"])

	// Repeated lookups of the same widget yield the same handle.
	again := f.run(t, schemas.Bag{"action": "widget_by_path", "path": "MainWindow/okButton"})
	assert.Equal(t, result.Uint64("oid"), again.Uint64("oid"))
}

func TestWidgetByPathMissing(t *testing.T) {
	f := newFixture()
	result := f.run(t, schemas.Bag{"action": "widget_by_path", "path": "MainWindow/doesNotExist"})
	assert.Equal(t, schemas.ErrInvalidWidgetPath, result.Kind())
	assert.Equal(t, "Unable to find widget with path `MainWindow/doesNotExist`",
		result.String("message"))
}

func TestHandleInvalidAfterDestroy(t *testing.T) {
	f := newFixture()
	oid := f.find(t, "MainWindow/okButton")

	f.button.Destroy()

	result := f.run(t, schemas.Bag{"action": "widget_click", "oid": oid})
	assert.Equal(t, schemas.ErrNotRegisteredObject, result.Kind())
	assert.Equal(t,
		fmt.Sprintf("The object (id:%d) is not registered or has been destroyed", oid),
		result.String("message"))
}

func TestCapabilityError(t *testing.T) {
	f := newFixture()
	action := tktest.NewAction("quitAction")
	f.win.AddChild(action)
	oid := f.find(t, "MainWindow/quitAction")

	result := f.run(t, schemas.Bag{"action": "widget_click", "oid": oid})
	assert.Equal(t, schemas.ErrNotAWidget, result.Kind())
	assert.Contains(t, result.String("message"), "Widget")
}

func TestWidgetClickPostsPressThenRelease(t *testing.T) {
	f := newFixture()
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "widget_click", "oid": oid})
	require.False(t, result.IsError())

	events := f.app.PostedFor(f.button)
	require.Len(t, events, 2)
	press := events[0].(*toolkit.MouseEvent)
	release := events[1].(*toolkit.MouseEvent)
	assert.Equal(t, toolkit.MousePress, press.Kind)
	assert.Equal(t, toolkit.MouseRelease, release.Kind)
	assert.Equal(t, toolkit.LeftButton, press.Button)
	// Both land on the same point, the widget center.
	center := f.button.Rect().Center()
	assert.Equal(t, center, press.Pos)
	assert.Equal(t, center, release.Pos)
}

func TestWidgetClickButtons(t *testing.T) {
	tests := []struct {
		action string
		kinds  []string
		button toolkit.MouseButton
	}{
		{"rightclick", []string{"MousePress", "MouseRelease"}, toolkit.RightButton},
		{"middleclick", []string{"MousePress", "MouseRelease"}, toolkit.MiddleButton},
		{"doubleclick", []string{"MousePress", "MouseRelease", "MouseDblClick"}, toolkit.LeftButton},
	}
	for _, tc := range tests {
		t.Run(tc.action, func(t *testing.T) {
			f := newFixture()
			oid := f.find(t, "MainWindow/okButton")
			result := f.run(t, schemas.Bag{
				"action": "widget_click", "oid": oid, "mouseAction": tc.action,
			})
			require.False(t, result.IsError())
			if diff := cmp.Diff(tc.kinds, eventKinds(f.app, f.button)); diff != "" {
				t.Errorf("posted events mismatch (-want +got):\n%s", diff)
			}
			first := f.app.PostedFor(f.button)[0].(*toolkit.MouseEvent)
			assert.Equal(t, tc.button, first.Button)
		})
	}
}

func TestWidgetMovePartialCoordinates(t *testing.T) {
	f := newFixture()
	f.button.SetPos(5, 20)
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "widget_move", "oid": oid, "x": 10})
	require.False(t, result.IsError())
	assert.Equal(t, 10, result.Int("x"))
	assert.Equal(t, 20, result.Int("y"))
	assert.Equal(t, toolkit.Point{X: 10, Y: 20}, f.button.Pos())
}

func TestWidgetResizePartial(t *testing.T) {
	f := newFixture()
	f.button.SetSize(100, 30)
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "widget_resize", "oid": oid, "height": 50})
	require.False(t, result.IsError())
	assert.Equal(t, 100, result.Int("width"))
	assert.Equal(t, 50, result.Int("height"))
}

func TestWidgetClose(t *testing.T) {
	f := newFixture()
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "widget_close", "oid": oid})
	require.False(t, result.IsError())
	// Close runs on the next loop iteration, not during the handler.
	assert.Zero(t, f.button.CloseCount)
	f.app.RunDeferred()
	assert.Equal(t, 1, f.button.CloseCount)
}

func TestWidgetMapPosition(t *testing.T) {
	f := newFixture()
	f.win.SetPos(100, 200)
	f.button.SetPos(10, 20)
	oid := f.find(t, "MainWindow/okButton")

	to := f.run(t, schemas.Bag{
		"action": "widget_map_position", "oid": oid, "direction": "to", "x": 1, "y": 2,
	})
	assert.Equal(t, 111, to.Int("x"))
	assert.Equal(t, 222, to.Int("y"))

	from := f.run(t, schemas.Bag{
		"action": "widget_map_position", "oid": oid, "direction": "from", "x": 111, "y": 222,
	})
	assert.Equal(t, 1, from.Int("x"))
	assert.Equal(t, 2, from.Int("y"))

	parentOid := f.find(t, "MainWindow")
	rel := f.run(t, schemas.Bag{
		"action": "widget_map_position", "oid": oid,
		"parent_oid": parentOid, "direction": "to", "x": 0, "y": 0,
	})
	assert.Equal(t, 10, rel.Int("x"))
	assert.Equal(t, 20, rel.Int("y"))

	bad := f.run(t, schemas.Bag{
		"action": "widget_map_position", "oid": oid, "direction": "sideways",
	})
	assert.Equal(t, schemas.ErrInvalidDirection, bad.Kind())
	assert.Equal(t, "The direction 'sideways' is invalid", bad.String("message"))
}

func TestObjectProperties(t *testing.T) {
	f := newFixture()
	f.button.DeclareProperty("text", "OK")
	f.button.DeclareProperty("enabled", true)
	// Not representable in a JSON bag; silently omitted.
	f.button.DeclareProperty("brush", struct{ color int }{7})
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "object_properties", "oid": oid})
	require.False(t, result.IsError())
	assert.Equal(t, "OK", result.String("text"))
	assert.Equal(t, true, result.Bool("enabled"))
	assert.False(t, result.Has("brush"))
}

func TestObjectSetProperties(t *testing.T) {
	f := newFixture()
	f.button.DeclareProperty("text", "OK")
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{
		"action": "object_set_properties", "oid": oid,
		"properties": map[string]any{"text": "Cancel", "unknown": 1},
	})
	require.False(t, result.IsError())
	value, _ := f.button.PropertyValue("text")
	assert.Equal(t, "Cancel", value)
}

func TestWidgetsList(t *testing.T) {
	f := newFixture()
	inner := tktest.NewWidget("label", "Label", "Widget", "Object")
	f.button.AddChild(inner)

	result := f.run(t, schemas.Bag{"action": "widgets_list", "recursive": true})
	win := result.Sub("MainWindow")
	require.NotNil(t, win)
	button := win.Sub("children").Sub("okButton")
	require.NotNil(t, button)
	assert.Equal(t, "MainWindow/okButton", button.String("path"))
	assert.NotNil(t, button.Sub("children").Sub("label"))

	// Non-recursive stops at the first level.
	flat := f.run(t, schemas.Bag{"action": "widgets_list"})
	assert.Empty(t, flat.Sub("MainWindow").Sub("children"))
}

func TestActionsListAndTrigger(t *testing.T) {
	f := newFixture()
	action := tktest.NewAction("saveAction")
	f.win.AddChild(action)

	list := f.run(t, schemas.Bag{"action": "actions_list"})
	require.NotNil(t, list.Sub("saveAction"))

	oid := f.find(t, "MainWindow/saveAction")

	blocking := f.run(t, schemas.Bag{"action": "action_trigger", "oid": oid, "blocking": true})
	require.False(t, blocking.IsError())
	assert.Equal(t, 1, action.TriggerCount)

	deferred := f.run(t, schemas.Bag{"action": "action_trigger", "oid": oid})
	require.False(t, deferred.IsError())
	assert.Equal(t, 1, action.TriggerCount)
	f.app.RunDeferred()
	assert.Equal(t, 2, action.TriggerCount)
}

func TestActiveWidget(t *testing.T) {
	f := newFixture()
	modal := tktest.NewWidget("dialog", "Dialog", "Widget", "Object")
	f.app.AddTopLevel(modal)
	f.app.SetActiveModal(modal)

	result := f.run(t, schemas.Bag{"action": "active_widget"})
	assert.Equal(t, "MainWindow", result.String("path"))

	result = f.run(t, schemas.Bag{"action": "active_widget", "type": "modal"})
	assert.Equal(t, "dialog", result.String("path"))

	result = f.run(t, schemas.Bag{"action": "active_widget", "type": "popup"})
	assert.Equal(t, schemas.ErrNoActiveWindow, result.Kind())
	assert.Equal(t, "There is no active widget (popup)", result.String("message"))
}

func TestWidgetActivateFocus(t *testing.T) {
	f := newFixture()
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "widget_activate_focus", "oid": oid})
	require.False(t, result.IsError())
	assert.Equal(t, 1, f.button.ActivateCount)
	assert.Equal(t, 1, f.button.FocusCount)
	assert.Equal(t, toolkit.MouseFocusReason, f.button.LastFocusReason)
}

func TestWidgetKeyclick(t *testing.T) {
	f := newFixture()
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "widget_keyclick", "oid": oid, "text": "hi"})
	require.False(t, result.IsError())

	want := []string{"KeyPress", "KeyRelease", "KeyPress", "KeyRelease"}
	if diff := cmp.Diff(want, eventKinds(f.app, f.button)); diff != "" {
		t.Errorf("posted events mismatch (-want +got):\n%s", diff)
	}
	first := f.app.PostedFor(f.button)[0].(*toolkit.KeyEvent)
	assert.Equal(t, int('h'), first.Key)
	assert.Equal(t, "h", first.Text)
	assert.Equal(t, toolkit.ModNone, first.Mod)
}

func TestWidgetKeyclickFallsBackToActiveWindow(t *testing.T) {
	f := newFixture()
	result := f.run(t, schemas.Bag{"action": "widget_keyclick", "text": "a"})
	require.False(t, result.IsError())
	assert.Len(t, f.app.PostedFor(f.win), 2)

	f.app.SetActiveWindow(nil)
	result = f.run(t, schemas.Bag{"action": "widget_keyclick", "text": "a"})
	assert.Equal(t, schemas.ErrNoActiveWindow, result.Kind())
}

func TestCallSlot(t *testing.T) {
	f := newFixture()
	f.button.RegisterSlot("reset", func(params any) any { return "done" })
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "call_slot", "oid": oid, "slot_name": "reset"})
	require.False(t, result.IsError())
	assert.Equal(t, "done", result.String("result_slot"))

	missing := f.run(t, schemas.Bag{"action": "call_slot", "oid": oid, "slot_name": "nope"})
	assert.Equal(t, schemas.ErrNoMethodInvoked, missing.Kind())
	assert.Equal(t, "The slot nope could not be called", missing.String("message"))
}

func TestGrab(t *testing.T) {
	f := newFixture()
	f.button.SetSize(120, 40)
	oid := f.find(t, "MainWindow/okButton")

	result := f.run(t, schemas.Bag{"action": "grab", "oid": oid})
	require.False(t, result.IsError())
	assert.Equal(t, "PNG", result.String("format"))

	raw, err := base64.StdEncoding.DecodeString(result.String("data"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())

	// Without oid the whole screen is captured.
	screen := f.run(t, schemas.Bag{"action": "grab", "format": "JPG"})
	assert.Equal(t, "JPG", screen.String("format"))
}

func TestQuit(t *testing.T) {
	f := newFixture()
	result := f.run(t, schemas.Bag{"action": "quit"})
	require.False(t, result.IsError())
	assert.Equal(t, 1, f.app.QuitCount)
}

func TestListCommands(t *testing.T) {
	f := newFixture()
	result := f.run(t, schemas.Bag{"action": "list_commands"})
	commands, ok := result["commands"].([]string)
	require.True(t, ok)
	assert.Contains(t, commands, "widget_by_path")
	assert.Contains(t, commands, "drag_n_drop")
	assert.Contains(t, commands, "shortcut")
}

func TestProcessUnknownCommand(t *testing.T) {
	f := newFixture()
	result := f.run(t, schemas.Bag{"action": "frobnicate"})
	assert.Equal(t, schemas.ErrInvalidCommand, result.Kind())
	assert.Equal(t, "Unknown command `frobnicate`", result.String("message"))
}
