// Package player executes driver commands against the live GUI. It owns the
// object registry for one session and maps command names to handlers; each
// handler takes a flat parameter bag and returns a result or error bag, never
// a Go error. Two commands (drag_n_drop, shortcut) instead hand back a
// DelayedResponse that the transport drives to completion.
package player

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/config"
	"github.com/xkilldash9x/uiprobe/internal/objectpath"
	"github.com/xkilldash9x/uiprobe/internal/registry"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

type handlerFunc func(schemas.Bag) schemas.Bag

type delayedFunc func(schemas.Bag) DelayedResponse

// Player is the command dispatcher for one driver session.
type Player struct {
	app toolkit.App
	reg *registry.Registry
	cfg config.PlayerConfig
	log *zap.Logger

	handlers map[string]handlerFunc
	delayed  map[string]delayedFunc
}

// New builds a player over the host application surface.
func New(app toolkit.App, cfg config.PlayerConfig, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{
		app: app,
		reg: registry.New(log),
		cfg: cfg,
		log: log.Named("player"),
	}
	p.handlers = map[string]handlerFunc{
		"list_commands":             p.listCommands,
		"widget_by_path":            p.widgetByPath,
		"active_widget":             p.activeWidget,
		"widgets_list":              p.widgetsList,
		"object_properties":         p.objectProperties,
		"object_set_properties":     p.objectSetProperties,
		"actions_list":              p.actionsList,
		"action_trigger":            p.actionTrigger,
		"widget_click":              p.widgetClick,
		"widget_move":               p.widgetMove,
		"widget_resize":             p.widgetResize,
		"widget_close":              p.widgetClose,
		"widget_map_position":       p.widgetMapPosition,
		"widget_activate_focus":     p.widgetActivateFocus,
		"widget_keyclick":           p.widgetKeyclick,
		"model":                     p.model,
		"model_items":               p.modelItems,
		"model_item_action":         p.modelItemAction,
		"model_gitem_action":        p.modelGItemAction,
		"graphicsitems":             p.graphicsItems,
		"gitem_properties":          p.gItemProperties,
		"grab":                      p.grab,
		"grab_graphics_view":        p.grabGraphicsView,
		"tabbar_list":               p.tabBarList,
		"headerview_list":           p.headerViewList,
		"headerview_click":          p.headerViewClick,
		"headerview_path_from_view": p.headerViewPathFromView,
		"quick_item_find":           p.quickItemFind,
		"quick_item_click":          p.quickItemClick,
		"call_slot":                 p.callSlot,
		"quit":                      p.quit,
	}
	p.delayed = map[string]delayedFunc{
		"drag_n_drop": p.dragNDrop,
		"shortcut":    p.shortcut,
	}
	return p
}

// Registry exposes the session registry, mainly for tests and the transport's
// bookkeeping.
func (p *Player) Registry() *registry.Registry { return p.reg }

// Process executes the command named by the bag's "action" field. Exactly one
// of the return values is non-nil: a result/error bag for ordinary commands,
// a DelayedResponse for drag_n_drop and shortcut.
func (p *Player) Process(cmd schemas.Bag) (schemas.Bag, DelayedResponse) {
	action := cmd.String("action")
	if h, ok := p.handlers[action]; ok {
		p.log.Debug("Executing command.", zap.String("action", action))
		return h(cmd), nil
	}
	if d, ok := p.delayed[action]; ok {
		p.log.Debug("Executing delayed command.", zap.String("action", action))
		return nil, d(cmd)
	}
	p.log.Warn("Unknown command.", zap.String("action", action))
	return schemas.Error(schemas.ErrInvalidCommand,
		fmt.Sprintf("Unknown command `%s`", action)), nil
}

// CommandNames returns every supported command name, sorted.
func (p *Player) CommandNames() []string {
	names := make([]string, 0, len(p.handlers)+len(p.delayed))
	for name := range p.handlers {
		names = append(names, name)
	}
	for name := range p.delayed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Player) listCommands(schemas.Bag) schemas.Bag {
	return schemas.Bag{"commands": p.CommandNames()}
}

func (p *Player) widgetByPath(cmd schemas.Bag) schemas.Bag {
	path := cmd.String("path")
	obj := objectpath.FindByPath(p.app, path)
	id := p.reg.Register(obj)
	if id == 0 {
		return schemas.Error(schemas.ErrInvalidWidgetPath,
			fmt.Sprintf("Unable to find widget with path `%s`", path))
	}
	result := schemas.Bag{"oid": id}
	p.dumpObject(obj, result, false)
	return result
}

func (p *Player) activeWidget(cmd schemas.Bag) schemas.Bag {
	var active toolkit.Object
	kind := cmd.String("type")
	switch kind {
	case "modal":
		active = p.app.ActiveModal()
	case "popup":
		active = p.app.ActivePopup()
	case "focus":
		active = p.app.FocusObject()
	default:
		if w := p.app.ActiveWindow(); w != nil {
			active = w
		} else if windows := p.app.TopLevelWindows(); len(windows) > 0 {
			active = windows[0]
		}
	}
	if active == nil {
		return schemas.Error(schemas.ErrNoActiveWindow,
			fmt.Sprintf("There is no active widget (%s)", kind))
	}
	result := schemas.Bag{"oid": p.reg.Register(active)}
	p.dumpObject(active, result, false)
	return result
}

// listWidget dumps one widget into out under its path segment name, with a
// "children" bag that is filled recursively when asked.
func (p *Player) listWidget(w toolkit.Widget, out schemas.Bag, withProperties, recursive bool) {
	entry := schemas.Bag{}
	p.dumpObject(w, entry, withProperties)
	children := schemas.Bag{}
	if recursive {
		for _, child := range w.Children() {
			if sub, ok := child.(toolkit.Widget); ok {
				p.listWidget(sub, children, withProperties, true)
			}
		}
	}
	entry["children"] = children
	out[lastSegment(entry.String("path"))] = entry
}

func (p *Player) widgetsList(cmd schemas.Bag) schemas.Bag {
	withProperties := cmd.Bool("with_properties")
	recursive := cmd.Bool("recursive")
	result := schemas.Bag{}
	if cmd.Has("oid") {
		ctx := locateObject(p, cmd, "oid")
		if ctx.hasError() {
			return ctx.err
		}
		for _, child := range ctx.obj.Children() {
			if w, ok := child.(toolkit.Widget); ok {
				p.listWidget(w, result, withProperties, recursive)
			}
		}
		return result
	}
	widgets := p.app.TopLevelWidgets()
	if len(widgets) > 0 {
		for _, w := range widgets {
			p.listWidget(w, result, withProperties, recursive)
		}
		return result
	}
	// No classic widgets; probably a declarative UI. Fall back to windows.
	for _, window := range p.app.TopLevelWindows() {
		entry := schemas.Bag{}
		p.dumpObject(window, entry, withProperties)
		result[entry.String("path")] = entry
	}
	return result
}

func (p *Player) objectProperties(cmd schemas.Bag) schemas.Bag {
	ctx := locateObject(p, cmd, "oid")
	if ctx.hasError() {
		return ctx.err
	}
	result := schemas.Bag{}
	dumpProperties(ctx.obj, result)
	return result
}

func (p *Player) objectSetProperties(cmd schemas.Bag) schemas.Bag {
	ctx := locateObject(p, cmd, "oid")
	if ctx.hasError() {
		return ctx.err
	}
	// Unknown names and rejected values are skipped, matching the lenient
	// read side.
	for name, value := range cmd.Sub("properties") {
		ctx.obj.SetProperty(name, value)
	}
	return schemas.Bag{}
}

// collectActions gathers every action in root's subtree.
func collectActions(root toolkit.Object, out *[]toolkit.Action) {
	for _, child := range root.Children() {
		if action, ok := child.(toolkit.Action); ok {
			*out = append(*out, action)
		}
		collectActions(child, out)
	}
}

func (p *Player) actionsList(cmd schemas.Bag) schemas.Bag {
	withProperties := cmd.Bool("with_properties")
	var actions []toolkit.Action
	if cmd.Has("oid") {
		ctx := locateObject(p, cmd, "oid")
		if ctx.hasError() {
			return ctx.err
		}
		collectActions(ctx.obj, &actions)
	} else {
		for _, w := range p.app.TopLevelWidgets() {
			collectActions(w, &actions)
		}
	}
	result := schemas.Bag{}
	for _, action := range actions {
		entry := schemas.Bag{}
		p.dumpObject(action, entry, withProperties)
		result[lastSegment(entry.String("path"))] = entry
	}
	return result
}

func (p *Player) actionTrigger(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Action](p, cmd, "oid", "Action")
	if ctx.hasError() {
		return ctx.err
	}
	if cmd.Bool("blocking") {
		// Block until the trigger returns.
		ctx.val.Trigger()
	} else {
		// Trigger on the next loop iteration, return immediately.
		p.app.Defer(ctx.val.Trigger)
	}
	return schemas.Bag{}
}

func (p *Player) widgetClick(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
	if ctx.hasError() {
		return ctx.err
	}
	pos := ctx.val.Rect().Center()
	switch cmd.String("mouseAction") {
	case "doubleclick":
		p.postDoubleClick(ctx.val, pos)
	case "rightclick":
		p.postClick(ctx.val, pos, toolkit.RightButton)
	case "middleclick":
		p.postClick(ctx.val, pos, toolkit.MiddleButton)
	default:
		p.postClick(ctx.val, pos, toolkit.LeftButton)
	}
	return schemas.Bag{}
}

func (p *Player) widgetMove(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
	if ctx.hasError() {
		return ctx.err
	}
	pos := ctx.val.Pos()
	if cmd.Has("x") {
		pos.X = cmd.Int("x")
	}
	if cmd.Has("y") {
		pos.Y = cmd.Int("y")
	}
	ctx.val.Move(pos)
	pos = ctx.val.Pos()
	return schemas.Bag{"x": pos.X, "y": pos.Y}
}

func (p *Player) widgetResize(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
	if ctx.hasError() {
		return ctx.err
	}
	size := ctx.val.Size()
	if cmd.Has("width") {
		size.Width = cmd.Int("width")
	}
	if cmd.Has("height") {
		size.Height = cmd.Int("height")
	}
	ctx.val.Resize(size)
	size = ctx.val.Size()
	return schemas.Bag{"width": size.Width, "height": size.Height}
}

func (p *Player) widgetClose(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
	if ctx.hasError() {
		return ctx.err
	}
	p.app.Defer(ctx.val.Close)
	return schemas.Bag{}
}

func (p *Player) widgetMapPosition(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
	if ctx.hasError() {
		return ctx.err
	}
	var parent toolkit.Widget
	if cmd.Has("parent_oid") {
		parentCtx := locate[toolkit.Widget](p, cmd, "parent_oid", "Widget")
		if parentCtx.hasError() {
			return parentCtx.err
		}
		parent = parentCtx.val
	}
	pos := toolkit.Point{X: cmd.Int("x"), Y: cmd.Int("y")}
	switch direction := cmd.String("direction"); direction {
	case "from":
		if parent != nil {
			pos = ctx.val.MapFrom(parent, pos)
		} else {
			pos = ctx.val.MapFromGlobal(pos)
		}
	case "to":
		if parent != nil {
			pos = ctx.val.MapTo(parent, pos)
		} else {
			pos = ctx.val.MapToGlobal(pos)
		}
	default:
		return schemas.Error(schemas.ErrInvalidDirection,
			fmt.Sprintf("The direction '%s' is invalid", direction))
	}
	return schemas.Bag{"x": pos.X, "y": pos.Y}
}

func (p *Player) widgetActivateFocus(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
	if ctx.hasError() {
		return ctx.err
	}
	activateFocus(ctx.val)
	return schemas.Bag{}
}

func (p *Player) widgetKeyclick(cmd schemas.Bag) schemas.Bag {
	var target toolkit.Object
	if cmd.Has("oid") {
		ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
		if ctx.hasError() {
			return ctx.err
		}
		target = ctx.val
	} else {
		w := p.app.ActiveWindow()
		if w == nil {
			return schemas.Error(schemas.ErrNoActiveWindow,
				"There is no active widget (focus)")
		}
		target = w
	}
	p.postKeySequence(target, cmd.String("text"))
	return schemas.Bag{}
}

func (p *Player) callSlot(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.Widget](p, cmd, "oid", "Widget")
	if ctx.hasError() {
		return ctx.err
	}
	slotName := cmd.String("slot_name")
	invokable, ok := ctx.obj.(toolkit.Invokable)
	if !ok {
		return schemas.Error(schemas.ErrNoMethodInvoked,
			fmt.Sprintf("The slot %s could not be called", slotName))
	}
	result, ok := invokable.Invoke(slotName, cmd["params"])
	if !ok {
		return schemas.Error(schemas.ErrNoMethodInvoked,
			fmt.Sprintf("The slot %s could not be called", slotName))
	}
	return schemas.Bag{"result_slot": result}
}

func (p *Player) quit(schemas.Bag) schemas.Bag {
	p.app.Quit()
	return schemas.Bag{}
}

// lastSegment returns the final segment of an object path.
func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
