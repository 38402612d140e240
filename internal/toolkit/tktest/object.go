// Package tktest is an in-memory toolkit implementation for tests. It builds
// object trees, records posted events and lets tests destroy objects to
// exercise the registry's lifetime tracking.
package tktest

import (
	"image"

	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// destroyable is implemented by every fake object.
type destroyable interface {
	Destroy()
}

// Object is a scriptable toolkit.Object.
type Object struct {
	name     string
	classes  []string
	parent   toolkit.Object
	children []toolkit.Object
	props    []toolkit.Property
	handlers []func(toolkit.Object)

	// self is the outermost value (widget, view, model...) so that
	// handlers and tree links always see one identity per object.
	self toolkit.Object
}

// NewObject builds a standalone object. The class chain is most derived
// first.
func NewObject(name string, classes ...string) *Object {
	o := &Object{}
	initObject(o, o, name, classes)
	return o
}

func initObject(o *Object, self toolkit.Object, name string, classes []string) {
	o.name = name
	o.classes = classes
	if len(classes) == 0 {
		o.classes = []string{"Object"}
	}
	o.self = self
}

func (o *Object) Name() string               { return o.name }
func (o *Object) Parent() toolkit.Object     { return o.parent }
func (o *Object) Children() []toolkit.Object { return o.children }
func (o *Object) Classes() []string          { return o.classes }

func (o *Object) Properties() []toolkit.Property {
	out := make([]toolkit.Property, len(o.props))
	copy(out, o.props)
	return out
}

func (o *Object) SetProperty(name string, value any) bool {
	for i := range o.props {
		if o.props[i].Name == name {
			o.props[i].Value = value
			return true
		}
	}
	return false
}

func (o *Object) OnDestroyed(fn func(toolkit.Object)) {
	o.handlers = append(o.handlers, fn)
}

// DeclareProperty adds a declared attribute.
func (o *Object) DeclareProperty(name string, value any) {
	o.props = append(o.props, toolkit.Property{Name: name, Value: value})
}

// PropertyValue returns a declared attribute's current value.
func (o *Object) PropertyValue(name string) (any, bool) {
	for _, p := range o.props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// AddChild links child under this object.
func (o *Object) AddChild(child toolkit.Object) {
	if c, ok := child.(interface{ setParent(toolkit.Object) }); ok {
		c.setParent(o.self)
	}
	o.children = append(o.children, child)
}

func (o *Object) setParent(p toolkit.Object) { o.parent = p }

// Destroy simulates host-side destruction: children first, then this
// object's destruction handlers, then detachment from the parent.
func (o *Object) Destroy() {
	for _, c := range o.children {
		if d, ok := c.(destroyable); ok {
			d.Destroy()
		}
	}
	o.children = nil
	for _, fn := range o.handlers {
		fn(o.self)
	}
	o.handlers = nil
	if p, ok := o.parent.(interface{ removeChild(toolkit.Object) }); ok {
		p.removeChild(o.self)
	}
	o.parent = nil
}

func (o *Object) removeChild(child toolkit.Object) {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// -- Widget --

// Widget is a scriptable toolkit.Widget. Position is relative to the parent
// widget, matching the host toolkit's coordinate model.
type Widget struct {
	Object
	pos  toolkit.Point
	size toolkit.Size

	// Interaction records, inspected by tests.
	CloseCount      int
	ActivateCount   int
	FocusCount      int
	LastFocusReason toolkit.FocusReason

	slots map[string]func(any) any
}

// NewWidget builds a standalone widget.
func NewWidget(name string, classes ...string) *Widget {
	w := &Widget{}
	initWidget(w, w, name, classes)
	return w
}

func initWidget(w *Widget, self toolkit.Object, name string, classes []string) {
	if len(classes) == 0 {
		classes = []string{"Widget", "Object"}
	}
	initObject(&w.Object, self, name, classes)
	w.size = toolkit.Size{Width: 100, Height: 30}
}

func (w *Widget) Pos() toolkit.Point    { return w.pos }
func (w *Widget) Move(p toolkit.Point)  { w.pos = p }
func (w *Widget) Size() toolkit.Size    { return w.size }
func (w *Widget) Resize(s toolkit.Size) { w.size = s }
func (w *Widget) Rect() toolkit.Rect {
	return toolkit.Rect{Width: w.size.Width, Height: w.size.Height}
}

// SetPos places the widget relative to its parent.
func (w *Widget) SetPos(x, y int) { w.pos = toolkit.Point{X: x, Y: y} }

// SetSize resizes the widget without going through Resize.
func (w *Widget) SetSize(width, height int) {
	w.size = toolkit.Size{Width: width, Height: height}
}

func (w *Widget) MapToGlobal(p toolkit.Point) toolkit.Point {
	g := toolkit.Point{X: p.X + w.pos.X, Y: p.Y + w.pos.Y}
	for anc := w.parent; anc != nil; anc = anc.Parent() {
		if aw, ok := anc.(toolkit.Widget); ok {
			ap := aw.Pos()
			g.X += ap.X
			g.Y += ap.Y
		}
	}
	return g
}

func (w *Widget) MapFromGlobal(p toolkit.Point) toolkit.Point {
	origin := w.MapToGlobal(toolkit.Point{})
	return toolkit.Point{X: p.X - origin.X, Y: p.Y - origin.Y}
}

func (w *Widget) MapTo(parent toolkit.Widget, p toolkit.Point) toolkit.Point {
	return parent.MapFromGlobal(w.MapToGlobal(p))
}

func (w *Widget) MapFrom(parent toolkit.Widget, p toolkit.Point) toolkit.Point {
	return w.MapFromGlobal(parent.MapToGlobal(p))
}

func (w *Widget) Close()          { w.CloseCount++ }
func (w *Widget) ActivateWindow() { w.ActivateCount++ }

func (w *Widget) SetFocus(reason toolkit.FocusReason) {
	w.FocusCount++
	w.LastFocusReason = reason
}

func (w *Widget) Grab() image.Image {
	return image.NewRGBA(image.Rect(0, 0, w.size.Width, w.size.Height))
}

// RegisterSlot makes the widget Invokable for the given slot name.
func (w *Widget) RegisterSlot(name string, fn func(params any) any) {
	if w.slots == nil {
		w.slots = map[string]func(any) any{}
	}
	w.slots[name] = fn
}

// Invoke implements toolkit.Invokable.
func (w *Widget) Invoke(slot string, params any) (any, bool) {
	fn, ok := w.slots[slot]
	if !ok {
		return nil, false
	}
	return fn(params), true
}

// -- Action --

// Action is a scriptable toolkit.Action.
type Action struct {
	Object
	TriggerCount int
}

// NewAction builds a standalone action.
func NewAction(name string) *Action {
	a := &Action{}
	initObject(&a.Object, a, name, []string{"Action", "Object"})
	return a
}

func (a *Action) Trigger() { a.TriggerCount++ }
