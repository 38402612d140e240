// Package toolkit defines the capability surface the player uses to talk to
// the host GUI. The host application provides an App plus adapters for its
// widget classes; the player only ever sees these interfaces. Capabilities are
// explicit interfaces rather than reflection: a handler asks for what it needs
// (item view, header view, graphics view) via type assertion.
package toolkit

import "image"

// -- Geometry --

type Point struct {
	X, Y int
}

type PointF struct {
	X, Y float64
}

type Size struct {
	Width, Height int
}

type SizeF struct {
	Width, Height float64
}

// Rect is an axis aligned rectangle in widget coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// RectF is Rect with float coordinates, used by graphics scenes.
type RectF struct {
	X, Y, Width, Height float64
}

// Center returns the rectangle's center point.
func (r RectF) Center() PointF {
	return PointF{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// -- Objects --

// Property is one declared, introspectable attribute of an object.
type Property struct {
	Name  string
	Value any
}

// Object is a live, externally owned node of the host object graph. The
// player never controls its lifetime; it can be destroyed by the host at any
// time, which fires the handlers armed through OnDestroyed.
type Object interface {
	// Name returns the object's declared name, possibly empty.
	Name() string
	Parent() Object
	Children() []Object
	// Classes returns the runtime class chain, most derived class first.
	Classes() []string
	// Properties returns the declared attributes in declaration order.
	Properties() []Property
	// SetProperty assigns a declared attribute, reporting whether the name
	// was known and the value accepted.
	SetProperty(name string, value any) bool
	// OnDestroyed arms fn to run when the host destroys this object.
	OnDestroyed(fn func(Object))
}

// FocusReason tags a focus request with its originating interaction.
type FocusReason int

const (
	OtherFocusReason FocusReason = iota
	MouseFocusReason
	KeyboardFocusReason
)

// Widget is an Object with on-screen geometry.
type Widget interface {
	Object
	Pos() Point
	Move(Point)
	Size() Size
	Resize(Size)
	// Rect returns the widget's local rectangle (origin at 0,0).
	Rect() Rect
	MapToGlobal(Point) Point
	MapFromGlobal(Point) Point
	MapTo(parent Widget, p Point) Point
	MapFrom(parent Widget, p Point) Point
	Close()
	ActivateWindow()
	SetFocus(FocusReason)
	// Grab renders the widget into an image.
	Grab() image.Image
}

// Action is a triggerable command object (menu entry, toolbar button).
type Action interface {
	Object
	Trigger()
}

// Invokable exposes named slots callable with a single parameter bag.
type Invokable interface {
	Invoke(slot string, params any) (result any, ok bool)
}

// -- Item models --

// CheckState is the tri-state checkability of a model cell.
type CheckState int

const (
	Unchecked CheckState = iota
	PartiallyChecked
	Checked
)

// String returns the wire spelling of the state.
func (s CheckState) String() string {
	switch s {
	case PartiallyChecked:
		return "partiallyChecked"
	case Checked:
		return "checked"
	default:
		return "unchecked"
	}
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ModelIndex addresses one cell of an item model. The zero value is the
// invalid index, which also stands for the conceptual root when used as a
// parent. Indexes are comparable as long as the model's internal pointers are.
type ModelIndex struct {
	row, column int
	internal    any
}

// NewModelIndex builds a valid index; internal is the model's private node
// reference and must be non-nil.
func NewModelIndex(row, column int, internal any) ModelIndex {
	return ModelIndex{row: row, column: column, internal: internal}
}

func (m ModelIndex) Row() int      { return m.row }
func (m ModelIndex) Column() int   { return m.column }
func (m ModelIndex) Internal() any { return m.internal }
func (m ModelIndex) IsValid() bool { return m.internal != nil }

// ItemModel is a hierarchical rows-by-columns data model.
type ItemModel interface {
	Object
	RowCount(parent ModelIndex) int
	ColumnCount(parent ModelIndex) int
	// Index returns the cell at (row, column) under parent, or the invalid
	// index when out of range.
	Index(row, column int, parent ModelIndex) ModelIndex
	// ParentIndex returns the parent cell, invalid at the root.
	ParentIndex(ModelIndex) ModelIndex
	HasChildren(ModelIndex) bool
	// Data returns the display role text of a cell.
	Data(ModelIndex) string
	// CheckState reports the cell's check state; ok is false when the cell
	// is not checkable.
	CheckState(ModelIndex) (state CheckState, ok bool)
	HeaderData(section int, o Orientation) string
}

// FlatModel marks models without hierarchy (tables, lists). Dumps skip
// recursion for these.
type FlatModel interface {
	IsFlat() bool
}

// ModelProvider is anything owning an item model: item views, combo boxes.
type ModelProvider interface {
	Model() ItemModel
}

// ItemView is a widget presenting an item model.
type ItemView interface {
	Widget
	ModelProvider
	SetCurrentIndex(ModelIndex)
	Edit(ModelIndex)
	// ScrollTo makes the index visible.
	ScrollTo(ModelIndex)
	// VisualRect returns the index's on-screen rectangle in viewport
	// coordinates.
	VisualRect(ModelIndex) Rect
	// Viewport is the widget that actually receives input for the view.
	Viewport() Widget
}

// HeaderView is the row/column header strip of an item view.
type HeaderView interface {
	Widget
	ModelProvider
	Orientation() Orientation
	// SectionPosition returns the pixel offset of a logical section, or -1
	// when the section does not exist or is hidden.
	SectionPosition(logical int) int
	// LogicalIndex maps a visual position to the logical section index.
	LogicalIndex(visual int) int
	// Offset is the current scroll offset of the header.
	Offset() int
	Viewport() Widget
}

// TableView exposes the header strips of a table.
type TableView interface {
	HorizontalHeader() HeaderView
	VerticalHeader() HeaderView
}

// TreeView exposes the single header strip of a tree.
type TreeView interface {
	Header() HeaderView
}

// TabBar is a row of selectable tabs.
type TabBar interface {
	Widget
	TabCount() int
	TabText(i int) string
}

// -- Graphics scenes --

// GraphicsItem is a node of a graphics scene. Items are not Objects unless
// their concrete type also implements Object.
type GraphicsItem interface {
	ParentItem() GraphicsItem
	ChildItems() []GraphicsItem
	BoundingRect() RectF
	MapToScene(PointF) PointF
}

// GraphicsScene owns graphics items and renders them.
type GraphicsScene interface {
	Size() SizeF
	Render() image.Image
	// MouseGrabber returns the item currently grabbing the mouse, if any.
	MouseGrabber() GraphicsItem
	ReleaseMouseGrab()
}

// GraphicsView is a widget displaying a graphics scene.
type GraphicsView interface {
	Widget
	Scene() GraphicsScene
	// Items returns every item in the view, any order.
	Items() []GraphicsItem
	MapFromScene(PointF) Point
	EnsureVisible(GraphicsItem)
	Viewport() Widget
}

// -- Quick scenes --

// QuickWindow is a window hosting a declarative item tree.
type QuickWindow interface {
	Object
	ContentItem() QuickItem
}

// QuickItem is a node of a declarative scene, addressed by declared id or by
// object path.
type QuickItem interface {
	Object
	// ID returns the item's declared scene id, possibly empty.
	ID() string
	// Window returns the owning window, nil for orphaned items.
	Window() QuickWindow
	Size() SizeF
	MapToScene(PointF) PointF
}

// -- Application --

// App is the host application surface: the top level object sets, the active
// widget bookkeeping, and the event queue. PostEvent is the only way the
// player delivers input; events are queued for the host's own loop, never
// dispatched synchronously, so a handler can never re-enter widget code.
type App interface {
	TopLevelWidgets() []Widget
	// TopLevelWindows lists the top level windows; relevant for hosts
	// without classic widgets.
	TopLevelWindows() []Object
	// ActiveWindow returns the active top level widget, or nil.
	ActiveWindow() Widget
	// ActiveModal returns the active modal widget or window, or nil.
	ActiveModal() Object
	// ActivePopup returns the active popup widget, or nil.
	ActivePopup() Object
	// FocusObject returns the widget or window owning keyboard focus.
	FocusObject() Object
	// PostEvent enqueues ev for target on the host loop and returns
	// immediately. Events addressed to destroyed targets are dropped by
	// the host.
	PostEvent(target Object, ev Event)
	// Defer schedules fn to run on the next iteration of the host loop,
	// after the current command handler has returned.
	Defer(fn func())
	// GrabScreen renders the primary screen.
	GrabScreen() image.Image
	// Quit asks the host application to exit its event loop.
	Quit()
}

// QuickCapable is an optional App capability. Hosts whose scene runtime
// includes declarative quick items implement it and return true; quick
// commands against any other host fail with a feature-unavailable error.
type QuickCapable interface {
	SupportsQuick() bool
}
