package tktest

import (
	"image"

	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// GraphicsItem is a scriptable toolkit.GraphicsItem that is not an Object.
type GraphicsItem struct {
	parent   toolkit.GraphicsItem
	children []toolkit.GraphicsItem
	pos      toolkit.PointF
	rect     toolkit.RectF
}

// NewGraphicsItem builds an item with the given scene-relative position and
// bounding rectangle size.
func NewGraphicsItem(x, y, width, height float64) *GraphicsItem {
	return &GraphicsItem{
		pos:  toolkit.PointF{X: x, Y: y},
		rect: toolkit.RectF{Width: width, Height: height},
	}
}

func (g *GraphicsItem) ParentItem() toolkit.GraphicsItem   { return g.parent }
func (g *GraphicsItem) ChildItems() []toolkit.GraphicsItem { return g.children }
func (g *GraphicsItem) BoundingRect() toolkit.RectF        { return g.rect }

func (g *GraphicsItem) MapToScene(p toolkit.PointF) toolkit.PointF {
	s := toolkit.PointF{X: p.X + g.pos.X, Y: p.Y + g.pos.Y}
	for anc := g.parent; anc != nil; anc = anc.ParentItem() {
		if fi, ok := anc.(interface{ scenePos() toolkit.PointF }); ok {
			ap := fi.scenePos()
			s.X += ap.X
			s.Y += ap.Y
		}
	}
	return s
}

func (g *GraphicsItem) scenePos() toolkit.PointF { return g.pos }

// AddChildItem links child under this item.
func (g *GraphicsItem) AddChildItem(child toolkit.GraphicsItem) {
	if c, ok := child.(interface{ setParentItem(toolkit.GraphicsItem) }); ok {
		c.setParentItem(g)
	}
	g.children = append(g.children, child)
}

func (g *GraphicsItem) setParentItem(p toolkit.GraphicsItem) { g.parent = p }

// GraphicsObjectItem is a graphics item that is also an introspectable
// Object, like widget-backed scene items in the host toolkit.
type GraphicsObjectItem struct {
	Object
	GraphicsItem
}

// NewGraphicsObjectItem builds an object-backed item.
func NewGraphicsObjectItem(name string, x, y, width, height float64, classes ...string) *GraphicsObjectItem {
	if len(classes) == 0 {
		classes = []string{"GraphicsObject", "Object"}
	}
	g := &GraphicsObjectItem{}
	initObject(&g.Object, g, name, classes)
	g.pos = toolkit.PointF{X: x, Y: y}
	g.rect = toolkit.RectF{Width: width, Height: height}
	return g
}

// GraphicsScene is a scriptable toolkit.GraphicsScene.
type GraphicsScene struct {
	size    toolkit.SizeF
	items   []toolkit.GraphicsItem
	grabber toolkit.GraphicsItem

	ReleaseGrabCount int
}

// NewGraphicsScene builds an empty scene of the given size.
func NewGraphicsScene(width, height float64) *GraphicsScene {
	return &GraphicsScene{size: toolkit.SizeF{Width: width, Height: height}}
}

// AddItem adds a top level item.
func (s *GraphicsScene) AddItem(item toolkit.GraphicsItem) { s.items = append(s.items, item) }

// SetMouseGrabber marks item as holding the mouse grab.
func (s *GraphicsScene) SetMouseGrabber(item toolkit.GraphicsItem) { s.grabber = item }

func (s *GraphicsScene) Size() toolkit.SizeF { return s.size }

func (s *GraphicsScene) Render() image.Image {
	return image.NewRGBA(image.Rect(0, 0, int(s.size.Width), int(s.size.Height)))
}

func (s *GraphicsScene) MouseGrabber() toolkit.GraphicsItem { return s.grabber }

func (s *GraphicsScene) ReleaseMouseGrab() {
	s.grabber = nil
	s.ReleaseGrabCount++
}

// GraphicsView is a scriptable toolkit.GraphicsView.
type GraphicsView struct {
	Widget
	scene    *GraphicsScene
	viewport *Widget

	EnsuredVisible []toolkit.GraphicsItem
}

// NewGraphicsView builds a view over scene.
func NewGraphicsView(name string, scene *GraphicsScene) *GraphicsView {
	v := &GraphicsView{scene: scene}
	initWidget(&v.Widget, v, name, []string{"GraphicsView", "Widget", "Object"})
	v.SetSize(400, 300)
	v.viewport = NewWidget("viewport", "Widget", "Object")
	v.AddChild(v.viewport)
	return v
}

func (v *GraphicsView) Scene() toolkit.GraphicsScene { return v.scene }
func (v *GraphicsView) Viewport() toolkit.Widget     { return v.viewport }

// Items returns every item of the scene, children included, in no particular
// order.
func (v *GraphicsView) Items() []toolkit.GraphicsItem {
	if v.scene == nil {
		return nil
	}
	var all []toolkit.GraphicsItem
	var walk func(items []toolkit.GraphicsItem)
	walk = func(items []toolkit.GraphicsItem) {
		for _, it := range items {
			all = append(all, it)
			walk(it.ChildItems())
		}
	}
	walk(v.scene.items)
	return all
}

func (v *GraphicsView) MapFromScene(p toolkit.PointF) toolkit.Point {
	return toolkit.Point{X: int(p.X), Y: int(p.Y)}
}

func (v *GraphicsView) EnsureVisible(item toolkit.GraphicsItem) {
	v.EnsuredVisible = append(v.EnsuredVisible, item)
}
