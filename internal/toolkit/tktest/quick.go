package tktest

import "github.com/xkilldash9x/uiprobe/internal/toolkit"

// QuickWindow is a scriptable toolkit.QuickWindow.
type QuickWindow struct {
	Object
	content *QuickItem
}

// NewQuickWindow builds a window with an empty content item.
func NewQuickWindow(name string) *QuickWindow {
	w := &QuickWindow{}
	initObject(&w.Object, w, name, []string{"QuickWindow", "Window", "Object"})
	w.content = NewQuickItem("contentItem", "")
	w.content.window = w
	w.AddChild(w.content)
	return w
}

func (w *QuickWindow) ContentItem() toolkit.QuickItem { return w.content }

// Content returns the concrete content item for tree building.
func (w *QuickWindow) Content() *QuickItem { return w.content }

// QuickItem is a scriptable toolkit.QuickItem.
type QuickItem struct {
	Object
	id     string
	window *QuickWindow
	pos    toolkit.PointF
	size   toolkit.SizeF
}

// NewQuickItem builds a standalone item with a declared scene id (possibly
// empty).
func NewQuickItem(name, id string) *QuickItem {
	q := &QuickItem{id: id, size: toolkit.SizeF{Width: 100, Height: 40}}
	initObject(&q.Object, q, name, []string{"QuickItem", "Object"})
	return q
}

// AddItem links child under this item, inheriting the owning window.
func (q *QuickItem) AddItem(child *QuickItem) {
	child.window = q.window
	q.AddChild(child)
}

// Orphan detaches the item from its window, keeping the tree link. Used to
// test the missing-window error path.
func (q *QuickItem) Orphan() { q.window = nil }

// SetBounds places the item relative to its parent item.
func (q *QuickItem) SetBounds(x, y, width, height float64) {
	q.pos = toolkit.PointF{X: x, Y: y}
	q.size = toolkit.SizeF{Width: width, Height: height}
}

func (q *QuickItem) ID() string { return q.id }

func (q *QuickItem) Window() toolkit.QuickWindow {
	if q.window == nil {
		return nil
	}
	return q.window
}

func (q *QuickItem) Size() toolkit.SizeF { return q.size }

func (q *QuickItem) MapToScene(p toolkit.PointF) toolkit.PointF {
	s := toolkit.PointF{X: p.X + q.pos.X, Y: p.Y + q.pos.Y}
	for anc := q.parent; anc != nil; anc = anc.Parent() {
		if qi, ok := anc.(*QuickItem); ok {
			s.X += qi.pos.X
			s.Y += qi.pos.Y
		}
	}
	return s
}
