// Package objectpath turns live objects into hierarchical path strings and
// back. Paths are computed on demand and are only as stable as the underlying
// object names and sibling order.
//
// A widget path is "/"-joined segments from a top level object down to the
// target. A segment is the object's declared name, or its class name when
// unnamed; when several siblings share that base, an ordinal suffix
// ("Button-1") addresses them positionally.
package objectpath

import (
	"strconv"
	"strings"

	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// Separator joins path segments.
const Separator = "/"

// displayName is the base segment for an object: declared name, class name
// as fallback.
func displayName(o toolkit.Object) string {
	if name := o.Name(); name != "" {
		return name
	}
	classes := o.Classes()
	if len(classes) > 0 {
		return classes[0]
	}
	return ""
}

// topLevel returns the root resolution scope: the top level widgets, then
// any top level windows (hosts without classic widgets).
func topLevel(app toolkit.App) []toolkit.Object {
	var out []toolkit.Object
	for _, w := range app.TopLevelWidgets() {
		out = append(out, w)
	}
	out = append(out, app.TopLevelWindows()...)
	return out
}

// segmentIn computes the segment addressing o among its siblings, adding an
// ordinal suffix only when the base name collides.
func segmentIn(siblings []toolkit.Object, o toolkit.Object) string {
	base := displayName(o)
	count := 0
	ordinal := -1
	for _, s := range siblings {
		if displayName(s) != base {
			continue
		}
		if s == o {
			ordinal = count
		}
		count++
	}
	if count > 1 && ordinal >= 0 {
		return base + "-" + strconv.Itoa(ordinal)
	}
	return base
}

// PathOf computes the path addressing o from the application's top level
// scope, the inverse of FindByPath.
func PathOf(app toolkit.App, o toolkit.Object) string {
	if o == nil {
		return ""
	}
	var segments []string
	for cur := o; cur != nil; cur = cur.Parent() {
		var siblings []toolkit.Object
		if p := cur.Parent(); p != nil {
			siblings = p.Children()
		} else {
			siblings = topLevel(app)
		}
		segments = append(segments, segmentIn(siblings, cur))
	}
	// Accumulated leaf-to-root; reverse.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, Separator)
}

// FindByPath resolves a path against the application's top level scope.
// Returns nil when any segment fails to resolve.
func FindByPath(app toolkit.App, path string) toolkit.Object {
	if path == "" {
		return nil
	}
	candidates := topLevel(app)
	var cur toolkit.Object
	for _, segment := range strings.Split(path, Separator) {
		cur = matchSegment(candidates, segment)
		if cur == nil {
			return nil
		}
		candidates = cur.Children()
	}
	return cur
}

// FindFrom resolves a path below an explicit scope root. An empty path is
// the root itself.
func FindFrom(root toolkit.Object, path string) toolkit.Object {
	if root == nil {
		return nil
	}
	if path == "" {
		return root
	}
	cur := root
	for _, segment := range strings.Split(path, Separator) {
		cur = matchSegment(cur.Children(), segment)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// matchSegment picks the sibling addressed by segment: exact declared name
// first, then base name (class fallback) with an optional ordinal suffix.
func matchSegment(siblings []toolkit.Object, segment string) toolkit.Object {
	for _, s := range siblings {
		if s.Name() == segment {
			return s
		}
	}

	base, ordinal := splitOrdinal(segment)
	count := 0
	for _, s := range siblings {
		if displayName(s) != base {
			continue
		}
		if count == ordinal {
			return s
		}
		count++
	}
	return nil
}

// splitOrdinal parses an optional trailing "-<n>"; without one the first
// base match (ordinal 0) is addressed.
func splitOrdinal(segment string) (string, int) {
	i := strings.LastIndex(segment, "-")
	if i <= 0 || i == len(segment)-1 {
		return segment, 0
	}
	n, err := strconv.Atoi(segment[i+1:])
	if err != nil || n < 0 {
		return segment, 0
	}
	return segment[:i], n
}

// -- Item model paths --

// ItemPath encodes the ancestor chain of an index as "row-column" steps,
// root to leaf. The index's own row/column are not part of the path.
func ItemPath(model toolkit.ItemModel, index toolkit.ModelIndex) string {
	var steps []string
	for parent := model.ParentIndex(index); parent.IsValid(); parent = model.ParentIndex(parent) {
		steps = append(steps,
			strconv.Itoa(parent.Row())+"-"+strconv.Itoa(parent.Column()))
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return strings.Join(steps, Separator)
}

// ItemAt resolves (row, column) under the parent chain encoded in path, the
// inverse of ItemPath. Malformed steps, non-numeric tokens and failed
// intermediate lookups all yield the invalid index.
func ItemAt(model toolkit.ItemModel, path string, row, column int) toolkit.ModelIndex {
	var parent toolkit.ModelIndex
	if path != "" {
		for _, step := range strings.Split(path, Separator) {
			tokens := strings.Split(step, "-")
			if len(tokens) != 2 {
				return toolkit.ModelIndex{}
			}
			r, err1 := strconv.Atoi(tokens[0])
			c, err2 := strconv.Atoi(tokens[1])
			if err1 != nil || err2 != nil {
				return toolkit.ModelIndex{}
			}
			parent = model.Index(r, c, parent)
			if !parent.IsValid() {
				return parent
			}
		}
	}
	return model.Index(row, column, parent)
}

// -- Quick items --

// FindQuickItemByID searches root's subtree for the item with the declared
// scene id.
func FindQuickItemByID(root toolkit.QuickItem, id string) toolkit.QuickItem {
	if root == nil {
		return nil
	}
	if root.ID() == id {
		return root
	}
	for _, child := range root.Children() {
		item, ok := child.(toolkit.QuickItem)
		if !ok {
			continue
		}
		if found := FindQuickItemByID(item, id); found != nil {
			return found
		}
	}
	return nil
}

// FindQuickItem resolves an object path below a window's content item.
func FindQuickItem(window toolkit.QuickWindow, path string) toolkit.QuickItem {
	if window == nil {
		return nil
	}
	obj := FindFrom(window.ContentItem(), path)
	item, _ := obj.(toolkit.QuickItem)
	return item
}
