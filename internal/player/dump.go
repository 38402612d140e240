package player

import (
	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/objectpath"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// representable reports whether a property value can travel in a JSON bag.
// Anything else is silently skipped rather than errored, so one odd property
// never poisons a whole dump.
func representable(v any) bool {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		[]string, []any, map[string]any, schemas.Bag:
		return true
	}
	return false
}

// dumpProperties writes every representable declared property into out.
func dumpProperties(obj toolkit.Object, out schemas.Bag) {
	for _, prop := range obj.Properties() {
		if representable(prop.Value) {
			out[prop.Name] = prop.Value
		}
	}
}

// dumpObject writes the object's path and deduplicated class chain into out,
// plus its properties when asked.
func (p *Player) dumpObject(obj toolkit.Object, out schemas.Bag, withProperties bool) {
	out["path"] = objectpath.PathOf(p.app, obj)
	var classes []string
	seen := map[string]bool{}
	for _, class := range obj.Classes() {
		if !seen[class] {
			seen[class] = true
			classes = append(classes, class)
		}
	}
	out["classes"] = classes
	if withProperties {
		properties := schemas.Bag{}
		dumpProperties(obj, properties)
		out["properties"] = properties
	}
}

// dumpModelItemAttrs writes one cell: its model handle, item path (absent at
// the root), coordinates, display value and optional check state.
func dumpModelItemAttrs(model toolkit.ItemModel, out schemas.Bag,
	index toolkit.ModelIndex, modelID uint64) {
	out["modelid"] = modelID
	if path := objectpath.ItemPath(model, index); path != "" {
		out["itempath"] = path
	}
	out["row"] = index.Row()
	out["column"] = index.Column()
	out["value"] = model.Data(index)
	if state, ok := model.CheckState(index); ok {
		out["check_state"] = state.String()
	}
}

// dumpModelItems writes every cell under parent into out["items"], recursing
// into column 0 cells that have children when recursive is set.
func dumpModelItems(model toolkit.ItemModel, out schemas.Bag,
	parent toolkit.ModelIndex, modelID uint64, recursive bool) {
	items := []any{}
	for row := 0; row < model.RowCount(parent); row++ {
		for col := 0; col < model.ColumnCount(parent); col++ {
			index := model.Index(row, col, parent)
			item := schemas.Bag{}
			dumpModelItemAttrs(model, item, index, modelID)
			if col == 0 && recursive && model.HasChildren(index) {
				dumpModelItems(model, item, index, modelID, true)
			}
			items = append(items, item)
		}
	}
	out["items"] = items
}

// dumpGraphicsItems writes a forest of graphics items into out["items"]. Each
// entry carries a synthesized item id and the owning view's handle; items that
// are also introspectable objects additionally report their class chain and
// declared name. Children are dumped unconditionally.
func (p *Player) dumpGraphicsItems(items []toolkit.GraphicsItem, viewID uint64, out schemas.Bag) {
	outItems := []any{}
	for _, item := range items {
		outItem := schemas.Bag{}
		outItem["gid"] = p.reg.Identify(item)
		outItem["viewid"] = viewID
		if obj, ok := item.(toolkit.Object); ok {
			outItem["classes"] = obj.Classes()
			outItem["objectname"] = obj.Name()
		}
		p.dumpGraphicsItems(item.ChildItems(), viewID, outItem)
		outItems = append(outItems, outItem)
	}
	out["items"] = outItems
}
