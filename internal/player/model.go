package player

import (
	"fmt"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/objectpath"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

func (p *Player) model(cmd schemas.Bag) schemas.Bag {
	ctx := locateObject(p, cmd, "oid")
	if ctx.hasError() {
		return ctx.err
	}
	var model toolkit.ItemModel
	if provider, ok := ctx.obj.(toolkit.ModelProvider); ok {
		model = provider.Model()
	}
	modelID := p.reg.Register(model)
	if modelID == 0 {
		return schemas.Error(schemas.ErrMissingModel,
			fmt.Sprintf("Unable to find model for object with id `%d`", ctx.id))
	}
	result := schemas.Bag{"oid": modelID}
	p.dumpObject(model, result, false)
	return result
}

func (p *Player) modelItems(cmd schemas.Bag) schemas.Bag {
	ctx := locateObject(p, cmd, "oid")
	if ctx.hasError() {
		return ctx.err
	}
	model, ok := ctx.obj.(toolkit.ItemModel)
	if !ok {
		return schemas.Error(schemas.ErrNotAModel,
			fmt.Sprintf("Object with id `%d` is not an item model", ctx.id))
	}
	// Flat models (tables, lists) opt out of recursion; their cells never
	// have children anyway, this just skips the probing.
	recursive := true
	if flat, ok := ctx.obj.(toolkit.FlatModel); ok && flat.IsFlat() {
		recursive = false
	}
	result := schemas.Bag{}
	dumpModelItems(model, result, toolkit.ModelIndex{}, ctx.id, recursive)
	return result
}

// itemCursor computes where inside the cell's visual rectangle a click lands:
// the center by default, shifted by origin and offsets, clamped to stay
// inside the cell.
func itemCursor(rect toolkit.Rect, origin string, offsetX, offsetY int) toolkit.Point {
	pos := rect.Center()
	switch origin {
	case "left":
		pos.X = rect.X
	case "right":
		pos.X = rect.X + rect.Width - 1
	}
	x := pos.X + offsetX
	y := pos.Y + offsetY
	if x < rect.X {
		x = rect.X + 2
	} else if x > rect.X+rect.Width {
		x = rect.X + rect.Width - 2
	}
	if y < rect.Y {
		y = rect.Y + 2
	} else if y > rect.Y+rect.Height {
		y = rect.Y + rect.Height - 2
	}
	return toolkit.Point{X: x, Y: y}
}

func (p *Player) modelItemAction(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.ItemView](p, cmd, "oid", "ItemView")
	if ctx.hasError() {
		return ctx.err
	}
	model := ctx.val.Model()
	if model == nil {
		return schemas.Error(schemas.ErrMissingModel,
			fmt.Sprintf("The view (id:%d) has no associated model", ctx.id))
	}
	itemPath := cmd.String("itempath")
	index := objectpath.ItemAt(model, itemPath, cmd.Int("row"), cmd.Int("column"))
	if !index.IsValid() {
		return schemas.Error(schemas.ErrMissingModelItem,
			fmt.Sprintf("Unable to find an item identified by %s", itemPath))
	}
	ctx.val.ScrollTo(index) // item visible

	itemAction := cmd.String("itemaction")
	var cursor toolkit.Point
	if itemAction == "click" || itemAction == "doubleclick" {
		cursor = itemCursor(ctx.val.VisualRect(index),
			cmd.String("origin"), cmd.Int("offset_x"), cmd.Int("offset_y"))
	}

	switch itemAction {
	case "select":
		ctx.val.SetCurrentIndex(index)
	case "edit":
		ctx.val.SetCurrentIndex(index)
		ctx.val.Edit(index)
	case "click":
		p.postClick(ctx.val.Viewport(), cursor, toolkit.LeftButton)
	case "rightclick":
		p.postClick(ctx.val.Viewport(), ctx.val.VisualRect(index).Center(), toolkit.RightButton)
	case "middleclick":
		p.postClick(ctx.val.Viewport(), ctx.val.VisualRect(index).Center(), toolkit.MiddleButton)
	case "doubleclick":
		p.postDoubleClick(ctx.val.Viewport(), cursor)
	default:
		return schemas.Error(schemas.ErrMissingItemAction,
			fmt.Sprintf("itemaction %s unknown", itemAction))
	}
	return schemas.Bag{}
}
