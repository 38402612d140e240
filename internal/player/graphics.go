package player

import (
	"fmt"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// graphicsItemByID scans the view's live item set for the item whose
// synthesized id matches gid. Ids are identity-only, so a destroyed item
// simply stops matching.
func (p *Player) graphicsItemByID(view toolkit.GraphicsView, gid uint64) toolkit.GraphicsItem {
	for _, item := range view.Items() {
		if p.reg.Identify(item) == gid {
			return item
		}
	}
	return nil
}

func (p *Player) graphicsItems(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.GraphicsView](p, cmd, "oid", "GraphicsView")
	if ctx.hasError() {
		return ctx.err
	}
	var topLevel []toolkit.GraphicsItem
	for _, item := range ctx.val.Items() {
		if item.ParentItem() == nil {
			topLevel = append(topLevel, item)
		}
	}
	result := schemas.Bag{}
	p.dumpGraphicsItems(topLevel, ctx.id, result)
	return result
}

func (p *Player) gItemProperties(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.GraphicsView](p, cmd, "oid", "GraphicsView")
	if ctx.hasError() {
		return ctx.err
	}
	gid := cmd.Uint64("gid")
	item := p.graphicsItemByID(ctx.val, gid)
	if item == nil {
		return schemas.Error(schemas.ErrMissingGItem,
			fmt.Sprintf("Graphics item %d is not in view %d", gid, ctx.id))
	}
	obj, ok := item.(toolkit.Object)
	if !ok {
		return schemas.Error(schemas.ErrGItemNotObject,
			fmt.Sprintf("Graphics item %d in view %d is not an introspectable object", gid, ctx.id))
	}
	result := schemas.Bag{}
	dumpProperties(obj, result)
	return result
}

func (p *Player) modelGItemAction(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.GraphicsView](p, cmd, "oid", "GraphicsView")
	if ctx.hasError() {
		return ctx.err
	}
	gid := cmd.Uint64("gid")
	item := p.graphicsItemByID(ctx.val, gid)
	if item == nil {
		return schemas.Error(schemas.ErrMissingGItem,
			fmt.Sprintf("The view (id:%d) has no associated item %d", ctx.id, gid))
	}
	ctx.val.EnsureVisible(item) // be sure item is visible

	viewPos := ctx.val.MapFromScene(item.MapToScene(item.BoundingRect().Center()))

	// A lingering mouse grab from a previous interaction would swallow the
	// synthetic click.
	releaseGrab := func() {
		if scene := ctx.val.Scene(); scene != nil && scene.MouseGrabber() != nil {
			scene.ReleaseMouseGrab()
		}
	}

	switch itemAction := cmd.String("itemaction"); itemAction {
	case "click":
		releaseGrab()
		p.postClick(ctx.val.Viewport(), viewPos, toolkit.LeftButton)
	case "rightclick":
		releaseGrab()
		p.postClick(ctx.val.Viewport(), viewPos, toolkit.RightButton)
	case "middleclick":
		releaseGrab()
		p.postClick(ctx.val.Viewport(), viewPos, toolkit.MiddleButton)
	case "doubleclick":
		releaseGrab()
		p.postDoubleClick(ctx.val.Viewport(), viewPos)
	default:
		return schemas.Error(schemas.ErrMissingItemAction,
			fmt.Sprintf("itemaction %s unknown", itemAction))
	}
	return schemas.Bag{}
}
