package player

import (
	"fmt"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/objectpath"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

// quickUnavailable checks whether the host exposes a declarative quick scene
// at all; when it does not, every quick command fails the same way.
func (p *Player) quickUnavailable() schemas.Bag {
	if capable, ok := p.app.(toolkit.QuickCapable); ok && capable.SupportsQuick() {
		return nil
	}
	return schemas.Error(schemas.ErrFeatureUnavailable,
		"Quick item support is not available in this application")
}

func (p *Player) quickItemFind(cmd schemas.Bag) schemas.Bag {
	if err := p.quickUnavailable(); err != nil {
		return err
	}
	ctx := locate[toolkit.QuickWindow](p, cmd, "quick_window_oid", "QuickWindow")
	if ctx.hasError() {
		return ctx.err
	}
	var item toolkit.QuickItem
	var id uint64
	if qid := cmd.String("qid"); qid != "" {
		item = objectpath.FindQuickItemByID(ctx.val.ContentItem(), qid)
		id = p.reg.Register(item)
		if id == 0 {
			return schemas.Error(schemas.ErrInvalidQuickItem,
				fmt.Sprintf("Unable to find quick item with id `%s`", qid))
		}
	} else {
		path := cmd.String("path")
		item = objectpath.FindQuickItem(ctx.val, path)
		id = p.reg.Register(item)
		if id == 0 {
			return schemas.Error(schemas.ErrInvalidQuickItem,
				fmt.Sprintf("Unable to find quick item with path `%s`", path))
		}
	}
	result := schemas.Bag{
		"oid":              id,
		"quick_window_oid": ctx.id,
	}
	p.dumpObject(item, result, false)
	return result
}

func (p *Player) quickItemClick(cmd schemas.Bag) schemas.Bag {
	if err := p.quickUnavailable(); err != nil {
		return err
	}
	ctx := locateQuickItem(p, cmd, "oid")
	if ctx.hasError() {
		return ctx.err
	}
	size := ctx.val.Size()
	center := toolkit.PointF{X: size.Width / 2, Y: size.Height / 2}
	scenePos := ctx.val.MapToScene(center)
	pos := toolkit.Point{X: int(scenePos.X), Y: int(scenePos.Y)}
	p.postWindowClick(ctx.window, pos, toolkit.LeftButton)
	return schemas.Bag{}
}
