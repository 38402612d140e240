package player

import (
	"fmt"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/objectpath"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
)

func (p *Player) tabBarList(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.TabBar](p, cmd, "oid", "TabBar")
	if ctx.hasError() {
		return ctx.err
	}
	texts := []string{}
	for i := 0; i < ctx.val.TabCount(); i++ {
		texts = append(texts, ctx.val.TabText(i))
	}
	return schemas.Bag{"tabtexts": texts}
}

// headerSectionCount returns how many sections the header strip spans:
// vertical headers label rows, horizontal headers label columns.
func headerSectionCount(header toolkit.HeaderView, model toolkit.ItemModel) int {
	if header.Orientation() == toolkit.Vertical {
		return model.RowCount(toolkit.ModelIndex{})
	}
	return model.ColumnCount(toolkit.ModelIndex{})
}

func (p *Player) headerViewList(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.HeaderView](p, cmd, "oid", "HeaderView")
	if ctx.hasError() {
		return ctx.err
	}
	model := ctx.val.Model()
	if model == nil {
		return schemas.Error(schemas.ErrMissingModel,
			fmt.Sprintf("The header view (id:%d) has no associated model", ctx.id))
	}
	texts := []string{}
	for i := 0; i < headerSectionCount(ctx.val, model); i++ {
		texts = append(texts, model.HeaderData(i, ctx.val.Orientation()))
	}
	return schemas.Bag{"headertexts": texts}
}

func (p *Player) headerViewClick(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.HeaderView](p, cmd, "oid", "HeaderView")
	if ctx.hasError() {
		return ctx.err
	}
	var logical int
	if name, isName := cmd["indexOrName"].(string); isName {
		model := ctx.val.Model()
		if model == nil {
			return schemas.Error(schemas.ErrMissingModel,
				fmt.Sprintf("The header view (id:%d) has no associated model", ctx.id))
		}
		found := false
		for i := 0; i < headerSectionCount(ctx.val, model); i++ {
			if model.HeaderData(i, ctx.val.Orientation()) == name {
				logical = i
				found = true
				break
			}
		}
		if !found {
			return schemas.Error(schemas.ErrMissingHeaderViewText,
				fmt.Sprintf("The header view (id:%d) has no text column `%s`", ctx.id, name))
		}
	} else {
		logical = ctx.val.LogicalIndex(cmd.Int("indexOrName"))
	}

	pos := ctx.val.SectionPosition(logical)
	if pos == -1 {
		return schemas.Error(schemas.ErrInvalidHeaderViewIndex,
			fmt.Sprintf("The header view (id:%d) has no index %d or it is hidden", ctx.id, logical))
	}
	var mousePos toolkit.Point
	if ctx.val.Orientation() == toolkit.Horizontal {
		mousePos.Y = ctx.val.Size().Height / 2
		mousePos.X = pos + ctx.val.Offset() + 5
	} else {
		mousePos.X = ctx.val.Size().Width / 2
		mousePos.Y = pos + ctx.val.Offset() + 5
	}
	p.postClick(ctx.val.Viewport(), mousePos, toolkit.LeftButton)
	return schemas.Bag{}
}

func (p *Player) headerViewPathFromView(cmd schemas.Bag) schemas.Bag {
	ctx := locate[toolkit.ItemView](p, cmd, "oid", "ItemView")
	if ctx.hasError() {
		return ctx.err
	}
	var header toolkit.HeaderView
	if table, ok := ctx.obj.(toolkit.TableView); ok {
		if cmd.String("orientation") == "vertical" {
			header = table.VerticalHeader()
		} else {
			header = table.HorizontalHeader()
		}
	} else if tree, ok := ctx.obj.(toolkit.TreeView); ok {
		header = tree.Header()
	}
	if header == nil {
		return schemas.Error(schemas.ErrInvalidHeaderView,
			fmt.Sprintf("No header view found for the view (id:%d)", ctx.id))
	}
	return schemas.Bag{"headerpath": objectpath.PathOf(p.app, header)}
}
