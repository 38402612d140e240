package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/uiprobe/api/schemas"
	"github.com/xkilldash9x/uiprobe/internal/toolkit"
	"github.com/xkilldash9x/uiprobe/internal/toolkit/tktest"
)

// modelFixture grafts a two-column tree model and its view onto the base
// fixture.
type modelFixture struct {
	*fixture
	model *tktest.Model
	view  *tktest.ItemView
}

func newModelFixture() *modelFixture {
	f := newFixture()
	model := tktest.NewModel("theModel", 2)
	parent := model.AddRow(nil, "alpha", "one")
	model.AddRow(nil, "beta", "two")
	model.AddRow(parent[0], "alpha-child", "sub")
	view := tktest.NewItemView("theView", model)
	f.win.AddChild(view)
	return &modelFixture{fixture: f, model: model, view: view}
}

func (f *modelFixture) viewOid(t *testing.T) uint64 {
	t.Helper()
	return f.find(t, "MainWindow/theView")
}

func TestModel(t *testing.T) {
	f := newModelFixture()
	result := f.run(t, schemas.Bag{"action": "model", "oid": f.viewOid(t)})
	require.False(t, result.IsError())
	assert.NotZero(t, result.Uint64("oid"))
	assert.Equal(t, "theModel", result.String("path"))
}

func TestModelFromComboBox(t *testing.T) {
	f := newModelFixture()
	combo := tktest.NewComboBox("combo", f.model)
	f.win.AddChild(combo)
	result := f.run(t, schemas.Bag{"action": "model", "oid": f.find(t, "MainWindow/combo")})
	require.False(t, result.IsError())
	assert.Equal(t, "theModel", result.String("path"))
}

func TestModelMissing(t *testing.T) {
	f := newModelFixture()
	oid := f.find(t, "MainWindow/okButton")
	result := f.run(t, schemas.Bag{"action": "model", "oid": oid})
	assert.Equal(t, schemas.ErrMissingModel, result.Kind())
}

func TestModelItems(t *testing.T) {
	f := newModelFixture()
	viewOid := f.viewOid(t)
	modelOid := f.run(t, schemas.Bag{"action": "model", "oid": viewOid}).Uint64("oid")

	result := f.run(t, schemas.Bag{"action": "model_items", "oid": modelOid})
	require.False(t, result.IsError())

	items, ok := result["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 4) // 2 rows x 2 columns

	first := items[0].(schemas.Bag)
	assert.Equal(t, modelOid, first.Uint64("modelid"))
	assert.Equal(t, 0, first.Int("row"))
	assert.Equal(t, 0, first.Int("column"))
	assert.Equal(t, "alpha", first.String("value"))
	assert.False(t, first.Has("itempath"))

	// Column 0 of row 0 has a child row, dumped recursively.
	nested, ok := first["items"].([]any)
	require.True(t, ok)
	require.Len(t, nested, 2)
	child := nested[0].(schemas.Bag)
	assert.Equal(t, "alpha-child", child.String("value"))
	assert.Equal(t, "0-0", child.String("itempath"))
}

func TestModelItemsCheckState(t *testing.T) {
	f := newFixture()
	model := tktest.NewModel("checks", 1)
	row := model.AddRow(nil, "task")
	row[0].SetCheck(toolkit.PartiallyChecked)
	oid := f.p.Registry().Register(model)

	result := f.run(t, schemas.Bag{"action": "model_items", "oid": oid})
	items := result["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "partiallyChecked", items[0].(schemas.Bag).String("check_state"))
}

func TestModelItemsFlatModelSkipsRecursion(t *testing.T) {
	f := newModelFixture()
	f.model.SetFlat(true)
	modelOid := f.p.Registry().Register(f.model)

	result := f.run(t, schemas.Bag{"action": "model_items", "oid": modelOid})
	first := result["items"].([]any)[0].(schemas.Bag)
	assert.False(t, first.Has("items"))
}

func TestModelItemsNotAModel(t *testing.T) {
	f := newModelFixture()
	oid := f.find(t, "MainWindow/okButton")
	result := f.run(t, schemas.Bag{"action": "model_items", "oid": oid})
	assert.Equal(t, schemas.ErrNotAModel, result.Kind())
}

func TestModelItemActionSelectAndEdit(t *testing.T) {
	f := newModelFixture()
	oid := f.viewOid(t)

	result := f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid,
		"row": 1, "column": 0, "itemaction": "select",
	})
	require.False(t, result.IsError())
	assert.Equal(t, 1, f.view.Current.Row())
	assert.Len(t, f.view.ScrolledTo, 1)

	result = f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid,
		"row": 0, "column": 1, "itemaction": "edit",
	})
	require.False(t, result.IsError())
	assert.Len(t, f.view.Edited, 1)
}

func TestModelItemActionClick(t *testing.T) {
	f := newModelFixture()
	oid := f.viewOid(t)

	result := f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid,
		"row": 1, "column": 1, "itemaction": "click",
	})
	require.False(t, result.IsError())

	events := f.app.PostedFor(f.view.Viewport())
	require.Len(t, events, 2)
	press := events[0].(*toolkit.MouseEvent)
	// Cell (1,1) with the 80x20 grid: center of [80,20 .. 160,40].
	assert.Equal(t, toolkit.Point{X: 120, Y: 30}, press.Pos)
}

func TestModelItemActionClickOriginOffset(t *testing.T) {
	f := newModelFixture()
	oid := f.viewOid(t)

	result := f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid,
		"row": 0, "column": 0, "itemaction": "click",
		"origin": "left", "offset_x": 5,
	})
	require.False(t, result.IsError())
	press := f.app.PostedFor(f.view.Viewport())[0].(*toolkit.MouseEvent)
	// Left edge of cell (0,0) plus the offset.
	assert.Equal(t, toolkit.Point{X: 5, Y: 10}, press.Pos)

	// An offset pushing outside the cell is clamped back inside.
	f2 := newModelFixture()
	oid2 := f2.viewOid(t)
	f2.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid2,
		"row": 0, "column": 0, "itemaction": "click",
		"origin": "left", "offset_x": -30,
	})
	press2 := f2.app.PostedFor(f2.view.Viewport())[0].(*toolkit.MouseEvent)
	assert.Equal(t, 2, press2.Pos.X)
}

func TestModelItemActionViaItemPath(t *testing.T) {
	f := newModelFixture()
	oid := f.viewOid(t)

	result := f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid,
		"itempath": "0-0", "row": 0, "column": 0, "itemaction": "select",
	})
	require.False(t, result.IsError())
	assert.Equal(t, "alpha-child", f.model.Data(f.view.Current))
}

func TestModelItemActionErrors(t *testing.T) {
	f := newModelFixture()
	oid := f.viewOid(t)

	missing := f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid,
		"row": 9, "column": 0, "itemaction": "select",
	})
	assert.Equal(t, schemas.ErrMissingModelItem, missing.Kind())

	bogus := f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": oid,
		"row": 0, "column": 0, "itemaction": "bogus",
	})
	assert.Equal(t, schemas.ErrMissingItemAction, bogus.Kind())
	assert.Equal(t, "itemaction bogus unknown", bogus.String("message"))

	noModel := tktest.NewItemView("empty", nil)
	f.win.AddChild(noModel)
	missing = f.run(t, schemas.Bag{
		"action": "model_item_action", "oid": f.find(t, "MainWindow/empty"),
		"row": 0, "column": 0, "itemaction": "select",
	})
	assert.Equal(t, schemas.ErrMissingModel, missing.Kind())
}

func TestTabBarList(t *testing.T) {
	f := newFixture()
	tabs := tktest.NewTabBar("tabs", "Files", "Edit", "Help")
	f.win.AddChild(tabs)

	result := f.run(t, schemas.Bag{"action": "tabbar_list", "oid": f.find(t, "MainWindow/tabs")})
	require.False(t, result.IsError())
	assert.Equal(t, []string{"Files", "Edit", "Help"}, result["tabtexts"])
}

// tableFixture grafts a table view (with header strips) onto the base
// fixture.
type tableFixture struct {
	*fixture
	model *tktest.Model
	table *tktest.TableView
}

func newTableFixture() *tableFixture {
	f := newFixture()
	model := tktest.NewModel("grid", 2)
	model.AddRow(nil, "a1", "b1")
	model.AddRow(nil, "a2", "b2")
	model.SetHeaders([]string{"Name", "Size"}, []string{"r1", "r2"})
	table := tktest.NewTableView("table", model)
	f.win.AddChild(table)
	return &tableFixture{fixture: f, model: model, table: table}
}

func (f *tableFixture) headerOid(t *testing.T) uint64 {
	t.Helper()
	result := f.run(t, schemas.Bag{
		"action": "headerview_path_from_view", "oid": f.find(t, "MainWindow/table"),
	})
	require.False(t, result.IsError())
	return f.find(t, result.String("headerpath"))
}

func TestHeaderViewPathFromView(t *testing.T) {
	f := newTableFixture()
	viewOid := f.find(t, "MainWindow/table")

	horizontal := f.run(t, schemas.Bag{"action": "headerview_path_from_view", "oid": viewOid})
	assert.Equal(t, "MainWindow/table/horizontalHeader", horizontal.String("headerpath"))

	vertical := f.run(t, schemas.Bag{
		"action": "headerview_path_from_view", "oid": viewOid, "orientation": "vertical",
	})
	assert.Equal(t, "MainWindow/table/verticalHeader", vertical.String("headerpath"))

	tree := tktest.NewTreeView("tree", f.model)
	f.win.AddChild(tree)
	fromTree := f.run(t, schemas.Bag{
		"action": "headerview_path_from_view", "oid": f.find(t, "MainWindow/tree"),
	})
	assert.Equal(t, "MainWindow/tree/header", fromTree.String("headerpath"))

	plain := tktest.NewItemView("plain", f.model)
	f.win.AddChild(plain)
	none := f.run(t, schemas.Bag{
		"action": "headerview_path_from_view", "oid": f.find(t, "MainWindow/plain"),
	})
	assert.Equal(t, schemas.ErrInvalidHeaderView, none.Kind())
}

func TestHeaderViewList(t *testing.T) {
	f := newTableFixture()
	result := f.run(t, schemas.Bag{"action": "headerview_list", "oid": f.headerOid(t)})
	require.False(t, result.IsError())
	assert.Equal(t, []string{"Name", "Size"}, result["headertexts"])
}

func TestHeaderViewClickByName(t *testing.T) {
	f := newTableFixture()
	oid := f.headerOid(t)

	result := f.run(t, schemas.Bag{
		"action": "headerview_click", "oid": oid, "indexOrName": "Size",
	})
	require.False(t, result.IsError())

	header := f.table.HorizontalHeader().(*tktest.HeaderView)
	events := f.app.PostedFor(header.Viewport())
	require.Len(t, events, 2)
	press := events[0].(*toolkit.MouseEvent)
	// Section 1 starts at 50; click lands 5px in, vertically centered.
	assert.Equal(t, toolkit.Point{X: 55, Y: 12}, press.Pos)
}

func TestHeaderViewClickByIndex(t *testing.T) {
	f := newTableFixture()
	oid := f.headerOid(t)

	result := f.run(t, schemas.Bag{
		"action": "headerview_click", "oid": oid, "indexOrName": 0,
	})
	require.False(t, result.IsError())

	header := f.table.HorizontalHeader().(*tktest.HeaderView)
	press := f.app.PostedFor(header.Viewport())[0].(*toolkit.MouseEvent)
	assert.Equal(t, toolkit.Point{X: 5, Y: 12}, press.Pos)
}

func TestHeaderViewClickErrors(t *testing.T) {
	f := newTableFixture()
	oid := f.headerOid(t)

	missing := f.run(t, schemas.Bag{
		"action": "headerview_click", "oid": oid, "indexOrName": "Nope",
	})
	assert.Equal(t, schemas.ErrMissingHeaderViewText, missing.Kind())

	hidden := f.table.HorizontalHeader().(*tktest.HeaderView)
	hidden.HideSection(1)
	result := f.run(t, schemas.Bag{
		"action": "headerview_click", "oid": oid, "indexOrName": 1,
	})
	assert.Equal(t, schemas.ErrInvalidHeaderViewIndex, result.Kind())
}
