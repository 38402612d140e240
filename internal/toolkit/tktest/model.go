package tktest

import "github.com/xkilldash9x/uiprobe/internal/toolkit"

// Item is one cell of a Model. Child rows hang under column 0 cells.
type Item struct {
	text   string
	check  *toolkit.CheckState
	parent *Item
	row    int
	col    int
	rows   [][]*Item
}

// SetText changes the cell's display text.
func (it *Item) SetText(text string) { it.text = text }

// SetCheck makes the cell checkable with the given state.
func (it *Item) SetCheck(state toolkit.CheckState) { it.check = &state }

// Model is a scriptable toolkit.ItemModel.
type Model struct {
	Object
	columns    int
	rows       [][]*Item
	flat       bool
	colHeaders []string
	rowHeaders []string
}

// NewModel builds a model with a fixed column count.
func NewModel(name string, columns int, classes ...string) *Model {
	if len(classes) == 0 {
		classes = []string{"ItemModel", "Object"}
	}
	m := &Model{columns: columns}
	initObject(&m.Object, m, name, classes)
	return m
}

// SetFlat marks the model as table/list shaped; dumps will not recurse.
func (m *Model) SetFlat(flat bool) { m.flat = flat }

// IsFlat implements toolkit.FlatModel.
func (m *Model) IsFlat() bool { return m.flat }

// SetHeaders sets the horizontal (column) and vertical (row) header texts.
func (m *Model) SetHeaders(columns, rows []string) {
	m.colHeaders = columns
	m.rowHeaders = rows
}

// AddRow appends a row of cells under parent (nil for the root). parent must
// be a column 0 cell. The new row's cells are returned for further setup.
func (m *Model) AddRow(parent *Item, texts ...string) []*Item {
	row := make([]*Item, m.columns)
	var siblings *[][]*Item
	if parent == nil {
		siblings = &m.rows
	} else {
		siblings = &parent.rows
	}
	for c := 0; c < m.columns; c++ {
		text := ""
		if c < len(texts) {
			text = texts[c]
		}
		row[c] = &Item{text: text, parent: parent, row: len(*siblings), col: c}
	}
	*siblings = append(*siblings, row)
	return row
}

func (m *Model) rowsUnder(parent toolkit.ModelIndex) [][]*Item {
	if !parent.IsValid() {
		return m.rows
	}
	item, ok := parent.Internal().(*Item)
	if !ok {
		return nil
	}
	return item.rows
}

func (m *Model) RowCount(parent toolkit.ModelIndex) int { return len(m.rowsUnder(parent)) }

func (m *Model) ColumnCount(parent toolkit.ModelIndex) int {
	if len(m.rowsUnder(parent)) == 0 {
		return 0
	}
	return m.columns
}

func (m *Model) Index(row, column int, parent toolkit.ModelIndex) toolkit.ModelIndex {
	rows := m.rowsUnder(parent)
	if row < 0 || row >= len(rows) || column < 0 || column >= m.columns {
		return toolkit.ModelIndex{}
	}
	return toolkit.NewModelIndex(row, column, rows[row][column])
}

func (m *Model) ParentIndex(index toolkit.ModelIndex) toolkit.ModelIndex {
	item, ok := index.Internal().(*Item)
	if !ok || item.parent == nil {
		return toolkit.ModelIndex{}
	}
	p := item.parent
	return toolkit.NewModelIndex(p.row, p.col, p)
}

func (m *Model) HasChildren(index toolkit.ModelIndex) bool {
	if !index.IsValid() {
		return len(m.rows) > 0
	}
	item, ok := index.Internal().(*Item)
	return ok && len(item.rows) > 0
}

func (m *Model) Data(index toolkit.ModelIndex) string {
	item, ok := index.Internal().(*Item)
	if !ok {
		return ""
	}
	return item.text
}

func (m *Model) CheckState(index toolkit.ModelIndex) (toolkit.CheckState, bool) {
	item, ok := index.Internal().(*Item)
	if !ok || item.check == nil {
		return toolkit.Unchecked, false
	}
	return *item.check, true
}

func (m *Model) HeaderData(section int, o toolkit.Orientation) string {
	headers := m.colHeaders
	if o == toolkit.Vertical {
		headers = m.rowHeaders
	}
	if section < 0 || section >= len(headers) {
		return ""
	}
	return headers[section]
}

// -- ItemView --

// ItemView is a scriptable toolkit.ItemView with a fixed cell grid layout.
type ItemView struct {
	Widget
	model    toolkit.ItemModel
	viewport *Widget

	CellWidth  int
	CellHeight int

	// Interaction records.
	Current    toolkit.ModelIndex
	Edited     []toolkit.ModelIndex
	ScrolledTo []toolkit.ModelIndex
}

// NewItemView builds a view over model (which may be nil).
func NewItemView(name string, model toolkit.ItemModel, classes ...string) *ItemView {
	if len(classes) == 0 {
		classes = []string{"ItemView", "Widget", "Object"}
	}
	v := &ItemView{model: model, CellWidth: 80, CellHeight: 20}
	initWidget(&v.Widget, v, name, classes)
	v.SetSize(400, 300)
	v.viewport = NewWidget("viewport", "Widget", "Object")
	v.AddChild(v.viewport)
	return v
}

func (v *ItemView) Model() toolkit.ItemModel { return v.model }

func (v *ItemView) SetCurrentIndex(index toolkit.ModelIndex) { v.Current = index }
func (v *ItemView) Edit(index toolkit.ModelIndex) {
	v.Current = index
	v.Edited = append(v.Edited, index)
}
func (v *ItemView) ScrollTo(index toolkit.ModelIndex) {
	v.ScrolledTo = append(v.ScrolledTo, index)
}

func (v *ItemView) VisualRect(index toolkit.ModelIndex) toolkit.Rect {
	if !index.IsValid() {
		return toolkit.Rect{}
	}
	return toolkit.Rect{
		X:      index.Column() * v.CellWidth,
		Y:      index.Row() * v.CellHeight,
		Width:  v.CellWidth,
		Height: v.CellHeight,
	}
}

func (v *ItemView) Viewport() toolkit.Widget { return v.viewport }

// -- HeaderView --

// HeaderView is a scriptable toolkit.HeaderView with fixed width sections.
type HeaderView struct {
	Widget
	model       toolkit.ItemModel
	orientation toolkit.Orientation
	viewport    *Widget

	SectionSize int
	offset      int
	hidden      map[int]bool
}

// NewHeaderView builds a header strip over model.
func NewHeaderView(name string, model toolkit.ItemModel, o toolkit.Orientation) *HeaderView {
	h := &HeaderView{model: model, orientation: o, SectionSize: 50}
	initWidget(&h.Widget, h, name, []string{"HeaderView", "Widget", "Object"})
	h.SetSize(400, 24)
	h.viewport = NewWidget("viewport", "Widget", "Object")
	h.AddChild(h.viewport)
	return h
}

func (h *HeaderView) Model() toolkit.ItemModel         { return h.model }
func (h *HeaderView) Orientation() toolkit.Orientation { return h.orientation }
func (h *HeaderView) Offset() int                      { return h.offset }
func (h *HeaderView) SetOffset(offset int)             { h.offset = offset }
func (h *HeaderView) LogicalIndex(visual int) int      { return visual }
func (h *HeaderView) Viewport() toolkit.Widget         { return h.viewport }

// HideSection makes SectionPosition report the section as missing.
func (h *HeaderView) HideSection(logical int) {
	if h.hidden == nil {
		h.hidden = map[int]bool{}
	}
	h.hidden[logical] = true
}

func (h *HeaderView) sectionCount() int {
	if h.model == nil {
		return 0
	}
	if h.orientation == toolkit.Vertical {
		return h.model.RowCount(toolkit.ModelIndex{})
	}
	return h.model.ColumnCount(toolkit.ModelIndex{})
}

func (h *HeaderView) SectionPosition(logical int) int {
	if logical < 0 || logical >= h.sectionCount() || h.hidden[logical] {
		return -1
	}
	return logical * h.SectionSize
}

// -- TableView / TreeView --

// TableView is an ItemView exposing horizontal and vertical headers.
type TableView struct {
	ItemView
	horizontal *HeaderView
	vertical   *HeaderView
}

// NewTableView builds a table view with both header strips attached.
func NewTableView(name string, model toolkit.ItemModel) *TableView {
	t := &TableView{}
	t.model = model
	t.CellWidth, t.CellHeight = 80, 20
	initWidget(&t.Widget, t, name, []string{"TableView", "ItemView", "Widget", "Object"})
	t.SetSize(400, 300)
	t.viewport = NewWidget("viewport", "Widget", "Object")
	t.AddChild(t.viewport)
	t.horizontal = NewHeaderView("horizontalHeader", model, toolkit.Horizontal)
	t.vertical = NewHeaderView("verticalHeader", model, toolkit.Vertical)
	t.AddChild(t.horizontal)
	t.AddChild(t.vertical)
	return t
}

func (t *TableView) HorizontalHeader() toolkit.HeaderView { return t.horizontal }
func (t *TableView) VerticalHeader() toolkit.HeaderView   { return t.vertical }

// TreeView is an ItemView with a single header strip.
type TreeView struct {
	ItemView
	header *HeaderView
}

// NewTreeView builds a tree view with its header attached.
func NewTreeView(name string, model toolkit.ItemModel) *TreeView {
	t := &TreeView{}
	t.model = model
	t.CellWidth, t.CellHeight = 80, 20
	initWidget(&t.Widget, t, name, []string{"TreeView", "ItemView", "Widget", "Object"})
	t.SetSize(400, 300)
	t.viewport = NewWidget("viewport", "Widget", "Object")
	t.AddChild(t.viewport)
	t.header = NewHeaderView("header", model, toolkit.Horizontal)
	t.AddChild(t.header)
	return t
}

func (t *TreeView) Header() toolkit.HeaderView { return t.header }

// -- ComboBox --

// ComboBox is a widget owning a model without being an item view.
type ComboBox struct {
	Widget
	model toolkit.ItemModel
}

// NewComboBox builds a combo box over model.
func NewComboBox(name string, model toolkit.ItemModel) *ComboBox {
	c := &ComboBox{model: model}
	initWidget(&c.Widget, c, name, []string{"ComboBox", "Widget", "Object"})
	return c
}

func (c *ComboBox) Model() toolkit.ItemModel { return c.model }

// -- TabBar --

// TabBar is a scriptable toolkit.TabBar.
type TabBar struct {
	Widget
	tabs []string
}

// NewTabBar builds a tab bar with the given tab texts.
func NewTabBar(name string, tabs ...string) *TabBar {
	t := &TabBar{tabs: tabs}
	initWidget(&t.Widget, t, name, []string{"TabBar", "Widget", "Object"})
	return t
}

func (t *TabBar) TabCount() int { return len(t.tabs) }
func (t *TabBar) TabText(i int) string {
	if i < 0 || i >= len(t.tabs) {
		return ""
	}
	return t.tabs[i]
}
