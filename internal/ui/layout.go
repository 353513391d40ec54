package ui

import (
	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/drag"
	"github.com/techdufus/taskboard/internal/virtual"
)

// Screen layout, top to bottom: header, board, status bar. Each column box
// is a border row, the column header, a blank row, the card viewport, the
// "+ Add a card" row and a closing border row.
const (
	headerHeight    = 1
	statusBarHeight = 1
	columnChrome    = 5
	cardsTop        = headerHeight + 3

	indicatorWidth = 1
	columnMargin   = 1
	scrollbarWidth = 1
	wheelStep      = 3
)

type columnRect struct {
	index int
	x     int
	width int // outer width, borders included
}

// columnView is the vertical geometry of one column's card list.
type columnView struct {
	tasks   []board.Task
	virtual bool
	window  virtual.Window
	tops    []int // first row of each card (normal flow)
	heights []int
	total   int
}

// cardAt returns the index of the card covering row, or -1.
func (v columnView) cardAt(row int) int {
	if row < 0 || row >= v.total {
		return -1
	}
	if v.virtual {
		i := row / v.window.ItemHeight
		if i >= len(v.tasks) {
			return -1
		}
		return i
	}
	for i, top := range v.tops {
		if row >= top && row < top+v.heights[i] {
			return i
		}
	}
	return -1
}

// cardSpan returns the first row and height of card i.
func (v columnView) cardSpan(i int) (top, height int) {
	if v.virtual {
		return v.window.Offset(i), v.window.ItemHeight
	}
	if i < 0 || i >= len(v.tops) {
		return 0, 0
	}
	return v.tops[i], v.heights[i]
}

func (m *Model) boardHeight() int {
	return max(m.height-headerHeight-statusBarHeight, columnChrome+1)
}

// cardsHeight is the number of rows in each column's card viewport.
func (m *Model) cardsHeight() int {
	return m.boardHeight() - columnChrome
}

func (m *Model) cardHeightEstimate() int {
	if m.config.UI.CardHeight > 0 {
		return m.config.UI.CardHeight
	}
	return 6
}

func (m *Model) minColumnWidth() int {
	if m.config.UI.MinColumnWidth > 0 {
		return m.config.UI.MinColumnWidth
	}
	return 24
}

func (m *Model) visibleColumnCount() int {
	n := len(m.board.Columns)
	if m.width == 0 || n == 0 {
		return n
	}
	available := m.width - 2*indicatorWidth + columnMargin
	visible := available / (m.minColumnWidth() + 2 + columnMargin)
	return min(max(visible, 1), n)
}

// distributeWidth splits the free width between numCols columns. The result
// is the lipgloss Width of each column, so borders and margins are outside it.
func (m *Model) distributeWidth(numCols int) (baseWidth, remainder int) {
	if numCols == 0 || m.width == 0 {
		return m.minColumnWidth(), 0
	}
	borders := numCols * 2
	margins := (numCols - 1) * columnMargin
	available := m.width - 2*indicatorWidth - borders - margins
	baseWidth = available / numCols
	remainder = available % numCols
	if baseWidth < m.minColumnWidth() {
		baseWidth = m.minColumnWidth()
		remainder = 0
	}
	return baseWidth, remainder
}

func (m *Model) columnRects() []columnRect {
	start := m.scrollOffset
	end := min(start+m.visibleColumnCount(), len(m.board.Columns))
	if start >= end {
		return nil
	}
	baseWidth, remainder := m.distributeWidth(end - start)

	rects := make([]columnRect, 0, end-start)
	x := indicatorWidth
	for i := start; i < end; i++ {
		w := baseWidth
		if i-start < remainder {
			w++
		}
		rects = append(rects, columnRect{index: i, x: x, width: w + 2})
		x += w + 2 + columnMargin
	}
	return rects
}

func (m *Model) columnRect(col int) (columnRect, bool) {
	for _, r := range m.columnRects() {
		if r.index == col {
			return r, true
		}
	}
	return columnRect{}, false
}

// cardWidth is the outer width of a card in a column of the given outer width.
func cardWidth(columnWidth int) int {
	return max(columnWidth-4-scrollbarWidth, 8)
}

func (m *Model) columnView(col int) columnView {
	if col < 0 || col >= len(m.board.Columns) {
		return columnView{}
	}
	v := columnView{tasks: m.board.ColumnTasks(m.board.Columns[col].ID)}
	v.virtual = virtual.Enabled(len(v.tasks), m.config.UI.VirtualThreshold)

	if v.virtual {
		v.window = virtual.Compute(virtual.Params{
			Count:          len(v.tasks),
			ScrollOffset:   m.columnScroll(col),
			ViewportHeight: m.cardsHeight(),
			ItemHeight:     m.cardHeightEstimate(),
			Buffer:         m.config.UI.VirtualBuffer,
		})
		v.total = v.window.TotalHeight
		return v
	}

	v.tops = make([]int, len(v.tasks))
	v.heights = make([]int, len(v.tasks))
	row := 0
	for i, t := range v.tasks {
		v.tops[i] = row
		v.heights[i] = cardHeight(t)
		row += v.heights[i]
	}
	v.total = row
	return v
}

func (m *Model) columnScroll(col int) int {
	if col < 0 || col >= len(m.columnOffsets) {
		return 0
	}
	return m.columnOffsets[col]
}

func (m *Model) setColumnScroll(col, offset int) {
	if col < 0 || col >= len(m.columnOffsets) {
		return
	}
	m.columnOffsets[col] = offset
	v := m.columnView(col)
	m.columnOffsets[col] = virtual.ClampScroll(offset, v.total, m.cardsHeight())
}

func (m *Model) scrollColumn(col, delta int) {
	m.setColumnScroll(col, m.columnScroll(col)+delta)
}

type hitKind int

const (
	hitNone hitKind = iota
	hitColumn
	hitCard
	hitAdd
)

type hit struct {
	kind   hitKind
	column int
	task   int
	id     board.TaskID
}

// hitTest maps a screen cell to the column, card or add button under it.
func (m *Model) hitTest(x, y int) hit {
	top := headerHeight
	if y < top || y >= top+m.boardHeight() {
		return hit{kind: hitNone, column: -1, task: -1}
	}

	for _, r := range m.columnRects() {
		if x < r.x || x >= r.x+r.width {
			continue
		}
		h := hit{kind: hitColumn, column: r.index, task: -1}
		rel := y - cardsTop
		switch {
		case rel >= 0 && rel < m.cardsHeight():
			v := m.columnView(r.index)
			if i := v.cardAt(m.columnScroll(r.index) + rel); i >= 0 {
				h.kind = hitCard
				h.task = i
				h.id = v.tasks[i].ID
			}
		case rel == m.cardsHeight():
			h.kind = hitAdd
		}
		return h
	}
	return hit{kind: hitNone, column: -1, task: -1}
}

// targetAt returns the drop target under a screen cell. Outside the board
// there is none.
func (m *Model) targetAt(x, y int) drag.Target {
	h := m.hitTest(x, y)
	switch h.kind {
	case hitCard:
		return drag.TaskTarget{ID: h.id}
	case hitColumn, hitAdd:
		return drag.ColumnTarget{ID: m.board.Columns[h.column].ID}
	}
	return nil
}
