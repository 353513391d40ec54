package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/techdufus/taskboard/internal/board"
	"github.com/techdufus/taskboard/internal/drag"
	"github.com/techdufus/taskboard/internal/editor"
	"github.com/techdufus/taskboard/internal/virtual"
)

const (
	maxCardTags       = 3
	confirmTitleWidth = 40
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderWithOverlay(m.renderHelp())
	}
	if m.showConfirm {
		return m.renderWithOverlay(m.renderConfirmDialog())
	}
	if m.editor.IsOpen() {
		return m.renderWithOverlay(m.renderTaskForm())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m *Model) renderHeader() string {
	logo := lipgloss.NewStyle().
		Foreground(colorBlue).
		Bold(true).
		Render("◈ Taskboard")

	overdue := 0
	for _, t := range m.board.Tasks {
		if t.Overdue(m.now()) {
			overdue++
		}
	}

	stats := dimStyle.Render(fmt.Sprintf("%d cards · %d columns", len(m.board.Tasks), len(m.board.Columns)))
	line := lipgloss.JoinHorizontal(lipgloss.Center, logo, "  ", stats)
	if overdue > 0 {
		line += "  " + lipgloss.NewStyle().Foreground(colorRed).Render(fmt.Sprintf("%d overdue", overdue))
	}
	return ansi.Truncate(line, m.width, "…")
}

func (m *Model) renderBoard() string {
	rects := m.columnRects()
	height := m.boardHeight()

	left, right := " ", " "
	if m.scrollOffset > 0 {
		left = dimStyle.Render("◀")
	}
	if len(rects) > 0 && rects[len(rects)-1].index < len(m.board.Columns)-1 {
		right = dimStyle.Render("▶")
	}

	blocks := []string{left}
	for i, r := range rects {
		blocks = append(blocks, m.renderColumn(r, i == len(rects)-1))
	}
	blocks = append(blocks, right)

	view := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	return lipgloss.NewStyle().Height(height).MaxHeight(height).Render(view)
}

func (m *Model) renderColumn(r columnRect, isLast bool) string {
	col := m.board.Columns[r.index]
	v := m.columnView(r.index)
	contentWidth := r.width - 4
	isActive := r.index == m.activeColumn && m.mode == ModeNormal
	isDropTarget := m.mode == ModeDrag && m.dropColumn() == r.index && r.index != m.board.ColumnIndex(m.dragTask.Status)

	headerColor := colorText
	if col.Color != "" {
		headerColor = lipgloss.Color(col.Color)
	}

	icon := "○"
	if isActive {
		icon = "●"
	}
	header := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Render(icon + " " + col.Title)

	countText := fmt.Sprintf("(%d)", len(v.tasks))
	if col.MaxTasks > 0 {
		countText = fmt.Sprintf("(%d/%d)", len(v.tasks), col.MaxTasks)
	}
	countStyle := lipgloss.NewStyle().Foreground(colorMuted)
	if col.OverLimit() {
		countStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
		countText += " !"
	}
	headerLine := ansi.Truncate(header+countStyle.Render(" "+countText), contentWidth, "…")

	lines := []string{headerLine, ""}
	lines = append(lines, m.renderCards(r.index, v, contentWidth)...)
	lines = append(lines, lipgloss.NewStyle().
		Foreground(colorMuted).
		Width(contentWidth).
		Align(lipgloss.Center).
		Render("+ Add a card"))

	borderColor := colorSurface
	if isDropTarget {
		borderColor = colorGreen
	} else if isActive {
		borderColor = headerColor
	}

	style := lipgloss.NewStyle().
		Border(columnBorder).
		BorderForeground(borderColor).
		Width(r.width - 2).
		Padding(0, 1)

	if !isLast {
		style = style.MarginRight(columnMargin)
	}

	return style.Render(strings.Join(lines, "\n"))
}

// renderCards returns exactly cardsHeight rows for the card viewport of a
// column, scrollbar included.
func (m *Model) renderCards(col int, v columnView, width int) []string {
	height := m.cardsHeight()
	cw := width - scrollbarWidth
	scroll := virtual.ClampScroll(m.columnScroll(col), v.total, height)
	rows := make([]string, height)

	switch {
	case len(v.tasks) == 0:
		placeholder := lipgloss.NewStyle().
			Border(lipgloss.Border{Top: "╌", Bottom: "╌", Left: "╎", Right: "╎", TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘"}).
			BorderForeground(colorOverlay).
			Foreground(colorMuted).
			Width(cw - 2).
			Align(lipgloss.Center).
			Render("Drag cards here")
		copy(rows, strings.Split(placeholder, "\n"))

	case v.virtual:
		h := v.window.ItemHeight
		rendered := make(map[int][]string, v.window.Len())
		for r := range rows {
			row := scroll + r
			i := row / h
			if !v.window.Contains(i) {
				continue
			}
			lines, ok := rendered[i]
			if !ok {
				lines = fitRows(strings.Split(m.renderCard(col, i, v.tasks[i], cw), "\n"), h)
				rendered[i] = lines
			}
			rows[r] = lines[row%h]
		}

	default:
		first := v.cardAt(scroll)
		for i := max(first, 0); i < len(v.tasks); i++ {
			top := v.tops[i]
			if top >= scroll+height {
				break
			}
			for j, line := range strings.Split(m.renderCard(col, i, v.tasks[i], cw), "\n") {
				if r := top + j - scroll; r >= 0 && r < height {
					rows[r] = line
				}
			}
		}
	}

	pos, size, hasBar := virtual.Scrollbar(v.total, height, scroll)
	for r := range rows {
		bar := " "
		if hasBar {
			bar = dimStyle.Render("│")
			if r >= pos && r < pos+size {
				bar = lipgloss.NewStyle().Foreground(colorSubtext).Render("┃")
			}
		}
		rows[r] = padRight(rows[r], cw) + bar
	}
	return rows
}

// fitRows cuts or pads lines to exactly n rows.
func fitRows(lines []string, n int) []string {
	if len(lines) >= n {
		return lines[:n]
	}
	return append(lines, make([]string, n-len(lines))...)
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w > width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}

// cardHeight is the number of rows renderCard produces for t.
func cardHeight(t board.Task) int {
	h := 3 // borders and title
	if oneLine(t.Description) != "" {
		h++
	}
	if len(t.Tags) > 0 || t.Initials() != "" {
		h++
	}
	if t.DueDate != nil {
		h++
	}
	return h
}

func (m *Model) renderCard(col, index int, t board.Task, width int) string {
	inner := max(width-4, 1)
	isSelected := m.mode == ModeNormal && col == m.activeColumn && index == m.activeTask
	isDragged := m.mode == ModeDrag && t.ID == m.dragTask.ID
	isDropTarget := false
	if tt, ok := m.dragTarget.(drag.TaskTarget); ok && m.mode == ModeDrag && tt.ID == t.ID && !isDragged {
		isDropTarget = true
	}

	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(isSelected)
	if isDragged {
		titleStyle = titleStyle.Foreground(colorMuted).Italic(true)
	}
	badge := ""
	if t.Priority != "" && len(t.Priority)+2 <= inner {
		badge = lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render(string(t.Priority))
	}
	titleWidth := inner
	if badge != "" {
		titleWidth = inner - lipgloss.Width(badge) - 1
	}
	title := titleStyle.Render(ansi.Truncate(oneLine(t.Title), titleWidth, "…"))
	lines := []string{joinEnds(title, badge, inner)}

	if desc := oneLine(t.Description); desc != "" {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true).
			Render(ansi.Truncate(desc, inner, "…")))
	}

	initials := t.Initials()
	if len(t.Tags) > 0 || initials != "" {
		var chips []string
		for i, tag := range t.Tags {
			if i == maxCardTags {
				chips = append(chips, dimStyle.Render(fmt.Sprintf("+%d", len(t.Tags)-maxCardTags)))
				break
			}
			chips = append(chips, tagStyle.Render(oneLine(tag)))
		}
		avatar := ""
		if initials != "" {
			avatar = avatarStyle.Render(initials)
			if lipgloss.Width(avatar) > inner {
				avatar = ""
			}
		}
		tagsWidth := inner
		if avatar != "" {
			tagsWidth = max(inner-lipgloss.Width(avatar)-1, 0)
		}
		lines = append(lines, joinEnds(ansi.Truncate(strings.Join(chips, " "), tagsWidth, "…"), avatar, inner))
	}

	if t.DueDate != nil {
		dueStyle := lipgloss.NewStyle().Foreground(colorMuted)
		if t.Overdue(m.now()) {
			dueStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
		}
		lines = append(lines, dueStyle.Render(ansi.Truncate("Due: "+t.DueDate.Format(dueLayout), inner, "…")))
	}

	border := cardBorder
	borderColor := colorSurface
	switch {
	case isDragged:
		borderColor = colorOverlay
	case isDropTarget:
		border = cardBorderSelected
		borderColor = colorGreen
	case isSelected:
		border = cardBorderSelected
		borderColor = lipgloss.Color(m.board.Columns[col].Color)
	}

	// Overlong lines would wrap and break the row count cardHeight promises.
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, inner, "")
	}

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(borderColor).
		BorderLeftForeground(priorityColor(t.Priority)).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

// oneLine collapses all whitespace runs, newlines included, to single spaces.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// joinEnds places left and right at the two ends of a line of the given width.
func joinEnds(left, right string, width int) string {
	if right == "" {
		return left
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func priorityColor(p board.Priority) lipgloss.Color {
	switch p {
	case board.PriorityLow:
		return colorBlue
	case board.PriorityMedium:
		return colorYellow
	case board.PriorityHigh:
		return colorPeach
	case board.PriorityUrgent:
		return colorRed
	}
	return colorOverlay
}

func (m *Model) renderStatusBar() string {
	modeStr := modeStyle.Render(string(m.mode))
	sep := lipgloss.NewStyle().Foreground(colorOverlay).Render(" │ ")

	var hints string
	if m.mode == ModeDrag {
		target := "nowhere"
		if col := m.dropColumn(); col >= 0 {
			target = m.board.Columns[col].Title
		}
		hints = lipgloss.NewStyle().Foreground(colorYellow).Render(fmt.Sprintf("Moving %q → %s", m.dragTask.Title, target))
		if !m.mouseDrag {
			hints += sep + m.help.ShortHelpView(dragKeyMap{m.keys}.ShortHelp())
		}
	} else {
		hints = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	notif := ""
	if m.notification != "" {
		notif = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorGreen).
			Padding(0, 1).
			Render("✓ " + m.notification)
	}

	left := ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Center, modeStr, sep, hints), max(m.width-lipgloss.Width(notif), 0), "…")
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(notif), 0)
	return left + strings.Repeat(" ", spacing) + notif
}

func (m *Model) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(colorBlue).
		Bold(true)

	content := titleStyle.Render("◈ Keyboard Shortcuts") + "\n\n" +
		m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
		dimStyle.Render("Mouse: drag a card to move it, click to open, wheel to scroll") + "\n" +
		dimStyle.Render("Press any key to close")

	return lipgloss.NewStyle().
		Border(columnBorder).
		BorderForeground(colorBlue).
		Padding(1, 2).
		Render(content)
}

func (m *Model) renderConfirmDialog() string {
	t := m.confirmTask
	headStyle := lipgloss.NewStyle().
		Foreground(colorRed).
		Bold(true)

	name := lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		Render(ansi.Truncate(oneLine(t.Title), confirmTitleWidth, "…"))
	if t.Priority != "" {
		name += "  " + lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).Render(string(t.Priority))
	}
	where := string(t.Status)
	if c, ok := m.board.Column(t.Status); ok {
		where = c.Title
	}

	content := headStyle.Render("✕ Delete Card") + "\n\n" +
		"  " + name + "\n" +
		"  " + dimStyle.Render("in "+where+". This cannot be undone.") + "\n\n" +
		"  " + lipgloss.NewStyle().Foreground(colorRed).Render("[y]") + dimStyle.Render(" Delete  ") +
		lipgloss.NewStyle().Foreground(colorGreen).Render("[n]") + dimStyle.Render(" Keep  ") +
		lipgloss.NewStyle().Foreground(colorMuted).Render("[Esc]") + dimStyle.Render(" Back")

	return lipgloss.NewStyle().
		Border(cardBorderSelected).
		BorderForeground(colorRed).
		BorderLeftForeground(priorityColor(t.Priority)).
		Padding(1, 2).
		Render(content)
}

func (m *Model) renderTaskForm() string {
	draft := m.editor.Draft()
	formTitle := "Edit Card"
	if m.editor.Original().Title == board.DefaultTitle {
		formTitle = "New Card"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(colorGreen).
		Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorSubtext)
	activeLabelStyle := lipgloss.NewStyle().Foreground(colorTeal).Bold(true)

	label := func(f editor.Field, text string) string {
		if m.form.field == f {
			return activeLabelStyle.Render(text)
		}
		return labelStyle.Render(text)
	}
	selector := func(f editor.Field, value string, color lipgloss.Color) string {
		arrows := dimStyle
		if m.form.field == f {
			arrows = lipgloss.NewStyle().Foreground(colorTeal)
		}
		return arrows.Render("◀ ") + lipgloss.NewStyle().Foreground(color).Bold(true).Render(value) + arrows.Render(" ▶")
	}

	priority := string(draft.Priority)
	if priority == "" {
		priority = "none"
	}
	status := string(draft.Status)
	statusColor := colorText
	if c, ok := m.board.Column(draft.Status); ok {
		status = c.Title
		if c.Color != "" {
			statusColor = lipgloss.Color(c.Color)
		}
	}

	content := titleStyle.Render("◈ "+formTitle) + "\n\n" +
		"  " + label(editor.FieldTitle, "Title:") + "\n" +
		"  " + m.form.title.View() + "\n\n" +
		"  " + label(editor.FieldDescription, "Description:") + "\n" +
		"  " + strings.ReplaceAll(m.form.desc.View(), "\n", "\n  ") + "\n\n" +
		"  " + label(editor.FieldPriority, "Priority: ") + selector(editor.FieldPriority, priority, priorityColor(draft.Priority)) + "\n" +
		"  " + label(editor.FieldStatus, "Status:   ") + selector(editor.FieldStatus, status, statusColor) + "\n\n" +
		"  " + label(editor.FieldAssignee, "Assignee:") + "\n" +
		"  " + m.form.assignee.View() + "\n" +
		"  " + label(editor.FieldTags, "Tags:") + "\n" +
		"  " + m.form.tags.View() + "\n" +
		"  " + label(editor.FieldDueDate, "Due:") + " " + m.form.due.View() + "\n\n" +
		"  " + lipgloss.NewStyle().Foreground(colorTeal).Render("[Tab]") + dimStyle.Render(" Next  ") +
		lipgloss.NewStyle().Foreground(colorGreen).Render("[Ctrl+S]") + dimStyle.Render(" Save  ") +
		lipgloss.NewStyle().Foreground(colorRed).Render("[Ctrl+D]") + dimStyle.Render(" Delete  ") +
		lipgloss.NewStyle().Foreground(colorMuted).Render("[Esc]") + dimStyle.Render(" Cancel")

	return lipgloss.NewStyle().
		Border(columnBorder).
		BorderForeground(colorGreen).
		Padding(1, 2).
		Render(content)
}

func (m *Model) renderWithOverlay(overlay string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

var (
	colorBase    = lipgloss.Color("#1e1e2e")
	colorSurface = lipgloss.Color("#313244")
	colorOverlay = lipgloss.Color("#45475a")
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorMuted   = lipgloss.Color("#6c7086")
	colorBlue    = lipgloss.Color("#89b4fa")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorYellow  = lipgloss.Color("#f9e2af")
	colorRed     = lipgloss.Color("#f38ba8")
	colorTeal    = lipgloss.Color("#94e2d5")
	colorPeach   = lipgloss.Color("#fab387")
)

var (
	columnBorder = lipgloss.Border{
		Top:         "━",
		Bottom:      "━",
		Left:        "┃",
		Right:       "┃",
		TopLeft:     "┏",
		TopRight:    "┓",
		BottomLeft:  "┗",
		BottomRight: "┛",
	}

	cardBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "▌",
		Right:       "│",
		TopLeft:     "▗",
		TopRight:    "╮",
		BottomLeft:  "▝",
		BottomRight: "╯",
	}

	cardBorderSelected = lipgloss.Border{
		Top:         "═",
		Bottom:      "═",
		Left:        "▌",
		Right:       "║",
		TopLeft:     "▗",
		TopRight:    "╗",
		BottomLeft:  "▝",
		BottomRight: "╝",
	}
)

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	modeStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Bold(true).
			Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorSubtext).
			Background(colorOverlay).
			Padding(0, 1)

	avatarStyle = lipgloss.NewStyle().
			Foreground(colorBase).
			Background(colorBlue).
			Bold(true).
			Padding(0, 1)
)
