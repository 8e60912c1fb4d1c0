package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Ddraigan/diff-tool/internal/git"
	"github.com/Ddraigan/diff-tool/internal/nav"
)

const (
	gutterWidth    = 2 // ">>" or "  "
	selectedGutter = ">>"
)

// View implements tea.Model
func (m Model) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}
	if m.TooSmall() {
		return m.tooSmallView()
	}

	left := m.width / 2
	right := m.width - left
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.paneView("Original", m.diff.Old, m.oldRows, m.cursor.Old, m.oldScroll, left),
		m.paneView("New", m.diff.New, m.newRows, m.cursor.New, m.newScroll, right),
	)
	footer := lipgloss.JoinHorizontal(lipgloss.Top, m.consolePane(), m.helpPane())

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, footer)
}

func (m Model) tooSmallView() string {
	msg := fmt.Sprintf("Terminal too small\nRequire width >= %d and height >= %d (got %dx%d)",
		MinWidth, MinHeight, m.width, m.height)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.notice.Render(msg))
}

func (m Model) headerView() string {
	inner := m.width - 2

	parts := []string{m.styles.title.Render("Git Diff View")}
	if m.target.Path != "" {
		parts = append(parts, m.styles.stats.Render(m.target.Path))
	}
	if m.status.Path != "" {
		parts = append(parts, m.styles.subtle.Render(m.status.Describe()))
	}
	added, removed := m.diff.Stats()
	parts = append(parts,
		m.styles.added.Render("+"+strconv.Itoa(added))+" "+m.styles.removed.Render("-"+strconv.Itoa(removed)))

	line := strings.Join(parts, m.styles.subtle.Render(" · "))
	if VisibleWidth(line) > inner {
		line = fitANSI(line, inner)
	}
	line = lipgloss.PlaceHorizontal(inner, lipgloss.Center, line)

	return m.styles.border.Width(inner).Render(line)
}

// paneView draws one side of the diff, width columns wide including borders
func (m Model) paneView(title string, lines []git.Line, rows []string, cursor nav.Cursor, offset, width int) string {
	inner := width - 2
	visible := m.visibleRows()

	out := make([]string, 0, visible+1)
	out = append(out, m.styles.paneTitle.Render(fitPlain(title, inner)))

	if len(lines) == 0 {
		out = append(out, m.styles.subtle.Render(fitPlain("No changes", inner)))
		for len(out) < visible+1 {
			out = append(out, strings.Repeat(" ", inner))
		}
	} else {
		numWidth := min(m.diff.LineNumberWidth(), inner/3)
		selected := cursor.Index()
		for i := offset; i < offset+visible; i++ {
			if i >= len(lines) {
				out = append(out, strings.Repeat(" ", inner))
				continue
			}
			out = append(out, m.renderRow(lines[i], rows[i], i == selected, numWidth, inner))
		}
	}

	return m.styles.border.Width(inner).Render(strings.Join(out, "\n"))
}

// renderRow draws: gutter, line number, marker, content
func (m Model) renderRow(l git.Line, row string, selected bool, numWidth, width int) string {
	gutter := strings.Repeat(" ", gutterWidth)
	numStyle := m.styles.number
	if selected {
		gutter = m.styles.gutter.Render(selectedGutter)
		numStyle = m.styles.selected
	}

	num := ""
	if l.HasNumber() {
		num = strconv.Itoa(l.Number)
	}
	num = numStyle.Render(fmt.Sprintf("%*s", numWidth, num))

	contentWidth := max(width-gutterWidth-numWidth-3, 0)

	var marker, content string
	switch l.Kind {
	case git.Addition:
		marker = m.styles.addMarker.Render(l.Kind.Marker())
		content = m.styles.addText.Render(fitPlain(row, contentWidth))
	case git.Removal:
		marker = m.styles.remMarker.Render(l.Kind.Marker())
		content = m.styles.remText.Render(fitPlain(row, contentWidth))
	case git.Blank:
		marker = l.Kind.Marker()
		content = m.styles.blank.Render(strings.Repeat(" ", contentWidth))
	default:
		marker = l.Kind.Marker()
		content = fitANSI(row, contentWidth)
	}

	return gutter + num + " " + marker + " " + content
}

func (m Model) consoleWidth() int {
	return m.width * 70 / 100
}

func (m Model) consolePane() string {
	inner := m.consoleWidth() - 2
	title := m.styles.paneTitle.Render(fitPlain("Console", inner))
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.consoleView.View())

	return m.styles.border.
		Width(inner).
		Height(footerHeight - 2).
		MaxHeight(footerHeight).
		Render(body)
}

func (m Model) helpPane() string {
	width := m.width - m.consoleWidth()

	keyWidth := 0
	for _, b := range m.keys {
		keyWidth = max(keyWidth, VisibleWidth(b.Help().Key))
	}
	// borders: left, column separator, right
	avail := max(width-3, 2)
	keyWidth = min(max(keyWidth, 3), avail/2)
	descWidth := avail - keyWidth

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.helpBorder).
		BorderRow(false).
		Headers(fitPlain("Key", keyWidth), fitPlain("Help", descWidth)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return m.styles.paneTitle
			case col == 0:
				return m.styles.helpKey
			default:
				return m.styles.helpText
			}
		})

	for _, b := range m.keys {
		h := b.Help()
		t.Row(fitPlain(h.Key, keyWidth), fitPlain(h.Desc, descWidth))
	}

	return lipgloss.NewStyle().Height(footerHeight).MaxHeight(footerHeight).Render(t.Render())
}
