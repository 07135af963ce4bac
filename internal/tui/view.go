package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/giveaway/internal/catalog"
	"github.com/Makepad-fr/giveaway/internal/ui"
)

const (
	cardWidth   = 30 // outer, including border
	cardLines   = 5
	cardHeight  = cardLines + 2
	cardGap     = 1
	headerLines = 4
	footerLines = 1
	maxModalW   = 72
)

type gridRow struct {
	line  int
	cards []int
}

type gridHeading struct {
	line    int
	heading catalog.Heading
}

// gridLayout places the tree's headings and card rows on content lines.
type gridLayout struct {
	cols     int
	lines    int
	headings []gridHeading
	rows     []gridRow
	rowOf    []int
	colOf    []int
}

func (m Model) innerWidth() int  { return max(m.width-4, cardWidth) }
func (m Model) innerHeight() int { return max(m.height-2, headerLines+footerLines+1) }

func (m Model) contentHeight() int {
	return m.innerHeight() - headerLines - footerLines
}

func (m Model) layout() gridLayout {
	g := gridLayout{cols: max(1, (m.innerWidth()+cardGap)/(cardWidth+cardGap))}
	open := false
	card := 0
	for _, n := range m.sess.Tree().Nodes {
		if n.Kind == catalog.NodeHeading {
			if g.lines > 0 {
				g.lines++
			}
			g.headings = append(g.headings, gridHeading{line: g.lines, heading: n.Heading})
			g.lines++
			open = false
			continue
		}
		if !open || len(g.rows[len(g.rows)-1].cards) == g.cols {
			g.rows = append(g.rows, gridRow{line: g.lines})
			g.lines += cardHeight
			open = true
		}
		r := len(g.rows) - 1
		g.colOf = append(g.colOf, len(g.rows[r].cards))
		g.rowOf = append(g.rowOf, r)
		g.rows[r].cards = append(g.rows[r].cards, card)
		card++
	}
	return g
}

// move shifts the cursor by whole rows or single cells.
// move steps the cursor through the grid, landing only on interactive
// cards. With none in the direction it stays put.
func (m *Model) move(dRow, dCol int) {
	g := m.layout()
	if len(g.rowOf) == 0 {
		return
	}
	cards := m.sess.Tree().Cards()
	if dCol != 0 {
		for i := m.cursor + dCol; i >= 0 && i < len(cards); i += dCol {
			if cards[i].Interactive {
				m.cursor = i
				m.ensureVisible()
				return
			}
		}
		return
	}
	if dRow == 0 {
		return
	}
	col := g.colOf[m.cursor]
	for r := g.rowOf[m.cursor] + dRow; r >= 0 && r < len(g.rows); r += dRow {
		best := -1
		for _, i := range g.rows[r].cards {
			if cards[i].Interactive && (best < 0 || abs(g.colOf[i]-col) < abs(g.colOf[best]-col)) {
				best = i
			}
		}
		if best >= 0 {
			m.cursor = best
			m.ensureVisible()
			return
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (m *Model) ensureVisible() {
	g := m.layout()
	ch := m.contentHeight()
	if m.cursor < len(g.rowOf) {
		top := g.rows[g.rowOf[m.cursor]].line
		for _, h := range g.headings {
			if h.line == top-1 {
				top = h.line
			}
		}
		bottom := g.rows[g.rowOf[m.cursor]].line + cardHeight
		if top < m.offset {
			m.offset = top
		}
		if bottom > m.offset+ch {
			m.offset = bottom - ch
		}
	}
	m.offset = min(max(m.offset, 0), max(g.lines-ch, 0))
}

func (m *Model) scroll(d int) {
	g := m.layout()
	m.offset = min(max(m.offset+d, 0), max(g.lines-m.contentHeight(), 0))
}

// cardAt maps a screen cell to a card position.
func (m Model) cardAt(x, y int) (int, bool) {
	cy := y - 1 - headerLines
	cx := x - 2
	if cy < 0 || cy >= m.contentHeight() || cx < 0 {
		return 0, false
	}
	if cx%(cardWidth+cardGap) >= cardWidth {
		return 0, false
	}
	line := m.offset + cy
	col := cx / (cardWidth + cardGap)
	for _, r := range m.layout().rows {
		if line >= r.line && line < r.line+cardHeight && col < len(r.cards) {
			return r.cards[col], true
		}
	}
	return 0, false
}

func (m Model) modalSize() (width, height int) {
	outer := min(maxModalW, max(m.width-4, 24))
	return outer - 6, max(m.height-16, 3)
}

func (m Model) modalBox() string {
	d := m.sess.Modal().Detail()
	w, _ := m.modalSize()
	img := imageGlyph + " " + d.Image
	if d.Placeholder {
		img += " (no photo)"
	}
	lines := []string{
		titleStyle.Render(ui.Truncate(d.Title, w-12)) + "  " + badge(d.Badge, d.BadgeClass),
	}
	if d.Meta != "" {
		lines = append(lines, mutedStyle.Render(d.Meta))
	}
	lines = append(lines, mutedStyle.Render(ui.Truncate(img, w)))
	if d.Description != "" {
		lines = append(lines, "", m.detail.View())
	}
	h := help.New()
	h.Width = w
	lines = append(lines, "", h.ShortHelpView(m.keys.modalHelp()))
	if m.flash != "" {
		lines = append(lines, accentStyle.Render(m.flash))
	}
	return modalStyle.Width(w + 4).Render(strings.Join(lines, "\n"))
}

// insideModal reports whether a screen cell falls on the detail box.
func (m Model) insideModal(x, y int) bool {
	box := m.modalBox()
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	x0, y0 := (m.width-bw)/2, (m.height-bh)/2
	return x >= x0 && x < x0+bw && y >= y0 && y < y0+bh
}

func (m Model) View() string {
	if m.sess.Modal().IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalBox())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")

	content := m.contentLines()
	ch := m.contentHeight()
	for len(content) < ch {
		content = append(content, "")
	}
	b.WriteString(strings.Join(content[:ch], "\n"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return panelString(b.String())
}

func (m Model) headerView() string {
	counts := m.sess.Counts()
	state := m.sess.State()
	pills := make([]string, 0, len(catalog.StatusFilters))
	for _, f := range catalog.StatusFilters {
		txt := fmt.Sprintf("%s %d", f.Label(), counts[f])
		if f == state.Status {
			pills = append(pills, pillActiveStyle.Render(txt))
		} else {
			pills = append(pills, pillStyle.Render(txt))
		}
	}
	line1 := titleStyle.Render("Giveaway") + "  " + strings.Join(pills, " ")

	var line2 string
	switch {
	case m.searching:
		line2 = m.search.View()
	case state.Search != "":
		line2 = accentStyle.Render("/ " + state.Search)
	default:
		line2 = mutedStyle.Render("/ to search")
	}

	category := "All"
	if !strings.EqualFold(state.Category, catalog.All) {
		category = state.Category
	}
	line3 := "Category: " + accentStyle.Render(category)
	if m.loading {
		line3 += "  " + mutedStyle.Render("loading…")
	}
	return strings.Join([]string{line1, line2, line3, ""}, "\n")
}

func (m Model) contentLines() []string {
	tree := m.sess.Tree()
	if tree.Empty {
		if m.loading {
			return []string{mutedStyle.Render("Loading items…")}
		}
		return []string{mutedStyle.Render(ui.EmptyText)}
	}
	g := m.layout()
	lines := make([]string, g.lines)
	for _, h := range g.headings {
		lines[h.line] = headingStyle.Render(h.heading.Label) + " " + mutedStyle.Render(fmt.Sprintf("(%d)", h.heading.Count))
	}
	cards := tree.Cards()
	gap := strings.Repeat(" ", cardGap)
	for _, r := range g.rows {
		boxes := make([]string, 0, len(r.cards)*2)
		for i, ci := range r.cards {
			if i > 0 {
				boxes = append(boxes, gap)
			}
			boxes = append(boxes, renderCard(cards[ci], ci == m.cursor))
		}
		row := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, boxes...), "\n")
		copy(lines[r.line:], row)
	}
	end := min(m.offset+m.contentHeight(), len(lines))
	return lines[min(m.offset, end):end]
}

func renderCard(c catalog.Card, selected bool) string {
	inner := cardWidth - 4
	var img string
	if c.HasImage() {
		img = mutedStyle.Render(ui.Truncate(imageGlyph+" "+path.Base(c.Image), inner))
	}
	notes := c.Notes
	if i := strings.IndexByte(notes, '\n'); i >= 0 {
		notes = notes[:i] + " …"
	}
	lines := []string{
		img,
		badge(c.Badge, c.BadgeClass),
		titleStyle.Render(ui.Truncate(c.Title, inner)),
		mutedStyle.Render(ui.Truncate(c.Meta, inner)),
		ui.Truncate(notes, inner),
	}
	style := cardStyle
	switch {
	case selected:
		style = cardSelectedStyle
	case !c.Interactive:
		style = cardTakenStyle
	}
	return style.Width(cardWidth - 2).Height(cardLines).Render(strings.Join(lines, "\n"))
}
