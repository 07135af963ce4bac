package ui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/giveaway/internal/catalog"
)

const (
	EmptyText  = "No items match your filters."
	titleWidth = 48
	notesWidth = 72
)

// Badge renders a coloured "[Label]" tag.
func Badge(label, class string) string {
	return C(Current().BadgeColor(class), "["+label+"]")
}

// PillsLine renders the status pills with counts; the active one is bold.
func PillsLine(active catalog.StatusFilter, counts map[catalog.StatusFilter]int) string {
	t := Current()
	parts := make([]string, 0, len(catalog.StatusFilters))
	for _, f := range catalog.StatusFilters {
		txt := fmt.Sprintf("%s %d", f.Label(), counts[f])
		if f == active {
			parts = append(parts, C(t.Accent, "‹"+txt+"›"))
		} else {
			parts = append(parts, C(t.Muted, txt))
		}
	}
	return strings.Join(parts, "  ")
}

// FilterLine describes the search and category filter, "" when both are unset.
func FilterLine(v catalog.ViewState) string {
	var parts []string
	if v.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", v.Search))
	}
	if c := strings.TrimSpace(v.Category); c != "" && !strings.EqualFold(c, catalog.All) {
		parts = append(parts, "category "+c)
	}
	if len(parts) == 0 {
		return ""
	}
	return C(Current().Muted, strings.Join(parts, "  "))
}

// TreeLines lays the render tree out as numbered lines. Numbers count cards
// in display order, starting at 1, and are what `show` accepts.
func TreeLines(tree catalog.Tree) []string {
	t := Current()
	if tree.Empty {
		return []string{C(t.Muted, EmptyText)}
	}
	var lines []string
	n := 0
	for _, node := range tree.Nodes {
		if node.Kind == catalog.NodeHeading {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, C(t.Heading, node.Heading.Label)+" "+C(t.Muted, fmt.Sprintf("(%d)", node.Heading.Count)))
			continue
		}
		n++
		lines = append(lines, cardLines(n, node.Card)...)
	}
	return lines
}

func cardLines(n int, c catalog.Card) []string {
	t := Current()
	title := Truncate(c.Title, titleWidth)
	if !c.Interactive {
		title = C(t.Muted, title)
	}
	out := []string{fmt.Sprintf("%s %s %s", C(dim, fmt.Sprintf("%2d.", n)), title, Badge(c.Badge, c.BadgeClass))}
	if c.Meta != "" {
		out = append(out, "    "+C(t.Muted, c.Meta))
	}
	if c.Notes != "" {
		out = append(out, "    "+Truncate(firstLine(c.Notes), notesWidth))
	}
	if c.HasImage() {
		out = append(out, "    "+C(t.Muted, "▣ "+c.Image))
	}
	return out
}

// DetailLines renders the open modal's content for plain output.
func DetailLines(d catalog.Detail) []string {
	t := Current()
	lines := []string{C(t.Title, d.Title) + " " + Badge(d.Badge, d.BadgeClass)}
	if d.Meta != "" {
		lines = append(lines, C(t.Muted, d.Meta))
	}
	img := d.Image
	if d.Placeholder {
		img += " (placeholder)"
	}
	lines = append(lines, C(t.Muted, "▣ "+img))
	if strings.TrimSpace(d.Description) != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimSpace(d.Description), "\n")...)
	}
	return lines
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
