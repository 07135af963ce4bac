package ui

import "strings"

// Theme bundles palette, badge colours and box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Heading, Error   string
	New, Available, Reserved, Taken        string
	Other                                  string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	Bullet, Sep                            string
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		disableColor = false
		current = Theme{
			Title: "\033[95m", Muted: fgGray, Accent: "\033[96m", Heading: "\033[1;96m", Error: fgRed,
			New: "\033[92m", Available: fgGreen, Reserved: "\033[93m", Taken: fgGray, Other: fgMagenta,
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			Bullet: "◆", Sep: "·",
		}
	case "mono":
		disableColor = true
		current = Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			Bullet: "*", Sep: "-",
		}
	default: // classic
		disableColor = false
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue, Heading: "\033[1;34m", Error: fgRed,
			New: fgGreen, Available: fgGreen, Reserved: fgYellow, Taken: dim, Other: fgMagenta,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			Bullet: "•", Sep: "·",
		}
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// BadgeColor picks the palette entry for a badge class.
func (t Theme) BadgeColor(class string) string {
	switch class {
	case "new":
		return t.New
	case "available":
		return t.Available
	case "reserved":
		return t.Reserved
	case "taken":
		return t.Taken
	}
	return t.Other
}
