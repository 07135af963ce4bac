package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right      key.Binding
	Open, Close, Escape        key.Binding
	Search                     key.Binding
	NextStatus, PrevStatus     key.Binding
	Status                     key.Binding
	NextCategory, PrevCategory key.Binding
	Copy                       key.Binding
	Reload, Quit               key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:         key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Close:        key.NewBinding(key.WithKeys("x", "q", "enter"), key.WithHelp("x/enter", "close")),
		Escape:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextStatus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "status")),
		PrevStatus:   key.NewBinding(key.WithKeys("shift+tab")),
		Status:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "pill")),
		NextCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c/C", "category")),
		PrevCategory: key.NewBinding(key.WithKeys("C")),
		Copy:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Search, k.NextStatus, k.NextCategory, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Search, k.NextStatus, k.Status, k.NextCategory},
		{k.Reload, k.Quit},
	}
}

// modalHelp is shown inside the detail view.
func (k keyMap) modalHelp() []key.Binding {
	return []key.Binding{
		k.Escape,
		k.Close,
		k.Copy,
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "prev/next")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
	}
}
