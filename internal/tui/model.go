package tui

import (
	"context"
	"slices"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/giveaway/internal/catalog"
	"github.com/Makepad-fr/giveaway/internal/debug"
	"github.com/Makepad-fr/giveaway/internal/model"
)

// Options configure the browser.
type Options struct {
	// Load fetches the item list; it must not fail (empty on error).
	Load        func(context.Context) []model.Item
	Catalog     catalog.Options
	Placeholder string
	// Changes, when set, triggers a reload on every receive.
	Changes <-chan struct{}
	// MarkdownStyle is a glamour standard style name.
	MarkdownStyle string
	// Copy puts text on the system clipboard; nil uses atotto/clipboard.
	Copy func(string) error
}

type itemsLoadedMsg struct{ items []model.Item }
type sourceChangedMsg struct{}

// Model is the bubbletea adapter around a catalog.Session. The session is the
// only mutable state; everything drawn is derived from its Tree.
type Model struct {
	opts Options
	sess *catalog.Session

	loading   bool
	searching bool
	flash     string // one-shot note shown in the detail view
	search    textinput.Model
	keys      keyMap
	help      help.Model
	detail    viewport.Model

	cursor int // position in sess.Tree().Cards()
	offset int // first visible content line
	width  int
	height int
}

// New builds the browser in its initial state: defaults, nothing loaded yet.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search title, notes, room, category..."
	ti.CharLimit = 120
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	return Model{
		opts:    opts,
		sess:    catalog.NewSession(nil, opts.Catalog, opts.Placeholder),
		loading: opts.Load != nil,
		search:  ti,
		keys:    defaultKeys(),
		help:    help.New(),
		detail:  viewport.New(0, 0),
		width:   80,
		height:  24,
	}
}

// Session exposes the underlying state, mostly for tests.
func (m Model) Session() *catalog.Session { return m.sess }

// Cursor is the position of the highlighted card.
func (m Model) Cursor() int { return m.cursor }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChange())
}

func (m Model) loadCmd() tea.Cmd {
	if m.opts.Load == nil {
		return nil
	}
	load := m.opts.Load
	return func() tea.Msg {
		return itemsLoadedMsg{items: load(context.Background())}
	}
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.opts.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sourceChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.syncDetail()
		m.ensureVisible()
		return m, nil

	case itemsLoadedMsg:
		m.loading = false
		m.sess.Replace(msg.items)
		m.clampCursor()
		m.syncDetail()
		debug.Log("tui: %d items, %d cards shown", m.sess.Store().Len(), len(m.sess.Tree().Cards()))
		return m, nil

	case sourceChangedMsg:
		debug.Log("tui: source changed, reloading")
		return m, tea.Batch(m.loadCmd(), m.waitForChange())

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.sess.Modal().IsOpen() {
			return m.updateModal(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	if m.search.Value() == m.sess.State().Search {
		return
	}
	m.sess.SetSearch(m.search.Value())
	m.cursor, m.offset = 0, 0
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applySearch()
		}
	case key.Matches(msg, m.keys.NextStatus):
		m.cycleStatus(1)
	case key.Matches(msg, m.keys.PrevStatus):
		m.cycleStatus(-1)
	case key.Matches(msg, m.keys.Status):
		i := int(msg.Runes[0] - '1')
		m.setStatus(catalog.StatusFilters[i])
	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Open):
		m.openCursor()
	}
	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.sess.Dismiss(catalog.Escape)
	case key.Matches(msg, m.keys.Close):
		m.sess.Dismiss(catalog.CloseButton)
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Copy):
		m.copyDetail()
	case key.Matches(msg, m.keys.Left):
		m.step(-1)
	case key.Matches(msg, m.keys.Right):
		m.step(1)
	default:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	if m.sess.Modal().IsOpen() {
		if msg.Button == tea.MouseButtonLeft && !m.insideModal(msg.X, msg.Y) {
			m.sess.Dismiss(catalog.Overlay)
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if i, ok := m.cardAt(msg.X, msg.Y); ok {
			m.cursor = i
			m.openCursor()
		}
	case tea.MouseButtonWheelUp:
		m.scroll(-3)
	case tea.MouseButtonWheelDown:
		m.scroll(3)
	}
	return m, nil
}

func (m *Model) setStatus(f catalog.StatusFilter) {
	m.sess.SetStatus(f)
	m.cursor, m.offset = 0, 0
}

func (m *Model) cycleStatus(d int) {
	i := slices.Index(catalog.StatusFilters, m.sess.State().Status)
	n := len(catalog.StatusFilters)
	m.setStatus(catalog.StatusFilters[((i+d)%n+n)%n])
}

// categoryChoices is "all" followed by the store's categories.
func (m Model) categoryChoices() []string {
	out := []string{catalog.All}
	for _, c := range m.sess.Categories() {
		out = append(out, c.Label)
	}
	return out
}

func (m *Model) cycleCategory(d int) {
	choices := m.categoryChoices()
	cur := 0
	for i, c := range choices {
		if strings.EqualFold(c, m.sess.State().Category) {
			cur = i
			break
		}
	}
	n := len(choices)
	m.sess.SetCategory(choices[((cur+d)%n+n)%n])
	m.cursor, m.offset = 0, 0
}

func (m *Model) openCursor() {
	cards := m.sess.Tree().Cards()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return
	}
	if m.sess.Select(cards[m.cursor]) {
		m.flash = ""
		m.syncDetail()
	}
}

// step moves the open modal to the previous/next interactive card without
// closing it.
func (m *Model) step(d int) {
	cards := m.sess.Tree().Cards()
	for i := m.cursor + d; i >= 0 && i < len(cards); i += d {
		if cards[i].Interactive {
			m.cursor = i
			m.sess.Select(cards[i])
			m.syncDetail()
			m.ensureVisible()
			return
		}
	}
}

// copyDetail puts "title (room · category)" on the clipboard.
func (m *Model) copyDetail() {
	d := m.sess.Modal().Detail()
	text := d.Title
	if d.Meta != "" {
		text += " (" + d.Meta + ")"
	}
	if err := m.opts.Copy(text); err != nil {
		debug.Log("tui: copy: %v", err)
		m.flash = "clipboard unavailable"
		return
	}
	m.flash = "copied"
}

func (m *Model) clampCursor() {
	n := len(m.sess.Tree().Cards())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if sel := m.sess.Modal().SelectedIndex(); sel >= 0 {
		for i, c := range m.sess.Tree().Cards() {
			if c.Index == sel {
				m.cursor = i
				break
			}
		}
	}
	m.ensureVisible()
}

// syncDetail refreshes the modal's scrollable description.
func (m *Model) syncDetail() {
	w, h := m.modalSize()
	m.detail.Width = w
	m.detail.Height = h
	if !m.sess.Modal().IsOpen() {
		m.detail.SetContent("")
		return
	}
	body := renderMarkdown(m.sess.Modal().Detail().Description, m.opts.MarkdownStyle, w)
	m.detail.Height = min(lipgloss.Height(body), h)
	m.detail.SetContent(body)
	m.detail.GotoTop()
}
