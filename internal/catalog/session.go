package catalog

import (
	"github.com/Makepad-fr/giveaway/internal/debug"
	"github.com/Makepad-fr/giveaway/internal/model"
)

// Session is the single mutable cell owned by an interactive adapter.
// Each setter re-derives the whole Tree; nothing is patched incrementally.
type Session struct {
	store *Store
	opts  Options
	state ViewState
	modal Modal
	tree  Tree
}

// NewSession starts with DefaultViewState and a closed modal.
func NewSession(items []model.Item, opts Options, placeholder string) *Session {
	s := &Session{
		store: NewStore(items),
		opts:  opts,
		state: DefaultViewState(),
		modal: Modal{Placeholder: placeholder},
	}
	s.derive()
	return s
}

// Store is the loaded item list.
func (s *Session) Store() *Store { return s.store }

// State is the current filter, search and category.
func (s *Session) State() ViewState { return s.state }

// Tree is the render tree derived from Store and State.
func (s *Session) Tree() Tree { return s.tree }

// Modal is the session's detail modal. Callers may read it; use Select and
// Dismiss to change it.
func (s *Session) Modal() *Modal { return &s.modal }

// Options returns the options the session was created with.
func (s *Session) Options() Options { return s.opts }

// Categories lists the distinct categories of the whole store.
func (s *Session) Categories() []Category { return s.store.Categories() }

// Counts is the per-pill count under the current search and category.
func (s *Session) Counts() map[StatusFilter]int { return Counts(s.store, s.state) }

// SetStatus selects a status pill and re-derives.
func (s *Session) SetStatus(f StatusFilter) { s.SetState(s.state.WithStatus(f)) }

// SetSearch replaces the search query and re-derives.
func (s *Session) SetSearch(q string) { s.SetState(s.state.WithSearch(q)) }

// SetCategory selects a category, or All, and re-derives.
func (s *Session) SetCategory(c string) { s.SetState(s.state.WithCategory(c)) }

// SetState replaces the view state and re-derives.
func (s *Session) SetState(v ViewState) {
	s.state = v
	s.derive()
}

// Select opens the modal on c. Taken cards do nothing.
func (s *Session) Select(c Card) bool {
	return s.modal.Open(s.store, c)
}

// Dismiss closes the modal.
func (s *Session) Dismiss(r DismissReason) bool {
	return s.modal.Close(r)
}

// Replace swaps in a freshly loaded item list. An open modal follows its item
// if an equal one still exists and is closed otherwise.
func (s *Session) Replace(items []model.Item) {
	var selected *model.Item
	if it := s.modal.Selected(); it != nil {
		cp := *it
		selected = &cp
	}
	s.store = NewStore(items)
	s.derive()
	if selected == nil {
		return
	}
	i := s.store.Index(*selected)
	if i < 0 || !s.modal.Open(s.store, NewCard(i, *s.store.At(i))) {
		s.modal.Close(CloseButton)
		debug.Log("selected item %q gone after reload; modal closed", selected.Title)
	}
}

func (s *Session) derive() {
	s.tree = Build(s.store, s.state, s.opts)
}
