package catalog

import (
	"strings"

	"github.com/Makepad-fr/giveaway/internal/model"
)

const DefaultPlaceholderImage = "images/placeholder.png"

// ModalState is Closed or Open.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

func (s ModalState) String() string {
	if s == ModalOpen {
		return "open"
	}
	return "closed"
}

// DismissReason records how an open modal was closed.
type DismissReason int

const (
	CloseButton DismissReason = iota
	Overlay
	Escape
)

func (r DismissReason) String() string {
	switch r {
	case Overlay:
		return "overlay"
	case Escape:
		return "escape"
	}
	return "close"
}

// Detail is the populated content of the open modal.
type Detail struct {
	Image       string
	Placeholder bool // Image is the placeholder, the item has none
	Title       string
	Meta        string
	Description string
	Badge       string
	BadgeClass  string
}

// Modal is the detail view controller. The zero value is closed and uses
// DefaultPlaceholderImage.
type Modal struct {
	Placeholder string

	state  ModalState
	index  int
	item   *model.Item
	detail Detail
}

// State reports whether the modal is open or closed.
func (m *Modal) State() ModalState { return m.state }

// IsOpen is State() == ModalOpen.
func (m *Modal) IsOpen() bool { return m.state == ModalOpen }

// Selected is the item being shown, nil when closed.
func (m *Modal) Selected() *model.Item { return m.item }

// SelectedIndex is the store index of the selected item, -1 when closed.
func (m *Modal) SelectedIndex() int {
	if m.state != ModalOpen {
		return -1
	}
	return m.index
}

// Detail is the current detail content; zero when closed.
func (m *Modal) Detail() Detail { return m.detail }

// Open shows the card's item. Non-interactive cards are ignored and false is
// returned. Opening while already open replaces the payload.
func (m *Modal) Open(s *Store, c Card) bool {
	if !c.Interactive {
		return false
	}
	it := s.At(c.Index)
	if it == nil || !it.Interactive() {
		return false
	}
	placeholder := m.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}
	d := Detail{
		Image:       strings.TrimSpace(it.Image),
		Title:       it.Title,
		Meta:        it.MetaLine(),
		Description: it.Description,
		Badge:       it.BadgeLabel(),
		BadgeClass:  it.BadgeClass(),
	}
	if d.Image == "" {
		d.Image = placeholder
		d.Placeholder = true
	}
	m.state = ModalOpen
	m.index = c.Index
	m.item = it
	m.detail = d
	return true
}

// Close dismisses the modal and drops the image reference. It reports
// whether a transition happened.
func (m *Modal) Close(DismissReason) bool {
	if m.state != ModalOpen {
		return false
	}
	m.state = ModalClosed
	m.index = 0
	m.item = nil
	m.detail = Detail{}
	return true
}
