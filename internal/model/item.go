package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Status is the availability tag carried by an Item.
type Status string

const (
	StatusNew       Status = "new"
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusTaken     Status = "taken"
)

// Known reports whether s is one of the four recognised tags.
func (s Status) Known() bool {
	switch s {
	case StatusNew, StatusAvailable, StatusReserved, StatusTaken:
		return true
	}
	return false
}

// Item is one catalog entry as found in items.json.
// Every field is optional in the source document; missing ones decode to "".
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Room        string `json:"room,omitempty"`
	Category    string `json:"category,omitempty"`
	Status      string `json:"status,omitempty"`
	Image       string `json:"image,omitempty"`
}

// NormalizedStatus lowercases and trims the status tag. A missing status is taken.
func (it Item) NormalizedStatus() Status {
	s := strings.ToLower(strings.TrimSpace(it.Status))
	if s == "" {
		return StatusTaken
	}
	return Status(s)
}

// Interactive reports whether the item may be opened in the detail view.
func (it Item) Interactive() bool {
	return it.NormalizedStatus() != StatusTaken
}

// BadgeLabel is the text shown on the status badge.
func (it Item) BadgeLabel() string {
	raw := strings.TrimSpace(it.Status)
	if raw == "" {
		return "Taken"
	}
	switch Status(strings.ToLower(raw)) {
	case StatusNew:
		return "New"
	case StatusAvailable:
		return "Available"
	case StatusReserved:
		return "Reserved"
	case StatusTaken:
		return "Taken"
	}
	return capitalize(raw)
}

// BadgeClass is a stable, lowercase class name for styling the badge.
func (it Item) BadgeClass() string {
	s := it.NormalizedStatus()
	if s.Known() {
		return string(s)
	}
	return "other"
}

// MetaLine joins room and category with a middle dot, dropping empty parts.
func (it Item) MetaLine() string {
	parts := make([]string, 0, 2)
	if r := strings.TrimSpace(it.Room); r != "" {
		parts = append(parts, r)
	}
	if c := strings.TrimSpace(it.Category); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " · ")
}

// Haystack is the lowercased text searched by free-text queries.
func (it Item) Haystack() string {
	return strings.ToLower(it.Title + " " + it.Description + " " + it.Room + " " + it.Category)
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
