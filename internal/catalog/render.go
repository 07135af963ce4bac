package catalog

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/giveaway/internal/model"
)

const (
	UncategorizedLabel = "Uncategorized"
	ReservedLabel      = "Reserved"
	TakenLabel         = "Taken"
)

// Options tune a derivation.
type Options struct {
	Policy Policy
}

// NodeKind tells headings from cards.
type NodeKind int

const (
	NodeHeading NodeKind = iota
	NodeCard
)

// Heading introduces a category group (available section) or a whole section.
type Heading struct {
	Bucket Bucket
	Label  string
	Count  int
}

// Card is everything an adapter needs to draw one item.
type Card struct {
	Index       int // position in the Store
	Image       string
	Badge       string
	BadgeClass  string
	Title       string
	Meta        string
	Notes       string
	Interactive bool
}

func (c Card) HasImage() bool { return c.Image != "" }

// Node is one entry of the render tree. Exactly one of Heading/Card is set
// according to Kind.
type Node struct {
	Kind    NodeKind
	Heading Heading
	Card    Card
}

// Tree is the derived, surface-independent view of the catalog.
// When Empty is true Nodes is nil.
type Tree struct {
	Nodes []Node
	Empty bool
}

// Cards returns the card nodes in display order.
func (t Tree) Cards() []Card {
	var out []Card
	for _, n := range t.Nodes {
		if n.Kind == NodeCard {
			out = append(out, n.Card)
		}
	}
	return out
}

// Headings returns the heading labels in display order.
func (t Tree) Headings() []string {
	var out []string
	for _, n := range t.Nodes {
		if n.Kind == NodeHeading {
			out = append(out, n.Heading.Label)
		}
	}
	return out
}

// NewCard derives the card for the item at index i.
func NewCard(i int, it model.Item) Card {
	return Card{
		Index:       i,
		Image:       strings.TrimSpace(it.Image),
		Badge:       it.BadgeLabel(),
		BadgeClass:  it.BadgeClass(),
		Title:       it.Title,
		Meta:        it.MetaLine(),
		Notes:       strings.TrimSpace(it.Description),
		Interactive: it.Interactive(),
	}
}

type group struct {
	label string
	idx   []int
}

// Build filters, partitions, groups and orders the store into a Tree.
func Build(s *Store, v ViewState, opts Options) Tree {
	matched := Filter(s, v)
	if len(matched) == 0 {
		return Tree{Empty: true}
	}
	parts := Partition(s, matched, opts.Policy)

	var nodes []Node
	for _, g := range groupByCategory(s, parts[BucketAvailable]) {
		slices.SortStableFunc(g.idx, func(i, j int) int {
			a, b := *s.At(i), *s.At(j)
			if c := newFirst(a, b); c != 0 {
				return c
			}
			return byTitle(a, b)
		})
		nodes = appendSection(nodes, s, Heading{Bucket: BucketAvailable, Label: g.label}, g.idx)
	}
	for _, sec := range []struct {
		bucket Bucket
		label  string
	}{
		{BucketReserved, ReservedLabel},
		{BucketTaken, TakenLabel},
	} {
		idx := slices.Clone(parts[sec.bucket])
		if len(idx) == 0 {
			continue
		}
		slices.SortStableFunc(idx, func(i, j int) int { return byTitle(*s.At(i), *s.At(j)) })
		nodes = appendSection(nodes, s, Heading{Bucket: sec.bucket, Label: sec.label}, idx)
	}
	return Tree{Nodes: nodes}
}

func appendSection(nodes []Node, s *Store, h Heading, idx []int) []Node {
	h.Count = len(idx)
	nodes = append(nodes, Node{Kind: NodeHeading, Heading: h})
	for _, i := range idx {
		nodes = append(nodes, Node{Kind: NodeCard, Card: NewCard(i, *s.At(i))})
	}
	return nodes
}

func groupByCategory(s *Store, idx []int) []group {
	pos := map[string]int{}
	var groups []group
	for _, i := range idx {
		label := strings.TrimSpace(s.At(i).Category)
		if label == "" {
			label = UncategorizedLabel
		}
		key := strings.ToLower(label)
		p, ok := pos[key]
		if !ok {
			p = len(groups)
			pos[key] = p
			groups = append(groups, group{label: label})
		}
		groups[p].idx = append(groups[p].idx, i)
	}
	slices.SortStableFunc(groups, func(a, b group) int {
		if c := compareFold(a.label, b.label); c != 0 {
			return c
		}
		return strings.Compare(a.label, b.label)
	})
	return groups
}
