package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Makepad-fr/giveaway/internal/model"
)

// Bucket is a display section; lower buckets are shown first.
type Bucket int

const (
	BucketAvailable Bucket = iota // new and available
	BucketReserved
	BucketTaken
)

func (b Bucket) String() string {
	switch b {
	case BucketAvailable:
		return "available"
	case BucketReserved:
		return "reserved"
	case BucketTaken:
		return "taken"
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// Policy decides where items with an unrecognised status tag are shown.
// A missing tag is always taken.
type Policy int

const (
	UnknownAsTaken Policy = iota
	UnknownAsAvailable
)

// ParsePolicy maps the config value ("taken" or "available") to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "taken":
		return UnknownAsTaken, nil
	case "available":
		return UnknownAsAvailable, nil
	}
	return UnknownAsTaken, fmt.Errorf("unknown_status must be taken or available, got %q", s)
}

// BucketOf places an item in its display section.
func BucketOf(it model.Item, p Policy) Bucket {
	switch it.NormalizedStatus() {
	case model.StatusNew, model.StatusAvailable:
		return BucketAvailable
	case model.StatusReserved:
		return BucketReserved
	case model.StatusTaken:
		return BucketTaken
	}
	if p == UnknownAsAvailable {
		return BucketAvailable
	}
	return BucketTaken
}

// Rank is the numeric sort key of BucketOf.
func Rank(it model.Item, p Policy) int { return int(BucketOf(it, p)) }

func newFirst(a, b model.Item) int {
	an := a.NormalizedStatus() == model.StatusNew
	bn := b.NormalizedStatus() == model.StatusNew
	switch {
	case an && !bn:
		return -1
	case bn && !an:
		return 1
	}
	return 0
}

func byTitle(a, b model.Item) int {
	return compareFold(a.Title, b.Title)
}

// Compare orders by bucket, then new before available, then title.
func Compare(a, b model.Item, p Policy) int {
	if c := cmp.Compare(BucketOf(a, p), BucketOf(b, p)); c != 0 {
		return c
	}
	if c := newFirst(a, b); c != 0 {
		return c
	}
	return byTitle(a, b)
}

// Order sorts the given store indices for display. Ties keep input order.
func Order(s *Store, idx []int, p Policy) []int {
	out := slices.Clone(idx)
	slices.SortStableFunc(out, func(i, j int) int {
		return Compare(*s.At(i), *s.At(j), p)
	})
	return out
}

// Partition splits indices into the three buckets, preserving order.
func Partition(s *Store, idx []int, p Policy) [3][]int {
	var out [3][]int
	for _, i := range idx {
		b := BucketOf(*s.At(i), p)
		out[b] = append(out[b], i)
	}
	return out
}
