package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/giveaway/internal/model"
)

func titles(s *Store, cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, s.At(c.Index).Title)
	}
	return out
}

func TestMatches(t *testing.T) {
	chair := model.Item{Title: "Oak Chair", Room: "Kitchen", Category: "Seating", Status: "available"}

	cases := []struct {
		name string
		v    ViewState
		want bool
	}{
		{"defaults", DefaultViewState(), true},
		{"search room substring", DefaultViewState().WithSearch("kit"), true},
		{"search is case-insensitive", DefaultViewState().WithSearch("OAK ch"), true},
		{"search misses", DefaultViewState().WithSearch("sofa"), false},
		{"status match", DefaultViewState().WithStatus(FilterAvailable), true},
		{"status mismatch", DefaultViewState().WithStatus(FilterNew), false},
		{"category any case", DefaultViewState().WithCategory("seating"), true},
		{"category mismatch", DefaultViewState().WithCategory("Tables"), false},
		{"empty category means all", DefaultViewState().WithCategory(""), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Matches(chair, tc.v))
		})
	}
}

func TestMatchesIsTotal(t *testing.T) {
	assert.True(t, Matches(model.Item{}, DefaultViewState()))
	assert.True(t, Matches(model.Item{}, DefaultViewState().WithStatus(FilterTaken)))
	assert.False(t, Matches(model.Item{}, DefaultViewState().WithSearch("x")))
	assert.True(t, Matches(model.Item{Status: "RESERVED"}, DefaultViewState().WithStatus(FilterReserved)))
}

func TestParseStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("Reserved")
	require.NoError(t, err)
	assert.Equal(t, FilterReserved, f)

	f, err = ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseStatusFilter("sold")
	assert.Error(t, err)
}

func TestBuildPartitionOrder(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "D", Status: "taken"},
		{Title: "C", Status: "available"},
		{Title: "B", Status: "reserved"},
		{Title: "A2", Status: "new"},
	})
	tree := Build(s, DefaultViewState(), Options{})
	require.False(t, tree.Empty)
	assert.Equal(t, []string{"A2", "C", "B", "D"}, titles(s, tree.Cards()))
	assert.Equal(t, []string{UncategorizedLabel, ReservedLabel, TakenLabel}, tree.Headings())
}

func TestNewSortsBeforeAvailableRegardlessOfTitle(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "Armchair", Status: "available", Category: "Seating"},
		{Title: "Zebra stool", Status: "new", Category: "Seating"},
	})
	tree := Build(s, DefaultViewState(), Options{})
	assert.Equal(t, []string{"Zebra stool", "Armchair"}, titles(s, tree.Cards()))
}

func TestReservedAndTakenSortByTitleOnly(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "lamp", Status: "reserved", Category: "Lighting"},
		{Title: "Bed", Status: "reserved", Category: "Bedroom"},
		{Title: "table", Status: "taken"},
		{Title: "Couch", Status: "taken", Category: "Seating"},
	})
	tree := Build(s, DefaultViewState(), Options{})
	assert.Equal(t, []string{"Bed", "lamp", "Couch", "table"}, titles(s, tree.Cards()))
	assert.Equal(t, []string{ReservedLabel, TakenLabel}, tree.Headings())
}

func TestOrderIsStable(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "Chair", Status: "available", Description: "first"},
		{Title: "chair", Status: "available", Description: "second"},
		{Title: "Chair", Status: "available", Description: "third"},
	})
	got := Order(s, []int{0, 1, 2}, UnknownAsTaken)
	assert.Equal(t, []int{0, 1, 2}, got)

	tree := Build(s, DefaultViewState(), Options{})
	var notes []string
	for _, c := range tree.Cards() {
		notes = append(notes, c.Notes)
	}
	assert.Equal(t, []string{"first", "second", "third"}, notes)
}

func TestGroupingByCategory(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "Chair", Category: "Seating", Status: "available"},
		{Title: "Stool", Category: "Seating", Status: "available"},
		{Title: "Box", Status: "available"},
	})
	tree := Build(s, DefaultViewState(), Options{})
	require.Len(t, tree.Nodes, 5)
	assert.Equal(t, Heading{Bucket: BucketAvailable, Label: "Seating", Count: 2}, tree.Nodes[0].Heading)
	assert.Equal(t, Heading{Bucket: BucketAvailable, Label: UncategorizedLabel, Count: 1}, tree.Nodes[3].Heading)
	assert.Equal(t, []string{"Chair", "Stool", "Box"}, titles(s, tree.Cards()))
}

func TestGroupLabelsCaseInsensitive(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "a", Category: "tables", Status: "available"},
		{Title: "b", Category: "Seating", Status: "available"},
		{Title: "c", Category: "Tables", Status: "available"},
	})
	tree := Build(s, DefaultViewState(), Options{})
	assert.Equal(t, []string{"Seating", "tables"}, tree.Headings())
	assert.Equal(t, []string{"b", "a", "c"}, titles(s, tree.Cards()))
}

func TestEmptyState(t *testing.T) {
	s := NewStore([]model.Item{{Title: "Chair", Status: "available", Category: "Seating"}})
	for _, v := range []ViewState{
		DefaultViewState().WithStatus(FilterReserved),
		DefaultViewState().WithCategory("Lighting"),
		DefaultViewState().WithSearch("zzz"),
	} {
		tree := Build(s, v, Options{})
		assert.True(t, tree.Empty)
		assert.Empty(t, tree.Nodes)
		assert.Empty(t, tree.Cards())
	}
	assert.True(t, Build(NewStore(nil), DefaultViewState(), Options{}).Empty)
}

func TestCardFields(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "Chair", Room: "Kitchen", Category: "Seating", Status: "new", Image: "images/chair.jpg", Description: "Sturdy"},
		{Title: "Box", Status: "sold"},
		{Title: "Lamp"},
	})
	tree := Build(s, DefaultViewState(), Options{})
	cards := tree.Cards()
	require.Len(t, cards, 3)

	assert.Equal(t, Card{
		Index: 0, Image: "images/chair.jpg", Badge: "New", BadgeClass: "new",
		Title: "Chair", Meta: "Kitchen · Seating", Notes: "Sturdy", Interactive: true,
	}, cards[0])

	// Unknown status lands in Taken but keeps its own label and stays clickable.
	assert.Equal(t, "Box", cards[1].Title)
	assert.Equal(t, "Sold", cards[1].Badge)
	assert.True(t, cards[1].Interactive)
	assert.False(t, cards[1].HasImage())
	assert.Empty(t, cards[1].Meta)

	assert.Equal(t, "Taken", cards[2].Badge)
	assert.False(t, cards[2].Interactive)
}

func TestUnknownStatusPolicies(t *testing.T) {
	items := []model.Item{
		{Title: "Taken thing", Status: "taken"},
		{Title: "Mystery", Status: "donated"},
		{Title: "Reserved thing", Status: "reserved"},
		{Title: "Chair", Status: "available"},
		{Title: "No status"},
	}
	s := NewStore(items)

	asTaken := Build(s, DefaultViewState(), Options{Policy: UnknownAsTaken})
	assert.Equal(t, []string{"Chair", "Reserved thing", "Mystery", "No status", "Taken thing"}, titles(s, asTaken.Cards()))

	asAvailable := Build(s, DefaultViewState(), Options{Policy: UnknownAsAvailable})
	assert.Equal(t, []string{"Chair", "Mystery", "Reserved thing", "No status", "Taken thing"}, titles(s, asAvailable.Cards()))

	// A missing status is taken under either policy.
	assert.Equal(t, BucketTaken, BucketOf(model.Item{}, UnknownAsAvailable))

	p, err := ParsePolicy("Available")
	require.NoError(t, err)
	assert.Equal(t, UnknownAsAvailable, p)
	_, err = ParsePolicy("maybe")
	assert.Error(t, err)
}

func TestBuildIsIdempotent(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "Chair", Category: "Seating", Status: "available"},
		{Title: "Bed", Status: "reserved"},
		{Title: "Lamp", Status: "taken"},
	})
	v := DefaultViewState().WithSearch("a")
	assert.Equal(t, Build(s, v, Options{}), Build(s, v, Options{}))
}

func TestStoreDoesNotAliasInput(t *testing.T) {
	items := []model.Item{{Title: "Chair"}}
	s := NewStore(items)
	items[0].Title = "changed"
	assert.Equal(t, "Chair", s.At(0).Title)
	assert.Nil(t, s.At(1))
	assert.Nil(t, s.At(-1))
}

func TestCategoriesAndCounts(t *testing.T) {
	s := NewStore([]model.Item{
		{Title: "a", Category: "seating", Status: "new"},
		{Title: "b", Category: "Seating", Status: "available"},
		{Title: "c", Category: "Beds", Status: "reserved"},
		{Title: "d", Status: "taken"},
		{Title: "e", Status: "sold"},
	})
	assert.Equal(t, []Category{{Label: "Beds", Count: 1}, {Label: "seating", Count: 2}}, s.Categories())

	counts := Counts(s, DefaultViewState().WithStatus(FilterReserved))
	assert.Equal(t, map[StatusFilter]int{
		FilterAll: 5, FilterNew: 1, FilterAvailable: 1, FilterReserved: 1, FilterTaken: 1,
	}, counts)

	counts = Counts(s, DefaultViewState().WithCategory("SEATING"))
	assert.Equal(t, 2, counts[FilterAll])
	assert.Equal(t, 0, counts[FilterTaken])
}
