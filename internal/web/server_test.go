package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/giveaway/internal/catalog"
	"github.com/Makepad-fr/giveaway/internal/model"
)

var fixture = []model.Item{
	{Title: "Oak Chair", Room: "Kitchen", Category: "Seating", Status: "available", Image: "images/chair.jpg", Description: "Solid **oak**.<script>alert(1)</script>"},
	{Title: "Stool", Category: "seating", Status: "new"},
	{Title: "Bed", Category: "Bedroom", Status: "reserved"},
	{Title: "Lamp", Status: "taken"},
}

func newServer(t *testing.T, mediaDir string) http.Handler {
	t.Helper()
	s, err := NewServer(Config{Quiet: true, MediaDir: mediaDir}, fixture)
	require.NoError(t, err)
	return s.Router()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func doc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	d, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return d
}

func titles(d *goquery.Document) []string {
	var out []string
	d.Find("#items .card .title").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestIndexGroupsAndOrders(t *testing.T) {
	t.Parallel()
	d := doc(t, get(t, newServer(t, ""), "/"))

	assert.Equal(t, []string{"Stool", "Oak Chair", "Bed", "Lamp"}, titles(d))

	var headings []string
	d.Find(".group-title").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, strings.Join(strings.Fields(s.Text()), " "))
	})
	assert.Equal(t, []string{"Seating (2)", "Reserved (1)", "Taken (1)"}, headings)

	taken := d.Find(".card.taken")
	require.Equal(t, 1, taken.Length())
	assert.Equal(t, "div", goquery.NodeName(taken))
	assert.Equal(t, 0, d.Find(".modal").Length())
}

func TestIndexPillsCarryCounts(t *testing.T) {
	t.Parallel()
	d := doc(t, get(t, newServer(t, ""), "/?q=oak"))

	counts := map[string]string{}
	d.Find(".pills a").Each(func(_ int, s *goquery.Selection) {
		c, _ := s.Attr("data-count")
		counts[strings.Fields(s.Text())[0]] = c
	})
	assert.Equal(t, map[string]string{"All": "1", "New": "0", "Available": "1", "Reserved": "0", "Taken": "0"}, counts)
	assert.Equal(t, []string{"Oak Chair"}, titles(d))
	active := d.Find(".pills a.active")
	assert.Equal(t, "All", strings.Fields(active.Text())[0])
}

func TestIndexStatusAndCategoryQuery(t *testing.T) {
	t.Parallel()
	h := newServer(t, "")

	d := doc(t, get(t, h, "/?status=new"))
	assert.Equal(t, []string{"Stool"}, titles(d))

	d = doc(t, get(t, h, "/?category=SEATING"))
	assert.Equal(t, []string{"Stool", "Oak Chair"}, titles(d))
	sel := d.Find("select[name=category] option[selected]")
	assert.Equal(t, "Seating", sel.AttrOr("value", ""))

	d = doc(t, get(t, h, "/?status=bogus"))
	assert.Len(t, titles(d), 4)
}

func TestIndexEmptyState(t *testing.T) {
	t.Parallel()
	d := doc(t, get(t, newServer(t, ""), "/?q=zzz"))
	assert.Equal(t, "No items match your filters.", strings.TrimSpace(d.Find(".empty").Text()))
	assert.Equal(t, 0, d.Find(".card").Length())
	assert.Equal(t, 0, d.Find(".group-title").Length())
}

func TestDetailRendersModal(t *testing.T) {
	t.Parallel()
	d := doc(t, get(t, newServer(t, ""), "/items/0?q=oak"))

	modal := d.Find(".modal")
	require.Equal(t, 1, modal.Length())
	assert.Equal(t, "Oak Chair", modal.Find(".title").Text())
	assert.Equal(t, "Kitchen · Seating", modal.Find(".meta").Text())
	assert.Equal(t, "/media/images/chair.jpg", modal.Find("img").AttrOr("src", ""))
	assert.Equal(t, "oak", modal.Find(".description strong").Text())
	assert.Equal(t, 0, modal.Find(".description script").Length())
	assert.Equal(t, "/?q=oak", modal.Find("a.close").AttrOr("href", ""))
	assert.Equal(t, "/?q=oak", d.Find("a.overlay").AttrOr("href", ""))
}

func TestDetailPlaceholderImage(t *testing.T) {
	t.Parallel()
	d := doc(t, get(t, newServer(t, ""), "/items/1"))
	img := d.Find(".modal img")
	assert.Equal(t, "/media/"+catalog.DefaultPlaceholderImage, img.AttrOr("src", ""))
	assert.True(t, img.HasClass("placeholder"))
}

func TestDetailTakenRedirects(t *testing.T) {
	t.Parallel()
	rec := get(t, newServer(t, ""), "/items/3?status=taken")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?status=taken", rec.Header().Get("Location"))
}

func TestDetailUnknownIndex(t *testing.T) {
	t.Parallel()
	h := newServer(t, "")
	assert.Equal(t, http.StatusNotFound, get(t, h, "/items/42").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/items/x").Code)
}

func TestItemsJSONAndHealth(t *testing.T) {
	t.Parallel()
	h := newServer(t, "")

	rec := get(t, h, "/items.json")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Equal(t, fixture, items)

	rec = get(t, h, "/healthz")
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMediaServesFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "chair.jpg"), []byte("jpeg"), 0o644))

	rec := get(t, newServer(t, dir), "/media/images/chair.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())
}

func TestReplaceSwapsStore(t *testing.T) {
	t.Parallel()
	s, err := NewServer(Config{Quiet: true}, fixture)
	require.NoError(t, err)
	s.Replace(fixture[:1])
	d := doc(t, get(t, s.Router(), "/"))
	assert.Equal(t, []string{"Oak Chair"}, titles(d))
}

func TestQueryRoundTrip(t *testing.T) {
	t.Parallel()
	v := catalog.DefaultViewState().WithStatus(catalog.FilterReserved).WithSearch("oak").WithCategory("Seating")
	assert.Equal(t, v, ViewStateFromQuery(Query(v)))
	assert.Empty(t, Query(catalog.DefaultViewState()))
}

func TestMediaURL(t *testing.T) {
	t.Parallel()
	s := &Server{}
	assert.Equal(t, "https://x.test/a.jpg", s.mediaURL("https://x.test/a.jpg"))
	assert.Equal(t, "/abs.jpg", s.mediaURL("/abs.jpg"))
	assert.Equal(t, "/media/images/a.jpg", s.mediaURL("./images/a.jpg"))
}
