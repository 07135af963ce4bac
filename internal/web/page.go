package web

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/Makepad-fr/giveaway/internal/catalog"
)

type pill struct {
	Label  string
	Count  int
	Active bool
	URL    string
}

type categoryOption struct {
	Value    string
	Label    string
	Count    int
	Selected bool
}

type cardView struct {
	catalog.Card
	URL string
}

type nodeView struct {
	Heading *catalog.Heading
	Card    *cardView
}

type detailView struct {
	catalog.Detail
	Body template.HTML
}

type pageData struct {
	State      catalog.ViewState
	Pills      []pill
	Categories []categoryOption
	Nodes      []nodeView
	Empty      bool
	Total      int
	Modal      *detailView
	CloseURL   string
}

func (s *Server) page(store *catalog.Store, v catalog.ViewState, modal *catalog.Modal) pageData {
	tree := catalog.Build(store, v, s.cfg.Catalog)
	counts := catalog.Counts(store, v)
	q := Query(v)

	data := pageData{
		State:    v,
		Empty:    tree.Empty,
		Total:    store.Len(),
		CloseURL: withQuery("/", q),
	}

	for _, f := range catalog.StatusFilters {
		pq := Query(v.WithStatus(f))
		data.Pills = append(data.Pills, pill{
			Label:  f.Label(),
			Count:  counts[f],
			Active: f == v.Status,
			URL:    withQuery("/", pq),
		})
	}

	data.Categories = append(data.Categories, categoryOption{
		Value:    catalog.All,
		Label:    "All categories",
		Count:    store.Len(),
		Selected: strings.EqualFold(v.Category, catalog.All),
	})
	for _, c := range store.Categories() {
		data.Categories = append(data.Categories, categoryOption{
			Value:    c.Label,
			Label:    c.Label,
			Count:    c.Count,
			Selected: strings.EqualFold(strings.TrimSpace(v.Category), c.Label),
		})
	}

	for _, n := range tree.Nodes {
		switch n.Kind {
		case catalog.NodeHeading:
			h := n.Heading
			data.Nodes = append(data.Nodes, nodeView{Heading: &h})
		case catalog.NodeCard:
			cv := cardView{Card: n.Card}
			if n.Card.Interactive {
				cv.URL = withQuery("/items/"+strconv.Itoa(n.Card.Index), q)
			}
			data.Nodes = append(data.Nodes, nodeView{Card: &cv})
		}
	}

	if modal != nil && modal.IsOpen() {
		d := modal.Detail()
		data.Modal = &detailView{Detail: d, Body: s.markdown(d.Description)}
	}
	return data
}
