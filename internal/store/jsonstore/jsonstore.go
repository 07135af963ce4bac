package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Makepad-fr/giveaway/internal/debug"
	"github.com/Makepad-fr/giveaway/internal/model"
)

// Read-only JSON source. The document is a single array of item objects,
// either a local file or an http(s) URL.

const DefaultSource = "items.json"

var (
	ErrNotArray  = errors.New("payload is not a JSON array")
	ErrMalformed = errors.New("malformed JSON")
	ErrStatus    = errors.New("unexpected response status")
)

// HTTPClient is used for remote sources.
var HTTPClient = &http.Client{Timeout: 15 * time.Second}

// IsRemote reports whether src should be fetched over HTTP.
func IsRemote(src string) bool {
	s := strings.ToLower(src)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load reads and decodes the source document. A missing local file is an
// error matching os.ErrNotExist; LoadOrEmpty turns it into an empty list.
func Load(ctx context.Context, src string) ([]model.Item, error) {
	if src == "" {
		src = DefaultSource
	}
	if IsRemote(src) {
		return fetch(ctx, src)
	}
	b, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Decode(b)
}

// LoadOrEmpty never fails: any load error is logged and an empty list returned.
func LoadOrEmpty(ctx context.Context, src string) []model.Item {
	items, err := Load(ctx, src)
	if err != nil {
		debug.Log("load %s: %v", src, err)
		return []model.Item{}
	}
	debug.Log("loaded %d items from %s", len(items), src)
	return items
}

func fetch(ctx context.Context, url string) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	res, err := HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, res.Status)
	}
	return DecodeReader(res.Body)
}

// DecodeReader decodes an items document from r.
func DecodeReader(r io.Reader) ([]model.Item, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return Decode(b)
}

// Decode turns a JSON array into items. Elements that are not objects are
// skipped; non-string scalar fields are stringified; anything else is "".
func Decode(b []byte) ([]model.Item, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	arr, ok := doc.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	items := make([]model.Item, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			debug.Log("skip element %d: not an object", i)
			continue
		}
		items = append(items, model.Item{
			Title:       field(obj, "title"),
			Description: field(obj, "description"),
			Room:        field(obj, "room"),
			Category:    field(obj, "category"),
			Status:      field(obj, "status"),
			Image:       field(obj, "image"),
		})
	}
	return items, nil
}

func field(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}
