package sink

import (
	"encoding/json"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
}

// WithJSONStyle records the style name in the output so the document can
// be re-rendered identically later.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonDocument struct {
	Kind   layout.Kind   `json:"kind"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Style  string        `json:"style,omitempty"`
	Blocks []layout.Rect `json:"blocks"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. The
// document round-trips through [ReadLayout], so a computed layout can be
// cached or shipped to another tool and rendered again without rerunning
// the algorithm.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	doc := jsonDocument{
		Kind:   l.Kind,
		Width:  l.Width,
		Height: l.Height,
		Style:  r.style,
		Blocks: l.Rects,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ReadLayout parses a document produced by [RenderJSON] back into a
// layout, returning the recorded style name alongside it (empty when the
// document carries none).
func ReadLayout(data []byte) (layout.Layout, string, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return layout.Layout{}, "", errors.Wrap(errors.ErrCodeInvalidLayout, err, "failed to parse layout document")
	}
	if doc.Width < 0 || doc.Height < 0 {
		return layout.Layout{}, "", errors.New(errors.ErrCodeInvalidLayout, "layout document has negative dimensions")
	}

	l := layout.Layout{
		Kind:   doc.Kind,
		Width:  doc.Width,
		Height: doc.Height,
		Rects:  doc.Blocks,
	}
	return l, doc.Style, nil
}
