package sink

import (
	"github.com/tokenlens/tokenlens/pkg/layout"
	"github.com/tokenlens/tokenlens/pkg/render"
)

// PDFOption configures [RenderPDF].
type PDFOption func(*pdfConfig)

type pdfConfig struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions forwards style and title options to the SVG render
// the document is produced from.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(c *pdfConfig) { c.svgOpts = opts }
}

// RenderPDF produces a vector PDF of the layout: the map is rendered to
// SVG first, then converted with rsvg-convert (librsvg must be installed).
func RenderPDF(l layout.Layout, opts ...PDFOption) ([]byte, error) {
	var c pdfConfig
	for _, opt := range opts {
		opt(&c)
	}
	return render.ToPDF(RenderSVG(l, c.svgOpts...))
}
