package sink

import (
	"github.com/tokenlens/tokenlens/pkg/layout"
	"github.com/tokenlens/tokenlens/pkg/render"
)

// PNGOption configures [RenderPNG].
type PNGOption func(*pngConfig)

type pngConfig struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions forwards style, title, and scale options to the SVG
// render the raster is produced from.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(c *pngConfig) { c.svgOpts = opts }
}

// WithScale sets the raster resolution multiplier. Unset or non-positive
// values fall back to [render.DefaultPNGScale].
func WithScale(s float64) PNGOption {
	return func(c *pngConfig) { c.scale = s }
}

// RenderPNG rasterizes the layout: the map is rendered to SVG first,
// then converted with rsvg-convert (librsvg must be installed).
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	c := pngConfig{scale: render.DefaultPNGScale}
	for _, opt := range opts {
		opt(&c)
	}
	return render.ToPNG(RenderSVG(l, c.svgOpts...), c.scale)
}
