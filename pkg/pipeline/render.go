package pipeline

import (
	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/layout"
	"github.com/tokenlens/tokenlens/pkg/render/sink"
	"github.com/tokenlens/tokenlens/pkg/render/styles"
)

// RenderFromLayout renders the layout into every requested format,
// returning the artifacts keyed by format name.
func RenderFromLayout(l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	style, err := styles.New(opts.Style)
	if err != nil {
		return nil, err
	}

	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(l, format, opts, style, svgOpts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(l layout.Layout, format string, opts Options, style styles.Style, svgOpts []sink.SVGOption) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONStyle(style.Name()))
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithPNGSVGOptions(svgOpts...)}
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
		}
		return sink.RenderPNG(l, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
	default:
		return nil, errors.ValidateFormat(format)
	}
}
