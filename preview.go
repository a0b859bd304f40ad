package main

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

// Preview colors, loosely matching a red LED display behind dark
// acrylic.
const (
	previewLit    = "fill:#ff3b2e"
	previewUnlit  = "fill:#2b1412"
	previewPanel  = "fill:#140a0a"
	previewWidth  = 270
	previewHeight = 150
)

// segmentRect is the preview geometry of one segment within a 60x100
// digit cell.
type segmentRect struct {
	x, y, w, h int
}

var segmentGeometry = map[byte]segmentRect{
	'a': {10, 0, 40, 10},
	'b': {50, 10, 10, 35},
	'c': {50, 55, 10, 35},
	'd': {10, 90, 40, 10},
	'e': {0, 55, 10, 35},
	'f': {0, 10, 10, 35},
	'g': {10, 45, 40, 10},
}

// renderPreviewSVG draws the two digit positions, the minus indicator
// and the celsius mark exactly as the shift register last latched
// them.
func renderPreviewSVG(w io.Writer, frameA, frameB sevenseg.Frame, minus, celsius bool) {
	canvas := svg.New(w)
	canvas.Start(previewWidth, previewHeight)
	canvas.Rect(0, 0, previewWidth, previewHeight, previewPanel)

	// Minus indicator.
	canvas.Rect(12, 68, 28, 10, segStyle(minus))

	drawDigit(canvas, 60, 22, frameA, sevenseg.Layout1)
	drawDigit(canvas, 140, 22, frameB, sevenseg.Layout2)

	// Celsius unit: degree ring plus a "C".
	canvas.Circle(224, 34, 7, ringStyle(celsius))
	canvas.Text(244, 52, "C", "font-family:sans-serif;font-size:30px;font-weight:bold;"+fillOf(celsius))

	canvas.End()
}

func drawDigit(canvas *svg.SVG, x, y int, f sevenseg.Frame, layout sevenseg.SegmentLayout) {
	lit := map[byte]bool{}
	for _, seg := range layout.Lit(f) {
		lit[seg] = true
	}
	for seg, r := range segmentGeometry {
		canvas.Rect(x+r.x, y+r.y, r.w, r.h, segStyle(lit[seg]))
	}
}

func segStyle(on bool) string {
	if on {
		return previewLit
	}
	return previewUnlit
}

func ringStyle(on bool) string {
	if on {
		return "fill:none;stroke-width:4;stroke:#ff3b2e"
	}
	return "fill:none;stroke-width:4;stroke:#2b1412"
}

func fillOf(on bool) string {
	if on {
		return "fill:#ff3b2e"
	}
	return "fill:#2b1412"
}
