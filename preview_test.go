package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

func TestRenderPreviewSVG(t *testing.T) {
	frameA, frameB, minus, celsius, err := sevenseg.Encode(sevenseg.Number(-7))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	renderPreviewSVG(&buf, frameA, frameB, minus, celsius)
	out := buf.String()

	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") && !strings.Contains(out, "<svg") {
		t.Fatal("output is not an SVG document")
	}
	if !strings.Contains(out, previewLit) {
		t.Error("a -7 frame should light at least one segment")
	}
	if !strings.Contains(out, previewUnlit) {
		t.Error("a -7 frame should leave at least one segment dark")
	}
	// 7 segments per digit, plus the minus bar: 15 rects on top of
	// the panel background.
	if got := strings.Count(out, "<rect"); got != 16 {
		t.Errorf("rect count = %d, want 16", got)
	}
}

func TestRenderPreviewSVGBlank(t *testing.T) {
	var buf bytes.Buffer
	renderPreviewSVG(&buf, sevenseg.Frame{}, sevenseg.Frame{}, false, false)
	out := buf.String()

	if strings.Contains(out, previewLit) {
		t.Error("a blank frame should light no segment")
	}
}
