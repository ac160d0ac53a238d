package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/davrk/errblast/internal/draw"
)

func TestRenderFallbackHullVisible(t *testing.T) {
	s := newTestSession()
	c := draw.NewCanvas(200, 60)

	s.Render(c, nil)

	var sb strings.Builder
	c.Render(&sb)
	out := sb.String()

	hull := draw.ToRGB(s.Theme.Accent.BlendRgb(s.Theme.BgOuter, 0.45))
	if !strings.Contains(out, fmt.Sprintf(";%d;%d;%dm", hull.R, hull.G, hull.B)) {
		t.Error("hull color missing from the rendered frame")
	}
}

func TestRenderWithSprite(t *testing.T) {
	s := newTestSession()
	c := draw.NewCanvas(200, 60)

	sp, err := LoadSprite(writeTestPNG(t))
	if err != nil {
		t.Fatal(err)
	}
	s.Render(c, sp)

	var sb strings.Builder
	c.Render(&sb)
	if !strings.Contains(sb.String(), "\033[38;2;") {
		t.Error("no colored output")
	}
}

func TestRenderHUDWatermark(t *testing.T) {
	s := newTestSession()
	var sb strings.Builder
	cw := draw.NewChunkWriter(&sb)

	s.RenderHUD(cw, 80)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), s.Theme.Code) {
		t.Error("watermark missing the error code")
	}
}

func TestRenderHUDSkipsNarrowTerminal(t *testing.T) {
	s := newTestSession()
	var sb strings.Builder
	cw := draw.NewChunkWriter(&sb)

	s.RenderHUD(cw, 4)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if sb.Len() != 0 {
		t.Errorf("expected no output for a too-narrow terminal, got %q", sb.String())
	}
}
