package draw

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestHex(t *testing.T) {
	if got := Hex("#FF4444"); got != (RGB{R: 255, G: 68, B: 68}) {
		t.Errorf("Hex(#FF4444) = %+v", got)
	}
	if got := Hex("not a colour"); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("invalid hex = %+v, want white", got)
	}
}

func TestShade(t *testing.T) {
	c := RGB{R: 200, G: 100, B: 50}
	if got := Shade(c, 1); got != c {
		t.Errorf("Shade(c, 1) = %+v, want unchanged", got)
	}
	if got := Shade(c, 0); got != (RGB{}) {
		t.Errorf("Shade(c, 0) = %+v, want black", got)
	}
	got := Shade(c, 0.8)
	if got.R != 160 || got.G != 80 || got.B != 40 {
		t.Errorf("Shade(c, 0.8) = %+v, want {160 80 40}", got)
	}
}

func TestFillCircleSetsCentre(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	red := Hex("#FF4444")
	c.FillCircle(5, 5, 2, red)

	if got, ok := c.At(5, 5); !ok || got != red {
		t.Errorf("centre pixel = %+v set=%v", got, ok)
	}
	if _, ok := c.At(0, 0); ok {
		t.Error("corner pixel set by small circle")
	}

	// Sub-pixel circles still mark the pixel under their centre.
	c.Clear()
	c.FillCircle(2.2, 2.2, 0.01, red)
	if _, ok := c.At(2, 2); !ok {
		t.Error("tiny circle left no pixel")
	}
}

func TestFillSectorHalfDisk(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	blue := Hex("#4444FF")
	c.FillSector(5, 5, 4, -math.Pi/2, math.Pi/2, blue)

	if _, ok := c.At(7, 5); !ok {
		t.Error("pixel right of centre not filled")
	}
	if _, ok := c.At(2, 5); ok {
		t.Error("pixel left of centre filled by right half sector")
	}
}

func TestStrokeCircleLeavesCentreEmpty(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.StrokeCircle(10, 10, 8, 1, Hex("#888888"))

	if _, ok := c.At(10, 10); ok {
		t.Error("ring filled its centre")
	}
	if _, ok := c.At(17, 10); !ok {
		t.Error("ring edge not drawn")
	}
}

func TestRenderUsesTruecolorHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillCircle(0.5, 0.5, 0.1, Hex("#FF4444"))

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	if !strings.Contains(out, "38;2;255;68;68") {
		t.Errorf("missing truecolor foreground in %q", out)
	}
	if !strings.ContainsRune(out, BlockUpperHalf) {
		t.Errorf("missing upper half block in %q", out)
	}
	if !strings.HasPrefix(out, "\033[1;1H") {
		t.Errorf("render does not start at row 1: %q", out)
	}
	if !strings.HasSuffix(out, ColorReset) {
		t.Error("render does not reset colours at the end")
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(3, 4)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[5;4H") {
		t.Errorf("offset render starts with %q", buf.String())
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(80, 24, 640, 384)
	col, row := c.LogicalToTerminal(320, 96)
	if col != 41 || row != 7 {
		t.Errorf("LogicalToTerminal = (%d,%d), want (41,7)", col, row)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if want := "\033[4;3H" + ColorReset + "hi"; out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}
