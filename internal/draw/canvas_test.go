package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestCanvasScaling(t *testing.T) {
	// 110 columns x 65 rows -> 110 x 130 sub-pixels for a 1100 x 650 field
	c := NewScaledCanvas(110, 65, 1100, 650)
	c.SetColor(ColorRed)
	c.SetFloat(550, 325)

	if got := c.At(550, 325); got != ColorRed {
		t.Errorf("At(550,325) = %v, want ColorRed", got)
	}
	if got := c.At(100, 100); got != ColorNone {
		t.Errorf("At(100,100) = %v, want ColorNone", got)
	}

	col, row := c.LogicalToTerminal(550, 325)
	if col != 56 || row != 33 {
		t.Errorf("LogicalToTerminal = (%d, %d), want (56, 33)", col, row)
	}
}

func TestCanvasOutOfRangeIgnored(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetFloat(-50, -50)
	c.SetFloat(500, 500)
	c.DrawLine(Point{X: -100, Y: 50}, Point{X: 300, Y: 50})

	if c.At(50, 50) == ColorNone {
		t.Error("line crossing the canvas should set interior pixels")
	}
}

func TestCanvasRenderDiff(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.SetColor(ColorGreen)
	c.DrawRect(2, 2, 4, 4, true)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.ContainsRune(first.String(), BlockFull) {
		t.Error("first render should contain full blocks")
	}

	// Unchanged frame emits nothing
	c.Clear()
	c.DrawRect(2, 2, 4, 4, true)
	var second bytes.Buffer
	if err := c.Render(&second); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if second.Len() != 0 {
		t.Errorf("unchanged frame wrote %d bytes", second.Len())
	}

	// Dirty text cells are repainted even when unchanged
	c.MarkTextDirty(1, 1, 3)
	var third bytes.Buffer
	if err := c.Render(&third); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Count(third.String(), " ") != 3 {
		t.Errorf("expected 3 repainted blank cells, got output %q", third.String())
	}

	// ForceRedraw repaints every cell
	c.ForceRedraw()
	var fourth bytes.Buffer
	if err := c.Render(&fourth); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if fourth.String() != first.String() {
		t.Error("forced redraw should repeat the full initial render")
	}
}

func TestCellGlyph(t *testing.T) {
	cases := []struct {
		cell cell
		ch   rune
		fg   Color
		bg   Color
	}{
		{cell{}, BlockEmpty, ColorNone, ColorNone},
		{cell{ColorRed, ColorRed}, BlockFull, ColorRed, ColorNone},
		{cell{ColorRed, ColorNone}, BlockUpperHalf, ColorRed, ColorNone},
		{cell{ColorNone, ColorBlue}, BlockLowerHalf, ColorBlue, ColorNone},
		{cell{ColorRed, ColorBlue}, BlockUpperHalf, ColorRed, ColorBlue},
	}
	for _, tc := range cases {
		ch, fg, bg := tc.cell.glyph()
		if ch != tc.ch || fg != tc.fg || bg != tc.bg {
			t.Errorf("glyph(%+v) = (%q, %v, %v), want (%q, %v, %v)", tc.cell, ch, fg, bg, tc.ch, tc.fg, tc.bg)
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)

	cw.WriteAt(1, 1, "Score: 10")
	if out.Len() != 0 {
		t.Fatal("ChunkWriter wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got, want := out.String(), "\033[4;3HScore: 10"; got != want {
		t.Errorf("flushed %q, want %q", got, want)
	}
}

func TestChunkWriterStyledAndClear(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	cw.Clear()
	cw.WriteStyledAt(5, 2, ColorDim, "EMP")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[H\033[2J" + "\033[2;5H" + ColorDim + "EMP" + ColorReset
	if out.String() != want {
		t.Errorf("flushed %q, want %q", out.String(), want)
	}
}

func TestChunkWriterSplitsLargeFrames(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	frame := strings.Repeat("x", 3*maxChunkSize+7)
	if _, err := cw.Write([]byte(frame)); err != nil {
		t.Fatal(err)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != frame {
		t.Errorf("flushed %d bytes, want %d", out.Len(), len(frame))
	}
}
