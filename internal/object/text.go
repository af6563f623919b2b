package object

// Text is a string drawn over the canvas at a logical field position.
type Text struct {
	X, Y  float64 // Logical position of the first character
	Value string
	Style string // Escape sequence applied before Value, may be empty
}

// Draw writes the text at its terminal cell and marks the cells it covers
// so the canvas repaints them once the text is gone.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	col, row := ctx.Canvas.LogicalToTerminal(t.X, t.Y)
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	if row > ctx.Canvas.TerminalHeight() {
		row = ctx.Canvas.TerminalHeight()
	}
	ctx.Writer.WriteStyledAt(col, row, t.Style, t.Value)
	ctx.Canvas.MarkTextDirty(col, row, len(t.Value))
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(_ UpdateContext) (bool, error) {
	return false, nil
}
