package display

import (
	"fmt"
	"io"
	"strings"
)

// Console renders frames as plain text to a writer. It stands in for the
// OLED during development; lines are reassembled from the print calls in
// cursor order within a frame.
type Console struct {
	w     io.Writer
	lines []string
	cur   strings.Builder
	last  string
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Clear() {
	c.lines = nil
	c.cur.Reset()
}

func (c *Console) SetCursor(x, y int) {
	c.breakLine()
}

func (c *Console) SetTextSize(size int) {}

func (c *Console) Print(s string) {
	c.cur.WriteString(s)
}

func (c *Console) Println(s string) {
	c.cur.WriteString(s)
	c.breakLine()
}

// Show writes the assembled frame with a separator. Identical consecutive
// frames are suppressed so a 10Hz render loop does not flood the terminal.
func (c *Console) Show() {
	c.breakLine()
	frame := strings.Join(c.lines, "\n")
	if frame == c.last {
		return
	}
	c.last = frame
	fmt.Fprintln(c.w, "+----------------------+")
	for _, line := range c.lines {
		fmt.Fprintf(c.w, "| %s\n", line)
	}
	fmt.Fprintln(c.w, "+----------------------+")
}

func (c *Console) breakLine() {
	if c.cur.Len() > 0 {
		c.lines = append(c.lines, c.cur.String())
		c.cur.Reset()
	}
}
