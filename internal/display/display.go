// Package display defines the opaque text surface the UI renders into.
// The core only ever clears, positions, prints at two sizes, and commits;
// the physical transport lives behind this interface.
package display

// Display is the text/graphics sink.
type Display interface {
	// Clear wipes the frame buffer.
	Clear()

	// SetCursor positions the next print at pixel coordinates.
	SetCursor(x, y int)

	// SetTextSize selects the text size (1 = small, 2 = large).
	SetTextSize(size int)

	// Print writes text at the cursor.
	Print(s string)

	// Println writes text at the cursor and advances a line.
	Println(s string)

	// Show commits the frame to the device.
	Show()
}
