package display

import "strings"

// Fake records the draw calls of the current frame for test assertions.
type Fake struct {
	// Texts holds every string printed since the last Clear.
	Texts []string

	// Frames holds the joined text of each committed frame.
	Frames []string

	// Shows counts Show calls.
	Shows int

	cursorX, cursorY int
	textSize         int
}

// NewFake creates an empty Fake display.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Clear() {
	f.Texts = nil
}

func (f *Fake) SetCursor(x, y int) {
	f.cursorX, f.cursorY = x, y
}

func (f *Fake) SetTextSize(size int) {
	f.textSize = size
}

func (f *Fake) Print(s string) {
	f.Texts = append(f.Texts, s)
}

func (f *Fake) Println(s string) {
	f.Texts = append(f.Texts, s)
}

func (f *Fake) Show() {
	f.Shows++
	f.Frames = append(f.Frames, strings.Join(f.Texts, "|"))
}

// Frame returns the joined text of the current frame.
func (f *Fake) Frame() string {
	return strings.Join(f.Texts, "|")
}

// Contains reports whether the current frame printed the given text.
func (f *Fake) Contains(s string) bool {
	return strings.Contains(f.Frame(), s)
}
