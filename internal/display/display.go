// Package display provides the display sink abstraction for the
// 128x64 monochrome panel, plus the transient warning overlay store.
// The real implementation drives an SSD1306 over I2C; the fake allows
// testing without hardware.
package display

// Panel geometry and text limits. Four text rows fit the 64px height
// with the fixed 7x13 font.
const (
	Width  = 128
	Height = 64

	// MaxLines is the number of text rows per frame.
	MaxLines = 4

	// MaxLineChars is the widest line the panel can show. Longer
	// lines are clipped, never wrapped.
	MaxLineChars = 18
)

// Sink accepts rendered frames. Implementations present the frame as
// part of Write — there is no separate flush call to forget.
type Sink interface {
	// WriteLines renders up to MaxLines text rows and presents the
	// frame. Fewer lines leave the remaining rows blank.
	WriteLines(lines []string) error

	// Close blanks and releases the display.
	Close() error
}
