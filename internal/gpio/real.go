//go:build linux

package gpio

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/zero2-controller/internal/input"
)

const chipName = "gpiochip0"

// RealButtons reads the panel buttons from actual hardware using the
// Linux GPIO character device.
type RealButtons struct {
	chip  *gpiocdev.Chip
	lines map[input.Channel]*gpiocdev.Line
}

// NewRealButtons requests the button lines as pulled-up inputs. A
// channel whose line cannot be requested is logged and left
// uninitialized — it reads as an error (and therefore "not pressed")
// rather than failing the whole panel.
func NewRealButtons(pins map[input.Channel]int) (*RealButtons, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lines := make(map[input.Channel]*gpiocdev.Line, len(pins))
	ok := 0
	for ch, pin := range pins {
		line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			log.Printf("gpio: request button %s pin %d: %v", ch, pin, err)
			continue
		}
		lines[ch] = line
		ok++
	}
	if ok == 0 {
		chip.Close()
		return nil, fmt.Errorf("no button lines available on %s", chipName)
	}

	return &RealButtons{chip: chip, lines: lines}, nil
}

// Sample returns the logical pressed state of one channel.
// Inverts raw: lines are pulled up, so raw 0 = pressed.
func (b *RealButtons) Sample(ch input.Channel) (bool, error) {
	line, ok := b.lines[ch]
	if !ok {
		return false, fmt.Errorf("button %s not initialized", ch)
	}
	raw, err := line.Value()
	if err != nil {
		return false, fmt.Errorf("read button %s: %w", ch, err)
	}
	return raw == 0, nil
}

// Close releases the button lines and chip handle.
func (b *RealButtons) Close() error {
	var errs []error
	for ch, line := range b.lines {
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button %s: %w", ch, err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealBattery reads the battery-low line from actual hardware.
type RealBattery struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealBattery requests the battery-low line with bias disabled: the
// power board drives the pin, matching the floating pull configuration
// it expects.
func NewRealBattery(pin int) (*RealBattery, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithBiasDisabled)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request battery pin %d: %w", pin, err)
	}

	return &RealBattery{chip: chip, line: line}, nil
}

// IsLow reports whether the battery-low signal is asserted (line low).
func (b *RealBattery) IsLow() (bool, error) {
	raw, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("read battery pin: %w", err)
	}
	return raw == 0, nil
}

// Close releases the battery line and chip handle.
func (b *RealBattery) Close() error {
	var errs []error
	if b.line != nil {
		if err := b.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close battery pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
