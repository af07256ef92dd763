package display

import (
	"fmt"
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"
)

// lineHeight spaces the 7x13 font into four even rows on the 64px
// panel; baselines sit at fontAscent below each row top.
const (
	lineHeight = 16
	fontAscent = 11
)

// SSD1306 drives the OLED bonnet over I2C.
type SSD1306 struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

// OpenSSD1306 initializes the I2C bus and the SSD1306 controller.
// mode selects the bus: "auto" (or empty) tries the default bus and
// then the numbered Pi buses in order; anything else names one bus to
// try exclusively.
func OpenSSD1306(mode string) (*SSD1306, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	bus, name, err := openBus(mode)
	if err != nil {
		return nil, err
	}
	log.Printf("display: opened I2C bus %q", name)

	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: Width, H: Height})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	return &SSD1306{
		bus: bus,
		dev: dev,
		img: image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
	}, nil
}

// openBus tries an ordered list of bus names until one opens, and
// reports which one did. With an explicit mode only that bus is tried.
func openBus(mode string) (i2c.BusCloser, string, error) {
	names := []string{"", "1", "0"}
	if mode != "" && mode != "auto" {
		names = []string{mode}
	}

	var firstErr error
	for _, name := range names {
		bus, err := i2creg.Open(name)
		if err == nil {
			return bus, name, nil
		}
		if firstErr == nil {
			firstErr = err
		}
		log.Printf("display: open I2C bus %q: %v", name, err)
	}
	return nil, "", fmt.Errorf("no usable I2C bus: %w", firstErr)
}

// WriteLines renders the text rows into the frame and presents it.
func (d *SSD1306) WriteLines(lines []string) error {
	// Blank the frame.
	for i := range d.img.Pix {
		d.img.Pix[i] = 0
	}

	drawer := font.Drawer{
		Dst:  d.img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		if i >= MaxLines {
			break
		}
		if len(line) > MaxLineChars {
			line = line[:MaxLineChars]
		}
		drawer.Dot = fixed.P(0, i*lineHeight+fontAscent)
		drawer.DrawString(line)
	}

	if err := d.dev.Draw(d.dev.Bounds(), d.img, image.Point{}); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// Close blanks the panel and releases the bus.
func (d *SSD1306) Close() error {
	var errs []error
	if err := d.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt ssd1306: %w", err))
	}
	if err := d.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close bus: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
