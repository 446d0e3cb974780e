// Package ssd1331 drives an SSD1331 96x64 RGB OLED over SPI and streams
// nibble framebuffers to it.
//
// The controller is left in its default 65k colour mode: every pixel is a
// 16-bit word sent most significant byte first, with red in bits 0-4, green
// in bits 5-10 and blue in bits 11-15.
package ssd1331

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/taigrr/nibble/pkg/render"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Panel dimensions of the SSD1331 graphics RAM.
const (
	Width  = 96
	Height = 64
)

// DefaultFrequency is the SPI clock used when Opts.Freq is zero.
const DefaultFrequency = 8 * physic.MegaHertz

// defaultMaxTx bounds a single transfer when the connection reports no limit.
const defaultMaxTx = 4096

// ErrHalted is returned by every operation after Halt.
var ErrHalted = errors.New("ssd1331: halted")

// Commands used by the driver.
const (
	cmdSetColumn      = 0x15
	cmdSetRow         = 0x75
	cmdClearWindow    = 0x25
	cmdContrastA      = 0x81
	cmdContrastB      = 0x82
	cmdContrastC      = 0x83
	cmdMasterCurrent  = 0x87
	cmdPrechargeA     = 0x8A
	cmdPrechargeB     = 0x8B
	cmdPrechargeC     = 0x8C
	cmdSetRemap       = 0xA0
	cmdStartLine      = 0xA1
	cmdDisplayOffset  = 0xA2
	cmdNormalDisplay  = 0xA4
	cmdInvertDisplay  = 0xA7
	cmdSetMultiplex   = 0xA8
	cmdSetMaster      = 0xAD
	cmdDisplayOff     = 0xAE
	cmdDisplayOn      = 0xAF
	cmdPowerMode      = 0xB0
	cmdPrecharge      = 0xB1
	cmdClockDiv       = 0xB3
	cmdPrechargeLevel = 0xBB
	cmdVCOMH          = 0xBE
)

// initSequence powers the panel up in 65k RGB mode with the firmware's
// contrast and precharge settings.
var initSequence = []byte{
	cmdDisplayOff,
	cmdSetRemap, 0x72, // RGB order, 65k colour
	cmdStartLine, 0x00,
	cmdDisplayOffset, 0x00,
	cmdNormalDisplay,
	cmdSetMultiplex, 0x3F, // 1/64 duty
	cmdSetMaster, 0x8E,
	cmdPowerMode, 0x0B,
	cmdPrecharge, 0x31,
	cmdClockDiv, 0xF0,
	cmdPrechargeA, 0x64,
	cmdPrechargeB, 0x78,
	cmdPrechargeC, 0x64,
	cmdPrechargeLevel, 0x3A,
	cmdVCOMH, 0x3E,
	cmdMasterCurrent, 0x06,
	cmdContrastA, 0x91,
	cmdContrastB, 0x50,
	cmdContrastC, 0x7D,
	cmdDisplayOn,
}

// Bit offsets of each colour field in a pixel word.
var colourShift = [...]uint{
	render.Red:   0,
	render.Green: 6,
	render.Blue:  11,
}

// sleep is replaced in tests.
var sleep = time.Sleep

// Opts is the configuration for the SSD1331 display.
type Opts struct {
	// Size of the frames written, in pixels. Defaults to 56x56.
	W, H int

	// Top-left corner of the write window on the panel.
	X, Y int

	// Optional hardware reset pin, pulsed high-low-high at start up.
	RST gpio.PinOut

	// SPI clock; DefaultFrequency if zero.
	Freq physic.Frequency
}

func (o *Opts) validate() error {
	if o.W <= 0 || o.H <= 0 {
		return fmt.Errorf("ssd1331: window %dx%d must be positive", o.W, o.H)
	}
	if o.X < 0 || o.Y < 0 || o.X+o.W > Width || o.Y+o.H > Height {
		return fmt.Errorf("ssd1331: window %dx%d at (%d,%d) exceeds the %dx%d panel", o.W, o.H, o.X, o.Y, Width, Height)
	}
	return nil
}

// Dev is the device handle for the SSD1331 display.
type Dev struct {
	c     conn.Conn
	dc    gpio.PinOut
	rst   gpio.PinOut
	rect  image.Rectangle // Write window in panel coordinates
	maxTx int

	buf    []byte // Encoded frame
	halted bool
}

// NewSPI connects to an SSD1331 on p and initializes it.
//
// The SPI port is configured for Mode3, 8-bit transfers. The dc pin selects
// between command (low) and data (high) bytes.
//
// opts can be nil to use defaults.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	o := *opts
	if o.W == 0 && o.H == 0 {
		o.W, o.H = 56, 56
	}
	if o.Freq == 0 {
		o.Freq = DefaultFrequency
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("ssd1331: dc pin is required")
	}

	c, err := p.Connect(o.Freq, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1331: connect: %w", err)
	}
	return newDev(c, dc, &o)
}

// newDev initializes a display over an established connection.
func newDev(c conn.Conn, dc gpio.PinOut, o *Opts) (*Dev, error) {
	d := &Dev{
		c:     c,
		dc:    dc,
		rst:   o.RST,
		rect:  image.Rect(o.X, o.Y, o.X+o.W, o.Y+o.H),
		maxTx: defaultMaxTx,
		buf:   make([]byte, o.W*o.H*2),
	}
	if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 {
		d.maxTx = l.MaxTxSize()
	}

	if err := d.init(); err != nil {
		return nil, err
	}
	render.Logger().Info("ssd1331 ready",
		slog.String("conn", c.String()),
		slog.Any("window", d.rect),
		slog.Int("max_tx", d.maxTx),
	)
	return d, nil
}

// init resets the controller, sends the start-up sequence and selects the
// write window.
func (d *Dev) init() error {
	if d.rst != nil {
		for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
			if err := d.rst.Out(l); err != nil {
				return fmt.Errorf("ssd1331: drive RST %s: %w", l, err)
			}
			sleep(100 * time.Millisecond)
		}
	}
	if err := d.sendCommands(initSequence); err != nil {
		return fmt.Errorf("ssd1331: init: %w", err)
	}
	return d.setWindow()
}

// setWindow restricts RAM writes to the frame rectangle. The controller
// wraps back to the window origin after its last pixel.
func (d *Dev) setWindow() error {
	r := d.rect
	return d.sendCommands([]byte{
		cmdSetColumn, byte(r.Min.X), byte(r.Max.X - 1),
		cmdSetRow, byte(r.Min.Y), byte(r.Max.Y - 1),
	})
}

func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.tx(cmds)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.tx(data)
}

// tx splits w into transfers the connection accepts.
func (d *Dev) tx(w []byte) error {
	for len(w) > 0 {
		n := min(len(w), d.maxTx)
		if err := d.c.Tx(w[:n], nil); err != nil {
			return err
		}
		w = w[n:]
	}
	return nil
}

// EncodePixel converts a framebuffer cell to a 16-bit pixel word. Cells
// without colour or intensity are black.
func EncodePixel(p render.Pixel) uint16 {
	if !p.Lit() {
		return 0
	}
	level := uint16(30 * uint(p.Intensity()) / uint(render.MaxIntensity))
	return level << colourShift[p.Colour()]
}

// EncodeFrame appends the pixel words of fb to dst, top row first and most
// significant byte first, and returns the extended slice.
func EncodeFrame(dst []byte, fb *render.Framebuffer) []byte {
	fb.Scan(func(_, _ int, p render.Pixel) bool {
		w := EncodePixel(p)
		dst = append(dst, byte(w>>8), byte(w))
		return true
	})
	return dst
}

// Bounds returns the write window in panel coordinates.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// DrawFrame encodes fb and sends it to the display. The frame must match
// the window size.
func (d *Dev) DrawFrame(fb *render.Framebuffer) error {
	if d.halted {
		return ErrHalted
	}
	if fb.Cols() != d.rect.Dx() || fb.Rows() != d.rect.Dy() {
		return fmt.Errorf("ssd1331: frame %dx%d does not match window %dx%d", fb.Cols(), fb.Rows(), d.rect.Dx(), d.rect.Dy())
	}
	d.buf = EncodeFrame(d.buf[:0], fb)
	_, err := d.Write(d.buf)
	return err
}

// Write sends raw pixel words for the whole window.
// The data must be exactly W*H*2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if want := d.rect.Dx() * d.rect.Dy() * 2; len(pixels) != want {
		return 0, fmt.Errorf("ssd1331: got %d bytes, want %d", len(pixels), want)
	}
	if err := d.setWindow(); err != nil {
		return 0, err
	}
	if err := d.sendData(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Clear blanks the write window using the controller's clear command.
func (d *Dev) Clear() error {
	if d.halted {
		return ErrHalted
	}
	r := d.rect
	return d.sendCommands([]byte{
		cmdClearWindow, byte(r.Min.X), byte(r.Min.Y), byte(r.Max.X - 1), byte(r.Max.Y - 1),
	})
}

// SetContrast sets the contrast of the three colour channels.
func (d *Dev) SetContrast(a, b, c byte) error {
	if d.halted {
		return ErrHalted
	}
	return d.sendCommands([]byte{cmdContrastA, a, cmdContrastB, b, cmdContrastC, c})
}

// Invert inverts the display colours.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return ErrHalted
	}
	mode := byte(cmdNormalDisplay)
	if invert {
		mode = cmdInvertDisplay
	}
	return d.sendCommands([]byte{mode})
}

// Halt turns the panel off. The device rejects further operations.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommands([]byte{cmdDisplayOff})
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1331.Dev{%s, %dx%d}", d.c, d.rect.Dx(), d.rect.Dy())
}
