package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/nibble/pkg/models"
	"github.com/taigrr/nibble/pkg/render"
	"github.com/taigrr/nibble/pkg/ssd1331"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type oledFlags struct {
	spi    string
	dc     string
	rst    string
	hz     int64
	x, y   int
	fps    int
	frames int
	invert bool
}

func newOLEDCmd(rf *renderFlags) *cobra.Command {
	of := &oledFlags{}
	cmd := &cobra.Command{
		Use:   "oled [model]",
		Short: "Stream frames to an SSD1331 display over SPI",
		Example: `  nibble oled --spi /dev/spidev0.0 --dc GPIO25 --rst GPIO24
  nibble oled model.glb --frames 256 --fps 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if of.fps <= 0 {
				return fmt.Errorf("fps %d must be positive", of.fps)
			}
			r, mesh, err := rf.newRenderer(args)
			if err != nil {
				return err
			}
			return runOLED(cmd.Context(), of, r, mesh)
		},
	}
	f := cmd.Flags()
	f.StringVar(&of.spi, "spi", "", "SPI port name (empty for the first available)")
	f.StringVar(&of.dc, "dc", "GPIO25", "Data/command pin name")
	f.StringVar(&of.rst, "rst", "", "Reset pin name (optional)")
	f.Int64Var(&of.hz, "hz", int64(ssd1331.DefaultFrequency/physic.Hertz), "SPI clock in Hz")
	f.IntVar(&of.x, "x", 20, "Left edge of the frame on the panel")
	f.IntVar(&of.y, "y", 4, "Top edge of the frame on the panel")
	f.IntVar(&of.fps, "fps", 20, "Target frames per second")
	f.IntVar(&of.frames, "frames", 0, "Stop after this many frames (0 runs until interrupted)")
	f.BoolVar(&of.invert, "invert", false, "Invert the panel colours")
	return cmd
}

func runOLED(ctx context.Context, of *oledFlags, r *render.Renderer, mesh *models.Mesh) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}

	port, err := spireg.Open(of.spi)
	if err != nil {
		return fmt.Errorf("open SPI port: %w", err)
	}
	defer port.Close()

	dc := gpioreg.ByName(of.dc)
	if dc == nil {
		return fmt.Errorf("GPIO pin %s not found", of.dc)
	}
	var rst gpio.PinOut
	if of.rst != "" {
		p := gpioreg.ByName(of.rst)
		if p == nil {
			return fmt.Errorf("GPIO pin %s not found", of.rst)
		}
		rst = p
	}

	fb := r.Framebuffer()
	dev, err := ssd1331.NewSPI(port, dc, &ssd1331.Opts{
		W:    fb.Cols(),
		H:    fb.Rows(),
		X:    of.x,
		Y:    of.y,
		RST:  rst,
		Freq: physic.Frequency(of.hz) * physic.Hertz,
	})
	if err != nil {
		return err
	}
	defer dev.Halt()

	if err := dev.Clear(); err != nil {
		return err
	}
	if of.invert {
		if err := dev.Invert(true); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(of.fps))
	defer ticker.Stop()

	log := render.Logger()
	var step uint8
	for n := 0; of.frames == 0 || n < of.frames; n++ {
		stats, err := r.Render(mesh, step)
		if err != nil {
			return err
		}
		if err := dev.DrawFrame(fb); err != nil {
			return err
		}
		log.Debug("frame sent", "step", step, "drawn", stats.Drawn)
		step++

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
