// nibble - packed 4-bit 3D renderer for SSD1331 OLEDs.
//
// Spins a flat-shaded mesh (the reference cube by default, or any glTF/GLB
// model) through the same pipeline the display firmware runs, and shows the
// result in the terminal, dumps single frames, or streams them to a panel.
//
// Commands:
//
//	preview [model]  - Animated terminal preview
//	dump [model]     - Render one frame to PNG or text
//	oled [model]     - Stream frames to an SSD1331 over SPI
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/nibble/pkg/render"
)

// renderFlags are shared by every command that renders frames.
type renderFlags struct {
	cols, rows int
	offset     float64
	theta, phi uint8
	fov        float64
	normalize  bool
	wireframe  bool
	strict     bool
	recolour   bool
	verbose    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	def := render.DefaultOptions()
	pf := cmd.PersistentFlags()
	pf.IntVar(&f.cols, "cols", def.Cols, "Frame width in pixels (even)")
	pf.IntVar(&f.rows, "rows", def.Rows, "Frame height in pixels (even)")
	pf.Float64Var(&f.offset, "offset", def.ZOffset, "Distance from the camera to the model centre")
	pf.Uint8Var(&f.theta, "theta", def.Rotation.ThetaRate, "Elevation step per frame")
	pf.Uint8Var(&f.phi, "phi", def.Rotation.PhiRate, "Azimuth step per frame")
	pf.Float64Var(&f.fov, "fov", def.FOV, "Field-of-view scale")
	pf.BoolVar(&f.normalize, "normalize-shading", false, "Shade by the unit normal instead of the raw cross product")
	pf.BoolVarP(&f.wireframe, "wireframe", "w", false, "Draw face outlines only")
	pf.BoolVar(&f.strict, "strict", false, "Fail on faces that leave the frame")
	pf.BoolVar(&f.recolour, "recolour", false, "Ignore model materials and cycle red, green and blue")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Log pipeline decisions to stderr")
}

// options builds renderer options for a model of the given bounding radius.
func (f *renderFlags) options(radius float64) render.Options {
	opts := render.DefaultOptions()
	opts.Cols, opts.Rows = f.cols, f.rows
	opts.ZOffset = f.offset
	opts.Rotation = render.Rotation{ThetaRate: f.theta, PhiRate: f.phi}
	opts.FOV = f.fov
	opts.NormalizeShading = f.normalize
	opts.Wireframe = f.wireframe
	opts.Strict = f.strict
	opts.BoundingRadius = radius
	return opts
}

// setupLogging routes the shared render logger to stderr when verbose.
func (f *renderFlags) setupLogging() {
	if !f.verbose {
		render.SetLogger(nil)
		return
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func newRootCmd() *cobra.Command {
	flags := &renderFlags{}
	root := &cobra.Command{
		Use:   "nibble",
		Short: "Packed 4-bit 3D renderer for SSD1331 OLEDs",
		Long: `nibble rotates a mesh through a fixed-point style pipeline, rasterizes it
into a 4-bit packed framebuffer and shows it in the terminal, saves it, or
streams it to an SSD1331 panel.

Without a model argument the reference red/green/blue cube is used.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flags.setupLogging()
		},
	}
	flags.register(root)

	root.AddCommand(
		newPreviewCmd(flags),
		newDumpCmd(flags),
		newOLEDCmd(flags),
	)
	return root
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
