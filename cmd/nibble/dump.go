package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/taigrr/nibble/pkg/render"
	"golang.org/x/image/draw"
)

type dumpFlags struct {
	step  uint8
	png   string
	text  bool
	scale int
	axes  bool
}

func newDumpCmd(rf *renderFlags) *cobra.Command {
	df := &dumpFlags{}
	cmd := &cobra.Command{
		Use:   "dump [model]",
		Short: "Render a single frame to PNG or text",
		Example: `  nibble dump --step 37 --png cube.png --scale 8
  nibble dump --text > frame.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if df.png == "" && !df.text {
				return fmt.Errorf("nothing to do: pass --png or --text")
			}
			if df.scale < 1 {
				return fmt.Errorf("scale %d must be at least 1", df.scale)
			}

			r, mesh, err := rf.newRenderer(args)
			if err != nil {
				return err
			}
			stats, err := r.Render(mesh, df.step)
			if err != nil {
				return err
			}
			if df.axes {
				r.Wireframe().DrawAxes(r.Transform(df.step), 0.5, render.MaxIntensity)
			}

			if df.text {
				if err := r.Framebuffer().WriteText(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			if df.png != "" {
				if err := savePNG(df.png, r.Framebuffer(), df.scale); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: step %d, %d drawn, %d culled, %d rejected\n",
					df.png, df.step, stats.Drawn, stats.Culled, stats.Rejected)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint8Var(&df.step, "step", 0, "Animation step to render")
	f.StringVar(&df.png, "png", "", "Write the frame as a PNG to this path")
	f.BoolVar(&df.text, "text", false, "Write the packed frame bytes as text to stdout")
	f.IntVar(&df.scale, "scale", 8, "PNG upscale factor")
	f.BoolVar(&df.axes, "axes", false, "Overlay the model axes")
	return cmd
}

// savePNG writes fb to path, upscaled by scale with nearest-neighbour
// sampling so individual pixels stay sharp.
func savePNG(path string, fb *render.Framebuffer, scale int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writePNG(out, fb, scale); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writePNG(w io.Writer, fb *render.Framebuffer, scale int) error {
	if scale == 1 {
		return fb.WritePNG(w, render.DefaultPalette)
	}
	src := fb.Image(render.DefaultPalette)
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx()*scale, src.Bounds().Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return png.Encode(w, dst)
}
