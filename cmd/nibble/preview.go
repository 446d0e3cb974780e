package main

import (
	"context"
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/nibble/pkg/models"
	"github.com/taigrr/nibble/pkg/render"
)

const (
	zoomStep = 0.25
	zoomFar  = 20.0
)

var (
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0E0")).
			Background(lipgloss.Color("#202028")).
			Padding(0, 1)
	hudAccent = hudStyle.Foreground(lipgloss.Color("#7CFC8A")).Bold(true)
	hudDim    = hudStyle.Foreground(lipgloss.Color("#8A8A99"))
)

func newPreviewCmd(rf *renderFlags) *cobra.Command {
	var fps int
	cmd := &cobra.Command{
		Use:   "preview [model]",
		Short: "Animate the model in the terminal",
		Long: `Animate the model in the terminal using half-block cells.

Controls:
  space   pause / resume
  n       single step while paused
  x       toggle wireframe
  + / -   zoom in / out
  r       reset step and zoom
  ?       toggle HUD
  q, esc  quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps <= 0 {
				return fmt.Errorf("fps %d must be positive", fps)
			}
			r, mesh, err := rf.newRenderer(args)
			if err != nil {
				return err
			}
			return runPreview(cmd.Context(), r, mesh, fps)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "Target frames per second")
	return cmd
}

// viewState holds UI state for the preview loop.
type viewState struct {
	step    uint8
	paused  bool
	showHUD bool
	wire    bool
	fps     float64
	frames  int
	since   time.Time
}

func (v *viewState) tickFPS(now time.Time) {
	v.frames++
	if elapsed := now.Sub(v.since); elapsed >= time.Second {
		v.fps = float64(v.frames) / elapsed.Seconds()
		v.frames = 0
		v.since = now
	}
}

func runPreview(ctx context.Context, r *render.Renderer, mesh *models.Mesh, fps int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	start := r.Options().ZOffset
	lo, err := r.Camera().MinOffset(mesh.Radius(), zoomFar)
	if err != nil {
		lo = start
	}
	zoom := NewZoom(fps, start, lo, zoomFar)

	view := &viewState{showHUD: true, wire: r.Options().Wireframe, since: time.Now()}
	fb := r.Framebuffer()
	name := mesh.Name

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("q", "escape", "ctrl+c"):
					return nil
				case ev.MatchString("space"):
					view.paused = !view.paused
				case ev.MatchString("n"):
					if view.paused {
						view.step++
					}
				case ev.MatchString("x"):
					view.wire = !view.wire
					r.SetWireframe(view.wire)
				case ev.MatchString("+", "="):
					zoom.Nudge(-zoomStep)
				case ev.MatchString("-", "_"):
					zoom.Nudge(zoomStep)
				case ev.MatchString("r"):
					view.step = 0
					zoom.Set(start)
				case ev.MatchString("?", "shift+/"):
					view.showHUD = !view.showHUD
				}
			}

		case now := <-ticker.C:
			if err := r.SetZOffset(zoom.Update()); err != nil {
				return err
			}
			stats, err := r.Render(mesh, view.step)
			if err != nil {
				return err
			}
			if !view.paused {
				view.step++
			}
			view.tickFPS(now)

			term.Clear()
			cols, rows := fb.TermSize()
			x0 := max((width-cols)/2, 0)
			y0 := max((height-rows)/2, 0)
			fb.Draw(term, uv.Rect(x0, y0, cols, rows), render.DefaultPalette)
			if view.showHUD {
				drawHUD(term, width, height, name, view, stats, r.Options().ZOffset)
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// drawHUD renders the status lines at the top and bottom of the screen.
func drawHUD(scr uv.Screen, width, height int, name string, v *viewState, stats render.FrameStats, offset float64) {
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		hudAccent.Render(fmt.Sprintf("%.0f FPS", v.fps)),
		hudStyle.Render(name),
		hudDim.Render(fmt.Sprintf("step %3d", v.step)),
	)
	uv.NewStyledString(top).Draw(scr, uv.Rect(0, 0, width, 1))

	mode := "fill"
	if v.wire {
		mode = "wire"
	}
	state := "running"
	if v.paused {
		state = "paused"
	}
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		hudStyle.Render(fmt.Sprintf("drawn %d  culled %d  rejected %d", stats.Drawn, stats.Culled, stats.Rejected)),
		hudDim.Render(fmt.Sprintf("z %.2f  %s  %s", offset, mode, state)),
	)
	uv.NewStyledString(bottom).Draw(scr, uv.Rect(0, height-1, width, 1))
}
