package main

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/spf13/cobra"
	"github.com/taigrr/nibble/pkg/render"
)

func TestRenderFlagsDefaults(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	rf := &renderFlags{}
	rf.register(cmd)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}

	got := rf.options(0.5)
	want := render.DefaultOptions()
	want.BoundingRadius = 0.5
	if got != want {
		t.Errorf("options() = %+v, want %+v", got, want)
	}
}

func TestLoadModel(t *testing.T) {
	m, err := loadModel(nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("default model has %d triangles, want the 12-face cube", m.TriangleCount())
	}

	if _, err := loadModel([]string{"teapot.obj"}, false); err == nil {
		t.Error("loadModel accepted an unsupported extension")
	}
	if _, err := loadModel([]string{"missing.glb"}, false); err == nil {
		t.Error("loadModel accepted a missing file")
	}
}

func TestWritePNGScales(t *testing.T) {
	fb := render.NewFramebuffer(4, 2)
	fb.Set(0, 1, render.Red, 3)

	var buf bytes.Buffer
	if err := writePNG(&buf, fb, 3); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Fatalf("bounds %v, want 12x6", b)
	}
	// The top-left pixel becomes a 3x3 red block.
	for _, p := range [][2]int{{0, 0}, {2, 2}} {
		r, g, b, _ := img.At(p[0], p[1]).RGBA()
		if r>>8 != 255 || g != 0 || b != 0 {
			t.Errorf("pixel %v = (%d,%d,%d), want red", p, r>>8, g, b)
		}
	}
	if r, _, _, _ := img.At(3, 0).RGBA(); r != 0 {
		t.Errorf("pixel (3,0) is lit")
	}
}

func TestDumpRequiresOutput(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"dump"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err == nil {
		t.Error("dump without --png or --text succeeded")
	}
}

func TestDumpText(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetArgs([]string{"dump", "--text", "--cols", "8", "--rows", "8", "--offset", "4"})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	// 8 storage rows of 4 packed bytes.
	if lines := bytes.Count(out.Bytes(), []byte("\n")); lines != 8 {
		t.Errorf("%d lines of output, want 8", lines)
	}
}
