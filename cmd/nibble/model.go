package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/nibble/pkg/models"
	"github.com/taigrr/nibble/pkg/render"
)

// loadModel returns the reference cube when args is empty, otherwise the
// glTF or GLB file it names, fitted to the cube's bounding sphere.
func loadModel(args []string, recolour bool) (*models.Mesh, error) {
	if len(args) == 0 {
		m := models.UnitCube()
		if recolour {
			m.Recolour()
		}
		return m, nil
	}

	path := args[0]
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		loader := models.NewGLTFLoader()
		loader.Recolour = recolour
		mesh, err := loader.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return mesh, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .gltf or .glb)", ext)
	}
}

// newRenderer loads the model named by args and builds a renderer for it.
func (f *renderFlags) newRenderer(args []string) (*render.Renderer, *models.Mesh, error) {
	mesh, err := loadModel(args, f.recolour)
	if err != nil {
		return nil, nil, err
	}
	r, err := render.NewRenderer(f.options(mesh.Radius()))
	if err != nil {
		return nil, nil, err
	}
	render.Logger().Info("model loaded",
		"name", mesh.Name,
		"vertices", mesh.VertexCount(),
		"triangles", mesh.TriangleCount(),
	)
	return r, mesh, nil
}
