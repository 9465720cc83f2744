// Package loader opens model files of any supported format.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/robomap/pkg/mesh"
	"github.com/philipparndt/robomap/pkg/obj"
	"github.com/philipparndt/robomap/pkg/openscad"
	"github.com/philipparndt/robomap/pkg/stl"
)

// SupportedExtensions lists the file types Load accepts
var SupportedExtensions = []string{".obj", ".stl", ".scad"}

// Result is a loaded model plus the files whose change should trigger a reload
type Result struct {
	Model      *mesh.Model
	WatchFiles []string
}

// Load parses filePath according to its extension. OpenSCAD sources are
// rendered to a temporary STL first.
func Load(ctx context.Context, filePath string) (*Result, error) {
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".obj":
		model, err := obj.Parse(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse OBJ file: %w", err)
		}
		return &Result{Model: model, WatchFiles: []string{filePath}}, nil

	case ".stl":
		model, err := stl.Parse(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return &Result{Model: model, WatchFiles: []string{filePath}}, nil

	case ".scad":
		return loadSCAD(ctx, filePath)

	default:
		return nil, fmt.Errorf("unsupported file type: %s (expected one of %s)", ext, strings.Join(SupportedExtensions, ", "))
	}
}

func loadSCAD(ctx context.Context, filePath string) (*Result, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", filePath, err)
	}
	renderer := openscad.NewRenderer(filepath.Dir(absPath))

	deps, err := renderer.ResolveDependencies(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	tmp, err := os.CreateTemp("", "robomap_*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := renderer.RenderToSTL(ctx, absPath, tmp.Name()); err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	model.Source = filePath
	model.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	return &Result{Model: model, WatchFiles: deps}, nil
}
