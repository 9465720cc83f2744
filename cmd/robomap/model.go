package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/philipparndt/robomap/pkg/loader"
)

func loadModel(ctx context.Context, path string) (*loader.Result, error) {
	res, err := loader.Load(ctx, path)
	if err != nil {
		logger.LogLoad(ctx, path, 0, 0, err)
		return nil, err
	}
	logger.LogLoad(ctx, path, len(res.Model.Parts()), res.Model.TriangleCount(), nil)
	return res, nil
}

// readPoints reads one x,y,z triple per line. Blank lines and lines
// starting with # are skipped.
func readPoints(path string) ([]geometry.Vector3, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open points file: %w", err)
	}
	defer file.Close()

	var points []geometry.Vector3
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := geometry.ParseVector3(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		points = append(points, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points file: %w", err)
	}
	return points, nil
}
