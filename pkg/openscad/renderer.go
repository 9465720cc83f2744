// Package openscad renders .scad sources to STL through the openscad binary.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNotInstalled is returned when the openscad binary is not on PATH
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

var (
	useRegex     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRegex = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	workDir string
	binary  string
}

// NewRenderer creates a renderer that resolves relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{workDir: workDir, binary: "openscad"}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders scadFile into outputFile. The process is killed when ctx is cancelled.
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var msg strings.Builder
		fmt.Fprintf(&msg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			fmt.Fprintf(&msg, "\nstderr: %s", strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() > 0 {
			fmt.Fprintf(&msg, "\nstdout: %s", strings.TrimSpace(stdout.String()))
		}
		return errors.New(msg.String())
	}

	return nil
}

// ResolveDependencies returns scadFile followed by every file it pulls in
// through use/include statements, transitively, as absolute paths
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	var walk func(file string) error
	walk = func(file string) error {
		if visited[file] {
			return nil
		}
		visited[file] = true
		deps = append(deps, file)

		children, err := r.parseDependencies(file)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(filepath.Clean(r.abs(scadFile))); err != nil {
		return nil, err
	}
	return deps, nil
}

// parseDependencies finds the use/include statements of a single file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	scadDir := filepath.Dir(scadFile)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}

		for _, re := range []*regexp.Regexp{useRegex, includeRegex} {
			if m := re.FindStringSubmatch(line); len(m) > 1 {
				deps = append(deps, r.resolveDepPath(m[1], scadDir))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath resolves a dependency relative to the including file,
// falling back to the work directory
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(filepath.Join(currentDir, depPath))
	}

	local := filepath.Join(currentDir, depPath)
	if _, err := os.Stat(local); err == nil {
		return filepath.Clean(local)
	}
	return filepath.Clean(filepath.Join(r.workDir, depPath))
}
