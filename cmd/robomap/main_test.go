package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/robomap/pkg/annotation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cubeOBJ = `# unit cube
o cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 4 3 2
f 5 6 7 8
f 1 2 6 5
f 4 8 7 3
f 1 5 8 4
f 2 3 7 6
`

func writeCube(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cube.obj")
	require.NoError(t, os.WriteFile(path, []byte(cubeOBJ), 0o644))
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSnapCommandSnapsToCorner(t *testing.T) {
	model := writeCube(t)

	out, err := execute(t, "snap", model, "--at", "0.05,0,0", "--category", "navigation_waypoint")
	require.NoError(t, err)

	assert.Contains(t, out, "Snapped:    0.0000, 0.0000, 0.0000")
	assert.Contains(t, out, "Type:       corner")
	assert.Contains(t, out, "Suggestion: Navigation waypoint")
	assert.Contains(t, out, "Apply:      yes")
}

func TestSnapCommandJSON(t *testing.T) {
	model := writeCube(t)

	out, err := execute(t, "snap", model, "--at", "0.05,0,0", "-c", "navigation_waypoint", "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "corner", result["type"])
	assert.InDelta(t, 0.93, result["confidence"], 1e-9)
}

func TestSnapCommandThresholdFlag(t *testing.T) {
	model := writeCube(t)

	out, err := execute(t, "snap", model, "--at", "0.05,0,0", "--threshold", "0.01")
	require.NoError(t, err)
	assert.Contains(t, out, "Type:       free_space")
	assert.Contains(t, out, "Apply:      no")
}

func TestSnapCommandPointsFile(t *testing.T) {
	model := writeCube(t)
	points := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(points, []byte("# clicks\n0.05,0,0\n\n5,5,5\n"), 0o644))

	out, err := execute(t, "snap", model, "--points", points, "--json")
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "free_space", results[1]["type"])
}

func TestSnapCommandErrors(t *testing.T) {
	model := writeCube(t)

	_, err := execute(t, "snap", model)
	assert.Error(t, err)

	_, err = execute(t, "snap", model, "--at", "1,2")
	assert.Error(t, err)

	_, err = execute(t, "snap", model, "--at", "0,0,0", "--category", "parking")
	assert.Error(t, err)

	_, err = execute(t, "snap", filepath.Join(t.TempDir(), "model.ply"), "--at", "0,0,0")
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestFeaturesCommand(t *testing.T) {
	model := writeCube(t)

	out, err := execute(t, "features", model, "--at", "0.05,0,0", "--json")
	require.NoError(t, err)

	var features struct {
		Corners []map[string]any `json:"corners"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &features))
	require.Len(t, features.Corners, 1)
}

func TestInfoCommand(t *testing.T) {
	model := writeCube(t)

	out, err := execute(t, "info", model, "--edges", "2", "--near", "0.9,0.9,0.9")
	require.NoError(t, err)

	assert.Contains(t, out, "Triangles: 12")
	assert.Contains(t, out, "Vertices: 8")
	assert.Contains(t, out, "Surface Area: 6.000000")
	assert.Contains(t, out, "Longest 2 edges:")
	assert.Contains(t, out, "Nearest vertex to 0.9000, 0.9000, 0.9000: 1.0000, 1.0000, 1.0000")
}

func TestAnnotateLifecycle(t *testing.T) {
	model := writeCube(t)

	out, err := execute(t, "annotate", "add", model, "--name", "Dock", "--at", "0.05,0,0", "-c", "navigation_waypoint", "--tag", "base")
	require.NoError(t, err)
	assert.Contains(t, out, `"Dock" at 0.0000, 0.0000, 0.0000`)
	assert.Contains(t, out, "snapped to corner")

	out, err = execute(t, "annotate", "add", model, "--at", "5,5,5", "--snap=false", "--name", "Far")
	require.NoError(t, err)
	assert.Contains(t, out, `"Far" at 5.0000, 5.0000, 5.0000`)

	store := annotation.NewStore("cube")
	require.NoError(t, annotation.LoadFile(annotation.SidecarPath(model), store))
	items := store.List()
	require.Len(t, items, 2)
	assert.Equal(t, []string{"base"}, items[0].Tags)
	require.NotNil(t, items[0].AIConfidence)
	assert.Nil(t, items[1].AIConfidence)

	out, err = execute(t, "annotate", "list", model)
	require.NoError(t, err)
	assert.Contains(t, out, "Dock")
	assert.Contains(t, out, "Far")

	out, err = execute(t, "annotate", "export", model, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "modelPath: "+model)
	assert.Contains(t, out, "name: Dock")

	_, err = execute(t, "annotate", "delete", model, items[1].ID)
	require.NoError(t, err)

	_, err = execute(t, "annotate", "delete", model, "missing")
	assert.ErrorIs(t, err, annotation.ErrNotFound)

	out, err = execute(t, "annotate", "list", model)
	require.NoError(t, err)
	assert.NotContains(t, out, "Far")
}

func TestAnnotateAddNeedsNameWithoutSnap(t *testing.T) {
	model := writeCube(t)

	_, err := execute(t, "annotate", "add", model, "--at", "0,0,0", "--snap=false")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "robomap dev\n", out)
}

func TestAnnotateExportRejectsFormatBeforeWriting(t *testing.T) {
	model := writeCube(t)
	_, err := execute(t, "annotate", "add", model, "--name", "Dock", "--at", "0,0,0", "--snap=false")
	require.NoError(t, err)

	output := filepath.Join(t.TempDir(), "out.json")
	_, err = execute(t, "annotate", "export", model, "--format", "csv", "-o", output)
	assert.ErrorIs(t, err, annotation.ErrUnknownFormat)
	assert.NoFileExists(t, output)

	_, err = execute(t, "annotate", "export", model, "-o", output)
	require.NoError(t, err)
	assert.FileExists(t, output)
}
