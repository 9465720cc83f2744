package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/robomap/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiTriangle = `solid ramp
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid ramp
`

func TestParseASCII(t *testing.T) {
	model, err := ParseBytes([]byte(asciiTriangle))
	require.NoError(t, err)

	assert.Equal(t, "ramp", model.Name)
	require.Len(t, model.Parts(), 1)
	assert.Equal(t, 1, model.TriangleCount())

	part := model.Parts()[0]
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}, part.Positions)
}

func TestParseASCIIRejectsBadFacet(t *testing.T) {
	broken := "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\nendsolid\n"

	_, err := ParseBytes([]byte(broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 vertices")
}

func writeBinary(t *testing.T, header string, tris []geometry.Triangle) []byte {
	t.Helper()

	var buf bytes.Buffer
	h := make([]byte, binaryHeaderSize)
	copy(h, header)
	buf.Write(h)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(tris))))

	f32 := func(v geometry.Vector3) [3]float32 {
		return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	for _, tri := range tris {
		facet := binaryFacet{
			Normal: f32(tri.Normal()),
			V1:     f32(tri.V1),
			V2:     f32(tri.V2),
			V3:     f32(tri.V3),
		}
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, facet))
	}
	return buf.Bytes()
}

func TestParseBinary(t *testing.T) {
	tri := geometry.NewTriangle(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(0, 2, 0),
	)
	// A header starting with "solid" must still be detected as binary
	data := writeBinary(t, "solid exported", []geometry.Triangle{tri, tri})

	model, err := ParseBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "solid exported", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
	assert.InDelta(t, 4.0, model.SurfaceArea(), 1e-6)
}

func TestParseFileSetsSourceAndName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	data := writeBinary(t, "", []geometry.Triangle{geometry.NewTriangle(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
	)})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	model, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, path, model.Source)
	assert.Equal(t, "part", model.Name)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}
