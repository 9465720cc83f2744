package mesh

import "github.com/philipparndt/robomap/pkg/geometry"

// Box creates a closed, axis-aligned box part made of 12 triangles
func Box(name string, min, max geometry.Vector3) *Part {
	// Corners indexed by bit pattern: bit0=x, bit1=y, bit2=z
	c := func(i int) geometry.Vector3 {
		v := min
		if i&1 != 0 {
			v.X = max.X
		}
		if i&2 != 0 {
			v.Y = max.Y
		}
		if i&4 != 0 {
			v.Z = max.Z
		}
		return v
	}

	faces := [6][4]int{
		{0, 2, 3, 1}, // -z
		{4, 5, 7, 6}, // +z
		{0, 1, 5, 4}, // -y
		{2, 6, 7, 3}, // +y
		{0, 4, 6, 2}, // -x
		{1, 3, 7, 5}, // +x
	}

	part := NewPart(name)
	for _, f := range faces {
		part.AddTriangle(geometry.NewTriangle(c(f[0]), c(f[1]), c(f[2])))
		part.AddTriangle(geometry.NewTriangle(c(f[0]), c(f[2]), c(f[3])))
	}
	return part
}

// Cube creates a box part with the given edge length, with its minimum corner at origin
func Cube(name string, origin geometry.Vector3, size float64) *Part {
	return Box(name, origin, origin.Add(geometry.NewVector3(size, size, size)))
}
