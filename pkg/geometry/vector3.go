package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector3 represents a 3D point or direction in model space
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Up is the world up axis used for default normals
var Up = Vector3{X: 0, Y: 1, Z: 0}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Midpoint returns the point halfway between v and other
func (v Vector3) Midpoint(other Vector3) Vector3 {
	return v.Add(other).Mul(0.5)
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return v.Mul(1.0 / length)
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{X: math.Min(v.X, other.X), Y: math.Min(v.Y, other.Y), Z: math.Min(v.Z, other.Z)}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{X: math.Max(v.X, other.X), Y: math.Max(v.Y, other.Y), Z: math.Max(v.Z, other.Z)}
}

// GridKey identifies a vertex position after rounding to a fixed number of decimals
type GridKey struct {
	X, Y, Z int64
}

// Quantize rounds each component to the given number of decimals so that
// vertices duplicated across triangles map to the same key
func (v Vector3) Quantize(decimals int) GridKey {
	scale := math.Pow(10, float64(decimals))
	return GridKey{
		X: int64(math.Round(v.X * scale)),
		Y: int64(math.Round(v.Y * scale)),
		Z: int64(math.Round(v.Z * scale)),
	}
}

// Format renders the vector as "x, y, z" with the given precision
func (v Vector3) Format(precision int) string {
	return fmt.Sprintf("%.*f, %.*f, %.*f", precision, v.X, precision, v.Y, precision, v.Z)
}

// String implements fmt.Stringer
func (v Vector3) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// ParseVector3 parses a comma separated "x,y,z" triple
func ParseVector3(s string) (Vector3, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return Vector3{}, fmt.Errorf("invalid vector %q: expected x,y,z", s)
	}

	var coords [3]float64
	for i, field := range fields {
		value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Vector3{}, fmt.Errorf("invalid vector %q: %w", s, err)
		}
		coords[i] = value
	}

	return NewVector3(coords[0], coords[1], coords[2]), nil
}
