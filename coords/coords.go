// Package coords provides the geometric primitives used throughout layoutkit:
// points, rectangles, affine matrices and unit conversions between pixels,
// points and inches.
package coords

import (
	"errors"
	"math"
)

// PointsPerInch is the number of length units (PDF points) per inch.
const PointsPerInch = 72.0

// Point is a position in page coordinates (points).
type Point struct{ X, Y float64 }

// Rect is an axis-aligned rectangle. X, Y is the lower-left corner.
type Rect struct {
	X, Y, W, H float64
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Matrix is an affine transformation in the usual 6-element form [a b c d e f].
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

// Multiply returns m*o.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[1]*o[2],
		m[0]*o[1] + m[1]*o[3],
		m[2]*o[0] + m[3]*o[2],
		m[2]*o[1] + m[3]*o[3],
		m[4]*o[0] + m[5]*o[2] + o[4],
		m[4]*o[1] + m[5]*o[3] + o[5],
	}
}

// Transform applies the matrix to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Inverse returns the inverse matrix, or an error if m is singular.
func (m Matrix) Inverse() (Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-10 {
		return Matrix{}, errors.New("matrix singular")
	}
	return Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}, nil
}

// PixelsToPoints converts a pixel extent to points at the given resolution.
func PixelsToPoints(px, dpi float64) float64 { return px / dpi * PointsPerInch }

// PointsToPixels converts a point extent to pixels at the given resolution.
func PointsToPixels(pt, dpi float64) float64 { return pt / PointsPerInch * dpi }

// Inches converts inches to points.
func Inches(in float64) float64 { return in * PointsPerInch }
