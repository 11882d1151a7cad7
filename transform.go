package stage

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// objectTransform computes the world matrix of a stage object. Returns
// [a, b, c, d, tx, ty]. Local space is the texture's pixel space, so the
// pixel under a local coordinate is found without further scaling.
//
// Composition order:
//
//	Scale(width/imageW, height/imageH) -> Rotate -> Translate(X, Y)
func objectTransform(o *StageObject) [6]float64 {
	sx, sy := o.textureScale()
	sin, cos := math.Sincos(o.Rotation)
	return [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		o.Position.X(), o.Position.Y(),
	}
}

// invertAffine computes the inverse of a 2D affine matrix. ok is false, and
// the identity is returned, when the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) (inv [6]float64, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// worldAABB computes the axis-aligned bounding box for a rectangle of size (w, h)
// transformed by the given affine matrix.
func worldAABB(transform [6]float64, w, h float64) Rect {
	a, b, cc, d, tx, ty := transform[0], transform[2], transform[1], transform[3], transform[4], transform[5]

	// Transform four corners: (0,0), (w,0), (w,h), (0,h)
	x0, y0 := tx, ty
	x1, y1 := a*w+tx, cc*w+ty
	x2, y2 := a*w+b*h+tx, cc*w+d*h+ty
	x3, y3 := b*h+tx, d*h+ty

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to the object's local (texture
// pixel) space. A collapsed object (zero width or height over an image) has
// no local space; the point is then returned unchanged.
func (o *StageObject) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv, _ := invertAffine(objectTransform(o))
	return transformPoint(inv, wx, wy)
}

// collapsed reports whether the object's transform cannot be inverted.
func (o *StageObject) collapsed() bool {
	_, ok := invertAffine(objectTransform(o))
	return !ok
}

// LocalToWorld converts a local-space point to world space.
func (o *StageObject) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(objectTransform(o), lx, ly)
}

// WorldBounds returns the world-space AABB of the object after rotation.
func (o *StageObject) WorldBounds() Rect {
	w, h := o.localSize()
	return worldAABB(objectTransform(o), w, h)
}
