// Package geometry holds the small amount of 3D math the site editor needs:
// vectors, yaw-only transforms, axis aligned boxes and triangle buffers.
// Planar work is delegated to chipmunk's cp.Vector and cp.BB.
package geometry

import (
	"math"

	"github.com/jakecoffman/cp"
)

type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// FromPlanar lifts a planar vector to z.
func FromPlanar(v cp.Vector, z float64) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Planar() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// ApproxEqual compares component-wise within eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

var UnitY = Vec3{Y: 1}

// Transform is a translation followed by a rotation about +Z. Site elements
// never pitch or roll, so yaw is all that is tracked.
type Transform struct {
	Translation Vec3
	Yaw         float64
}

func Identity() Transform {
	return Transform{}
}

func FromTranslation(t Vec3) Transform {
	return Transform{Translation: t}
}

// Apply maps p from this transform's local frame into its parent frame.
func (t Transform) Apply(p Vec3) Vec3 {
	r := cp.ForAngle(t.Yaw).Rotate(p.Planar())
	return FromPlanar(r, p.Z).Add(t.Translation)
}

// Mul composes t after o: t.Mul(o).Apply(p) == t.Apply(o.Apply(p)).
func (t Transform) Mul(o Transform) Transform {
	return Transform{Translation: t.Apply(o.Translation), Yaw: t.Yaw + o.Yaw}
}

func (t Transform) Inverse() Transform {
	back := cp.ForAngle(-t.Yaw).Rotate(t.Translation.Planar()).Neg()
	return Transform{Translation: FromPlanar(back, -t.Translation.Z), Yaw: -t.Yaw}
}

// Aabb is an axis aligned box in some local frame.
type Aabb struct {
	Center      Vec3
	HalfExtents Vec3
}

// BB projects the box onto the XY plane.
func (a Aabb) BB() cp.BB {
	return cp.NewBBForExtents(a.Center.Planar(), a.HalfExtents.X, a.HalfExtents.Y)
}

// ContainsPlanar reports whether the XY projection contains p.
func (a Aabb) ContainsPlanar(p cp.Vector) bool {
	return a.BB().ContainsVect(p)
}

func (a Aabb) Min() Vec3 {
	return a.Center.Sub(a.HalfExtents)
}

func (a Aabb) Max() Vec3 {
	return a.Center.Add(a.HalfExtents)
}
