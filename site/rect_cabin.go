package site

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/geometry"
)

const (
	DefaultCabinWallThickness = 0.1
	DefaultCabinGap           = 0.01
	DefaultCabinWidth         = 1.5
	DefaultCabinDepth         = 1.65
	DefaultLevelHeight        = 3.0
	DefaultDoormatThickness   = 0.3
)

// RectFace names a side of a rectangular cabin in the lift frame. The lift's
// reference edge runs along +Y at x=0 and the cabin body extends toward -X,
// so Front faces +X.
type RectFace int

const (
	RectFaceFront RectFace = iota
	RectFaceBack
	RectFaceLeft
	RectFaceRight
)

var AllRectFaces = [...]RectFace{RectFaceFront, RectFaceBack, RectFaceLeft, RectFaceRight}

func (f RectFace) String() string {
	switch f {
	case RectFaceFront:
		return "front"
	case RectFaceBack:
		return "back"
	case RectFaceLeft:
		return "left"
	case RectFaceRight:
		return "right"
	default:
		return fmt.Sprintf("face(%d)", int(f))
	}
}

func ParseRectFace(s string) (RectFace, error) {
	for _, f := range AllRectFaces {
		if strings.EqualFold(strings.TrimSpace(s), f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("site: unknown cabin face %q", s)
}

// LiftCabinDoorPlacement puts a door entity on one face of a cabin.
type LiftCabinDoorPlacement struct {
	Door    ecs.Entity
	Width   float64
	Shifted float64
}

func NewLiftCabinDoorPlacement(door ecs.Entity, width float64) *LiftCabinDoorPlacement {
	return &LiftCabinDoorPlacement{Door: door, Width: width}
}

// RectCabin is a box cabin. Width runs along Y, Depth along X. Nil optional
// fields fall back to the package defaults.
type RectCabin struct {
	Width         float64
	Depth         float64
	WallThickness *float64
	Gap           *float64
	Shift         float64
	Doors         [len(AllRectFaces)]*LiftCabinDoorPlacement
}

func DefaultRectCabin() *RectCabin {
	return &RectCabin{Width: DefaultCabinWidth, Depth: DefaultCabinDepth}
}

func (c *RectCabin) Thickness() float64 {
	if c.WallThickness != nil {
		return *c.WallThickness
	}
	return DefaultCabinWallThickness
}

func (c *RectCabin) GapOrDefault() float64 {
	if c.Gap != nil {
		return *c.Gap
	}
	return DefaultCabinGap
}

func (c *RectCabin) Door(face RectFace) *LiftCabinDoorPlacement {
	if face < 0 || int(face) >= len(c.Doors) {
		return nil
	}
	return c.Doors[face]
}

func (c *RectCabin) SetDoor(face RectFace, p *LiftCabinDoorPlacement) {
	if face < 0 || int(face) >= len(c.Doors) {
		return
	}
	c.Doors[face] = p
}

// RemoveDoor clears every face holding door and reports whether any did.
func (c *RectCabin) RemoveDoor(door ecs.Entity) bool {
	removed := false
	for i, p := range c.Doors {
		if p != nil && p.Door == door {
			c.Doors[i] = nil
			removed = true
		}
	}
	return removed
}

// FaceOf returns the face holding door.
func (c *RectCabin) FaceOf(door ecs.Entity) (RectFace, bool) {
	for _, f := range AllRectFaces {
		if p := c.Doors[f]; p != nil && p.Door == door {
			return f, true
		}
	}
	return 0, false
}

// NewDoorWidth is the width given to a freshly fabricated door.
func (c *RectCabin) NewDoorWidth() float64 {
	return math.Min(c.Width, c.Depth) / 2
}

// Aabb is the inner floor of the cabin in the lift frame.
func (c *RectCabin) Aabb() geometry.Aabb {
	return geometry.Aabb{
		Center:      geometry.V3(-c.Depth/2-c.Thickness()-c.GapOrDefault(), c.Shift, 0),
		HalfExtents: geometry.V3(c.Depth/2, c.Width/2, 0),
	}
}

// CabinTransform places the cabin frame, whose origin is the centre of the
// cabin floor, inside the lift frame.
func (c *RectCabin) CabinTransform() geometry.Transform {
	return geometry.FromTranslation(c.Aabb().Center)
}

// faceFrame returns, in the cabin frame, the centre of the outer wall surface
// of face, its outward normal and half the inner length of the face.
func (c *RectCabin) faceFrame(face RectFace) (center, normal cp.Vector, half float64) {
	var mid cp.Vector
	hx, hy, t := c.Depth/2, c.Width/2, c.Thickness()
	switch face {
	case RectFaceFront:
		normal, half = cp.Vector{X: 1}, hy
		center = mid.Add(cp.Vector{X: hx + t})
	case RectFaceBack:
		normal, half = cp.Vector{X: -1}, hy
		center = mid.Sub(cp.Vector{X: hx + t})
	case RectFaceLeft:
		normal, half = cp.Vector{Y: 1}, hx
		center = mid.Add(cp.Vector{Y: hy + t})
	default:
		normal, half = cp.Vector{Y: -1}, hx
		center = mid.Sub(cp.Vector{Y: hy + t})
	}
	return center, normal, half
}

// LevelDoorAnchors returns the two anchors spanning the door on face, in the
// cabin frame.
func (c *RectCabin) LevelDoorAnchors(face RectFace) ([2]Anchor, bool) {
	p := c.Door(face)
	if p == nil {
		return [2]Anchor{}, false
	}
	return c.PlacementAnchors(face, *p), true
}

// PlacementAnchors returns the two anchors p would span on face, in the
// cabin frame, whether or not p is placed yet.
func (c *RectCabin) PlacementAnchors(face RectFace, p LiftCabinDoorPlacement) [2]Anchor {
	center, normal, _ := c.faceFrame(face)
	tangent := normal.Perp()
	mid := center.Add(tangent.Mult(p.Shifted))
	start := mid.Add(tangent.Mult(p.Width / 2))
	end := mid.Sub(tangent.Mult(p.Width / 2))
	return [2]Anchor{Anchor2D(start.X, start.Y), Anchor2D(end.X, end.Y)}
}

// DoormatRegion is a per-face hit region outside the cabin, in the cabin
// frame. Door is zero when no door currently occupies the face.
type DoormatRegion struct {
	Face RectFace
	Door ecs.Entity
	Aabb geometry.Aabb
}

// LevelDoormats lays one mat of the given thickness outside every face. Faces
// without a door use the recalled door width, or the default new-door width.
func (c *RectCabin) LevelDoormats(thickness float64, recall *RecallLiftCabin) []DoormatRegion {
	out := make([]DoormatRegion, 0, len(AllRectFaces))
	for _, face := range AllRectFaces {
		var door ecs.Entity
		width, shifted := c.NewDoorWidth(), 0.0
		if p := c.Door(face); p != nil {
			door, width, shifted = p.Door, p.Width, p.Shifted
		} else if r := recall.RectDoor(face); r != nil {
			width, shifted = r.Width, r.Shifted
		}

		center, normal, _ := c.faceFrame(face)
		tangent := normal.Perp()
		mid := center.Add(normal.Mult(thickness / 2)).Add(tangent.Mult(shifted))
		ext := normal.Mult(thickness / 2).Add(tangent.Mult(width / 2))
		out = append(out, DoormatRegion{
			Face: face,
			Door: door,
			Aabb: geometry.Aabb{
				Center:      geometry.FromPlanar(mid, 0),
				HalfExtents: geometry.V3(math.Abs(ext.X), math.Abs(ext.Y), 0),
			},
		})
	}
	return out
}

// WallCoordinates returns the centreline segments of the cabin walls in the
// cabin frame, leaving an opening wherever a door is placed.
func (c *RectCabin) WallCoordinates() [][2]geometry.Vec3 {
	t := c.Thickness()
	var out [][2]geometry.Vec3
	for _, face := range AllRectFaces {
		center, normal, half := c.faceFrame(face)
		mid := center.Sub(normal.Mult(t / 2))
		tangent := normal.Perp()
		reach := half + t

		cuts := [][2]float64{{-reach, reach}}
		if p := c.Door(face); p != nil {
			lo := math.Max(-reach, p.Shifted-p.Width/2)
			hi := math.Min(reach, p.Shifted+p.Width/2)
			cuts = [][2]float64{{-reach, lo}, {hi, reach}}
		}
		for _, cut := range cuts {
			if cut[1]-cut[0] <= 1e-6 {
				continue
			}
			a := mid.Add(tangent.Mult(cut[0]))
			b := mid.Add(tangent.Mult(cut[1]))
			out = append(out, [2]geometry.Vec3{geometry.FromPlanar(a, 0), geometry.FromPlanar(b, 0)})
		}
	}
	return out
}
