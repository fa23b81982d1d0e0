package site

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/geometry"
)

func TestNewDoorWidthIsHalfTheShortSide(t *testing.T) {
	cases := []struct {
		width, depth, want float64
	}{
		{1.5, 1.65, 0.75},
		{2, 1, 0.5},
		{1, 1, 0.5},
	}
	for _, c := range cases {
		cabin := &RectCabin{Width: c.width, Depth: c.depth}
		if got := cabin.NewDoorWidth(); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("NewDoorWidth(%g x %g) = %g, want %g", c.width, c.depth, got, c.want)
		}
	}
}

func TestLevelDoorAnchors(t *testing.T) {
	cabin := DefaultRectCabin()
	if _, ok := cabin.LevelDoorAnchors(RectFaceFront); ok {
		t.Fatalf("expected no anchors without a door")
	}

	cabin.SetDoor(RectFaceFront, NewLiftCabinDoorPlacement(ecs.Entity(1), 0.75))
	cabin.SetDoor(RectFaceLeft, &LiftCabinDoorPlacement{Door: ecs.Entity(2), Width: 0.5, Shifted: 0.1})

	cases := []struct {
		face       RectFace
		start, end geometry.Vec3
	}{
		{RectFaceFront, geometry.V3(0.925, 0.375, 0), geometry.V3(0.925, -0.375, 0)},
		{RectFaceLeft, geometry.V3(-0.35, 0.85, 0), geometry.V3(0.15, 0.85, 0)},
	}
	for _, c := range cases {
		t.Run(c.face.String(), func(t *testing.T) {
			anchors, ok := cabin.LevelDoorAnchors(c.face)
			if !ok {
				t.Fatalf("expected anchors for %v", c.face)
			}
			if !anchors[0].Point().ApproxEqual(c.start, 1e-9) || !anchors[1].Point().ApproxEqual(c.end, 1e-9) {
				t.Fatalf("anchors = %v %v, want %v %v", anchors[0].Point(), anchors[1].Point(), c.start, c.end)
			}
		})
	}
}

func TestLevelDoormatsUseDoorRecallOrDefault(t *testing.T) {
	cabin := DefaultRectCabin()
	door := ecs.Entity(7)
	cabin.SetDoor(RectFaceFront, NewLiftCabinDoorPlacement(door, 0.6))
	recall := &RecallLiftCabin{}
	recall.Doors[RectFaceBack] = NewLiftCabinDoorPlacement(ecs.Entity(8), 0.4)

	mats := cabin.LevelDoormats(0.3, recall)
	if len(mats) != len(AllRectFaces) {
		t.Fatalf("expected one mat per face, got %d", len(mats))
	}

	byFace := make(map[RectFace]DoormatRegion)
	for _, m := range mats {
		byFace[m.Face] = m
	}

	front := byFace[RectFaceFront]
	if front.Door != door {
		t.Fatalf("front mat should reference door %v, got %v", door, front.Door)
	}
	if !front.Aabb.Center.ApproxEqual(geometry.V3(1.075, 0, 0), 1e-9) {
		t.Fatalf("front mat center = %v", front.Aabb.Center)
	}
	if math.Abs(front.Aabb.HalfExtents.Y-0.3) > 1e-9 || math.Abs(front.Aabb.HalfExtents.X-0.15) > 1e-9 {
		t.Fatalf("front mat half extents = %v", front.Aabb.HalfExtents)
	}
	if !front.Aabb.ContainsPlanar(cp.Vector{X: 1.1, Y: 0.2}) || front.Aabb.ContainsPlanar(cp.Vector{X: 0.9, Y: 0}) {
		t.Fatalf("front mat region misplaced: %v", front.Aabb)
	}

	if back := byFace[RectFaceBack]; back.Door.Valid() || math.Abs(back.Aabb.HalfExtents.Y-0.2) > 1e-9 {
		t.Fatalf("back mat should use the recalled width without a door, got %+v", back)
	}
	if right := byFace[RectFaceRight]; math.Abs(right.Aabb.HalfExtents.X-cabin.NewDoorWidth()/2) > 1e-9 {
		t.Fatalf("right mat should use the default door width, got %v", right.Aabb.HalfExtents)
	}
}

func TestWallCoordinatesLeaveDoorOpening(t *testing.T) {
	cabin := DefaultRectCabin()
	if n := len(cabin.WallCoordinates()); n != 4 {
		t.Fatalf("expected 4 walls without doors, got %d", n)
	}
	cabin.SetDoor(RectFaceFront, NewLiftCabinDoorPlacement(ecs.Entity(1), 0.75))
	walls := cabin.WallCoordinates()
	if len(walls) != 5 {
		t.Fatalf("expected the front wall split in two, got %d walls", len(walls))
	}
	for _, wall := range walls {
		for _, p := range wall {
			if math.Abs(p.X-0.875) < 1e-9 && math.Abs(p.Y) < 0.375-1e-9 {
				t.Fatalf("wall endpoint %v lies inside the door opening", p)
			}
		}
	}
}

func TestRemoveDoorClearsEveryFaceHoldingIt(t *testing.T) {
	cabin := DefaultRectCabin()
	door := ecs.Entity(3)
	cabin.SetDoor(RectFaceFront, NewLiftCabinDoorPlacement(door, 0.5))
	if face, ok := cabin.FaceOf(door); !ok || face != RectFaceFront {
		t.Fatalf("FaceOf = %v %v", face, ok)
	}
	if !cabin.RemoveDoor(door) {
		t.Fatalf("expected RemoveDoor to report removal")
	}
	if cabin.Door(RectFaceFront) != nil {
		t.Fatalf("front face should be empty")
	}
	if cabin.RemoveDoor(door) {
		t.Fatalf("second removal should report nothing removed")
	}
}

func TestParseRectFace(t *testing.T) {
	for _, f := range AllRectFaces {
		got, err := ParseRectFace(" " + f.String())
		if err != nil || got != f {
			t.Fatalf("ParseRectFace(%q) = %v, %v", f.String(), got, err)
		}
	}
	if _, err := ParseRectFace("top"); err == nil {
		t.Fatalf("expected error for unknown face")
	}
}
