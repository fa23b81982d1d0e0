package site

import (
	"errors"
	"testing"

	"github.com/milk9111/siteeditor/ecs"
)

func TestSpawnCabinDoorClaimsFaceWhenComplete(t *testing.T) {
	w, root := newTestSite(t)
	level, _ := SpawnLevel(w, root, "L1", 0)
	a, _ := SpawnAnchor(w, root, Anchor2D(0, 0))
	b, _ := SpawnAnchor(w, root, Anchor2D(0, -1.5))
	lift, err := SpawnLift(w, root, "lift", Edge{Left: a, Right: b}, nil)
	if err != nil {
		t.Fatalf("SpawnLift: %v", err)
	}
	cabin, _ := ecs.Get(w, lift, LiftCabinComponent.Kind())

	door, err := SpawnCabinDoor(w, lift, RectFaceFront, 0.75, 0, level)
	if err != nil {
		t.Fatalf("SpawnCabinDoor: %v", err)
	}
	p := cabin.Rect.Door(RectFaceFront)
	if p == nil || p.Door != door || p.Width != 0.75 {
		t.Fatalf("expected the front face to hold door %v, got %+v", door, p)
	}
	edge, ok := ecs.Get(w, door, EdgeComponent.Kind())
	if !ok {
		t.Fatalf("placed door has no edge")
	}
	want, _ := cabin.Rect.LevelDoorAnchors(RectFaceFront)
	for i, e := range edge.Array() {
		got, ok := ecs.Get(w, e, AnchorComponent.Kind())
		if !ok || *got != want[i] {
			t.Fatalf("door anchor %d = %+v, want %+v", i, got, want[i])
		}
		if deps, _ := ecs.Get(w, e, DependentsComponent.Kind()); deps == nil || !deps.Contains(door) {
			t.Fatalf("door anchor %v should list the door", e)
		}
	}

	cases := []struct {
		name string
		face RectFace
		want error
	}{
		{"occupied_face", RectFaceFront, ErrFaceOccupied},
		{"unknown_face", RectFace(len(AllRectFaces)), nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			before := len(ecs.Query(w, LiftCabinDoorMarkerComponent.Kind().ID()))
			_, err := SpawnCabinDoor(w, lift, c.face, 0.5, 0, level)
			if err == nil || (c.want != nil && !errors.Is(err, c.want)) {
				t.Fatalf("expected an error wrapping %v, got %v", c.want, err)
			}
			if got := cabin.Rect.Door(RectFaceFront); got == nil || got.Door != door {
				t.Fatalf("front placement changed to %+v", got)
			}
			if after := len(ecs.Query(w, LiftCabinDoorMarkerComponent.Kind().ID())); after != before {
				t.Fatalf("expected no new door, had %d now %d", before, after)
			}
		})
	}
}

func TestSpawnCabinDoorWithoutCabin(t *testing.T) {
	w, _ := newTestSite(t)
	lift := ecs.CreateEntity(w)
	if _, err := SpawnCabinDoor(w, lift, RectFaceBack, 0.5, 0); !errors.Is(err, ErrMissingCabin) {
		t.Fatalf("expected ErrMissingCabin, got %v", err)
	}
}
