package site

import (
	"errors"
	"testing"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/geometry"
)

func newTestSite(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	root, err := SpawnSite(w, "test")
	if err != nil {
		t.Fatalf("SpawnSite: %v", err)
	}
	return w, root
}

func TestDeleteAnchorRefusesAnchorsInUse(t *testing.T) {
	w, root := newTestSite(t)
	a, _ := SpawnAnchor(w, root, Anchor2D(0, 0))
	b, _ := SpawnAnchor(w, root, Anchor2D(0, 1))
	lift := ecs.CreateEntity(w)

	edge := Edge{Left: a, Right: b}
	if err := RegisterDependent(w, lift, edge); err != nil {
		t.Fatalf("RegisterDependent: %v", err)
	}
	if err := DeleteAnchor(w, a); !errors.Is(err, ErrAnchorInUse) {
		t.Fatalf("expected ErrAnchorInUse, got %v", err)
	}

	DeregisterDependent(w, lift, edge.Array())
	if err := DeleteAnchor(w, a); err != nil {
		t.Fatalf("DeleteAnchor after deregistering: %v", err)
	}
	if ecs.IsAlive(w, a) {
		t.Fatalf("anchor should be destroyed")
	}
}

func TestSubordinateAnchorsCannotMoveOrBeDeleted(t *testing.T) {
	w, root := newTestSite(t)
	a, _ := SpawnAnchor(w, root, Anchor2D(0, 0))
	if err := ecs.Add(w, a, SubordinateComponent.Kind(), &Subordinate{Owner: root}); err != nil {
		t.Fatalf("add subordinate: %v", err)
	}

	if err := MoveAnchor(w, a, geometry.V3(1, 1, 0)); !errors.Is(err, ErrSubordinateAnchor) {
		t.Fatalf("MoveAnchor: expected ErrSubordinateAnchor, got %v", err)
	}
	if err := DeleteAnchor(w, a); !errors.Is(err, ErrSubordinateAnchor) {
		t.Fatalf("DeleteAnchor: expected ErrSubordinateAnchor, got %v", err)
	}
}

func TestMoveAnchorFlattens2DAnchors(t *testing.T) {
	w, root := newTestSite(t)
	a, _ := SpawnAnchor(w, root, Anchor2D(0, 0))
	if err := MoveAnchor(w, a, geometry.V3(2, 3, 4)); err != nil {
		t.Fatalf("MoveAnchor: %v", err)
	}
	got, _ := ecs.Get(w, a, AnchorComponent.Kind())
	if !got.Point().ApproxEqual(geometry.V3(2, 3, 0), 1e-9) {
		t.Fatalf("expected (2, 3, 0), got %v", got.Point())
	}
	if !ecs.Has(w, a, AnchorMovedComponent.Kind()) {
		t.Fatalf("expected the anchor to be flagged as moved")
	}
}

func TestAnchorPointFollowsParentTransform(t *testing.T) {
	w, root := newTestSite(t)
	group := ecs.CreateEntity(w)
	_ = ecs.Add(w, group, TransformComponent.Kind(), &Transform{Transform: geometry.FromTranslation(geometry.V3(10, 0, 0))})
	if err := ecs.SetParent(w, group, root); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	a, _ := SpawnAnchor(w, group, Anchor2D(1, 2))

	got, err := AnchorPoint(w, a)
	if err != nil {
		t.Fatalf("AnchorPoint: %v", err)
	}
	if !got.ApproxEqual(geometry.V3(11, 2, 0), 1e-9) {
		t.Fatalf("expected (11, 2, 0), got %v", got)
	}
}

func TestDependentsAnyOtherThan(t *testing.T) {
	door, lift := ecs.Entity(5), ecs.Entity(9)
	cases := []struct {
		name string
		deps *Dependents
		want bool
	}{
		{"empty", NewDependents(), false},
		{"only_door", NewDependents(door), false},
		{"door_and_lift", NewDependents(door, lift), true},
		{"zero_value", &Dependents{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.deps.AnyOtherThan(door); got != c.want {
				t.Fatalf("AnyOtherThan = %v, want %v", got, c.want)
			}
		})
	}
}

func TestLevelVisitsIterateInEntityOrder(t *testing.T) {
	v := NewLevelVisits(ecs.Entity(30), ecs.Entity(10), ecs.Entity(20))
	if !v.Insert(ecs.Entity(5)) || v.Insert(ecs.Entity(10)) {
		t.Fatalf("Insert should report only new members")
	}
	got := v.Sorted()
	want := []ecs.Entity{5, 10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if !v.Remove(ecs.Entity(20)) || v.Remove(ecs.Entity(20)) {
		t.Fatalf("Remove should report only present members")
	}
}
