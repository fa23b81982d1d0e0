package site

import (
	"fmt"
	"strings"

	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
)

type DoorKind int

const (
	DoorDoubleSliding DoorKind = iota
	DoorSingleSliding
	DoorDoubleSwing
	DoorSingleSwing
)

func (k DoorKind) String() string {
	switch k {
	case DoorDoubleSliding:
		return "double_sliding"
	case DoorSingleSliding:
		return "single_sliding"
	case DoorDoubleSwing:
		return "double_swing"
	case DoorSingleSwing:
		return "single_swing"
	default:
		return "unknown"
	}
}

// ParseDoorKind reads the name produced by DoorKind.String. An empty name is
// a double sliding door.
func ParseDoorKind(s string) (DoorKind, error) {
	if strings.TrimSpace(s) == "" {
		return DoorDoubleSliding, nil
	}
	for _, k := range []DoorKind{DoorDoubleSliding, DoorSingleSliding, DoorDoubleSwing, DoorSingleSwing} {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("site: unknown door kind %q", s)
}

type DoorType struct {
	Kind DoorKind
	// LeftRightRatio splits double doors; 1 means equal panels.
	LeftRightRatio float64
}

func DefaultDoubleSlidingDoor() *DoorType {
	return &DoorType{Kind: DoorDoubleSliding, LeftRightRatio: 1}
}

var DoorTypeComponent = component.NewComponent[DoorType]()

type LiftCabinDoorMarker struct{}

var LiftCabinDoorMarkerComponent = component.NewComponent[LiftCabinDoorMarker]()

// LevelVisits is the set of levels at which a cabin door is reachable.
type LevelVisits struct {
	entitySet
}

func NewLevelVisits(levels ...ecs.Entity) *LevelVisits {
	return &LevelVisits{entitySet: newEntitySet(levels...)}
}

var LevelVisitsComponent = component.NewComponent[LevelVisits]()
