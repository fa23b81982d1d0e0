package ecs

import "strconv"

// Entity is a generational handle. The low 32 bits hold the slot id, the high
// 32 bits the slot generation. The zero Entity is never allocated.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	if !e.Valid() {
		return "none"
	}
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

// Less orders entities by slot id, then generation.
func (e Entity) Less(other Entity) bool {
	if e.id() != other.id() {
		return e.id() < other.id()
	}
	return e.generation() < other.generation()
}

// Compare returns -1, 0 or +1 following Less. Usable with slices.SortFunc.
func Compare(a, b Entity) int {
	switch {
	case a == b:
		return 0
	case a.Less(b):
		return -1
	default:
		return 1
	}
}
