package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	var zero T
	registerName(id, fmt.Sprintf("%T", zero))
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) String() string {
	return k.id.String()
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

type ComponentID uint32

var nextComponentID atomic.Uint32

var componentNames atomic.Pointer[map[ComponentID]string]

func registerName(id ComponentID, name string) {
	for {
		old := componentNames.Load()
		next := make(map[ComponentID]string, 1)
		if old != nil {
			for k, v := range *old {
				next[k] = v
			}
		}
		next[id] = name
		if componentNames.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (id ComponentID) String() string {
	if names := componentNames.Load(); names != nil {
		if name, ok := (*names)[id]; ok {
			return name
		}
	}
	return fmt.Sprintf("component#%d", uint32(id))
}
