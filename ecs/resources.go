package ecs

import "reflect"

// SetResource stores a world-wide singleton keyed by its type, replacing any
// previous value of the same type.
func SetResource[T any](w *World, value *T) {
	if w == nil || value == nil {
		return
	}
	w.resources[reflect.TypeFor[T]()] = value
}

func Resource[T any](w *World) (*T, bool) {
	if w == nil {
		return nil, false
	}
	v, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

func RemoveResource[T any](w *World) {
	if w == nil {
		return
	}
	delete(w.resources, reflect.TypeFor[T]())
}
