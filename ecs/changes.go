package ecs

import "github.com/milk9111/siteeditor/ecs/component"

// changeLog double-buffers added/removed component records so every system
// observes each change exactly once, in the tick following the one in which it
// happened (or the first tick after an out-of-tick edit).
type changeLog struct {
	pendingAdded   map[component.ComponentID][]Entity
	pendingRemoved map[component.ComponentID][]Entity
	added          map[component.ComponentID][]Entity
	removed        map[component.ComponentID][]Entity
}

func (c *changeLog) recordAdded(id component.ComponentID, e Entity) {
	if c.pendingAdded == nil {
		c.pendingAdded = make(map[component.ComponentID][]Entity)
	}
	c.pendingAdded[id] = append(c.pendingAdded[id], e)
}

func (c *changeLog) recordRemoved(id component.ComponentID, e Entity) {
	if c.pendingRemoved == nil {
		c.pendingRemoved = make(map[component.ComponentID][]Entity)
	}
	c.pendingRemoved[id] = append(c.pendingRemoved[id], e)
}

func (c *changeLog) swap() {
	c.added, c.pendingAdded = c.pendingAdded, nil
	c.removed, c.pendingRemoved = c.pendingRemoved, nil
}
