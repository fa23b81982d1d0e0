package site

import (
	"github.com/google/uuid"
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/ecs/component"
)

// IssueKey identifies a validation finding by kind and offending entities.
type IssueKey struct {
	Kind     uuid.UUID
	Entities []ecs.Entity
}

type Issue struct {
	Key   IssueKey
	Brief string
	Hint  string
}

var IssueComponent = component.NewComponent[Issue]()

const ValidateWorkspaceEvent = "validate_workspace"

// ValidateWorkspace asks validators to inspect everything under Root.
type ValidateWorkspace struct {
	Root ecs.Entity
}

func RequestValidation(w *ecs.World, root ecs.Entity) {
	ecs.Emit(w, ValidateWorkspaceEvent, ValidateWorkspace{Root: root})
}

// IssuesUnder returns the issues parented directly under root, in child order.
func IssuesUnder(w *ecs.World, root ecs.Entity) []Issue {
	var out []Issue
	for _, c := range ecs.Children(w, root) {
		if issue, ok := ecs.Get(w, c, IssueComponent.Kind()); ok {
			out = append(out, *issue)
		}
	}
	return out
}
