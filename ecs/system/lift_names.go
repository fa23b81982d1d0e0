package system

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/milk9111/siteeditor/ecs"
	"github.com/milk9111/siteeditor/site"
)

// DuplicatedLiftNameIssueUUID identifies issues raised for lifts sharing a name.
var DuplicatedLiftNameIssueUUID = uuid.MustParse("307e8182-2d8d-4b62-b20f-2503955f1032")

const duplicatedLiftNameHint = "Lifts use their names as identifiers with RMF and each lift should " +
	"have a unique name, rename the affected lifts"

// LiftNameSystem answers validation requests by reporting every name held by
// more than one lift under the requested root. With ReplacePrevious set, the
// root's earlier duplicate-name issues are discarded first.
type LiftNameSystem struct {
	ReplacePrevious bool
	OnError         ErrorHandler
}

func NewLiftNameSystem() *LiftNameSystem { return &LiftNameSystem{} }

func (s *LiftNameSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, req := range ecs.ReadEvents[site.ValidateWorkspace](w, site.ValidateWorkspaceEvent) {
		if s.ReplacePrevious {
			clearIssues(w, req.Root, DuplicatedLiftNameIssueUUID)
		}
		for _, issue := range DuplicatedLiftNames(w, req.Root) {
			e := ecs.CreateEntity(w)
			if err := ecs.Add(w, e, site.IssueComponent.Kind(), &issue); err != nil {
				report(s.OnError, "lift names", err)
				continue
			}
			if err := ecs.SetParent(w, e, req.Root); err != nil {
				ecs.DestroyEntity(w, e)
				report(s.OnError, "lift names", fmt.Errorf("attach issue to %v: %w", req.Root, err))
			}
		}
	}
}

// DuplicatedLiftNames builds one issue per name shared by two or more lifts
// below root, ordered by name.
func DuplicatedLiftNames(w *ecs.World, root ecs.Entity) []site.Issue {
	names := make(map[string][]ecs.Entity)
	ecs.ForEach2(w, site.LiftCabinComponent.Kind(), site.NameInSiteComponent.Kind(), func(e ecs.Entity, _ *site.LiftCabin, name *site.NameInSite) {
		if ecs.IsDescendantOf(w, e, root) {
			names[name.Name] = append(names[name.Name], e)
		}
	})

	keys := make([]string, 0, len(names))
	for name := range names {
		keys = append(keys, name)
	}
	slices.Sort(keys)

	var out []site.Issue
	for _, name := range keys {
		lifts := names[name]
		if len(lifts) < 2 {
			continue
		}
		slices.SortFunc(lifts, ecs.Compare)
		out = append(out, site.Issue{
			Key:   site.IssueKey{Kind: DuplicatedLiftNameIssueUUID, Entities: lifts},
			Brief: fmt.Sprintf("Multiple lifts found with the same name %s", name),
			Hint:  duplicatedLiftNameHint,
		})
	}
	return out
}

func clearIssues(w *ecs.World, root ecs.Entity, kind uuid.UUID) {
	for _, c := range ecs.Children(w, root) {
		if issue, ok := ecs.Get(w, c, site.IssueComponent.Kind()); ok && issue.Key.Kind == kind {
			ecs.DespawnRecursive(w, c)
		}
	}
}
