package timeline

import (
	"sort"

	"github.com/danielbloch/gantry/internal/domain"
)

// Flatten turns a flat task list into the canonical display order: a
// pre-order depth-first traversal of the parent hierarchy, each entry
// annotated with its depth.
//
// A task whose ParentID is nil or does not resolve to another task in the
// set is a root. Roots and sibling groups are ordered by start date
// ascending, ties broken by original input order, so the result is
// deterministic for a given input. Hierarchy always dominates chronology:
// a child is emitted directly under its parent even when an unrelated
// task has an earlier start date.
//
// Cyclic parent chains on malformed data cannot recurse forever: a
// visited set cuts every cycle, and tasks stranded inside one are emitted
// as roots so no task is ever dropped from the output.
func Flatten(tasks []domain.Task) []domain.HierarchicalTask {
	if len(tasks) == 0 {
		return nil
	}

	byID := make(map[string]int, len(tasks))
	for i, t := range tasks {
		byID[t.ID] = i
	}

	// Group children by resolved parent. Unresolvable parents make roots.
	children := make(map[string][]int)
	var roots []int
	for i, t := range tasks {
		if t.ParentID == nil {
			roots = append(roots, i)
			continue
		}
		if _, ok := byID[*t.ParentID]; !ok || *t.ParentID == t.ID {
			roots = append(roots, i)
			continue
		}
		children[*t.ParentID] = append(children[*t.ParentID], i)
	}

	sortByStart := func(idxs []int) {
		sort.SliceStable(idxs, func(a, b int) bool {
			ta, tb := tasks[idxs[a]], tasks[idxs[b]]
			return domain.DateOnly(ta.StartDate).Before(domain.DateOnly(tb.StartDate))
		})
	}
	sortByStart(roots)
	for _, group := range children {
		sortByStart(group)
	}

	out := make([]domain.HierarchicalTask, 0, len(tasks))
	visited := make(map[string]bool, len(tasks))

	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		t := tasks[idx]
		if visited[t.ID] {
			return
		}
		visited[t.ID] = true
		out = append(out, domain.HierarchicalTask{Task: t, Depth: depth})
		for _, child := range children[t.ID] {
			walk(child, depth+1)
		}
	}

	for _, r := range roots {
		walk(r, 0)
	}

	// Tasks stranded in a parent cycle were reachable from no root.
	// Emit each remaining cycle entry point as a root in input order.
	if len(out) < len(tasks) {
		for i, t := range tasks {
			if !visited[t.ID] {
				walk(i, 0)
			}
		}
	}

	return out
}
