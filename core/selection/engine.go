// Package selection applies select and deselect actions to a basket.
// Every operation is a pure function of (selection, service): the input
// selection is never modified and a changed selection is a fresh slice.
package selection

import (
	"service-basket/core/graph"
	"service-basket/core/types"
)

// Engine enforces the prerequisite rules of a dependency graph
type Engine struct {
	graph *graph.DependencyGraph
}

// NewEngine creates a selection engine over g
func NewEngine(g *graph.DependencyGraph) *Engine {
	if g == nil {
		g = graph.NewDependencyGraph(nil)
	}
	return &Engine{graph: g}
}

// Graph returns the dependency graph the engine enforces
func (e *Engine) Graph() *graph.DependencyGraph {
	return e.graph
}

// CanSelect reports whether s has a satisfied prerequisite.
// Any one present main is enough.
func (e *Engine) CanSelect(sel types.Selection, s types.Service) bool {
	mains := e.graph.MainServicesOf(s)
	return len(mains) == 0 || sel.ContainsAny(mains)
}

// Select appends s to the selection.
// No-op when s is already selected or none of its mains is selected.
func (e *Engine) Select(sel types.Selection, s types.Service) types.Selection {
	if !e.CanSelect(sel, s) || sel.Contains(s) {
		return sel
	}

	next := make(types.Selection, 0, len(sel)+1)
	next = append(next, sel...)
	return append(next, s)
}

// Deselect removes s together with the subs it leaves without any main.
// Removal only cascades downwards, from main to sub.
func (e *Engine) Deselect(sel types.Selection, s types.Service) types.Selection {
	if !sel.Contains(s) {
		return sel
	}

	drop := map[types.Service]bool{s: true}
	for _, orphan := range e.Orphans(sel, s) {
		drop[orphan] = true
	}

	next := make(types.Selection, 0, len(sel))
	for _, v := range sel {
		if !drop[v] {
			next = append(next, v)
		}
	}
	return next
}

// Orphans returns the subs of s that no other selected main still gates
func (e *Engine) Orphans(sel types.Selection, s types.Service) []types.Service {
	var orphans []types.Service
	for _, sub := range e.graph.SubServicesOf(s) {
		if !e.gatedByOther(sel, sub, s) {
			orphans = append(orphans, sub)
		}
	}
	return orphans
}

func (e *Engine) gatedByOther(sel types.Selection, sub, main types.Service) bool {
	for _, m := range e.graph.MainServicesOf(sub) {
		if m != main && sel.Contains(m) {
			return true
		}
	}
	return false
}

// Apply dispatches a single action. Unknown kinds leave sel unchanged.
func (e *Engine) Apply(sel types.Selection, a types.Action) types.Selection {
	switch a.Kind {
	case types.ActionSelect:
		return e.Select(sel, a.Service)
	case types.ActionDeselect:
		return e.Deselect(sel, a.Service)
	default:
		return sel
	}
}

// ApplyAll folds actions over sel in order
func (e *Engine) ApplyAll(sel types.Selection, actions ...types.Action) types.Selection {
	for _, a := range actions {
		sel = e.Apply(sel, a)
	}
	return sel
}

// Valid reports whether every constrained service in sel has a selected
// main and no service appears twice.
func (e *Engine) Valid(sel types.Selection) bool {
	seen := make(map[types.Service]bool, len(sel))
	for _, s := range sel {
		if seen[s] {
			return false
		}
		seen[s] = true
	}
	for _, s := range sel {
		if !e.CanSelect(sel, s) {
			return false
		}
	}
	return true
}
