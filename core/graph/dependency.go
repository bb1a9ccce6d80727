// Package graph indexes the prerequisite rules between services.
// The graph is built once from configuration and never mutated.
package graph

import (
	"service-basket/core/types"
)

// DependencyGraph answers "which mains gate this service" and
// "which subs does this main gate". Safe for concurrent readers.
type DependencyGraph struct {
	mains    map[types.Service][]types.Service
	subs     map[types.Service][]types.Service
	services []types.Service
}

// NewDependencyGraph indexes the rules in declaration order.
// A main declared in several rules has its subs merged.
func NewDependencyGraph(rules []types.DependencyRule) *DependencyGraph {
	g := &DependencyGraph{
		mains: make(map[types.Service][]types.Service),
		subs:  make(map[types.Service][]types.Service),
	}

	seen := make(map[types.Service]bool)
	note := func(s types.Service) {
		if !seen[s] {
			seen[s] = true
			g.services = append(g.services, s)
		}
	}

	for _, rule := range rules {
		note(rule.Main)
		for _, sub := range rule.Subs {
			note(sub)
			g.subs[rule.Main] = appendUnique(g.subs[rule.Main], sub)
			g.mains[sub] = appendUnique(g.mains[sub], rule.Main)
		}
	}

	return g
}

// MainServicesOf returns every main that lists s as a sub.
// Empty when s is unconstrained.
func (g *DependencyGraph) MainServicesOf(s types.Service) []types.Service {
	return clone(g.mains[s])
}

// SubServicesOf returns the subs gated behind s
func (g *DependencyGraph) SubServicesOf(s types.Service) []types.Service {
	return clone(g.subs[s])
}

// IsConstrained reports whether s has at least one main
func (g *DependencyGraph) IsConstrained(s types.Service) bool {
	return len(g.mains[s]) > 0
}

// Services returns every service named by a rule, in declaration order
func (g *DependencyGraph) Services() []types.Service {
	return clone(g.services)
}

// Rules rebuilds the normalized rule list, one rule per main
func (g *DependencyGraph) Rules() []types.DependencyRule {
	rules := make([]types.DependencyRule, 0, len(g.services))
	for _, s := range g.services {
		rules = append(rules, types.DependencyRule{Main: s, Subs: g.SubServicesOf(s)})
	}
	return rules
}

func appendUnique(list []types.Service, s types.Service) []types.Service {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

func clone(list []types.Service) []types.Service {
	if len(list) == 0 {
		return nil
	}
	out := make([]types.Service, len(list))
	copy(out, list)
	return out
}
