// Package types defines the shared vocabulary of the basket.
// Services and selections plus the rule records that drive pricing.
package types

import (
	"strconv"
	"strings"
)

// Service identifies a bookable service in a catalog
type Service string

// String returns the service name
func (s Service) String() string {
	return string(s)
}

// Year is a pricing year
type Year int

// String returns the year as decimal digits
func (y Year) String() string {
	return strconv.Itoa(int(y))
}

// ParseYear parses a year from its decimal form
func ParseYear(s string) (Year, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return Year(n), nil
}

// DependencyRule gates Subs behind Main.
// A sub may only be selected while Main is selected.
type DependencyRule struct {
	// Main is the prerequisite service
	Main Service `json:"mainService" yaml:"mainService"`

	// Subs are the services gated behind Main
	Subs []Service `json:"subServices" yaml:"subServices"`
}

// ActionKind is the kind of selection mutation
type ActionKind string

const (
	// ActionSelect adds a service
	ActionSelect ActionKind = "Select"

	// ActionDeselect removes a service and its orphaned sub-services
	ActionDeselect ActionKind = "Deselect"
)

// Action is a single selection mutation
type Action struct {
	Kind    ActionKind `json:"type"`
	Service Service    `json:"service"`
}

// Select builds a select action
func Select(s Service) Action {
	return Action{Kind: ActionSelect, Service: s}
}

// Deselect builds a deselect action
func Deselect(s Service) Action {
	return Action{Kind: ActionDeselect, Service: s}
}

// String renders the action as +Service or -Service
func (a Action) String() string {
	if a.Kind == ActionDeselect {
		return "-" + string(a.Service)
	}
	return "+" + string(a.Service)
}

// Selection is an ordered, duplicate-free list of chosen services.
// Insertion order is significant for pricing.
type Selection []Service

// Contains reports whether svc is selected
func (s Selection) Contains(svc Service) bool {
	for _, v := range s {
		if v == svc {
			return true
		}
	}
	return false
}

// ContainsAny reports whether at least one of svcs is selected
func (s Selection) ContainsAny(svcs []Service) bool {
	for _, svc := range svcs {
		if s.Contains(svc) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every one of svcs is selected.
// An empty svcs is trivially contained.
func (s Selection) ContainsAll(svcs []Service) bool {
	for _, svc := range svcs {
		if !s.Contains(svc) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with s
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	copy(out, s)
	return out
}

// Equal compares two selections element by element.
// A nil selection equals an empty one.
func (s Selection) Equal(other Selection) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the selection as a bracketed list
func (s Selection) String() string {
	names := make([]string, len(s))
	for i, svc := range s {
		names[i] = string(svc)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
