package selection_test

import (
	"testing"

	"service-basket/core/catalog"
	"service-basket/core/selection"
	"service-basket/core/types"
)

const (
	photo   = catalog.Photography
	video   = catalog.VideoRecording
	bluray  = catalog.BlurayPackage
	twoDay  = catalog.TwoDayEvent
	session = catalog.WeddingSession
)

func newEngine() *selection.Engine {
	return catalog.Wedding().SelectionEngine()
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		start   types.Selection
		service types.Service
		want    types.Selection
	}{
		{"select into empty", nil, photo, types.Selection{photo}},
		{"select appends", types.Selection{session}, photo, types.Selection{session, photo}},
		{"no duplicates", types.Selection{photo}, photo, types.Selection{photo}},
		{"sub without main", types.Selection{session}, bluray, types.Selection{session}},
		{"sub with its main", types.Selection{video}, bluray, types.Selection{video, bluray}},
		{"sub with first of several mains", types.Selection{photo}, twoDay, types.Selection{photo, twoDay}},
		{"sub with second of several mains", types.Selection{video}, twoDay, types.Selection{video, twoDay}},
		{"sub with other main only", types.Selection{photo}, bluray, types.Selection{photo}},
	}

	e := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Select(tt.start, tt.service)
			if !got.Equal(tt.want) {
				t.Errorf("Select(%v, %s) = %v, want %v", tt.start, tt.service, got, tt.want)
			}
		})
	}
}

func TestDeselect(t *testing.T) {
	tests := []struct {
		name    string
		start   types.Selection
		service types.Service
		want    types.Selection
	}{
		{"deselect only service", types.Selection{photo}, photo, types.Selection{}},
		{"absent service is no-op", types.Selection{photo}, video, types.Selection{photo}},
		{"cascade to orphaned sub", types.Selection{video, bluray}, video, types.Selection{}},
		{"cascade keeps unrelated", types.Selection{session, photo, twoDay}, photo, types.Selection{session}},
		{"no cascade when other main remains", types.Selection{photo, video, twoDay}, photo, types.Selection{video, twoDay}},
		{"partial cascade", types.Selection{photo, video, bluray, twoDay}, video, types.Selection{photo, twoDay}},
		{"sub removal never cascades up", types.Selection{video, bluray}, bluray, types.Selection{video}},
	}

	e := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Deselect(tt.start, tt.service)
			if !got.Equal(tt.want) {
				t.Errorf("Deselect(%v, %s) = %v, want %v", tt.start, tt.service, got, tt.want)
			}
		})
	}
}

// TestInputNotMutated verifies updates never write through the caller's slice
func TestInputNotMutated(t *testing.T) {
	e := newEngine()

	start := make(types.Selection, 3, 8)
	copy(start, types.Selection{photo, video, twoDay})
	snapshot := start.Clone()

	_ = e.Select(start, session)
	_ = e.Deselect(start, photo)
	_ = e.Deselect(start, video)

	if !start.Equal(snapshot) {
		t.Fatalf("Input selection mutated: %v, want %v", start, snapshot)
	}
	if extended := start[:4]; extended[3] == session {
		t.Fatalf("Select wrote into the input's spare capacity")
	}
}

// TestIdempotence verifies select and deselect are idempotent
func TestIdempotence(t *testing.T) {
	e := newEngine()
	all := []types.Service{photo, video, bluray, twoDay, session}
	starts := []types.Selection{
		{},
		{photo},
		{video, bluray},
		{photo, video, twoDay, bluray, session},
	}

	for _, start := range starts {
		for _, s := range all {
			once := e.Select(start, s)
			if twice := e.Select(once, s); !twice.Equal(once) {
				t.Errorf("Select(%s) not idempotent from %v: %v then %v", s, start, once, twice)
			}
			once = e.Deselect(start, s)
			if twice := e.Deselect(once, s); !twice.Equal(once) {
				t.Errorf("Deselect(%s) not idempotent from %v: %v then %v", s, start, once, twice)
			}
		}
	}
}

// TestActionSequencesStayValid folds every short action sequence and checks
// that prerequisites hold and nothing is duplicated after each step
func TestActionSequencesStayValid(t *testing.T) {
	e := newEngine()
	all := []types.Service{photo, video, bluray, twoDay, session}

	var actions []types.Action
	for _, s := range all {
		actions = append(actions, types.Select(s), types.Deselect(s))
	}

	var walk func(sel types.Selection, depth int)
	walk = func(sel types.Selection, depth int) {
		if !e.Valid(sel) {
			t.Fatalf("Invalid selection reached: %v", sel)
		}
		if depth == 0 {
			return
		}
		for _, a := range actions {
			walk(e.Apply(sel, a), depth-1)
		}
	}
	walk(types.Selection{}, 4)
}

func TestApplyAll(t *testing.T) {
	e := newEngine()

	got := e.ApplyAll(nil,
		types.Select(video),
		types.Select(bluray),
		types.Select(twoDay),
		types.Select(photo),
		types.Deselect(video),
	)
	want := types.Selection{twoDay, photo}
	if !got.Equal(want) {
		t.Errorf("ApplyAll = %v, want %v", got, want)
	}
}

func TestApplyUnknownKind(t *testing.T) {
	e := newEngine()
	start := types.Selection{photo}

	got := e.Apply(start, types.Action{Kind: "Toggle", Service: video})
	if !got.Equal(start) {
		t.Errorf("Expected unknown action to be a no-op, got %v", got)
	}
}

func TestValid(t *testing.T) {
	e := newEngine()

	tests := []struct {
		sel  types.Selection
		want bool
	}{
		{types.Selection{}, true},
		{types.Selection{photo, twoDay}, true},
		{types.Selection{twoDay}, false},
		{types.Selection{photo, photo}, false},
		{types.Selection{bluray, video}, true},
	}
	for _, tt := range tests {
		if got := e.Valid(tt.sel); got != tt.want {
			t.Errorf("Valid(%v) = %v, want %v", tt.sel, got, tt.want)
		}
	}
}

func TestNilGraph(t *testing.T) {
	e := selection.NewEngine(nil)
	got := e.Select(nil, "Anything")
	if !got.Equal(types.Selection{"Anything"}) {
		t.Errorf("Expected unconstrained select with nil graph, got %v", got)
	}
}
