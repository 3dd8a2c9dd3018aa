package registry

import (
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

type single struct{}

func (single) ID() string    { return "test-single" }
func (single) Title() string { return "Single" }
func (single) Generate(p Params) []core.Note {
	return []core.Note{{TimeMs: p.StartMs, Lane: p.Lanes - 1}}
}

func TestRegisterCreate(t *testing.T) {
	Register(single{})

	if !Exists("test-single") {
		t.Fatal("registered pattern should exist")
	}

	c, err := Create("test-single", Params{Lanes: 3})
	if err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if c.Name != "Single" || c.Source != "builtin" || c.Lanes != 3 {
		t.Errorf("chart = %+v", c)
	}
	if len(c.Notes) != 1 || c.Notes[0] != (core.Note{TimeMs: DefaultStartMs, Lane: 2}) {
		t.Errorf("notes = %v, expected defaults applied", c.Notes)
	}

	found := false
	for _, info := range List() {
		if info.ID == "test-single" && info.Title == "Single" {
			found = true
		}
	}
	if !found {
		t.Error("List() should include the registered pattern")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(single{})
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-pattern", Params{}); err == nil {
		t.Error("Create of unknown pattern should fail")
	}
}

func TestParamsWithDefaults(t *testing.T) {
	p := Params{Count: 8}.WithDefaults()
	want := Params{Lanes: DefaultLanes, Count: 8, StartMs: DefaultStartMs, StepMs: DefaultStepMs}
	if p != want {
		t.Errorf("WithDefaults() = %+v, expected %+v", p, want)
	}
}
