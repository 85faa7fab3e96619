package tool

import (
	"context"
	"reflect"
	"testing"
)

type stubTool struct {
	name        string
	description string
}

func (s stubTool) Name() string        { return s.name }
func (s stubTool) Description() string { return s.description }
func (s stubTool) Call(_ context.Context, input string) Observation {
	return Success("echo: " + input)
}

func TestRegistry_GetCaseInsensitive(t *testing.T) {
	reg := NewRegistry(stubTool{name: "calculator", description: "does math"})

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact match", "calculator", true},
		{"upper case", "CALCULATOR", true},
		{"mixed case", "Calculator", true},
		{"surrounding whitespace", "  calculator  ", true},
		{"unknown tool", "telescope", false},
		{"empty name", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := reg.Get(tc.query)
			if ok != tc.found {
				t.Errorf("Get(%q) found=%v, want %v", tc.query, ok, tc.found)
			}
		})
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry(
		stubTool{name: "tavily_search"},
		stubTool{name: "calculator"},
	)

	want := []string{"calculator", "tavily_search"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegistry_SpecsCarryDescriptions(t *testing.T) {
	reg := NewRegistry(
		stubTool{name: "calculator", description: "does math"},
		stubTool{name: "tavily_search", description: "searches the web"},
	)

	specs := reg.Specs()
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].Name != "calculator" || specs[0].Description != "does math" {
		t.Errorf("unexpected first spec %+v", specs[0])
	}
	if specs[1].Name != "tavily_search" || specs[1].Description != "searches the web" {
		t.Errorf("unexpected second spec %+v", specs[1])
	}
}

func TestRegistry_DuplicateNameKeepsLast(t *testing.T) {
	reg := NewRegistry(
		stubTool{name: "calculator", description: "first"},
		stubTool{name: "Calculator", description: "second"},
	)

	if reg.Size() != 1 {
		t.Fatalf("expected 1 tool, got %d", reg.Size())
	}
	got, _ := reg.Get("calculator")
	if got.Description() != "second" {
		t.Errorf("expected last registration to win, got %q", got.Description())
	}
}

func TestObservation_Text(t *testing.T) {
	tests := []struct {
		name string
		obs  Observation
		want string
	}{
		{"success", Success("42"), "42"},
		{"failure", Failure(ErrDivisionByZero, "division by zero in %q", "1/0"), `Error (division_by_zero): division by zero in "1/0"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.obs.Text(); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestObservation_IsError(t *testing.T) {
	if Success("ok").IsError() {
		t.Error("success observation must not be an error")
	}
	if !Failure(ErrTimeout, "timed out").IsError() {
		t.Error("failure observation must be an error")
	}
}
