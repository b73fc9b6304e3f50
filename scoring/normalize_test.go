package scoring

import (
	"reflect"
	"testing"
)

func TestRaceFromRecord_NumericIDAndFallbacks(t *testing.T) {
	race := RaceFromRecord(map[string]any{
		"id":           float64(7), // decoded JSON number
		"track":        "Monza",
		"date":         "2026-09-06",
		"status":       "closed",
		"resultsOrder": []any{"LEC", "", "NOR"},
	})

	if race.ID != "7" {
		t.Errorf("ID = %q, want 7", race.ID)
	}
	if race.Name != "Monza" {
		t.Errorf("Name = %q, want track fallback Monza", race.Name)
	}
	if race.Weather != "sunny" {
		t.Errorf("Weather = %q, want sunny default", race.Weather)
	}
	if !reflect.DeepEqual(race.ResultsOrder, []string{"LEC", "NOR"}) {
		t.Errorf("ResultsOrder = %v, blanks must be dropped", race.ResultsOrder)
	}
}

func TestRaceFromRecord_DegenerateInput(t *testing.T) {
	race := RaceFromRecord(map[string]any{
		"resultsOrder": "not an array",
	})

	if race.ResultsOrder == nil || len(race.ResultsOrder) != 0 {
		t.Errorf("ResultsOrder = %#v, want empty non-nil slice", race.ResultsOrder)
	}
	if race.Name != "Unnamed Race" || race.Track != "Unknown Track" {
		t.Errorf("fallback names = %q/%q", race.Name, race.Track)
	}
	if race.Status != StatusOpen {
		t.Errorf("Status = %q, want open default", race.Status)
	}
}

func TestTipFromRecord(t *testing.T) {
	tip := TipFromRecord(map[string]any{
		"race_id":    "12",
		"tip_order":  []string{"VER", "", "HAM"},
		"updated_at": "2026-05-01T10:00:00Z",
	})

	if tip.RaceID != "12" {
		t.Errorf("RaceID = %q, want 12", tip.RaceID)
	}
	if !reflect.DeepEqual(tip.Order, []string{"VER", "HAM"}) {
		t.Errorf("Order = %v", tip.Order)
	}
	if tip.UpdatedAt != "2026-05-01T10:00:00Z" {
		t.Errorf("UpdatedAt = %q", tip.UpdatedAt)
	}
}

func TestNormalizeOrder(t *testing.T) {
	cases := []struct {
		in   any
		want []string
	}{
		{[]string{"A", "", "B"}, []string{"A", "B"}},
		{[]any{"A", 3, nil, "B"}, []string{"A", "B"}},
		{"VER,HAM", []string{}},
		{nil, []string{}},
		{42, []string{}},
	}
	for _, c := range cases {
		got := NormalizeOrder(c.in)
		if got == nil {
			t.Errorf("NormalizeOrder(%#v) returned nil", c.in)
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("NormalizeOrder(%#v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRacesFromRecords(t *testing.T) {
	races := RacesFromRecords([]map[string]any{
		{"id": "1", "name": "Bahrain GP"},
		nil,
		{"id": int64(2), "name": "Jeddah GP"},
	})

	if len(races) != 2 {
		t.Fatalf("len = %d, want 2 (nil record dropped)", len(races))
	}
	if races[1].ID != "2" {
		t.Errorf("second ID = %q, want 2", races[1].ID)
	}
}
