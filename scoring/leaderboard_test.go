package scoring

import "testing"

func TestRank_SortsAndNumbersSequentially(t *testing.T) {
	rows := []RowInput{
		{Username: "a", Points: 40},
		{Username: "b", Points: 90},
		{Username: "c", Points: 40},
		{Username: "d", Points: 10},
	}

	ranked := Rank(rows)

	if len(ranked) != len(rows) {
		t.Fatalf("len = %d, want %d", len(ranked), len(rows))
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, r.Rank, i+1)
		}
	}
	wantOrder := []string{"b", "a", "c", "d"}
	for i, want := range wantOrder {
		if ranked[i].Username != want {
			t.Errorf("position %d = %q, want %q (stable tie-break)", i, ranked[i].Username, want)
		}
	}
}

func TestRank_EmptyInput(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("Rank(nil) len = %d, want 0", len(got))
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	rows := []RowInput{{Username: "low", Points: 1}, {Username: "high", Points: 9}}
	Rank(rows)
	if rows[0].Username != "low" {
		t.Errorf("input reordered in place: %+v", rows)
	}
}

func TestMergeRows_SelfAlwaysPresent(t *testing.T) {
	self := RowInput{Username: "nina", DisplayName: "Nina", Points: 70}
	others := []RowInput{
		{Username: "rival1", DisplayName: "Rival One", Points: 80},
	}

	merged := MergeRows(self, others)

	if len(merged) != 2 {
		t.Fatalf("len = %d, want 2", len(merged))
	}
	last := merged[1]
	if last.Username != "nina" || !last.IsSelf {
		t.Errorf("self row = %+v, want nina with IsSelf", last)
	}
}

func TestMergeRows_CollisionKeepsBothRows(t *testing.T) {
	self := RowInput{Username: "nina", DisplayName: "Nina", Points: 70}
	others := []RowInput{
		{Username: "nina", DisplayName: "Other Nina", Points: 55},
	}

	merged := MergeRows(self, others)

	if len(merged) != 2 {
		t.Fatalf("len = %d, want 2 (stored row plus disambiguated self)", len(merged))
	}
	if merged[0].Username != "nina" {
		t.Errorf("stored row = %+v, must survive untouched", merged[0])
	}
	if merged[1].Username != "nina~self" || !merged[1].IsSelf {
		t.Errorf("self row = %+v, want suffixed nina~self", merged[1])
	}
}

func TestMergeRows_EqualPointsStoredRowRanksFirst(t *testing.T) {
	self := RowInput{Username: "nina", Points: 60}
	others := []RowInput{{Username: "rival", Points: 60}}

	ranked := Rank(MergeRows(self, others))

	if ranked[0].Username != "rival" || ranked[0].Rank != 1 {
		t.Errorf("top row = %+v, want stored rival first on equal points", ranked[0])
	}
	if ranked[1].Username != "nina" || ranked[1].Rank != 2 {
		t.Errorf("second row = %+v, want self at rank 2", ranked[1])
	}
}
