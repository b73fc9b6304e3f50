package scoring

import "testing"

func drivers(names ...string) []string { return names }

func TestScoreTip_PerfectTip(t *testing.T) {
	order := drivers("VER", "NOR", "LEC", "PIA", "SAI", "HAM", "RUS", "ALO", "STR", "GAS")

	res := ScoreTip(order, order)

	if res.Exact != 10 || res.Near != 0 || res.InTop != 0 {
		t.Errorf("tallies = %d/%d/%d, want 10/0/0", res.Exact, res.Near, res.InTop)
	}
	if res.Accuracy != 100 {
		t.Errorf("Accuracy = %d, want 100", res.Accuracy)
	}
	// Position table (103) + winner-slot 5 + winner 5 + podium 6.
	if res.Score != 119 {
		t.Errorf("Score = %d, want 119", res.Score)
	}
	if res.BestPick == nil || res.BestPick.Driver != "VER" || res.BestPick.Points != 30 {
		t.Errorf("BestPick = %+v, want VER with 30", res.BestPick)
	}
}

// Regression fixture: official A-E, tip swaps B and C. A exact at the winner
// slot (25+5), C and B near misses (9 and 8 from their predicted slots), D and
// E exact (12, 10), +5 winner bonus, +6 podium-set bonus.
func TestScoreTip_SwappedPodiumFixture(t *testing.T) {
	res := ScoreTip(drivers("A", "C", "B", "D", "E"), drivers("A", "B", "C", "D", "E"))

	if res.Score != 80 {
		t.Errorf("Score = %d, want 80", res.Score)
	}
	if res.Exact != 3 || res.Near != 2 || res.InTop != 0 {
		t.Errorf("tallies = %d/%d/%d, want 3/2/0", res.Exact, res.Near, res.InTop)
	}
	if res.Accuracy != 60 {
		t.Errorf("Accuracy = %d, want 60", res.Accuracy)
	}
	if res.BestPick == nil || res.BestPick.Driver != "A" || res.BestPick.Points != 30 {
		t.Errorf("BestPick = %+v, want A with 30", res.BestPick)
	}
}

func TestScoreTip_EmptyInputs(t *testing.T) {
	for name, res := range map[string]ScoreResult{
		"empty tip":      ScoreTip(nil, drivers("A", "B")),
		"empty official": ScoreTip(drivers("A", "B"), nil),
		"both empty":     ScoreTip(nil, nil),
	} {
		if res.Score != 0 || res.Exact != 0 || res.Near != 0 || res.InTop != 0 {
			t.Errorf("%s: non-zero result %+v", name, res)
		}
		if res.Accuracy != 0 {
			t.Errorf("%s: Accuracy = %d, want 0", name, res.Accuracy)
		}
		if res.BestPick != nil {
			t.Errorf("%s: BestPick = %+v, want nil", name, res.BestPick)
		}
	}
}

func TestScoreTip_MissingDriverCountsNowhere(t *testing.T) {
	// X is not in the official order: no points, no tally.
	res := ScoreTip(drivers("A", "X"), drivers("A", "B", "C"))

	if got := res.Exact + res.Near + res.InTop; got != 1 {
		t.Errorf("tally total = %d, want 1 (only A)", got)
	}
	if res.Score != 25+5+5 {
		t.Errorf("Score = %d, want 35", res.Score)
	}
}

func TestScoreTip_TallyBound(t *testing.T) {
	cases := [][2][]string{
		{drivers("A", "B", "C"), drivers("C", "B", "A", "D")},
		{drivers("A", "A", "A"), drivers("A", "B")},
		{drivers("Z", "Y"), drivers("A", "B", "C")},
		{drivers("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"), drivers("J", "I", "H", "G", "F", "E", "D", "C", "B", "A")},
	}
	for _, c := range cases {
		res := ScoreTip(c[0], c[1])
		limit := min(min(len(c[0]), 10), min(len(c[1]), 10))
		if got := res.Exact + res.Near + res.InTop; got > limit {
			t.Errorf("ScoreTip(%v, %v): tallies %d exceed compared length %d", c[0], c[1], got, limit)
		}
	}
}

func TestScoreTip_PodiumBonusIgnoresOrder(t *testing.T) {
	// Rotated podium: zero exact slots, the set bonus still applies.
	res := ScoreTip(drivers("B", "C", "A"), drivers("A", "B", "C"))

	if res.Exact != 0 {
		t.Errorf("Exact = %d, want 0", res.Exact)
	}
	// B near from slot 0 (13), C near from slot 1 (9), A in-top (3), podium +6.
	if res.Score != 31 {
		t.Errorf("Score = %d, want 31", res.Score)
	}

	// Two of three podium drivers is not enough: B and A near (13 + 9), no bonus.
	partial := ScoreTip(drivers("B", "A", "X"), drivers("A", "B", "C"))
	if partial.Score != 22 {
		t.Errorf("partial podium Score = %d, want 22 (no bonus)", partial.Score)
	}
}

func TestScoreTip_WinnerBonusUnaffectedByTail(t *testing.T) {
	official := drivers("A", "B", "C", "D", "E")
	a := ScoreTip(drivers("A", "B", "C", "D", "E"), official)
	b := ScoreTip(drivers("A", "E", "D", "C", "B"), official)
	c := ScoreTip(drivers("B", "A", "C", "D", "E"), official)

	// Both A-first tips include the winner slot (30) plus the +5 bonus; the
	// reshuffled tail never removes it.
	if a.Score != 119 {
		t.Errorf("in-order tip Score = %d, want 119", a.Score)
	}
	if b.Score != 55 {
		t.Errorf("reversed-tail tip Score = %d, want 55", b.Score)
	}
	// Swapping the winner away drops both bonuses: B near 13, A near 9,
	// C/D/E exact 15+12+10, podium set +6.
	if c.Score != 65 {
		t.Errorf("wrong-winner tip Score = %d, want 65", c.Score)
	}
}

func TestScoreTip_NearMissFloor(t *testing.T) {
	// Slot 9 carries base 2; half of that rounds to 1, floored to 6.
	official := drivers("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	tip := drivers("A", "B", "C", "D", "E", "F", "G", "H", "J", "I")

	res := ScoreTip(tip, official)
	if res.Near != 2 {
		t.Errorf("Near = %d, want 2", res.Near)
	}
	// 8 exact slots (25+5+18+15+12+10+8+6+4) + two floored nears + bonuses.
	want := 103 - 3 - 2 + 5 + 6 + 6 + 5 + 6
	if res.Score != want {
		t.Errorf("Score = %d, want %d", res.Score, want)
	}
}

func TestScoreTip_BestPickFirstWinsTies(t *testing.T) {
	// C and A are both in-top picks worth 3; the first one seen must win.
	res := ScoreTip(drivers("C", "X", "A"), drivers("A", "Y", "C", "Z"))
	if res.BestPick == nil || res.BestPick.Driver != "C" {
		t.Errorf("BestPick = %+v, want first-seen C", res.BestPick)
	}
}

func TestScoreTip_TruncatesToTopTen(t *testing.T) {
	official := drivers("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K")
	tip := drivers("X1", "X2", "X3", "X4", "X5", "X6", "X7", "X8", "X9", "X10", "K")

	// K sits past position 10 on both sides: truncated away, zero everything.
	res := ScoreTip(tip, official)
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0 (11th entries must be ignored)", res.Score)
	}
}
