package scoring

import "math"

// positionPoints is the F1-style descending table for exact hits, indexed by
// finishing position (0 = winner).
var positionPoints = [...]int{25, 18, 15, 12, 10, 8, 6, 4, 3, 2}

const (
	winnerSlotBonus = 5 // extra on an exact hit at position 0
	winnerBonus     = 5 // tip's first driver is the official winner
	podiumBonus     = 6 // tip's first three drivers are the official podium as a set
	inTopPoints     = 3 // driver in the official top 10 but more than one place off
	nearFloor       = 6 // minimum award for an off-by-one hit
)

// Pick records how one predicted driver fared. Positions are 1-based for
// display.
type Pick struct {
	Driver    string `json:"driver"`
	Predicted int    `json:"predicted"`
	Official  int    `json:"official"`
	Points    int    `json:"points"`
}

// ScoreResult is the point breakdown of one tip against one race's official
// finishing order.
type ScoreResult struct {
	Score    int   `json:"score"`
	Exact    int   `json:"exact"`
	Near     int   `json:"near"`
	InTop    int   `json:"inTop"`
	Accuracy int   `json:"accuracy"` // percent of exact hits over the compared length
	BestPick *Pick `json:"bestPick"`
}

// ScoreTip compares a predicted order against the official order and returns
// the point breakdown. Both sequences are truncated to the top 10 first.
// Drivers absent from the official top 10 contribute nothing and are counted
// in none of the tallies. Empty input on either side yields a zero result.
func ScoreTip(tipOrder, official []string) ScoreResult {
	tip := truncate(tipOrder)
	off := truncate(official)

	var res ScoreResult

	for i, driver := range tip {
		j := indexOf(off, driver)
		if j < 0 {
			continue
		}

		var pts int
		switch {
		case j == i:
			res.Exact++
			pts = basePointsAt(i, 2)
			if i == 0 {
				pts += winnerSlotBonus
			}
		case abs(j-i) == 1:
			res.Near++
			pts = max(nearFloor, int(math.Round(float64(basePointsAt(i, 4))*0.5)))
		default:
			res.InTop++
			pts = inTopPoints
		}

		res.Score += pts
		if res.BestPick == nil || pts > res.BestPick.Points {
			res.BestPick = &Pick{Driver: driver, Predicted: i + 1, Official: j + 1, Points: pts}
		}
	}

	if len(tip) > 0 && len(off) > 0 && tip[0] == off[0] {
		res.Score += winnerBonus
	}

	if podiumHits(tip, off) == 3 {
		res.Score += podiumBonus
	}

	base := min(len(off), len(tip))
	if base == 0 {
		base = 1
	}
	res.Accuracy = int(math.Round(float64(res.Exact) / float64(base) * 100))

	return res
}

// podiumHits counts how many of the tip's first three drivers appear anywhere
// in the official first three. Membership only; order does not matter.
func podiumHits(tip, official []string) int {
	offPodium := official[:min(3, len(official))]
	hits := 0
	for _, driver := range tip[:min(3, len(tip))] {
		if indexOf(offPodium, driver) >= 0 {
			hits++
		}
	}
	return hits
}

func truncate(order []string) []string {
	if len(order) > 10 {
		return order[:10]
	}
	return order
}

// basePointsAt returns the table value for a position; positions beyond the
// table fall back to the given default.
func basePointsAt(i, fallback int) int {
	if i >= 0 && i < len(positionPoints) {
		return positionPoints[i]
	}
	return fallback
}

func indexOf(seq []string, s string) int {
	for i, e := range seq {
		if e == s {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
