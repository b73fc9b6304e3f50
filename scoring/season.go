package scoring

import (
	"math"
	"sort"
	"time"
)

// ClosedRace pairs a closed race with the player's tip for it, if any.
type ClosedRace struct {
	Race Race
	Tip  *Tip
}

// RaceScore is one race's breakdown, kept with the race for display.
type RaceScore struct {
	Race Race
	ScoreResult
}

// SeasonStats is a player's season aggregate over all closed races.
type SeasonStats struct {
	Points         int        `json:"points"`
	Form           int        `json:"form"`           // avg score of the most recent 3 races
	LastRacePoints int        `json:"lastRacePoints"` // score of the most recent race
	Accuracy       int        `json:"accuracy"`       // mean accuracy over tipped races
	BestRace       *RaceScore `json:"bestRace,omitempty"`
	RaceScores     []RaceScore `json:"raceScores,omitempty"` // date-descending
}

// AggregateSeason folds per-race scores into season totals. basePoints is the
// player's persisted offset; races the player never tipped score zero rather
// than penalizing. Races that are not closed or have no official order are
// skipped. With no closed races at all, Points == basePoints and
// LastRacePoints falls back to Points / 5.
func AggregateSeason(basePoints int, closed []ClosedRace) SeasonStats {
	scores := make([]RaceScore, 0, len(closed))
	tipped := 0
	accuracySum := 0

	for _, cr := range closed {
		if cr.Race.Status != StatusClosed || len(cr.Race.ResultsOrder) == 0 {
			continue
		}
		var order []string
		if cr.Tip != nil {
			order = cr.Tip.Order
		}
		res := ScoreTip(order, cr.Race.ResultsOrder)
		scores = append(scores, RaceScore{Race: cr.Race, ScoreResult: res})
		if cr.Tip != nil {
			tipped++
			accuracySum += res.Accuracy
		}
	}

	sortByDateDesc(scores)

	stats := SeasonStats{Points: basePoints, RaceScores: scores}
	for _, rs := range scores {
		stats.Points += rs.Score
	}

	if tipped > 0 {
		stats.Accuracy = int(math.Round(float64(accuracySum) / float64(tipped)))
	}

	if len(scores) == 0 {
		stats.LastRacePoints = stats.Points / 5
		return stats
	}

	stats.LastRacePoints = scores[0].Score

	recent := scores[:min(3, len(scores))]
	total := 0
	for _, rs := range recent {
		total += rs.Score
	}
	stats.Form = int(math.Round(float64(total) / float64(len(recent))))

	for i := range scores {
		if stats.BestRace == nil || scores[i].Score > stats.BestRace.Score {
			stats.BestRace = &scores[i]
		}
	}

	return stats
}

// sortByDateDesc orders most recent first. Races with missing or unparseable
// dates sort after all dated races; the sort is stable so their relative
// order is preserved.
func sortByDateDesc(scores []RaceScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		ti, okI := parseRaceDate(scores[i].Race.Date)
		tj, okJ := parseRaceDate(scores[j].Race.Date)
		if !okI || !okJ {
			return okI && !okJ
		}
		return ti.After(tj)
	})
}

func parseRaceDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
