package handlers

import (
	"context"
	"strconv"

	"github.com/lucamueller/f1tipp/models"
	"github.com/lucamueller/f1tipp/scoring"
)

// toScoringRace converts a stored race into the scoring core's canonical shape.
func toScoringRace(r models.Race) scoring.Race {
	date := ""
	if r.Date != nil {
		date = *r.Date
	}
	return scoring.Race{
		ID:           strconv.FormatInt(r.ID, 10),
		Name:         r.Name,
		Track:        r.Track,
		Date:         date,
		Weather:      r.Weather,
		Tyres:        r.Tyres,
		Status:       r.Status,
		ResultsOrder: scoring.NormalizeOrder(r.ResultsOrder),
	}
}

func toScoringRaces(races []models.Race) []scoring.Race {
	out := make([]scoring.Race, len(races))
	for i, r := range races {
		out[i] = toScoringRace(r)
	}
	return out
}

// closedRacesFor pairs closed races with one player's tips. Races the player
// never tipped get a nil tip and score zero.
func closedRacesFor(races []models.Race, tipsByRace map[int64]models.Tip) []scoring.ClosedRace {
	out := make([]scoring.ClosedRace, 0, len(races))
	for _, r := range races {
		cr := scoring.ClosedRace{Race: toScoringRace(r)}
		if t, ok := tipsByRace[r.ID]; ok {
			cr.Tip = &scoring.Tip{
				RaceID: strconv.FormatInt(t.RaceID, 10),
				Order:  scoring.NormalizeOrder(t.Order),
			}
			if !t.UpdatedAt.IsZero() {
				cr.Tip.UpdatedAt = t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
			}
		}
		out = append(out, cr)
	}
	return out
}

// closedRaces loads every race that is closed and has an official order.
func (h *Handler) closedRaces(ctx context.Context) ([]models.Race, error) {
	var races []models.Race
	err := h.db.NewSelect().Model(&races).
		Where("status = ?", scoring.StatusClosed).
		Where("results_order IS NOT NULL AND array_length(results_order, 1) > 0").
		Scan(ctx)
	return races, err
}

// seasonStats computes one player's season aggregate from their stored tips.
func (h *Handler) seasonStats(ctx context.Context, user *models.User) (scoring.SeasonStats, error) {
	races, err := h.closedRaces(ctx)
	if err != nil {
		return scoring.SeasonStats{}, err
	}

	var tips []models.Tip
	err = h.db.NewSelect().Model(&tips).
		Where("user_id = ?", user.ID).
		Scan(ctx)
	if err != nil {
		return scoring.SeasonStats{}, err
	}

	tipsByRace := make(map[int64]models.Tip, len(tips))
	for _, t := range tips {
		tipsByRace[t.RaceID] = t
	}

	return scoring.AggregateSeason(user.BasePoints, closedRacesFor(races, tipsByRace)), nil
}
