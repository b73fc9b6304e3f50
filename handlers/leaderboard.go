package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lucamueller/f1tipp/models"
	"github.com/lucamueller/f1tipp/scoring"
)

type raceScoreData struct {
	RaceID   string        `json:"raceId"`
	Name     string        `json:"name"`
	Track    string        `json:"track"`
	Date     string        `json:"date,omitempty"`
	Winner   string        `json:"winner,omitempty"`
	Score    int           `json:"score"`
	Exact    int           `json:"exact"`
	Near     int           `json:"near"`
	InTop    int           `json:"inTop"`
	Accuracy int           `json:"accuracy"`
	BestPick *scoring.Pick `json:"bestPick"`
}

type seasonData struct {
	Points         int             `json:"points"`
	Form           int             `json:"form"`
	LastRacePoints int             `json:"lastRacePoints"`
	Accuracy       int             `json:"accuracy"`
	BestRace       *raceScoreData  `json:"bestRace,omitempty"`
	Races          []raceScoreData `json:"races"`
}

func raceScoreToData(rs scoring.RaceScore) raceScoreData {
	d := raceScoreData{
		RaceID:   rs.Race.ID,
		Name:     rs.Race.Name,
		Track:    rs.Race.Track,
		Date:     rs.Race.Date,
		Score:    rs.Score,
		Exact:    rs.Exact,
		Near:     rs.Near,
		InTop:    rs.InTop,
		Accuracy: rs.Accuracy,
		BestPick: rs.BestPick,
	}
	if len(rs.Race.ResultsOrder) > 0 {
		d.Winner = rs.Race.ResultsOrder[0]
	}
	return d
}

// Leaderboard ranks every member by season points. With no rivals registered
// yet the caller is compared against deterministic synthetic opponents so the
// table is never a single row.
func (h *Handler) Leaderboard(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(int64)

	var users []models.User
	if err := h.db.NewSelect().Model(&users).OrderExpr("u.id ASC").Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	races, err := h.closedRaces(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var tips []models.Tip
	if err := h.db.NewSelect().Model(&tips).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	tipsByUser := make(map[int64]map[int64]models.Tip)
	for _, t := range tips {
		if tipsByUser[t.UserID] == nil {
			tipsByUser[t.UserID] = make(map[int64]models.Tip)
		}
		tipsByUser[t.UserID][t.RaceID] = t
	}

	var self scoring.RowInput
	foundSelf := false
	others := make([]scoring.RowInput, 0, len(users))

	for _, u := range users {
		stats := scoring.AggregateSeason(u.BasePoints, closedRacesFor(races, tipsByUser[u.ID]))
		row := scoring.RowInput{
			Username:       u.Username,
			DisplayName:    displayName(u),
			Team:           u.FavoriteTeam,
			Country:        u.Country,
			Points:         stats.Points,
			Form:           stats.Form,
			LastRacePoints: stats.LastRacePoints,
		}
		if u.ID == userID {
			self = row
			foundSelf = true
		} else {
			others = append(others, row)
		}
	}
	if !foundSelf {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}

	if len(others) == 0 {
		others = scoring.SyntheticOpponents(toScoringRaces(races))
	}

	return c.JSON(http.StatusOK, scoring.Rank(scoring.MergeRows(self, others)))
}

// MySeason returns the caller's full season breakdown, most recent race first.
func (h *Handler) MySeason(c echo.Context) error {
	ctx := c.Request().Context()
	userID, _ := c.Get("user_id").(int64)

	user := &models.User{}
	err := h.db.NewSelect().Model(user).Where("u.id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	stats, err := h.seasonStats(ctx, user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := seasonData{
		Points:         stats.Points,
		Form:           stats.Form,
		LastRacePoints: stats.LastRacePoints,
		Accuracy:       stats.Accuracy,
		Races:          make([]raceScoreData, len(stats.RaceScores)),
	}
	for i, rs := range stats.RaceScores {
		out.Races[i] = raceScoreToData(rs)
	}
	if stats.BestRace != nil {
		best := raceScoreToData(*stats.BestRace)
		out.BestRace = &best
	}

	return c.JSON(http.StatusOK, out)
}

func displayName(u models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
