package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lucamueller/f1tipp/models"
	"github.com/lucamueller/f1tipp/scoring"
)

type raceRequest struct {
	Name         string   `json:"name"`
	Track        string   `json:"track"`
	Date         string   `json:"date"`
	Weather      string   `json:"weather"`
	Tyres        string   `json:"tyres"`
	Status       string   `json:"status"`
	ResultsOrder []string `json:"resultsOrder"`
}

type raceData struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Track        string   `json:"track"`
	Date         *string  `json:"date"`
	Weather      string   `json:"weather"`
	Tyres        string   `json:"tyres,omitempty"`
	Status       string   `json:"status"`
	ResultsOrder []string `json:"resultsOrder"`
}

func raceToData(r models.Race) raceData {
	order := r.ResultsOrder
	if order == nil {
		order = []string{}
	}
	return raceData{
		ID:           r.ID,
		Name:         r.Name,
		Track:        r.Track,
		Date:         r.Date,
		Weather:      r.Weather,
		Tyres:        r.Tyres,
		Status:       r.Status,
		ResultsOrder: order,
	}
}

func validRaceStatus(s string) bool {
	return s == scoring.StatusOpen || s == scoring.StatusVoting || s == scoring.StatusClosed
}

func validWeather(s string) bool {
	return s == "sunny" || s == "cloudy" || s == "rain"
}

// Races returns all races, soonest first; undated races sort last.
func (h *Handler) Races(c echo.Context) error {
	var races []models.Race
	err := h.db.NewSelect().Model(&races).
		OrderExpr("date ASC NULLS LAST, id ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]raceData, len(races))
	for i, r := range races {
		out[i] = raceToData(r)
	}
	return c.JSON(http.StatusOK, out)
}

// Race returns a single race by id.
func (h *Handler) Race(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	race := &models.Race{}
	err = h.db.NewSelect().Model(race).Where("rc.id = ?", id).Scan(c.Request().Context())
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, raceToData(*race))
}

// CreateRace inserts a new race in open status unless told otherwise.
func (h *Handler) CreateRace(c echo.Context) error {
	var req raceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	race, httpErr := raceFromRequest(req)
	if httpErr != nil {
		return httpErr
	}

	if _, err := h.db.NewInsert().Model(race).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "race already exists for that date")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, raceToData(*race))
}

// UpdateRace replaces a race's editable fields. Results are managed through
// UpdateRaceResults, not here.
func (h *Handler) UpdateRace(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	var req raceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	race, httpErr := raceFromRequest(req)
	if httpErr != nil {
		return httpErr
	}
	race.ID = id

	res, err := h.db.NewUpdate().Model(race).
		Column("name", "track", "date", "weather", "tyres", "status").
		WherePK().
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}

	return c.JSON(http.StatusOK, raceToData(*race))
}

// DeleteRace removes a race and every tip placed on it.
func (h *Handler) DeleteRace(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	ctx := c.Request().Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer tx.Rollback()

	if _, err := tx.NewDelete().Model((*models.Tip)(nil)).Where("race_id = ?", id).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	res, err := tx.NewDelete().Model((*models.Race)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}

	if err := tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateRaceResults sets the official finishing order and closes the race.
func (h *Handler) UpdateRaceResults(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	var req struct {
		ResultsOrder []string `json:"resultsOrder"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order := scoring.NormalizeOrder(req.ResultsOrder)
	if len(order) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "resultsOrder must name at least one driver")
	}

	race := &models.Race{
		ID:           id,
		Status:       scoring.StatusClosed,
		ResultsOrder: order,
	}
	res, err := h.db.NewUpdate().Model(race).
		Column("status", "results_order").
		WherePK().
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}

	return c.NoContent(http.StatusAccepted)
}

func raceFromRequest(req raceRequest) (*models.Race, *echo.HTTPError) {
	req.Name = strings.TrimSpace(req.Name)
	req.Track = strings.TrimSpace(req.Track)
	if req.Name == "" && req.Track != "" {
		req.Name = req.Track
	}
	if req.Track == "" && req.Name != "" {
		req.Track = req.Name
	}
	if req.Name == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "name or track is required")
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = scoring.StatusOpen
	}
	if !validRaceStatus(status) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "status must be open, voting or closed")
	}

	weather := strings.ToLower(strings.TrimSpace(req.Weather))
	if weather == "" {
		weather = "sunny"
	}
	if !validWeather(weather) {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "weather must be sunny, cloudy or rain")
	}

	race := &models.Race{
		Name:         req.Name,
		Track:        req.Track,
		Weather:      weather,
		Tyres:        strings.TrimSpace(req.Tyres),
		Status:       status,
		ResultsOrder: scoring.NormalizeOrder(req.ResultsOrder),
	}
	if d := strings.TrimSpace(req.Date); d != "" {
		race.Date = &d
	}
	return race, nil
}
