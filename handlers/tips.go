package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/lucamueller/f1tipp/models"
	"github.com/lucamueller/f1tipp/scoring"
)

type tipData struct {
	RaceID    int64      `json:"raceId"`
	Order     []string   `json:"order"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func tipToData(t models.Tip) tipData {
	order := t.Order
	if order == nil {
		order = []string{}
	}
	d := tipData{RaceID: t.RaceID, Order: order}
	if !t.UpdatedAt.IsZero() {
		at := t.UpdatedAt
		d.UpdatedAt = &at
	}
	return d
}

// MyTips returns all of the caller's tips as a map keyed by race id.
func (h *Handler) MyTips(c echo.Context) error {
	userID, _ := c.Get("user_id").(int64)

	var tips []models.Tip
	err := h.db.NewSelect().Model(&tips).
		Where("user_id = ?", userID).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make(map[string]tipData, len(tips))
	for _, t := range tips {
		out[strconv.FormatInt(t.RaceID, 10)] = tipToData(t)
	}
	return c.JSON(http.StatusOK, out)
}

// TipForRace returns the caller's tip for one race, 404 when none exists yet.
func (h *Handler) TipForRace(c echo.Context) error {
	userID, _ := c.Get("user_id").(int64)
	raceID, err := strconv.ParseInt(c.Param("raceId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	tip := &models.Tip{}
	err = h.db.NewSelect().Model(tip).
		Where("user_id = ? AND race_id = ?", userID, raceID).
		Scan(c.Request().Context())
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "no tip for this race")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tipToData(*tip))
}

// SaveTip creates or overwrites the caller's tip for a race. Only allowed
// while the race is in voting; the order is validated against the driver
// roster and trimmed to the top 10.
func (h *Handler) SaveTip(c echo.Context) error {
	userID, _ := c.Get("user_id").(int64)
	raceID, err := strconv.ParseInt(c.Param("raceId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid race id")
	}

	ctx := c.Request().Context()

	race := &models.Race{}
	err = h.db.NewSelect().Model(race).Where("rc.id = ?", raceID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, "race not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race.Status != scoring.StatusVoting {
		return echo.NewHTTPError(http.StatusConflict, "race is not open for tips")
	}

	var req struct {
		Order []string `json:"order"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order := scoring.NormalizeOrder(req.Order)
	if len(order) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "order must name at least one driver")
	}
	if len(order) > 10 {
		order = order[:10]
	}

	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if seen[name] {
			return echo.NewHTTPError(http.StatusBadRequest, "duplicate driver: "+name)
		}
		seen[name] = true
	}

	count, err := h.db.NewSelect().Model((*models.Driver)(nil)).
		Where("name IN (?)", bun.In(order)).
		Count(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if count != len(order) {
		return echo.NewHTTPError(http.StatusBadRequest, "order contains unknown drivers")
	}

	tip := &models.Tip{
		UserID:    userID,
		RaceID:    raceID,
		Order:     order,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = h.db.NewInsert().Model(tip).
		On("CONFLICT (user_id, race_id) DO UPDATE SET tip_order = EXCLUDED.tip_order, updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, tipToData(*tip))
}
