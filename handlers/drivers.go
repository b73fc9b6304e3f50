package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lucamueller/f1tipp/models"
)

type driverRequest struct {
	Name   string `json:"name"`
	Team   string `json:"team"`
	Number int    `json:"number"`
}

// Drivers returns the full roster, alphabetical.
func (h *Handler) Drivers(c echo.Context) error {
	var drivers []models.Driver
	err := h.db.NewSelect().Model(&drivers).
		OrderExpr("d.name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, drivers)
}

// CreateDriver adds a roster entry.
func (h *Handler) CreateDriver(c echo.Context) error {
	var req driverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	driver := &models.Driver{
		Name:   req.Name,
		Team:   strings.TrimSpace(req.Team),
		Number: req.Number,
	}

	if _, err := h.db.NewInsert().Model(driver).Exec(c.Request().Context()); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return echo.NewHTTPError(http.StatusConflict, "driver already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, driver)
}

// UpdateDriver replaces a roster entry's fields.
func (h *Handler) UpdateDriver(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid driver id")
	}

	var req driverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	driver := &models.Driver{
		ID:     id,
		Name:   req.Name,
		Team:   strings.TrimSpace(req.Team),
		Number: req.Number,
	}

	res, err := h.db.NewUpdate().Model(driver).
		Column("name", "team", "number").
		WherePK().
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "driver not found")
	}

	return c.JSON(http.StatusOK, driver)
}

// DeleteDriver removes a roster entry. Existing tips keep the name; scoring
// only compares names, so history stays intact.
func (h *Handler) DeleteDriver(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid driver id")
	}

	res, err := h.db.NewDelete().Model((*models.Driver)(nil)).Where("id = ?", id).Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "driver not found")
	}

	return c.NoContent(http.StatusNoContent)
}
