package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lucamueller/f1tipp/models"
)

type profileData struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	DisplayName  string `json:"displayName"`
	Email        string `json:"email"`
	FavoriteTeam string `json:"favoriteTeam"`
	Country      string `json:"country"`
	Bio          string `json:"bio"`
	Points       int    `json:"points"`
}

func (h *Handler) currentUser(c echo.Context) (*models.User, error) {
	userID, _ := c.Get("user_id").(int64)

	user := &models.User{}
	err := h.db.NewSelect().Model(user).Where("u.id = ?", userID).Scan(c.Request().Context())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return user, nil
}

// Me returns the caller's profile with their current season points.
func (h *Handler) Me(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.seasonStats(c.Request().Context(), user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profileData{
		ID:           user.ID,
		Username:     user.Username,
		Role:         user.Role,
		DisplayName:  user.DisplayName,
		Email:        user.Email,
		FavoriteTeam: user.FavoriteTeam,
		Country:      user.Country,
		Bio:          user.Bio,
		Points:       stats.Points,
	})
}

// UpdateMe lets the caller edit their public profile. Username, role and
// points are not editable here.
func (h *Handler) UpdateMe(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		DisplayName  string `json:"displayName"`
		FavoriteTeam string `json:"favoriteTeam"`
		Country      string `json:"country"`
		Bio          string `json:"bio"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user.DisplayName = strings.TrimSpace(req.DisplayName)
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}
	user.FavoriteTeam = strings.TrimSpace(req.FavoriteTeam)
	user.Country = strings.TrimSpace(req.Country)
	user.Bio = strings.TrimSpace(req.Bio)

	_, err = h.db.NewUpdate().Model(user).
		Column("display_name", "favorite_team", "country", "bio").
		WherePK().
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, user)
}
