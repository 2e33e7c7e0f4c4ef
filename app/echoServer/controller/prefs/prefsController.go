package prefs

import (
	"log/slog"
	"net/http"

	"digitallibrary/app/echoServer/jwtx"
	"digitallibrary/model"
	prefsrepo "digitallibrary/repository/prefs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Thin controller straight over the repository; preferences carry no
// business rules beyond their enum values.
type Controller struct {
	Repo prefsrepo.Repo
	V    *validator.Validate
	Log  *slog.Logger
}

type PutPrefsReq struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
	View  string `json:"view_preference" validate:"required,oneof=grid list"`
}

// GET /v1/prefs  (auth)
func (h *Controller) Get(c echo.Context) error {
	sid, err := jwtx.SessionIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}

	p, err := h.Repo.Get(c.Request().Context(), sid)
	if err != nil {
		h.Log.Error("prefs get error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}

// PUT /v1/prefs  (auth)
func (h *Controller) Put(c echo.Context) error {
	sid, err := jwtx.SessionIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}

	var req PutPrefsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"theme": "light|dark", "view_preference": "grid|list"},
		})
	}

	p := model.Prefs{Theme: req.Theme, View: req.View}
	if err := h.Repo.Upsert(c.Request().Context(), sid, p); err != nil {
		h.Log.Error("prefs upsert error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, p)
}
