package browse

import (
	"errors"
	"log/slog"
	"net/http"

	browsesvc "digitallibrary/service/browse"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Reg *browsesvc.Registry
	V   *validator.Validate
	Log *slog.Logger
}

type FiltersReq struct {
	Genre    string `json:"genre" validate:"omitempty,oneof=fiction mystery romance science-fiction fantasy biography history science philosophy poetry"`
	Language string `json:"language" validate:"omitempty,len=2"`
}

type SearchReq struct {
	Q string `json:"q"`
}

// POST /v1/browse
func (h *Controller) Open(c echo.Context) error {
	s := h.Reg.Open()
	return c.JSON(http.StatusCreated, s.Snapshot())
}

// GET /v1/browse/:id
func (h *Controller) Get(c echo.Context) error {
	s, err := h.Reg.Get(c.Param("id"))
	if err != nil {
		return h.notFound(c, err)
	}
	return c.JSON(http.StatusOK, s.Snapshot())
}

// POST /v1/browse/:id/filters
//
// Applies genre/language immediately and resets the page cursor.
func (h *Controller) SetFilters(c echo.Context) error {
	s, err := h.Reg.Get(c.Param("id"))
	if err != nil {
		return h.notFound(c, err)
	}

	var req FiltersReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}

	s.SetFilters(req.Genre, req.Language)
	return c.JSON(http.StatusOK, s.Snapshot())
}

// POST /v1/browse/:id/search
//
// Debounced: the recomputation happens once typing goes quiet, so the
// snapshot returned here may still reflect the previous term.
func (h *Controller) Search(c echo.Context) error {
	s, err := h.Reg.Get(c.Param("id"))
	if err != nil {
		return h.notFound(c, err)
	}

	var req SearchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}

	s.SetSearch(req.Q)
	return c.JSON(http.StatusAccepted, echo.Map{"message": "search scheduled"})
}

// POST /v1/browse/:id/more
func (h *Controller) More(c echo.Context) error {
	s, err := h.Reg.Get(c.Param("id"))
	if err != nil {
		return h.notFound(c, err)
	}

	s.LoadMore()
	return c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Controller) notFound(c echo.Context, err error) error {
	if errors.Is(err, browsesvc.ErrSessionNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "browse session not found"})
	}
	h.Log.Error("browse lookup error", "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}
