package book

import (
	"log/slog"
	"net/http"

	"digitallibrary/app/echoServer/jwtx"
	"digitallibrary/model"
	authsvc "digitallibrary/service/auth"
	"digitallibrary/service/catalog"
	"digitallibrary/service/entitlement"
	jwtutil "digitallibrary/util/jwt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc    catalog.Service
	Auth   authsvc.Service
	V      *validator.Validate
	Log    *slog.Logger
	Secret string
}

// GET /v1/books
//
// Stateless listing: filters and page arrive as query params, the visible
// slice is min(filtered, page*12).
func (h *Controller) List(c echo.Context) error {
	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Genre != "" && !model.ValidGenre(q.Genre) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown genre"})
	}

	filtered := catalog.ApplyFilters(h.Svc.Books(), q.Genre, q.Language, q.Q)
	n := catalog.VisibleCount(len(filtered), q.Page)

	return c.JSON(http.StatusOK, echo.Map{
		"data":     filtered[:n],
		"total":    len(filtered),
		"page":     q.Page,
		"has_more": n < len(filtered),
	})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	b, err := h.Svc.ByID(c.Param("id"))
	if err != nil {
		if catalog.Code(err) == catalog.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("book detail error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// GET /v1/books/:id/read
//
// Public: anonymous readers get a bounded preview instead of a refusal, so
// the endpoint does optional auth by hand.
func (h *Controller) Read(c echo.Context) error {
	b, err := h.Svc.ByID(c.Param("id"))
	if err != nil {
		if catalog.Code(err) == catalog.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("book read error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	u := h.optionalUser(c)
	grant := entitlement.Read(u, *b)
	return c.JSON(http.StatusOK, echo.Map{
		"title":   b.Title,
		"author":  b.Author,
		"url":     grant.URL,
		"preview": grant.Preview,
	})
}

// GET /v1/books/:id/download  (auth)
func (h *Controller) Download(c echo.Context) error {
	b, err := h.Svc.ByID(c.Param("id"))
	if err != nil {
		if catalog.Code(err) == catalog.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
		}
		h.Log.Error("book download error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	u := h.sessionUser(c)
	url, err := entitlement.Download(u, *b)
	if err != nil {
		switch entitlement.Code(err) {
		case entitlement.ErrLoginRequired:
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "please login to download books"})
		case entitlement.ErrUpgradeRequired:
			return c.JSON(http.StatusPaymentRequired, echo.Map{"message": "premium plan required"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url, "filename": b.Title + ".pdf"})
}

// POST /v1/books  (auth)
//
// Accepts uploaded book metadata only; no file bytes are stored.
func (h *Controller) Upload(c echo.Context) error {
	if h.sessionUser(c) == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "please login to upload books"})
	}

	var req UploadBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"title": "required", "author": "required", "genre": "known genre", "language": "2-letter code"},
		})
	}

	b, err := h.Svc.AddUserBook(catalog.AddBookReq{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Language:    req.Language,
		Description: req.Description,
	})
	if err != nil {
		if catalog.Code(err) == catalog.ErrBadInput {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
		}
		h.Log.Error("book upload error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	return c.JSON(http.StatusCreated, b)
}

// POST /v1/catalog/refresh  (auth)
func (h *Controller) Refresh(c echo.Context) error {
	count, fallback := h.Svc.Refresh(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"books": count, "fallback": fallback})
}

// sessionUser resolves the JWT session claim to a live session record, nil
// when the session was logged out meanwhile.
func (h *Controller) sessionUser(c echo.Context) *model.User {
	sid, err := jwtx.SessionIDFromContext(c)
	if err != nil {
		return nil
	}
	u, err := h.Auth.Current(c.Request().Context(), sid)
	if err != nil {
		return nil
	}
	return u
}

// optionalUser is sessionUser for public endpoints: the Authorization header
// may be absent entirely.
func (h *Controller) optionalUser(c echo.Context) *model.User {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return nil
	}
	claims, err := jwtutil.ParseAuth(header, h.Secret)
	if err != nil {
		return nil
	}
	sid, _ := claims["sub"].(string)
	if sid == "" {
		return nil
	}
	u, err := h.Auth.Current(c.Request().Context(), sid)
	if err != nil {
		return nil
	}
	return u
}
