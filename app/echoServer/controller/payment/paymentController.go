package payment

import (
	"log/slog"
	"net/http"

	"digitallibrary/app/echoServer/jwtx"
	paymentsvc "digitallibrary/service/payment"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type UpgradeReq struct {
	Plan string `json:"plan" validate:"required,oneof=premium book"`
}

// POST /v1/payment/upgrade  (auth)
func (h *Controller) Upgrade(c echo.Context) error {
	sid, err := jwtx.SessionIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthenticated"})
	}

	var req UpgradeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"plan": "premium or book"}})
	}

	u, err := h.Svc.Upgrade(c.Request().Context(), sid, req.Plan)
	if err != nil {
		switch paymentsvc.Code(err) {
		case paymentsvc.ErrNotLoggedIn:
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "please login first"})
		case paymentsvc.ErrUnknownPlan:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown plan"})
		default:
			h.Log.Error("upgrade error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "payment failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "payment successful", "user": u})
}
