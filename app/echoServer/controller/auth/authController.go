// app/echoServer/controller/auth/authController.go
package auth

import (
	"log/slog"
	"net/http"

	"digitallibrary/app/echoServer/jwtx"
	"digitallibrary/model"
	authsvc "digitallibrary/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// RequestOTP sends a one-time code
// @Summary      Request OTP
// @Description  Send a 6-digit one-time code to an email address or phone number
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RequestOTPReq  true  "Contact payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/auth/otp/request [post]
func (ct *Controller) RequestOTP(c echo.Context) error {
	var req model.RequestOTPReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	if err := ct.Svc.RequestOTP(c.Request().Context(), req); err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrBadContact:
			return echo.NewHTTPError(http.StatusBadRequest, "email or phone required")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("otp request failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "otp request failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "otp sent"})
}

// VerifyOTP verifies a code and opens a session
// @Summary      Verify OTP
// @Description  Verify the one-time code, create or re-hydrate the session, return a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.VerifyOTPReq  true  "Verification payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any "invalid or expired code"
// @Failure      500  {object}  map[string]any
// @Router       /v1/auth/otp/verify [post]
func (ct *Controller) VerifyOTP(c echo.Context) error {
	var req model.VerifyOTPReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	u, token, err := ct.Svc.VerifyOTP(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrBadContact:
			return echo.NewHTTPError(http.StatusBadRequest, "email or phone required")
		case authsvc.ErrNoChallenge:
			return echo.NewHTTPError(http.StatusBadRequest, "no pending code for this contact")
		case authsvc.ErrCodeExpired:
			return echo.NewHTTPError(http.StatusUnauthorized, "code expired, request a new one")
		case authsvc.ErrCodeInvalid:
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid code")
		default:
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("otp verify failed", "err", err, "req_id", rid, "path", c.Path())
			return echo.NewHTTPError(http.StatusInternalServerError, "verification failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "login success",
		"token":   token,
		"user":    u,
	})
}

// Me returns the current session record
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /v1/users/me [get]
func (ct *Controller) Me(c echo.Context) error {
	sid, err := jwtx.SessionIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	u, err := ct.Svc.Current(c.Request().Context(), sid)
	if err != nil {
		if authsvc.Code(err) == authsvc.ErrNotFound {
			return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
		}
		ct.Log.Error("me lookup failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// Logout destroys the session
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /v1/auth/logout [post]
func (ct *Controller) Logout(c echo.Context) error {
	sid, err := jwtx.SessionIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	if err := ct.Svc.Logout(c.Request().Context(), sid); err != nil {
		ct.Log.Error("logout failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
