package echoServer

import (
	"digitallibrary/app/echoServer/controller/auth"
	"digitallibrary/app/echoServer/controller/book"
	"digitallibrary/app/echoServer/controller/browse"
	"digitallibrary/app/echoServer/controller/payment"
	"digitallibrary/app/echoServer/controller/prefs"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth    *auth.Controller
	Book    *book.Controller
	Browse  *browse.Controller
	Payment *payment.Controller
	Prefs   *prefs.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public, rate limited
	pub := e.Group("/v1")
	pub.Use(NewRateLimiter(10, 20).Middleware())

	pub.POST("/auth/otp/request", c.Auth.RequestOTP)
	pub.POST("/auth/otp/verify", c.Auth.VerifyOTP)

	pub.GET("/books", c.Book.List)
	pub.GET("/books/:id", c.Book.Detail)
	pub.GET("/books/:id/read", c.Book.Read) // anonymous gets a preview

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tok, ok := ctx.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("session_id", sub)
			return next(ctx)
		}
	})

	authed.POST("/auth/logout", c.Auth.Logout)
	authed.GET("/users/me", c.Auth.Me)

	authed.GET("/books/:id/download", c.Book.Download)
	authed.POST("/books", c.Book.Upload)
	authed.POST("/catalog/refresh", c.Book.Refresh)

	authed.POST("/payment/upgrade", c.Payment.Upgrade)

	authed.GET("/prefs", c.Prefs.Get)
	authed.PUT("/prefs", c.Prefs.Put)

	// Browse sessions are ephemeral per-client view state
	authed.POST("/browse", c.Browse.Open)
	authed.GET("/browse/:id", c.Browse.Get)
	authed.POST("/browse/:id/filters", c.Browse.SetFilters)
	authed.POST("/browse/:id/search", c.Browse.Search)
	authed.POST("/browse/:id/more", c.Browse.More)
}
