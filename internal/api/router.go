package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/virtualvault/storefront/internal/api/handler"
	"github.com/virtualvault/storefront/internal/api/middleware"
	"github.com/virtualvault/storefront/internal/infrastructure/http/handlers"
)

// Deps carries everything NewRouter mounts. Probes may be empty; readiness
// then always reports ok.
type Deps struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Orders   *handler.OrderHandler
	Category *handler.CategoryHandler
	Products *handler.ProductHandler

	Tokens middleware.TokenVerifier
	Finder middleware.UserFinder
	Probes map[string]handlers.Pinger

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	signedIn := middleware.RequireSignIn(d.Tokens, d.Log)
	admin := middleware.IsAdmin(d.Finder, d.Log)

	v1 := e.Group("/api/v1")

	// --- Auth, profile, orders ---
	auth := v1.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/forgot-password", d.Auth.ForgotPassword)
	auth.GET("/test", d.Auth.Protected, signedIn, admin)
	auth.GET("/user-auth", d.Auth.UserAuth, signedIn)
	auth.GET("/admin-auth", d.Auth.AdminAuth, signedIn, admin)

	auth.PUT("/profile", d.Users.UpdateProfile, signedIn)
	auth.GET("/all-users", d.Users.ListUsers, signedIn, admin)
	auth.PUT("/update-role/:id", d.Users.UpdateRole, signedIn, admin)
	auth.DELETE("/delete-user/:id", d.Users.DeleteUser, signedIn, admin)

	auth.GET("/orders", d.Orders.Orders, signedIn)
	auth.GET("/all-orders", d.Orders.AllOrders, signedIn, admin)
	auth.PUT("/order-status/:orderId", d.Orders.UpdateStatus, signedIn, admin)

	// --- Catalogue ---
	category := v1.Group("/category")
	category.POST("/create-category", d.Category.Create, signedIn, admin)
	category.PUT("/update-category/:id", d.Category.Update, signedIn, admin)
	category.GET("/get-category", d.Category.List)
	category.GET("/single-category/:slug", d.Category.Single)
	category.DELETE("/delete-category/:id", d.Category.Delete, signedIn, admin)

	product := v1.Group("/product")
	product.POST("/create-product", d.Products.Create, signedIn, admin)
	product.PUT("/update-product/:pid", d.Products.Update, signedIn, admin)
	product.DELETE("/delete-product/:pid", d.Products.Delete, signedIn, admin)
	product.GET("/get-product", d.Products.Latest)
	product.GET("/get-product/:slug", d.Products.Single)
	product.GET("/product-photo/:pid", d.Products.Photo)
	product.POST("/product-filters", d.Products.Filter)
	product.GET("/product-count", d.Products.Count)
	product.GET("/product-list/:page", d.Products.Page)
	product.GET("/search/:keyword", d.Products.Search)
	product.GET("/related-product/:pid/:cid", d.Products.Related)
	product.GET("/product-category/:slug", d.Products.ByCategory)
	product.POST("/checkout", d.Orders.Checkout, signedIn)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Probes).Readiness)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
