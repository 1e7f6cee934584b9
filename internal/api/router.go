package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roamio/tour-booking/internal/api/handler"
	"github.com/roamio/tour-booking/internal/api/middleware"
	"github.com/roamio/tour-booking/internal/core/domain"
	"github.com/roamio/tour-booking/internal/core/service"
	"github.com/roamio/tour-booking/internal/infrastructure/config"
	mongodb "github.com/roamio/tour-booking/internal/infrastructure/db/mongo"
	redisdb "github.com/roamio/tour-booking/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit service.AuditEnqueuer, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tourbooking"))

	// --- Repositories ---
	tourRepo := mongodb.NewTourRepository(db)
	accountRepo := mongodb.NewAccountRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	ledgerRepo := mongodb.NewLedgerRepository(db)

	cache := redisdb.NewCatalogCache(rdb, log)
	tokens := redisdb.NewRevocationStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, tokens, cfg.JWTSecret, cfg.TokenTTL, cfg.EmployeeCode, cfg.AdminCode)
	tourService := service.NewTourService(tourRepo, accountRepo, cache, log)
	cartService := service.NewCartService(tourRepo, accountRepo, log)
	bookingService := service.NewBookingService(tourRepo, accountRepo, bookingRepo, ledgerRepo, cache, audit, cfg.AdminCut, log)
	revenueService := service.NewRevenueService(ledgerRepo, accountRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	tourHandler := handler.NewTourHandler(tourService)
	cartHandler := handler.NewCartHandler(cartService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	revenueHandler := handler.NewRevenueHandler(revenueService)

	auth := middleware.Auth(cfg.JWTSecret, tokens, log)
	userOnly := middleware.RBAC(domain.RoleUser)
	employeeOnly := middleware.RBAC(domain.RoleEmployee)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- Catalog (public reads) ---
	e.GET("/v1/tours", tourHandler.List)
	e.GET("/v1/tours/search", tourHandler.Search)
	e.GET("/v1/tours/:id", tourHandler.Get)
	e.POST("/v1/tours", tourHandler.Create, auth, employeeOnly)
	e.DELETE("/v1/tours/:id", tourHandler.Delete, auth, employeeOnly)

	// --- Cart ---
	e.GET("/v1/cart", cartHandler.Items, auth, userOnly)
	e.POST("/v1/cart", cartHandler.Add, auth, userOnly)
	e.DELETE("/v1/cart/:tourID", cartHandler.Remove, auth, userOnly)

	// --- Booking workflow ---
	e.POST("/book", bookingHandler.Book, auth, userOnly)
	e.DELETE("/cancel/:id", bookingHandler.Cancel, auth, userOnly)
	e.GET("/v1/bookings", bookingHandler.ListMine, auth, userOnly)

	// --- Revenue views ---
	e.GET("/v1/revenue/platform", revenueHandler.Platform, auth, adminOnly)
	e.GET("/v1/revenue/mine", revenueHandler.Mine, auth, employeeOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	if cfg.Env == "development" {
		e.GET("/swagger/*", echoswagger.WrapHandler)
	}

	return e
}
