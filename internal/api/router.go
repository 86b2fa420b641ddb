package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskflow/taskflow-api/docs"
	"github.com/taskflow/taskflow-api/internal/api/handler"
	"github.com/taskflow/taskflow-api/internal/api/middleware"
	"github.com/taskflow/taskflow-api/internal/core/ports"
	"github.com/taskflow/taskflow-api/internal/core/service"
	mongorepo "github.com/taskflow/taskflow-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/taskflow/taskflow-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/taskflow/taskflow-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	activities ports.ActivityRepository,
	recorder ports.ActivityRecorder,
	jwtSecret string,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("taskflow"))

	// --- Dependencies ---
	authRepo := mongorepo.NewAuthRepository(db)
	boardRepo := mongorepo.NewBoardRepository(db)
	listRepo := mongorepo.NewListRepository(db)
	cardRepo := mongorepo.NewCardRepository(db)

	memberCache := redisinfra.NewMembersCache(rdb)
	gate := service.NewAuthorizer(boardRepo, memberCache, log)

	authService := service.NewAuthService(authRepo, jwtSecret, 24*time.Hour)
	boardService := service.NewBoardService(boardRepo, listRepo, cardRepo, authRepo, activities, gate, recorder, log)
	listService := service.NewListService(listRepo, gate, recorder, log)
	cardService := service.NewCardService(cardRepo, listRepo, gate, recorder, log)

	authHandler := handler.NewAuthHandler(authService)
	boardHandler := handler.NewBoardHandler(boardService)
	listHandler := handler.NewListHandler(listService)
	cardHandler := handler.NewCardHandler(cardService)
	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes (public) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Board routes ---
	boards := e.Group("/api/boards", authMiddleware)
	boards.GET("", boardHandler.List)
	boards.POST("", boardHandler.Create)
	boards.GET("/:id", boardHandler.Get)
	boards.PUT("/:id", boardHandler.Update)
	boards.DELETE("/:id", boardHandler.Delete)
	boards.POST("/:id/invite", boardHandler.Invite)
	boards.POST("/:id/members", boardHandler.AddMember)
	boards.DELETE("/:id/members/:user_id", boardHandler.RemoveMember)
	boards.GET("/:id/activity", boardHandler.Activity)

	// --- List routes ---
	lists := e.Group("/api/lists", authMiddleware)
	lists.POST("/board/:board_id/lists", listHandler.Create)
	lists.GET("/:id", listHandler.Get)
	lists.PUT("/:id", listHandler.Update)
	lists.DELETE("/:id", listHandler.Delete)

	// --- Card routes ---
	cards := e.Group("/api/cards", authMiddleware)
	cards.POST("/list/:list_id/cards", cardHandler.Create)
	cards.GET("/:id", cardHandler.Get)
	cards.PUT("/:id", cardHandler.Update)
	cards.DELETE("/:id", cardHandler.Delete)
	cards.PATCH("/:id/move", cardHandler.Move)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
