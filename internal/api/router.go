package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/opencampus/campus-cms/docs"
	"github.com/opencampus/campus-cms/internal/api/handler"
	"github.com/opencampus/campus-cms/internal/api/middleware"
	"github.com/opencampus/campus-cms/internal/core/domain"
	"github.com/opencampus/campus-cms/internal/core/ports"
	"github.com/opencampus/campus-cms/internal/core/service"
	"github.com/opencampus/campus-cms/internal/core/token"
	mongodb "github.com/opencampus/campus-cms/internal/infrastructure/db/mongo"
	redisdb "github.com/opencampus/campus-cms/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs; all of it is constructed once in
// cmd/api and treated as immutable afterwards.
type Deps struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Issuer     *token.Issuer
	Media      ports.MediaStore
	Cleanup    ports.CleanupQueue
	Log        zerolog.Logger
	CORSOrigin string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("campus"))
	if deps.CORSOrigin != "" {
		// Credentials must be allowed: the session rides on cookies.
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     []string{deps.CORSOrigin},
			AllowCredentials: true,
		}))
	}

	// --- Repositories ---
	accounts := mongodb.NewAccountRepository(deps.DB)
	events := mongodb.NewEventRepository(deps.DB)
	faculty := mongodb.NewFacultyRepository(deps.DB)
	galleries := mongodb.NewGalleryRepository(deps.DB)
	feedback := mongodb.NewFeedbackRepository(deps.DB)
	newsletters := mongodb.NewNewsletterRepository(deps.DB)
	registrations := mongodb.NewRegistrationRepository(deps.DB)

	// --- Services ---
	sessions := service.NewSessionService(accounts, deps.Issuer, deps.Log)
	eventSvc := service.NewEventService(events, deps.Media, deps.Cleanup, deps.Log)
	facultySvc := service.NewFacultyService(faculty, deps.Log)
	gallerySvc := service.NewGalleryService(galleries, deps.Media, deps.Cleanup, deps.Log)
	feedbackSvc := service.NewFeedbackService(feedback, events, deps.Log)
	newsletterSvc := service.NewNewsletterService(newsletters, deps.Media, deps.Cleanup, deps.Log)
	registrationSvc := service.NewRegistrationService(registrations, events, redisdb.NewDedupChecker(deps.Redis), deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessions)
	eventHandler := handler.NewEventHandler(eventSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc)
	galleryHandler := handler.NewGalleryHandler(gallerySvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	newsletterHandler := handler.NewNewsletterHandler(newsletterSvc)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc)

	authed := middleware.Authenticate(deps.Issuer, accounts)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	managers := middleware.RequireRole(domain.RoleAdmin, domain.RoleContentManager)

	v1 := e.Group("/api/v1")

	// --- Session routes ---
	admin := v1.Group("/admin")
	admin.POST("/register", authHandler.Register)
	admin.POST("/login", authHandler.Login)
	admin.POST("/refresh-token", authHandler.Refresh)
	admin.POST("/logout", authHandler.Logout, authed)
	admin.POST("/change-password", authHandler.ChangePassword, authed)
	admin.GET("/current", authHandler.Current, authed)

	// --- Events (reads public, writes admin-only) ---
	eventsGroup := v1.Group("/events")
	eventsGroup.GET("", eventHandler.List)
	eventsGroup.GET("/:identifier", eventHandler.Get)
	eventsGroup.POST("/create", eventHandler.Create, authed, adminOnly)
	eventsGroup.PATCH("/update/:id", eventHandler.Update, authed, adminOnly)
	eventsGroup.DELETE("/delete/:id", eventHandler.Delete, authed, adminOnly)

	// --- Faculty ---
	facultyGroup := v1.Group("/faculty")
	facultyGroup.GET("", facultyHandler.List)
	facultyGroup.POST("/add", facultyHandler.Add, authed, adminOnly)
	facultyGroup.PATCH("/update/:id", facultyHandler.Update, authed, adminOnly)
	facultyGroup.DELETE("/delete/:id", facultyHandler.Remove, authed, adminOnly)

	// --- Gallery ---
	galleryGroup := v1.Group("/gallery")
	galleryGroup.GET("", galleryHandler.List)
	galleryGroup.GET("/:id", galleryHandler.Get)
	galleryGroup.POST("/create", galleryHandler.Create, authed, managers)
	galleryGroup.POST("/:id/images", galleryHandler.AddImage, authed, managers)
	galleryGroup.DELETE("/:id/images", galleryHandler.RemoveImage, authed, managers)
	galleryGroup.DELETE("/delete/:id", galleryHandler.Delete, authed, adminOnly)

	// --- Feedback ---
	feedbackGroup := v1.Group("/feedback")
	feedbackGroup.POST("/:eventId", feedbackHandler.Create, authed)
	feedbackGroup.GET("/:eventId", feedbackHandler.ListByEvent, authed, managers)
	feedbackGroup.DELETE("/delete/:id", feedbackHandler.Delete, authed, adminOnly)

	// --- Registrations ---
	registrationGroup := v1.Group("/registrations")
	registrationGroup.POST("/:eventId", registrationHandler.Create, authed)
	registrationGroup.GET("/me", registrationHandler.ListMine, authed)
	registrationGroup.GET("/event/:eventId", registrationHandler.ListByEvent, authed, managers)
	registrationGroup.DELETE("/delete/:id", registrationHandler.Delete, authed, managers)
	registrationGroup.DELETE("", registrationHandler.DeleteAll, authed, managers)

	// --- Newsletters ---
	newsletterGroup := v1.Group("/newsletters")
	newsletterGroup.GET("", newsletterHandler.List)
	newsletterGroup.POST("/create", newsletterHandler.Create, authed, managers)
	newsletterGroup.PATCH("/update/:id", newsletterHandler.Update, authed, managers)
	newsletterGroup.DELETE("/delete/:id", newsletterHandler.Delete, authed, managers)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
