package api

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nbrain/onboarding-portal/internal/api/handler"
	"github.com/nbrain/onboarding-portal/internal/core/service"
	"github.com/nbrain/onboarding-portal/internal/infrastructure/config"
	mongostore "github.com/nbrain/onboarding-portal/internal/infrastructure/db/mongo"
	"github.com/nbrain/onboarding-portal/internal/infrastructure/storage"
	"github.com/nbrain/onboarding-portal/internal/report"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity dispatcher is started by the caller; the router only enqueues.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	activity handler.ActivityDispatcher,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	// Upload cap plus slack for the multipart envelope.
	e.Use(echomiddleware.BodyLimit(strconv.FormatInt(cfg.Upload.MaxBytes+(1<<20), 10)))
	e.Use(echoprometheus.NewMiddleware("onboarding"))

	// --- Dependencies ---
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("router: load business timezone %q: %w", cfg.Schedule.Timezone, err)
	}
	uploadStore, err := storage.NewUploadStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return nil, err
	}

	credentialRepo := mongostore.NewCredentialRepository(db)
	appointmentRepo := mongostore.NewAppointmentRepository(db)

	credentialService := service.NewCredentialService(credentialRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, loc, cfg.Schedule.HorizonDays, log)

	credentialHandler := handler.NewCredentialHandler(credentialService, uploadStore, activity)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, activity)
	reportHandler := report.NewHandler(credentialService, appointmentService, report.ReferenceData{
		CompanyName:      cfg.Report.CompanyName,
		ContactEmail:     cfg.Report.ContactEmail,
		ReferenceAccount: cfg.Report.ReferenceAccount,
	})

	// --- API routes ---
	e.GET("/api/credentials", credentialHandler.List)
	e.GET("/api/credentials/:id", credentialHandler.Get)
	e.POST("/api/credentials/:id/upload", credentialHandler.Upload)

	e.GET("/api/appointments/available", appointmentHandler.Available)
	e.POST("/api/appointments", appointmentHandler.Book)
	e.GET("/api/appointments", appointmentHandler.List)

	// --- Admin report ---
	e.GET("/admin/report", reportHandler.Render)

	// --- Health probes + metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static front end (cards + modals) ---
	if cfg.Static.Dir != "" {
		if _, err := os.Stat(cfg.Static.Dir); err == nil {
			e.Static("/", cfg.Static.Dir)
		}
	}

	return e, nil
}
