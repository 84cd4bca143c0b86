package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/prakasam1973/MOM-Tracker/internal/adapters/http"
	"github.com/prakasam1973/MOM-Tracker/internal/adapters/repository"
	"github.com/prakasam1973/MOM-Tracker/internal/application/services"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/config"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/storage"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo      *echo.Echo
	config    *config.Config
	logger    *logger.Logger
	store     *storage.Store
	reminders *services.ReminderService
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, store *storage.Store, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	weekStart, err := cfg.Calendar.WeekStartDay()
	if err != nil {
		return nil, err
	}

	clock := ports.SystemClock{}
	ids := ports.IDGenerator(uuid.NewString)

	// Initialize repositories
	eventRepo := repository.NewEventRepository(store, appLogger)
	attendanceRepo := repository.NewAttendanceRepository(store, appLogger)
	stepRepo := repository.NewStepRepository(store, appLogger)
	csrRepo := repository.NewCSRRepository(store, ids, appLogger)
	profileRepo := repository.NewProfileRepository(store, appLogger)
	reminderRepo := repository.NewReminderRepository(store, appLogger)

	// Initialize services
	slackNotifier := services.NewSlackNotifier(cfg.Slack, appLogger)
	var notifier ports.Notifier
	if slackNotifier != nil {
		notifier = slackNotifier
	}

	eventService := services.NewEventService(eventRepo, clock, ids, weekStart, appLogger)
	statsService := services.NewStatsService(eventService, clock, weekStart)
	exportService := services.NewExportService(eventService)
	attendanceService := services.NewAttendanceService(attendanceRepo, clock, appLogger)
	stepsService := services.NewStepsService(stepRepo, clock, weekStart, appLogger)
	csrService := services.NewCSRService(csrRepo, ids, appLogger)
	profileService := services.NewProfileService(profileRepo, appLogger)
	reminderService := services.NewReminderService(reminderRepo, clock, ids, notifier, cfg.Reminders.ScanInterval, appLogger)

	// Initialize handlers
	eventHandler := httpHandlers.NewEventHandler(eventService, statsService, exportService, slackNotifier, appLogger)
	attendanceHandler := httpHandlers.NewAttendanceHandler(attendanceService, appLogger)
	stepsHandler := httpHandlers.NewStepsHandler(stepsService, appLogger)
	csrHandler := httpHandlers.NewCSRHandler(csrService, appLogger)
	profileHandler := httpHandlers.NewProfileHandler(profileService, appLogger)
	reminderHandler := httpHandlers.NewReminderHandler(reminderService, appLogger)

	server := &Server{
		echo:      e,
		config:    cfg,
		logger:    appLogger,
		store:     store,
		reminders: reminderService,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(eventHandler, attendanceHandler, stepsHandler, csrHandler, profileHandler, reminderHandler)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(eventHandler *httpHandlers.EventHandler, attendanceHandler *httpHandlers.AttendanceHandler, stepsHandler *httpHandlers.StepsHandler, csrHandler *httpHandlers.CSRHandler, profileHandler *httpHandlers.ProfileHandler, reminderHandler *httpHandlers.ReminderHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Event routes
	eventGroup := v1.Group("/events")
	eventGroup.GET("", eventHandler.ListEvents)
	eventGroup.POST("", eventHandler.CreateEvent)
	eventGroup.GET("/stats", eventHandler.GetStats)
	eventGroup.GET("/week", eventHandler.GetWeek)
	eventGroup.GET("/export", eventHandler.ExportICS)
	eventGroup.POST("/share", eventHandler.ShareDay)
	eventGroup.DELETE("", eventHandler.ClearEvents)
	eventGroup.GET("/:id", eventHandler.GetEvent)
	eventGroup.PATCH("/:id", eventHandler.UpdateEvent)
	eventGroup.PUT("/:id/status", eventHandler.ChangeStatus)
	eventGroup.PUT("/:id/reschedule", eventHandler.RescheduleEvent)
	eventGroup.DELETE("/:id", eventHandler.DeleteEvent)

	// Attendance routes
	attendanceGroup := v1.Group("/attendance")
	attendanceGroup.GET("", attendanceHandler.ListAttendance)
	attendanceGroup.POST("", attendanceHandler.MarkAttendance)
	attendanceGroup.GET("/months", attendanceHandler.ListMonths)
	attendanceGroup.GET("/summary", attendanceHandler.GetSummary)
	attendanceGroup.DELETE("/:date", attendanceHandler.DeleteAttendance)

	// Step tracker routes
	stepsGroup := v1.Group("/steps")
	stepsGroup.GET("", stepsHandler.ListSteps)
	stepsGroup.POST("", stepsHandler.AddSteps)
	stepsGroup.GET("/trend", stepsHandler.GetTrend)
	stepsGroup.DELETE("/:date", stepsHandler.DeleteSteps)

	// CSR record routes
	csrGroup := v1.Group("/csr")
	csrGroup.GET("", csrHandler.ListRecords)
	csrGroup.POST("", csrHandler.CreateRecord)
	csrGroup.GET("/summary", csrHandler.GetSummary)
	csrGroup.GET("/options", csrHandler.GetOptions)
	csrGroup.PUT("/:id", csrHandler.UpdateRecord)
	csrGroup.DELETE("/:id", csrHandler.DeleteRecord)

	// Profile routes
	profileGroup := v1.Group("/profile")
	profileGroup.GET("", profileHandler.GetProfile)
	profileGroup.PUT("", profileHandler.SaveProfile)

	// Reminder routes
	reminderGroup := v1.Group("/reminders")
	reminderGroup.GET("", reminderHandler.ListReminders)
	reminderGroup.POST("", reminderHandler.CreateReminder)
	reminderGroup.DELETE("/:id", reminderHandler.DeleteReminder)
	reminderGroup.POST("/:id/snooze", reminderHandler.SnoozeReminder)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Storage health check
	if err := s.store.Ping(); err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status": "ok",
			"path":   s.config.Storage.Path,
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server and the reminder scanner
func (s *Server) Start(address string) error {
	if s.config.Reminders.Enabled {
		if err := s.reminders.Start(); err != nil {
			return err
		}
	}

	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	s.reminders.Stop()
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
