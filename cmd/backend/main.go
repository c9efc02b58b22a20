package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/auth"
	"github.com/Barathraj2387/Survey-App/internal/config"
	"github.com/Barathraj2387/Survey-App/internal/cors"
	"github.com/Barathraj2387/Survey-App/internal/export"
	"github.com/Barathraj2387/Survey-App/internal/invitation"
	"github.com/Barathraj2387/Survey-App/internal/jwt"
	"github.com/Barathraj2387/Survey-App/internal/report"
	"github.com/Barathraj2387/Survey-App/internal/response"
	"github.com/Barathraj2387/Survey-App/internal/submit"
	"github.com/Barathraj2387/Survey-App/internal/survey"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"
	"github.com/Barathraj2387/Survey-App/internal/trace"
	"github.com/Barathraj2387/Survey-App/internal/user"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/middleware"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.6.1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var AppName = "no-app-name"

var Version = "no-version"

var BuildTime = "no-build-time"

var CommitHash = "no-commit-hash"

var Environment = "no-env"

func main() {
	AppName = os.Getenv("APP_NAME")
	if AppName == "" {
		AppName = "survey-app"
	}

	if BuildTime == "no-build-time" {
		now := time.Now()
		BuildTime = "not provided (now: " + now.Format(time.RFC3339) + ")"
	}

	Environment = os.Getenv("ENV")
	if Environment == "" {
		Environment = "no-env"
	}

	appMetadata := []zap.Field{
		zap.String("app_name", AppName),
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit_hash", CommitHash),
		zap.String("environment", Environment),
	}

	cfg, cfgLog := config.Load()
	err := cfg.Validate()
	if err != nil {
		if errors.Is(err, config.ErrDatabaseURLRequired) {
			title := "Database URL is required"
			message := "Please set the DATABASE_URL environment variable or provide a config file with the database_url key."
			message = EarlyApplicationFailed(title, message)
			log.Fatal(message)
		} else {
			log.Fatalf("Failed to validate config: %v, exiting...", err)
		}
	}

	logger, err := initLogger(&cfg, appMetadata)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v, exiting...", err)
	}

	cfgLog.FlushToZap(logger)

	if cfg.Debug {
		logger.Warn("Running in debug mode, make sure to disable it in production")
	}

	if cfg.Secret == config.DefaultSecret && !cfg.Debug {
		logger.Warn("Default secret detected in production environment, replace it with a secure random string")
		cfg.Secret = uuid.New().String()
	}

	logger.Info("Starting application...")

	logger.Info("Starting database migration...")

	err = databaseutil.MigrationUp(cfg.MigrationSource, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("Failed to run database migration", zap.Error(err))
	}

	dbPool, err := initDatabasePool(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	shutdown, err := initOpenTelemetry(AppName, Version, BuildTime, CommitHash, Environment, cfg.OtelCollectorUrl)
	if err != nil {
		logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
	}

	validator := internal.NewValidator()
	problemWriter := internal.NewProblemWriter()
	user.InitAdminDomain(cfg.AdminDomain)

	// ============================================
	// Service
	// ============================================

	userService := user.NewService(logger, dbPool)
	jwtService := jwt.NewService(logger, cfg.Secret, cfg.SessionExpiration)
	sessionStore := auth.NewSessionStore(cfg.SessionExpiration)
	authService := auth.NewService(logger, dbPool, userService, jwtService, sessionStore, cfg.BaseURL, cfg.TokenExpiration)
	questionService := question.NewService(logger, dbPool)
	surveyService := survey.NewService(logger, dbPool, questionService)
	invitationService := invitation.NewService(logger, dbPool, userService)
	responseService := response.NewService(logger, dbPool)
	submitService := submit.NewService(logger, surveyService, questionService, invitationService, responseService)
	reportService := report.NewService(logger, surveyService, questionService, invitationService, responseService)
	exportService := export.NewService(logger, surveyService, questionService, responseService)

	// ============================================
	// Handler
	// ============================================

	authHandler := auth.NewHandler(logger, validator, problemWriter, authService, jwtService, cfg.SessionExpiration, cfg.Debug)
	userHandler := user.NewHandler(logger, validator, problemWriter)
	surveyHandler := survey.NewHandler(logger, validator, problemWriter, surveyService, invitationService, responseService)
	invitationHandler := invitation.NewHandler(logger, validator, problemWriter, invitationService, surveyService)
	submitHandler := submit.NewHandler(logger, validator, problemWriter, submitService)
	reportHandler := report.NewHandler(logger, validator, problemWriter, reportService)
	exportHandler := export.NewHandler(logger, validator, problemWriter, exportService)

	// ============================================
	// Middleware
	// ============================================

	traceMiddleware := trace.NewMiddleware(logger, cfg.Debug)
	corsMiddleware := cors.NewMiddleware(logger, cfg.AllowOrigins)
	sessionMiddleware := auth.NewMiddleware(logger, problemWriter, jwtService, sessionStore, userService)

	// Basic Middleware (Tracing and Recovery)
	basicMiddleware := middleware.NewSet(traceMiddleware.RecoverMiddleware)
	basicMiddleware = basicMiddleware.Append(traceMiddleware.TraceMiddleware)

	// Auth Middleware
	authMiddleware := basicMiddleware.Append(sessionMiddleware.AuthenticateMiddleware)

	// Admin Middleware
	adminMiddleware := authMiddleware.Append(sessionMiddleware.RequireAdminMiddleware)

	// HTTP Server
	mux := http.NewServeMux()

	// Health check route
	mux.Handle("GET /api/healthz", basicMiddleware.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			logger.Error("Failed to write response", zap.Error(err))
		}
	}))

	// ============================================
	// Authentication routes
	// ============================================

	// Magic-Link Login
	// ----------------------
	mux.Handle("POST /api/auth/login", basicMiddleware.HandlerFunc(authHandler.LoginHandler))
	mux.Handle("GET /api/auth/verify/{token}", basicMiddleware.HandlerFunc(authHandler.VerifyHandler))
	mux.Handle("POST /api/auth/logout", basicMiddleware.HandlerFunc(authHandler.LogoutHandler))

	// User me and dashboard
	// ----------------------
	mux.Handle("GET /api/users/me", authMiddleware.HandlerFunc(userHandler.GetMe))
	mux.Handle("GET /api/dashboard", authMiddleware.HandlerFunc(surveyHandler.DashboardHandler))

	// ============================================
	// Survey routes
	// ============================================

	// Survey Management
	// ----------------------
	mux.Handle("POST /api/surveys", adminMiddleware.HandlerFunc(surveyHandler.CreateHandler))
	mux.Handle("GET /api/surveys", authMiddleware.HandlerFunc(surveyHandler.ListHandler))
	mux.Handle("GET /api/surveys/{surveyId}", authMiddleware.HandlerFunc(surveyHandler.GetHandler))

	// -- Survey Operations
	mux.Handle("POST /api/surveys/{surveyId}/publish", adminMiddleware.HandlerFunc(surveyHandler.PublishHandler))

	// Invitation Management
	// ----------------------
	mux.Handle("POST /api/surveys/{surveyId}/invitations", adminMiddleware.HandlerFunc(invitationHandler.InviteHandler))
	mux.Handle("GET /api/surveys/{surveyId}/invitations", adminMiddleware.HandlerFunc(invitationHandler.ListHandler))

	// Response Intake
	// ----------------------
	mux.Handle("POST /api/surveys/{surveyId}/responses", authMiddleware.HandlerFunc(submitHandler.SubmitHandler))

	// Reporting and Export
	// ----------------------
	mux.Handle("GET /api/surveys/{surveyId}/report", adminMiddleware.HandlerFunc(reportHandler.GetHandler))
	mux.Handle("GET /api/surveys/{surveyId}/my-report", authMiddleware.HandlerFunc(reportHandler.GetMineHandler))
	mux.Handle("GET /api/surveys/{surveyId}/export/{format}", adminMiddleware.HandlerFunc(exportHandler.DownloadHandler))

	// End of API routes
	// ============================================
	// handle interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// CORS and Entry Point
	entrypoint := corsMiddleware.HandlerFunc(mux.ServeHTTP)

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: entrypoint,
	}

	go func() {
		logger.Info("Starting listening request", zap.String("host", cfg.Host), zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Fail to start server with error", zap.Error(err))
		}
	}()

	// wait for context close
	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := shutdown(otelCtx); err != nil {
		logger.Error("Forced to shutdown OpenTelemetry", zap.Error(err))
	}

	logger.Info("Successfully shutdown")
}

func initLogger(cfg *config.Config, appMetadata []zap.Field) (*zap.Logger, error) {
	var err error
	var logger *zap.Logger
	if cfg.Debug {
		logger, err = logutil.ZapDevelopmentConfig().Build()
		if err != nil {
			return nil, err
		}
		logger.Info("Running in debug mode", appMetadata...)
	} else {
		logger, err = logutil.ZapProductionConfig().Build()
		if err != nil {
			return nil, err
		}

		logger = logger.With(appMetadata...)
	}
	defer func() {
		err := logger.Sync()
		if err != nil {
			zap.S().Errorw("Failed to sync logger", zap.Error(err))
		}
	}()

	return logger, nil
}

func initDatabasePool(databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	return dbPool, nil
}

func initOpenTelemetry(appName, version, buildTime, commitHash, environment, otelCollectorUrl string) (func(context.Context) error, error) {
	ctx := context.Background()

	serviceName := semconv.ServiceNameKey.String(appName)
	serviceVersion := semconv.ServiceVersionKey.String(version)
	serviceNamespace := semconv.ServiceNamespaceKey.String("survey")
	serviceCommitHash := attribute.String("service.commit_hash", commitHash)
	serviceEnvironment := semconv.DeploymentEnvironmentKey.String(environment)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			serviceName,
			serviceVersion,
			serviceNamespace,
			serviceCommitHash,
			serviceEnvironment,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	options := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if otelCollectorUrl != "" {
		conn, err := initGrpcConn(otelCollectorUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
		}

		traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
		options = append(options, sdktrace.WithSpanProcessor(bsp))
	}

	tracerProvider := sdktrace.NewTracerProvider(options...)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tracerProvider.Shutdown, nil
}

func initGrpcConn(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	return conn, nil
}

func EarlyApplicationFailed(title, action string) string {
	result := `
-----------------------------------------
Application Failed to Start
-----------------------------------------

# What's wrong?
%s

# How to fix it?
%s

`

	result = fmt.Sprintf(result, title, action)
	return result
}
