package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shacademy-backend/config"
	httpDelivery "shacademy-backend/internal/delivery/http"
	"shacademy-backend/internal/domain"
	"shacademy-backend/internal/repository"
	"shacademy-backend/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to databases
	db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	// Auto migrate
	if err := config.AutoMigrate(db.PG); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if err := repository.EnsureQuizIndexes(ctx, db.Mongo); err != nil {
		log.Fatal("Quiz index setup failed:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.PG)
	courseRepo := repository.NewCourseRepository(db.PG)
	enrollmentRepo := repository.NewEnrollmentRepository(db.PG)
	assignmentRepo := repository.NewAssignmentRepository(db.PG)
	quizRepo := repository.NewQuizRepository(db.Mongo)
	fileRepo, err := repository.NewGridFSRepository(db.Mongo)
	if err != nil {
		log.Fatal("GridFS setup failed:", err)
	}

	tokenStore := repository.NewMemoryTokenStore()
	statsCache := repository.NewMemoryStatsCache()
	if db.Redis != nil {
		tokenStore = repository.NewTokenStore(db.Redis)
		statsCache = repository.NewStatsCache(db.Redis)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(userRepo, tokenStore, statsCache, usecase.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.JWTAccessTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
	})
	userUsecase := usecase.NewUserUsecase(userRepo, statsCache)
	courseUsecase := usecase.NewCourseUsecase(courseRepo, enrollmentRepo, assignmentRepo, quizRepo, fileRepo, statsCache)
	enrollmentUsecase := usecase.NewEnrollmentUsecase(enrollmentRepo, courseRepo, userRepo, statsCache)
	assignmentUsecase := usecase.NewAssignmentUsecase(assignmentRepo, courseRepo, enrollmentRepo)
	quizUsecase := usecase.NewQuizUsecase(quizRepo, courseRepo, enrollmentRepo, userRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(userRepo, courseRepo, enrollmentRepo, statsCache, cfg.StatsCacheTTL)

	seedAdmin(ctx, authUsecase, cfg)

	// Initialize handlers
	apiHandler := httpDelivery.NewHandler(
		authUsecase, userUsecase, courseUsecase, enrollmentUsecase,
		assignmentUsecase, quizUsecase, dashboardUsecase, fileRepo,
		httpDelivery.HandlerConfig{
			JWTSecret:        cfg.JWTSecret,
			AccessTTL:        cfg.JWTAccessTTL,
			RefreshTTL:       cfg.JWTRefreshTTL,
			AllowAdminSignup: cfg.AllowAdminSignup,
		},
	)
	webHandler := httpDelivery.NewWebHandler(cfg.JWTSecret)

	// Initialize router with both API and page routes
	router := httpDelivery.InitRouter(apiHandler)
	httpDelivery.InitWebRouter(router, webHandler)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpDelivery.CorsSettings(cfg.CORSOrigins).Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		log.Printf("API: http://localhost%s/api/v1", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	db.Close(shutdownCtx)
}

// seedAdmin creates the bootstrap admin from ADMIN_EMAIL / ADMIN_PASSWORD.
func seedAdmin(ctx context.Context, authUsecase domain.AuthUsecase, cfg config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	admin := &domain.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Role:     domain.RoleAdmin,
	}
	err := authUsecase.Register(ctx, admin)
	if err != nil && !errors.Is(err, domain.ErrEmailTaken) {
		log.Printf("Failed to seed admin: %v", err)
	}
}
