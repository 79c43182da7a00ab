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

	"angka-kredit-backend/app/repository"
	"angka-kredit-backend/app/service"
	"angka-kredit-backend/config"
	"angka-kredit-backend/database"
	"angka-kredit-backend/routes"
	"angka-kredit-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {

	// =================================================================
	// LOAD CONFIG + LOGGER
	// =================================================================
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET wajib diisi")
	}

	logger, err := utils.NewLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("❌ Gagal membuat logger: %v", err)
	}
	defer logger.Sync()

	// =================================================================
	// INIT DB (POSTGRES + MONGODB)
	// =================================================================
	ctx := context.Background()
	dbConn, err := database.InitDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("gagal koneksi database", "error", err)
	}

	// =================================================================
	// SEED DATA (ROLES + USERS + DOSEN + SEMESTER)
	// =================================================================
	if cfg.SeedData {
		if err := database.RunSeeders(dbConn.Postgres, logger); err != nil {
			logger.Fatal("gagal seed data", "error", err)
		}
	}

	// =================================================================
	// REPOSITORIES
	// =================================================================
	userRepo := repository.NewUserRepository(dbConn.Postgres)
	lecturerRepo := repository.NewLecturerRepository(dbConn.Postgres)
	semesterRepo := repository.NewSemesterRepository(dbConn.Postgres)
	recordRepo := repository.NewRecordRepository(dbConn.Postgres)
	documentRepo := repository.NewDocumentRepository(dbConn.Mongo)

	// =================================================================
	// SERVICES
	// =================================================================
	authService := service.NewAuthService(userRepo, lecturerRepo, logger)
	submissionService := service.NewSubmissionService(recordRepo, documentRepo, lecturerRepo, semesterRepo, logger)
	aggregators := service.NewAggregators(recordRepo, logger)
	kesimpulanService := service.NewKesimpulanService(lecturerRepo, aggregators, logger)
	reportService := service.NewReportService(documentRepo, logger)
	lecturerService := service.NewLecturerService(lecturerRepo, semesterRepo)

	// =================================================================
	// ROUTER
	// =================================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	routes.NewAuthHandler(authService).SetupAuthRoutes(r)
	routes.NewKegiatanHandler(submissionService).SetupKegiatanRoutes(r)
	routes.NewRekapHandler(aggregators, kesimpulanService).SetupRekapRoutes(r)
	routes.ReportRoutes(r, reportService)
	routes.LecturerRoutes(r, lecturerService)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Angka Kredit API RUNNING",
			"version": "1.0.0",
		})
	})

	// =================================================================
	// START SERVER + GRACEFUL SHUTDOWN
	// =================================================================
	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		logger.Info("🚀 server berjalan", "addr", "http://localhost:"+cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("gagal menjalankan server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown server gagal", "error", err)
	}
	if err := dbConn.Close(shutdownCtx); err != nil {
		logger.Error("gagal menutup koneksi database", "error", err)
	}
	logger.Info("server berhenti")
}
