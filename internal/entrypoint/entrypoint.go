// Package entrypoint wires the process together: one database opened
// at startup (fail fast if it cannot be), services, optional task
// queue and export scheduler, and the HTTP server with graceful
// shutdown that closes everything it opened.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/attendance/internal/config"
	"github.com/mrlokans/attendance/internal/database"
	attendancerepo "github.com/mrlokans/attendance/internal/database/attendance"
	"github.com/mrlokans/attendance/internal/database/courses"
	"github.com/mrlokans/attendance/internal/database/students"
	"github.com/mrlokans/attendance/internal/exporters"
	http_controllers "github.com/mrlokans/attendance/internal/http"
	"github.com/mrlokans/attendance/internal/notify"
	"github.com/mrlokans/attendance/internal/scheduler"
	"github.com/mrlokans/attendance/internal/services"
	"github.com/mrlokans/attendance/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Attendance Tracker v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	hub := notify.NewHub()
	courseRepo := courses.NewRepository(db.DB, hub)
	studentRepo := students.NewRepository(db.DB, hub)
	attendanceRepo := attendancerepo.NewRepository(db.DB, hub)

	exporter := exporters.NewCSVExporter(cfg.Export.Dir)

	courseService := services.NewCourseService(courseRepo)
	studentService := services.NewStudentService(studentRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, exporter)

	// Task queue for background exports
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewExportCourseQueue(attendanceService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Periodic export of every course
	var exportSync *scheduler.ExportSyncScheduler
	if cfg.ExportSync.Enabled {
		exportSync = scheduler.NewExportSyncScheduler(courseService, attendanceService, cfg.ExportSync.Schedule)
		if err := exportSync.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start export sync scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:   db,
		Courses:    courseService,
		Students:   studentService,
		Attendance: attendanceService,
		TaskClient: taskClient,
		Version:    version,
	})

	onShutdown := func(ctx context.Context) {
		if exportSync != nil {
			exportSync.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
