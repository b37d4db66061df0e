package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placewatch-service/internal/domain/entity"
	domainRepo "placewatch-service/internal/domain/repository"
	"placewatch-service/internal/infrastructure/config"
	"placewatch-service/internal/infrastructure/persistence"
	"placewatch-service/internal/infrastructure/scheduler"
	ifaceRepo "placewatch-service/internal/interface/repository"
	"placewatch-service/internal/usecase"
	"placewatch-service/pkg/logger"
	"placewatch-service/pkg/metrics"
	"placewatch-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Placewatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Sync run journal lives in PostgreSQL; optional.
	var syncRunRepo domainRepo.SyncRunRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		syncRunRepo, err = ifaceRepo.NewGormSyncRunRepository(gormDB)
		if err != nil {
			log.Fatal("Failed to prepare sync run journal", "error", err)
		}
	} else {
		log.Warn("POSTGRES_DSN not set, sync run journaling disabled")
	}

	// Set up repositories
	placeRepo := ifaceRepo.NewMongoPlaceRepository(db)
	directoryRepo := ifaceRepo.NewHTTPDirectoryRepository(cfg.DirectoryBaseURL, cfg.DirectoryToken, cfg.DirectoryTimeout, log)
	alertRepo := ifaceRepo.NewPushAlertRepository(cfg.PushEndpoint, cfg.PushToken, log)
	permissionRepo := ifaceRepo.NewStaticPermissionRepository(cfg.NotifyPermission)

	// Set up the sync core
	appMetrics := metrics.NewMetrics("placewatch")
	converter := utils.NewPlaceConverter(log)
	differ := usecase.NewScheduleDiffer()
	statusEngine := usecase.NewStatusEngine(cfg.ClosingSoonWindow)
	notifier := usecase.NewChangeNotifier(alertRepo, permissionRepo, appMetrics, log)
	syncEngine := usecase.NewSyncEngine(
		placeRepo,
		directoryRepo,
		syncRunRepo,
		notifier,
		differ,
		statusEngine,
		converter,
		appMetrics,
		log,
		cfg.SyncStaleAfter,
		cfg.FetchInterval,
	)

	// Log batch summaries as they arrive
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case summary := <-syncEngine.Results():
				log.Info("Batch summary",
					"trigger", summary.Trigger,
					"message", summary.Message())
			}
		}
	}()

	// Cold-start staleness sweep, then arm the background refresh
	taskScheduler := scheduler.NewTimerScheduler(cfg.RunBudget, log)
	refreshScheduler := usecase.NewRefreshScheduler(taskScheduler, syncEngine, log)

	go func() {
		log.Info("Running cold-start sweep")
		if _, err := syncEngine.SyncAll(ctx, entity.TriggerColdStart, false); err != nil {
			log.Error("Cold-start sweep failed", "error", err)
		}
		refreshScheduler.Arm(cfg.SyncInterval)
	}()

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	mux.HandleFunc("/sync", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Manual pull: every record, no staleness filter.
		summary, err := syncEngine.SyncAll(r.Context(), entity.TriggerManual, true)
		if errors.Is(err, usecase.ErrSyncInFlight) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err != nil && !errors.Is(err, usecase.ErrBatchExpired) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":   summary.Message(),
			"attempted": summary.Attempted,
			"succeeded": summary.Succeeded,
			"failed":    summary.Failed,
			"changed":   summary.Changed,
		})
	})
	mux.HandleFunc("/places", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		records, err := placeRepo.FetchAll(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		now := time.Now()
		type placeView struct {
			ID          string     `json:"id"`
			Name        string     `json:"name"`
			Status      string     `json:"status"`
			Stale       bool       `json:"stale"`
			LastUpdated time.Time  `json:"lastUpdated"`
			LastChecked *time.Time `json:"lastChecked,omitempty"`
		}

		views := make([]placeView, 0, len(records))
		for _, record := range records {
			views = append(views, placeView{
				ID:          record.ID,
				Name:        record.Name,
				Status:      string(statusEngine.Status(record.Schedule, now)),
				Stale:       statusEngine.IsStale(record.LastUpdated, now, cfg.DisplayStaleAfter),
				LastUpdated: record.LastUpdated,
				LastChecked: record.LastChecked,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(views)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	refreshScheduler.Cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Placewatch Service stopped")
}
