package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SqueezeFM/cache"
	"SqueezeFM/config"
	"SqueezeFM/core/auth"
	"SqueezeFM/core/ingest"
	"SqueezeFM/db"
	"SqueezeFM/logger"
	"SqueezeFM/model"
	"SqueezeFM/repository"
	"SqueezeFM/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	auth.InitJWT(cfg.JWTSecret)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	if err := storage.InitMinio(cfg); err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	if err := cache.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer cache.CloseRedis()
	log.Println("Successfully connected to Redis")

	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.AutoMigrateModels(&model.Favorite{}, &model.Pricing{}, &model.Coupon{}); err != nil {
		log.Fatalf("Failed to migrate models: %v", err)
	}

	ensureDirExists(cfg.ImportDir)

	trackRepo := repository.NewMySQLTrackRepository()
	userRepo := repository.NewMySQLUserRepository(db.DB)
	albumRepo := repository.NewMySQLAlbumRepository(db.DB)
	favoriteRepo := repository.NewGormFavoriteRepository(db.GormDB)
	pricingRepo := repository.NewGormPricingRepository(db.GormDB)
	couponRepo := repository.NewGormCouponRepository(db.GormDB)

	pendingFavorites := cache.NewPendingFavoriteStore()

	hub := NewCatalogHub()
	apiHandler := NewAPIHandler(trackRepo, userRepo, albumRepo, favoriteRepo, pricingRepo, couponRepo, pendingFavorites, hub, cfg)

	// The import watcher keeps loading catalog drops; each import
	// invalidates the cached snapshot and tells connected clients.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		err := ingest.Watch(watchCtx, cfg.ImportDir, trackRepo, func(count int) {
			if err := cache.InvalidateSnapshot(context.Background()); err != nil {
				logger.Warn("Failed to invalidate snapshot after import", logger.ErrorField(err))
			}
			hub.BroadcastCatalogUpdated(count)
		})
		if err != nil && err != context.Canceled {
			logger.Error("Import watcher stopped", logger.ErrorField(err))
		}
	}()

	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Client-Id")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Catalog and track detail
	router.HandleFunc("/api/catalog", apiHandler.GetCatalogHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}", apiHandler.GetTrackHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}/similar", apiHandler.GetSimilarTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}/similar-filter", apiHandler.GetSimilarFilterHandler).Methods(http.MethodGet)

	// Favorites
	router.HandleFunc("/api/favorites", apiHandler.AuthMiddleware(apiHandler.ListFavoritesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites", apiHandler.AddFavoriteHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/reconcile", apiHandler.AuthMiddleware(apiHandler.ReconcileFavoritesHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{track_id}", apiHandler.AuthMiddleware(apiHandler.RemoveFavoriteHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/favorites/{track_id}/status", apiHandler.AuthMiddleware(apiHandler.GetFavoriteStatusHandler)).Methods(http.MethodGet)

	// Pricing and coupons
	router.HandleFunc("/api/pricing", apiHandler.GetPricingHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/pricing/{product_type}", apiHandler.GetLicensePriceHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/coupons/{code}", apiHandler.GetCouponHandler).Methods(http.MethodGet)

	// Purchase surfaces
	router.HandleFunc("/api/download", apiHandler.AuthMiddleware(apiHandler.DownloadHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/checkout", apiHandler.AuthMiddleware(apiHandler.CheckoutHandler)).Methods(http.MethodPost)

	// Auth
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)

	// Catalog update push
	router.HandleFunc("/ws/catalog", hub.HandleWS)

	// Frontend UI serving
	uiFileServer := http.FileServer(http.Dir(cfg.WebAppDir))
	router.PathPrefix("/").Handler(uiFileServer)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s...", cfg.ServerAddr)
		log.Println("Browse the catalog via GET /api/catalog")
		log.Println("Track detail via GET /api/tracks/{id}")
		log.Println("Manage the wishlist via /api/favorites endpoints")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func ensureDirExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Creating directory: %s", path)
		if err := os.MkdirAll(path, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", path, err)
		}
	} else if err != nil {
		log.Fatalf("Failed to check directory %s: %v", path, err)
	}
}
