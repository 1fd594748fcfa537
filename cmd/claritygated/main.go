// Command claritygated is the hosted claritygate service.
// It serves the assessment REST API and a health check, backed by
// Postgres and blob storage.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/claritygate/claritygate/internal/api"
	"github.com/claritygate/claritygate/internal/archive"
	"github.com/claritygate/claritygate/internal/assessment"
	"github.com/claritygate/claritygate/internal/platform"
	"github.com/claritygate/claritygate/pkg/assess"
	"github.com/claritygate/claritygate/pkg/config"
)

type serviceConfig struct {
	Port           string
	DatabaseURL    string
	ConfigPath     string
	APIKey         string
	StorageBackend string
	StoragePath    string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	GCSBucket      string
}

func loadServiceConfig() serviceConfig {
	return serviceConfig{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseURL:    envOrDefault("DATABASE_URL", "postgres://localhost:5432/claritygate?sslmode=disable"),
		ConfigPath:     os.Getenv("CONFIG_PATH"),
		APIKey:         os.Getenv("API_KEY"),
		StorageBackend: envOrDefault("STORAGE_BACKEND", "local"),
		StoragePath:    envOrDefault("LOCAL_STORAGE_PATH", "/tmp/claritygate-data"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
	}
}

func main() {
	cfg := loadServiceConfig()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	registry, variants, thresholds, err := loadAppConfig(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	assessmentSvc := assessment.NewService(db)
	engine := assess.NewEngine(registry, assess.WithThresholds(thresholds))
	runner := assessment.NewRunner(assessmentSvc, storage, engine, registry, variants)

	handler := api.NewHandler(db, assessmentSvc, runner, storage, registry, variants, nil)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(api.APIKeyAuth(cfg.APIKey)(mux)),
	}

	// Graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("starting claritygated on :%s (storage=%s)", cfg.Port, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// loadAppConfig loads the question catalog, variants and thresholds from
// the config file named by CONFIG_PATH, or found upward from the working
// directory.
func loadAppConfig(path string) (*assess.Registry, map[string]assess.Variant, assess.Thresholds, error) {
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(cwd)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, assess.Thresholds{}, err
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		return nil, nil, assess.Thresholds{}, err
	}
	if len(registry.Questions()) == 0 {
		log.Fatalf("config defines no questions; set CONFIG_PATH to a config file with a question catalog")
	}
	variants, err := cfg.BuildVariants()
	if err != nil {
		return nil, nil, assess.Thresholds{}, err
	}
	thresholds, err := cfg.BuildThresholds()
	if err != nil {
		return nil, nil, assess.Thresholds{}, err
	}

	return registry, variants, thresholds, nil
}

func buildStorage(ctx context.Context, cfg serviceConfig) (archive.StorageClient, error) {
	switch cfg.StorageBackend {
	case "s3":
		return archive.NewS3Storage(ctx, archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "gcs":
		return archive.NewGCSStorage(ctx, cfg.GCSBucket)
	default:
		return archive.NewLocalStorage(cfg.StoragePath), nil
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
