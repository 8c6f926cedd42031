package internal

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"reclaimit-api/internal/config"
	"reclaimit-api/internal/handlers"
	"reclaimit-api/internal/llm"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Server struct {
	DB      *sql.DB
	Pool    *pgxpool.Pool
	Router  *chi.Mux
	Metrics *Metrics
	Drafter *llm.Drafter
	Cfg     *config.Config
}

func NewServer(dsn string, cfg *config.Config) *Server {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Database ping failed:", err)
	}

	// Also create a pgxpool for the importer
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("Failed to create pgxpool:", err)
	}

	// Initialize the drafting/chat assistant. Falls back to templates when no
	// model is configured or the model is unreachable.
	drafter := llm.NewDrafter(llm.Options{
		Model:     cfg.OllamaModel,
		ServerURL: cfg.OllamaServerURL,
		Timeout:   cfg.LLMTimeout,
	})

	// Initialize metrics
	metrics := NewMetrics()

	s := &Server{
		DB:      db,
		Pool:    pool,
		Router:  chi.NewRouter(),
		Metrics: metrics,
		Drafter: drafter,
		Cfg:     cfg,
	}

	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Get("/dbping", func(w http.ResponseWriter, r *http.Request) {
		if err := s.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "db: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		if _, err := w.Write([]byte("db: ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	// Mount metrics if enabled
	if os.Getenv("ENABLE_METRICS") == "true" {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	s.mountAPIRoutes(s.Router)

	return s
}

// Close properly shuts down the server and cleans up resources
func (s *Server) Close(ctx context.Context) error {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// mountAPIRoutes mounts the asset recovery API
func (s *Server) mountAPIRoutes(r chi.Router) {
	// Asset listing and single fetch
	r.Get("/api/assets", s.listAssets)
	r.Get("/api/assets/{id}", s.getAsset)

	// Bulk import (multipart CSV/XLSX)
	uploadHandler := handlers.NewUploadHandler(s.Pool, s.Cfg.MaxUploadBytes, s.Cfg.MappingPath)
	r.Post("/api/assets/bulk_upload", uploadHandler.UploadAssets)

	// Status transitions and AI-assisted actions
	r.Post("/api/assets/{id}/flag_missing", s.flagMissing)
	r.Post("/api/assets/{id}/draft_email", s.draftEmail)
	r.Post("/api/assets/{id}/send_email", s.sendEmail)
	r.Post("/api/assets/{id}/estimate_value", s.estimateValue)

	// Chat assistant and dashboard aggregates
	r.Post("/api/chat", s.chat)
	r.Get("/api/dashboard", s.dashboard)
}
