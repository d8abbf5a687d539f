package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	mw "daytrack/internal/middleware"
	"daytrack/internal/services"
	"daytrack/internal/store"
)

// Deps is everything the API needs. A nil Store serves auth and data routes
// with 503 so the process can start before the database is configured.
type Deps struct {
	Store       *store.Store
	Encryption  *services.EncryptionService
	JWTSecret   []byte
	CORSOrigins []string
	Logger      *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.ZapRequestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if d.Store == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no database"})
			return
		}
		if err := d.Store.DB().PingContext(r.Context()); err != nil {
			d.Logger.Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unreachable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if d.Store == nil {
		r.Handle("/api/*", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		}))
		return r
	}

	svc := services.NewAnalyticsService(d.Store)
	authHandler := NewAuthHandler(d.Store, d.Encryption, d.JWTSecret, d.Logger)
	userHandler := NewUserHandler(d.Store, d.Encryption, d.Logger)
	habitHandler := NewHabitHandler(d.Store, d.Logger)
	journalHandler := NewJournalHandler(d.Store, d.Encryption, svc, d.Logger)
	analyticsHandler := NewAnalyticsHandler(svc, d.Logger)
	workHandler := NewWorkHandler(d.Store, d.Logger)
	importHandler := NewImportHandler(d.Store, d.Encryption, d.Logger)
	adminHandler := NewAdminHandler(d.Store, svc, d.Logger)
	authMW := mw.NewAuthMiddleware(d.JWTSecret)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)

		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)

			pr.Get("/me", userHandler.GetMe)
			pr.Put("/me", userHandler.UpdateMe)

			pr.Get("/habits", habitHandler.List)
			pr.Post("/habits", habitHandler.Create)
			pr.Put("/habits/{id}", habitHandler.Update)
			pr.Delete("/habits/{id}", habitHandler.Delete)
			pr.Get("/habits/{id}/stats", analyticsHandler.HabitStats)
			pr.Get("/habits/{id}/heatmap", analyticsHandler.HabitHeatmap)

			pr.Get("/journal", journalHandler.List)
			pr.Post("/journal", journalHandler.Upsert)
			pr.Delete("/journal/{date}", journalHandler.Delete)

			pr.Get("/heatmap/habits", analyticsHandler.AllHabitsHeatmap)
			pr.Get("/heatmap/journal", analyticsHandler.JournalHeatmap)
			pr.Get("/moods", analyticsHandler.Moods)
			pr.Get("/dashboard", analyticsHandler.Dashboard)

			pr.Get("/projects", workHandler.ListProjects)
			pr.Post("/projects", workHandler.CreateProject)
			pr.Get("/tasks", workHandler.ListTasks)
			pr.Post("/tasks", workHandler.CreateTask)
			pr.Put("/tasks/{id}/done", workHandler.SetTaskDone)

			pr.Post("/import", importHandler.Import)

			pr.With(mw.RequireAdmin(d.Store, d.Logger)).Get("/admin/overview", adminHandler.Overview)
		})
	})
	return r
}
