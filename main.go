// Filmoteca is a movie catalog REST service: token-gated listing, credential
// login against a single configured admin identity, and field-validated CRUD
// over one movie collection. This file wires configuration, the selected store
// backend, services and handlers onto a chi router and runs the HTTP server
// with graceful shutdown.
//
// @title Filmoteca API
// @version 0.0.1
// @description Mi aplicacion con FastAPI, reescrita en Go: catalogo de peliculas con login de administrador.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/filmoteca-go/apperror"
	"github.com/user/filmoteca-go/auth"
	"github.com/user/filmoteca-go/config"
	"github.com/user/filmoteca-go/db"
	_ "github.com/user/filmoteca-go/docs" // registers the swagger spec
	"github.com/user/filmoteca-go/movies"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Select the store backend at composition time. The memory backend carries
	// the tutorial seed records and needs no database at all.
	var store movies.Store
	switch cfg.Store.Backend {
	case config.BackendMemory:
		store = movies.NewSeededMemStore()
		log.Println("Using in-memory movie store")
	case config.BackendPostgres:
		pool, err := db.NewPool(cfg.Store.Pool)
		if err != nil {
			log.Fatalf("Failed to create database pool: %v", err)
		}
		defer pool.Close()

		// Schema auto-creation at startup.
		if err := db.RunMigrations(cfg.Store.Pool, cfg.Store.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = movies.NewPGStore(pool)
		log.Println("Using PostgreSQL movie store")
	}

	authService, err := auth.NewAuthService(*cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}
	authHandlers := auth.NewHandlers(authService)

	movieService := movies.NewService(store)
	movieHandlers := movies.NewHandler(movieService)

	protected := make(map[string]bool, len(cfg.Server.ProtectedOps))
	for _, op := range cfg.Server.ProtectedOps {
		protected[op] = true
	}

	r := chi.NewRouter()

	// Global middleware; chi requires all of it before any route.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that answers with the apperror JSON shape.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Public greeting, exactly as the catalog has always answered.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "<h1>Hello World</h1>")
	})

	r.Post("/login", authHandlers.HandleLogin())

	movieHandlers.RegisterRoutes(r, auth.RequireAdmin(authService), protected)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware, kept here to
// avoid pulling handler packages into main's middleware chain.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
