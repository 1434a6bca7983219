package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"

	"senateur-site/internal/auth"
	"senateur-site/internal/cache"
	"senateur-site/internal/config"
	"senateur-site/internal/data"
	"senateur-site/internal/handler"
	"senateur-site/internal/logger"
	"senateur-site/internal/middleware"
	"senateur-site/internal/service"
	"senateur-site/internal/storage"
	"senateur-site/internal/view"
	"senateur-site/web"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stderr)

	// --- Pre-flight Checks ---
	if cfg.Session.SecretKey == "" || cfg.Session.SecretKey == "CHANGE_ME_IN_PRODUCTION_SECRET!!" {
		log.Fatal(errors.New("session secret key not set"), "Please set a secure SENAT_SESSION_SECRETKEY environment variable.")
	}
	if cfg.Admin.PasswordHash == "" {
		log.Fatal(errors.New("admin password hash not set"), "Please set SENAT_ADMIN_PASSWORD_HASH to a bcrypt hash.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	credentials, err := auth.NewCredentials(cfg.Admin)
	if err != nil {
		log.Fatal(err, "Failed to initialize admin credentials")
	}

	// OIDC is optional and only configured when an issuer is set.
	var authenticator *auth.Authenticator
	if cfg.OIDC.IssuerURL != "" {
		authenticator, err = auth.NewAuthenticator(&cfg.OIDC)
		if err != nil {
			log.Fatal(err, "Failed to initialize authenticator")
		}
	}

	enforcer, err := auth.NewEnforcer("mysql", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	contentCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer contentCache.Close()
	log.Info("Cache initialized.")

	// --- Upload Storage Initialization ---
	uploads, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal(err, "Failed to initialize upload storage")
	}

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	store := data.NewStore(db)
	contentRepository := data.NewContentRepository(db)
	categoryRepository := data.NewCategoryRepository(db)
	eventRepository := data.NewEventRepository(db)

	snapshotTTL := time.Duration(cfg.Cache.SnapshotTTL) * time.Second
	contentService := service.NewContentService(contentRepository, contentCache, snapshotTTL)
	categoryService := service.NewCategoryService(categoryRepository)
	eventService := service.NewEventService(eventRepository)
	messageService := service.NewMessageService(store, contentRepository)

	publicHandler := handler.NewPublicHandler(contentService, eventService, messageService, viewService, sessionManager, log)
	adminHandler := handler.NewAdminHandler(store, contentService, categoryService, eventService, messageService, uploads, viewService, sessionManager, log)
	authHandler := handler.NewAuthHandler(credentials, authenticator, viewService, sessionManager, log)
	seoHandler := handler.NewSeoHandler(contentService, cfg.Server.BaseURL)

	staticFiles, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.Fatal(err, "Failed to mount static assets")
	}

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handler.RouterDeps{
		Public:     publicHandler,
		Admin:      adminHandler,
		Auth:       authHandler,
		Seo:        seoHandler,
		Session:    sessionManager,
		Authorizer: middleware.Authorizer(enforcer, sessionManager),
		Errors:     middleware.Error(log, viewService),
		Static:     http.FileServer(http.FS(staticFiles)),
		Uploads:    http.FileServer(http.Dir(uploads.RootDir())),
	})

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
