package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/lifedeck/coaching-engine/internal/adapters/ai"
	"github.com/lifedeck/coaching-engine/internal/adapters/cache"
	adapterHTTP "github.com/lifedeck/coaching-engine/internal/adapters/handler/http"
	"github.com/lifedeck/coaching-engine/internal/adapters/notify"
	"github.com/lifedeck/coaching-engine/internal/adapters/repository"
	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/lifedeck/coaching-engine/internal/core/services"
	"github.com/lifedeck/coaching-engine/internal/core/workers"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOrDefault("DB_HOST", "localhost")
	dbPort := envOrDefault("DB_PORT", "5432")
	serverPort := envOrDefault("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET is required")
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	rdb, err := cache.NewRedisClient(
		envOrDefault("REDIS_HOST", "localhost"),
		envOrDefault("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		0,
	)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache and rate limiting: %v", err)
		rdb = nil
	}

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	deckRepo := repository.NewPostgresDeckRepository(db)
	eventRepo := repository.NewPostgresEventRepository(db)

	var catalog domain.TemplateCatalog
	if os.Getenv("USE_BUILTIN_TEMPLATES") == "true" {
		memCatalog := repository.NewInMemoryTemplateCatalog()
		for _, tpl := range domain.BuiltinTemplates() {
			if err := memCatalog.Add(tpl); err != nil {
				log.Fatalf("Critical: invalid builtin template %q: %v", tpl.Title, err)
			}
		}
		catalog = memCatalog
		log.Println("Serving decks from the builtin template catalog.")
	} else {
		catalog = repository.NewPostgresTemplateRepository(db)
		if rdb != nil {
			catalog = repository.NewCachedTemplateCatalog(catalog, rdb)
		}
	}

	var personalizer services.AIPersonalizer
	if baseURL := os.Getenv("AI_BASE_URL"); baseURL != "" {
		personalizer = ai.NewClient(baseURL, os.Getenv("AI_API_KEY"))
		log.Println("AI personalization enabled.")
	}

	clock := services.SystemClock{}
	gate := services.NewSubscriptionGate()
	generator := services.NewCardGenerator(catalog, gate, personalizer, clock, nil)
	progress := services.NewProgressTracker(clock)
	unlocks := services.NewAchievementEngine(clock)

	snapshotWorker := workers.NewSnapshotWorker(profileRepo, deckRepo)

	deckService := services.NewDeckService(services.DeckServiceDeps{
		Profiles:  profileRepo,
		Decks:     deckRepo,
		Events:    eventRepo,
		Scheduler: notify.NewLogScheduler(),
		Generator: generator,
		Progress:  progress,
		Unlocks:   unlocks,
		Snapshots: snapshotWorker,
		Clock:     clock,
	})

	subscriptions := services.NewSubscriptionService()
	authService := services.NewAuthService(userRepo, profileRepo, clock)
	tokenService := services.NewTokenService(jwtSecret, "lifedeck-engine", 24*time.Hour, userRepo)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	snapshotWorker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(authService, tokenService),
		DeckHandler:         adapterHTTP.NewDeckHandler(deckService, subscriptions),
		ProgressHandler:     adapterHTTP.NewProgressHandler(deckService),
		SubscriptionHandler: adapterHTTP.NewSubscriptionHandler(subscriptions, gate),
		TokenService:        tokenService,
		DB:                  db,
		Redis:               rdb,
		StartTime:           startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("LifeDeck Coaching Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	workerCancel()

	log.Println("Server stopped gracefully.")
}
