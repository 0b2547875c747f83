package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/robfig/cron/v3"

	"github.com/sunshinej01/second-hand/internal/config"
	"github.com/sunshinej01/second-hand/internal/handlers"
	appMiddleware "github.com/sunshinej01/second-hand/internal/middleware"
	"github.com/sunshinej01/second-hand/internal/reconcile"
	"github.com/sunshinej01/second-hand/internal/remote"
	"github.com/sunshinej01/second-hand/internal/services"
	"github.com/sunshinej01/second-hand/internal/storage"
)

func main() {
	cfg := config.Load()

	cache, err := storage.NewCache(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open local cache: %v", err)
	}

	backend := remote.NewClient(cfg.BackendURL, cfg.BackendAnonKey, cfg.RemoteTimeout)

	now := time.Now()
	seeds := reconcile.Seeds(now)
	if cfg.SeedFile != "" {
		loaded, err := reconcile.LoadSeeds(cfg.SeedFile, now)
		if err != nil {
			log.Printf("Warning: could not load seed file %s: %v", cfg.SeedFile, err)
		} else {
			seeds = loaded
		}
	}

	// Initialize services
	listingService := services.NewListingService(cache, backend, seeds)
	commentService := services.NewCommentService(cache)
	searchService := services.NewSearchService(cache, listingService, reconcile.CommunityPosts(now))
	chatService := services.NewChatService(backend, cfg.ChatPollInterval)
	sessionService := services.NewSessionService(backend)

	// First full reconciliation; the seed set is already visible, this
	// merges in the cache and whatever the backend has.
	listingService.Refresh(context.Background(), true)

	// Periodic remote re-merge
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.RefreshSpec, func() {
		listingService.Refresh(context.Background(), true)
	}); err != nil {
		log.Printf("Warning: invalid refresh schedule %q: %v", cfg.RefreshSpec, err)
	} else {
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Initialize handlers
	listingHandler := handlers.NewListingHandler(listingService, commentService)
	searchHandler := handlers.NewSearchHandler(searchService)
	chatHandler := handlers.NewChatHandler(chatService)
	authHandler := handlers.NewAuthHandler(sessionService)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes; a valid token still attaches the user identity.
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.OptionalAuth(cfg.BackendJWTSecret))

			r.Route("/listings", func(r chi.Router) {
				r.Get("/", listingHandler.ListListings)
				r.Post("/", listingHandler.CreateListing)

				r.Route("/{listingId}", func(r chi.Router) {
					r.Get("/", listingHandler.GetListing)
					r.Get("/comments", listingHandler.ListComments)
					r.Post("/comments", listingHandler.CreateComment)
				})
			})

			r.Route("/search", func(r chi.Router) {
				r.Get("/", searchHandler.Search)
				r.Get("/recent", searchHandler.RecentSearches)
				r.Delete("/recent", searchHandler.ClearRecentSearches)
			})

			r.Route("/community", func(r chi.Router) {
				r.Get("/", searchHandler.ListCommunityPosts)
				r.Get("/{postId}", searchHandler.GetCommunityPost)
			})

			r.Post("/auth/signup", authHandler.SignUp)
			r.Post("/auth/signin", authHandler.SignIn)
			r.Post("/auth/signout", authHandler.SignOut)
			r.Get("/auth/me", authHandler.Me)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.JWTAuth(cfg.BackendJWTSecret))

			r.Route("/chat/rooms", func(r chi.Router) {
				r.Get("/", chatHandler.ListRooms)
				r.Post("/", chatHandler.OpenRoom)

				r.Route("/{roomId}", func(r chi.Router) {
					r.Get("/messages", chatHandler.ListMessages)
					r.Post("/messages", chatHandler.SendMessage)
					r.Post("/read", chatHandler.MarkRead)
				})
			})

			r.Get("/profile", authHandler.GetProfile)
			r.Put("/profile", authHandler.UpdateProfile)
		})
	})

	log.Printf("Listing sync server starting on %s", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
