package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/scribehq/scribe-be/internal/api/handlers"
	"github.com/scribehq/scribe-be/internal/auth"
	"github.com/scribehq/scribe-be/internal/config"
	"github.com/scribehq/scribe-be/internal/request"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	f *request.Factory,
	tokens *auth.Manager,
	authHandler *handlers.AuthHandler,
	blogHandler *handlers.BlogHandler,
	eventHandler *handlers.EventHandler,
	wsHandler *handlers.WebSocketHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Attach claims when a valid token is present; per-route options decide
	// whether authentication is mandatory.
	r.Use(tokens.Middleware())

	r.Route("/api/v1", func(r chi.Router) {
		// Live content feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", f.Handle(authHandler.Register, request.Options{
				UseTransaction: true,
				Body:           func() any { return &handlers.RegisterPayload{} },
			}))
			r.Post("/login", f.Handle(authHandler.Login, request.Options{
				UseTransaction: true,
				Body:           func() any { return &handlers.LoginPayload{} },
			}))
			r.Post("/guest", f.Handle(authHandler.Guest, request.Options{
				UseTransaction: true,
			}))
			r.Get("/me", f.Handle(authHandler.Me, request.Options{
				RequireAuth: true,
			}))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/blogs", func(r chi.Router) {
				r.Post("/create", f.Handle(blogHandler.Create, request.Options{
					RequireAuth:    true,
					RequireAdmin:   true,
					UseTransaction: true,
					Body:           func() any { return &handlers.BlogForm{} },
				}))
				r.Get("/get-all", f.Handle(blogHandler.GetAll, request.Options{
					UseTransaction: true,
				}))
				r.Get("/get-one/{id}", f.Handle(blogHandler.GetOne, request.Options{
					UseTransaction: true,
				}))
				r.Put("/update/{id}", f.Handle(blogHandler.Update, request.Options{
					RequireAuth:    true,
					RequireAdmin:   true,
					UseTransaction: true,
					Body:           func() any { return &handlers.BlogForm{} },
				}))
				r.Delete("/delete/{id}", f.Handle(blogHandler.Delete, request.Options{
					RequireAuth:    true,
					RequireAdmin:   true,
					UseTransaction: true,
				}))
			})

			r.Get("/events", f.Handle(eventHandler.GetRecent, request.Options{
				RequireAuth:  true,
				RequireAdmin: true,
			}))
		})
	})

	return r
}
