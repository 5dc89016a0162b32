package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/opsrequests/request-management/internal/auth"
	"github.com/opsrequests/request-management/internal/request"
	"github.com/opsrequests/request-management/internal/requesttype"
	"github.com/opsrequests/request-management/internal/transport/middleware"
	"github.com/opsrequests/request-management/internal/transport/swagger"
	"github.com/opsrequests/request-management/internal/user"
)

// RegisterAllRoutes wires every HTTP endpoint onto the router. All business
// routes live under /api and require a bearer token; request-type management
// and direct status changes are additionally gated on the ADMIN role.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	typeHandler *requesttype.Handler,
	requestHandler *request.Handler,
	lg *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(splitOrigins(allowedOrigins)))
	router.Use(middleware.TraceID)
	router.Use(middleware.Recovery(lg))
	router.Use(middleware.Logging(lg))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", userHandler.GetCurrentUser)
			pr.Get("/users", userHandler.GetUsers)

			pr.Route("/request-types", func(tr chi.Router) {
				tr.Get("/", typeHandler.GetTypes)

				tr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Post("/", typeHandler.CreateType)
					ar.Put("/{id}", typeHandler.UpdateType)
					ar.Delete("/{id}", typeHandler.DeleteType)
				})
			})

			pr.Route("/requests", func(rr chi.Router) {
				rr.Get("/", requestHandler.ListRequests)
				rr.Post("/", requestHandler.CreateRequest)
				rr.Get("/{id}", requestHandler.GetRequest)
				rr.Put("/{id}", requestHandler.UpdateRequest)
				rr.Post("/{id}/cancel", requestHandler.CancelRequest)
				rr.Post("/{id}/approve", requestHandler.ApproveRequest)
				rr.Post("/{id}/reject", requestHandler.RejectRequest)
				rr.Post("/{id}/comments", requestHandler.AddComment)

				rr.Group(func(ar chi.Router) {
					ar.Use(authHandler.RequireAdmin)
					ar.Patch("/{id}/status", requestHandler.ChangeStatus)
				})
			})
		})
	})
}

// splitOrigins parses the comma-separated origin list; "*" (or empty) means
// no origin restriction.
func splitOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
