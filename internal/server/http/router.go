// Package httpserver exposes the dashboard JSON API over HTTP.
package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/and161185/medidesk/internal/model"
	"github.com/and161185/medidesk/internal/service"
	"github.com/and161185/medidesk/internal/session"
	"github.com/and161185/medidesk/internal/validate"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps wires the router to its services.
type Deps struct {
	Log           *zap.Logger
	Sessions      *session.Manager
	Auth          service.AuthService
	Users         service.UserService
	Products      service.ProductService
	Numbers       service.NumberService
	Tickets       service.TicketService
	Notifications service.NotificationService
	Settings      service.SettingsService
	Ready         Pinger
}

type handlers struct {
	Deps
	log *zap.Logger
	v   *validate.Validator
}

// NewRouter builds the chi router with middleware and every route.
func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{Deps: d, log: log, v: validate.New()}

	r := chi.NewRouter()
	r.Use(RequestID, Logging(log), Metrics, Recover(log))

	r.Get("/health/live", h.live)
	r.Get("/health/ready", h.ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)

		r.Group(func(r chi.Router) {
			r.Use(session.RequireSession(d.Sessions, deny))

			r.Get("/auth/session", h.currentSession)
			r.Post("/set-active-user", h.setActiveUser)
			r.Delete("/set-active-user", h.clearActiveUser)
			r.Get("/users/{userId}", h.getUser)

			r.Get("/products", h.listProducts)
			r.Get("/numbers", h.listNumbers)

			r.Get("/ticket/show-ticket", h.listTickets)
			r.Post("/ticket/create-ticket", h.createTicket)
			r.Post("/ticket/{ticketId}/close", h.closeTicket)

			r.Get("/notification/get-unread", h.listUnread)
			r.Post("/notification/{notificationId}/read", h.markRead)

			r.Get("/talk-settings", h.getTalkSettings)
			r.Post("/talk-settings", h.saveTalkSettings)
			r.Get("/configuration/recognize-number", h.getNumberRecognition)
			r.Post("/configuration/recognize-number", h.saveNumberRecognition)

			r.Route("/admin", func(r chi.Router) {
				r.Use(session.RequireRole(model.RoleAdmin, deny))

				r.Get("/users", h.adminListUsers)
				r.Post("/users", h.adminCreateUser)
				r.Get("/tickets", h.adminListTickets)
				r.Post("/ticket/{ticketId}/reply", h.adminReply)
				r.Get("/number/{userId}", h.adminListNumbers)
				r.Post("/number/{userId}", h.adminAddNumber)
				r.Delete("/number/{userId}/{numberId}", h.adminDeleteNumber)
				r.Post("/user-product", h.adminLinkProduct)
				r.Delete("/user-product/{userId}/{userProductId}", h.adminUnlinkProduct)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { writeError(w, http.StatusNotFound, "Ressource introuvable") })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { writeError(w, http.StatusNotFound, "Ressource introuvable") })
	return r
}

// identity returns the Identity stored by RequireSession and the effective user id.
func identity(r *http.Request) (model.Identity, int64) {
	id, _ := session.IdentityFromCtx(r.Context())
	return id, session.EffectiveUserID(r, id)
}
