// Package api exposes the user service over HTTP. It owns request parsing
// and the mapping from service errors to status codes; business rules stay
// in service/user.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/pkg/httputil"
	"github.com/ignite/userhub/internal/service/user"
)

// Handlers contains the HTTP handlers for the users resource.
type Handlers struct {
	users *user.Service
}

// NewHandlers creates handlers backed by the given user service.
func NewHandlers(users *user.Service) *Handlers {
	return &Handlers{users: users}
}

// RegisterRoutes mounts all user endpoints on the router.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleHealth)
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.HandleCreateUser)
		r.Get("/", h.HandleListUsers)
		r.Get("/by-email", h.HandleGetUserByEmail)
		r.Post("/promotional-emails", h.HandleSendPromotions)
		r.Get("/{id}", h.HandleGetUser)
		r.Delete("/{id}", h.HandleDeleteUser)
	})
}

// userResponse is the outward representation of a user. It carries the
// derived adult flag so clients don't re-implement the age rule.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	IsAdult   bool      `json:"is_adult"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email.String(),
		Age:       u.Age,
		IsAdult:   u.IsAdult(),
		CreatedAt: u.CreatedAt,
	}
}

// writeServiceError translates service-layer errors to HTTP statuses:
// validation 400, duplicate email 409, not found 404, anything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		httputil.NotFound(w, "user not found")
	case errors.Is(err, user.ErrDuplicateEmail):
		httputil.Conflict(w, err.Error())
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrBlankName),
		errors.Is(err, domain.ErrInvalidAge):
		httputil.BadRequest(w, err.Error())
	default:
		httputil.InternalError(w, err)
	}
}

// HandleHealth is the liveness endpoint.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}

// HandleCreateUser registers a new user.
func (h *Handlers) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input user.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	created, err := h.users.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, toResponse(created))
}

// HandleGetUser returns a single user by ID.
func (h *Handlers) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, toResponse(u))
}

// HandleGetUserByEmail returns the user registered under ?email=.
func (h *Handlers) HandleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, toResponse(u))
}

// HandleListUsers returns all users in insertion order.
func (h *Handlers) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toResponse(&users[i]))
	}
	httputil.OK(w, map[string]any{
		"users": out,
		"total": len(out),
	})
}

// HandleDeleteUser removes a user. Unknown IDs map to 404.
func (h *Handlers) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.users.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		httputil.NotFound(w, "user not found")
		return
	}
	httputil.NoContent(w)
}

// HandleSendPromotions dispatches promotional content to eligible users
// and reports how the fan-out went.
func (h *Handlers) HandleSendPromotions(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	if body.Content == "" {
		httputil.BadRequest(w, "content is required")
		return
	}

	report, err := h.users.SendPromotions(r.Context(), body.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Accepted(w, report)
}
