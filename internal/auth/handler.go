package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	internal "github.com/frahmantamala/hr-management/internal"
	coreuser "github.com/frahmantamala/hr-management/internal/core/user"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Register(dto); err != nil {
		h.Logger.Warn("registration failed", "error", err, "username", dto.Username)

		if vErr, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "registration successful"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "error", err)

		if vErr, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.WriteDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// AuthMiddleware validates the bearer token on every request behind it and
// attaches the caller's identity and roles to the request context. The
// principal is rebuilt from the validated claims alone; no store round trip.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteDomainError(w, internal.NewUnauthorizedError("missing authorization token", internal.ErrCodeInvalidToken))
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteDomainError(w, err)
			return
		}

		principal := &coreuser.User{
			ID:       claims.Subject,
			Username: claims.Username,
			Roles:    claims.Roles,
		}

		ctx := internal.ContextWithUser(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
