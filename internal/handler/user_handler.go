package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/reqctx"
	"github.com/shinyyama/billing-api/internal/service"
)

type UserHandler struct {
	svc service.UserService
	log zerolog.Logger
}

func NewUserHandler(svc service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// Lookup serves GET /users?email=. The stored record is returned as is,
// minus the fields the model never serializes.
func (h *UserHandler) Lookup(r *http.Request) Reply {
	if r.Method != http.MethodGet {
		return methodNotAllowed(http.MethodGet)
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		return errorReply(http.StatusBadRequest, msgMissingEmail)
	}
	user, err := h.svc.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return errorReply(http.StatusNotFound, msgUserNotFound)
		}
		reqctx.Logger(r.Context(), h.log).Error().Err(err).Msg("user lookup failed")
		return errorReply(http.StatusInternalServerError, msgServerError)
	}
	return ok(user)
}
