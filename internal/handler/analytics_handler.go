package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/reqctx"
	"github.com/shinyyama/billing-api/internal/service"
)

type AnalyticsHandler struct {
	svc service.AnalyticsService
	log zerolog.Logger
}

func NewAnalyticsHandler(svc service.AnalyticsService, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, log: log}
}

func (h *AnalyticsHandler) Summary(r *http.Request) Reply {
	if r.Method != http.MethodGet {
		return methodNotAllowed(http.MethodGet)
	}
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		reqctx.Logger(r.Context(), h.log).Error().Err(err).Msg("analytics summary failed")
		return errorReply(http.StatusInternalServerError, msgAnalyticsFailed)
	}
	return ok(sum)
}
