package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shinyyama/billing-api/internal/billing"
	"github.com/shinyyama/billing-api/internal/reqctx"
)

const maxPortalBody = 1 << 16

type PortalHandler struct {
	portal   billing.PortalSessionCreator
	validate *validator.Validate
	log      zerolog.Logger
}

func NewPortalHandler(portal billing.PortalSessionCreator, log zerolog.Logger) *PortalHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PortalHandler{portal: portal, validate: v, log: log}
}

type PortalSessionRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
	ReturnURL  string `json:"returnUrl" validate:"required,url"`
}

type PortalSessionResponse struct {
	URL string `json:"url"`
}

// Create serves POST /billing/portal-session. Provider failures surface their
// message with a 400.
func (h *PortalHandler) Create(r *http.Request) Reply {
	if r.Method != http.MethodPost {
		return methodNotAllowed(http.MethodPost)
	}
	if r.Body == nil {
		return errorReply(http.StatusBadRequest, msgInvalidBody)
	}
	var req PortalSessionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxPortalBody)).Decode(&req); err != nil {
		return errorReply(http.StatusBadRequest, msgInvalidBody)
	}
	if err := h.validate.Struct(&req); err != nil {
		return errorReply(http.StatusBadRequest, validationMessage(err))
	}
	url, err := h.portal.CreatePortalSession(r.Context(), req.CustomerID, req.ReturnURL)
	if err != nil {
		reqctx.Logger(r.Context(), h.log).Warn().Err(err).Str("customer_id", req.CustomerID).Msg("portal session rejected")
		return errorReply(http.StatusBadRequest, billing.Message(err))
	}
	return ok(PortalSessionResponse{URL: url})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "url":
		return fe.Field() + " must be a valid URL"
	default:
		return fe.Field() + " is invalid"
	}
}
