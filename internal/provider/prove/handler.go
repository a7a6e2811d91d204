package prove

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/httputil"
	"kyc-gateway/pkg/requestcontext"
)

// VerifyService is the workflow surface the handler consumes.
type VerifyService interface {
	VerifyIdentity(ctx context.Context, req VerifyRequest) (VerifyResult, error)
}

// Handler exposes the phone-verification intake endpoint.
type Handler struct {
	service VerifyService
	logger  *slog.Logger
}

func NewHandler(service VerifyService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/prove/identity", h.HandleVerifyIdentity)
}

// VerifyIdentityRequest is the HTTP request body for POST /prove/identity.
type VerifyIdentityRequest struct {
	Phone string `json:"phone"`
	Dob   string `json:"dob"`
}

// Validate implements httputil.Validatable.
func (r *VerifyIdentityRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeBadRequest, "phone is required")
	}
	r.Dob = strings.TrimSpace(r.Dob)
	return nil
}

// HandleVerifyIdentity handles POST /prove/identity.
func (h *Handler) HandleVerifyIdentity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyIdentityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyIdentity(ctx, VerifyRequest{Phone: req.Phone, Dob: req.Dob})
	if err != nil {
		h.logger.ErrorContext(ctx, "phone identity verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"userCode": result.UserCode})
}
