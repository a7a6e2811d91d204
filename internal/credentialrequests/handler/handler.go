package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kyc-gateway/internal/credentialrequests"
	"kyc-gateway/pkg/platform/httputil"
	"kyc-gateway/pkg/requestcontext"
)

// Service defines the interface for the userCredentialRequests workflow.
type Service interface {
	Handle(ctx context.Context, req credentialrequests.Request) (credentialrequests.Response, error)
}

// Handler wires the wallet-facing credential-requests endpoint to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a credential-requests handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/userCredentialRequests", h.HandleCredentialRequests)
}

// HandleCredentialRequests handles POST /userCredentialRequests.
func (h *Handler) HandleCredentialRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CredentialRequestsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Handle(ctx, req.Request)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential request failed",
			"request_id", requestID,
			"has_association", req.UserDidAssociation != nil,
			"has_requests", req.CredentialRequestsInfo != nil,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "credential request handled",
		"request_id", requestID,
		"types_issued", len(result.CredentialTypesIssued),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, result)
}
