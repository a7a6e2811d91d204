// Package auth exchanges the shared operator key for a short-lived JWT used
// on the admin endpoints.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/httputil"
	"kyc-gateway/pkg/requestcontext"
)

// TokenIssuer mints operator access tokens.
type TokenIssuer interface {
	GenerateAccessToken(subject string) (string, error)
}

// Handler exposes the operator login endpoint.
type Handler struct {
	tokens       TokenIssuer
	adminKeyHash string
	logger       *slog.Logger
}

func NewHandler(tokens TokenIssuer, adminKeyHash string, logger *slog.Logger) *Handler {
	return &Handler{
		tokens:       tokens,
		adminKeyHash: adminKeyHash,
		logger:       logger,
	}
}

// Register mounts the endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// LoginRequest is the HTTP request body for POST /auth/login.
type LoginRequest struct {
	AdminKey string `json:"adminKey"`
	Operator string `json:"operator"`
}

// Validate implements httputil.Validatable.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if strings.TrimSpace(r.AdminKey) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "adminKey is required")
	}
	if r.Operator == "" {
		r.Operator = "operator"
	}
	return nil
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if h.adminKeyHash == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "operator login is not configured"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.adminKeyHash), []byte(req.AdminKey)); err != nil {
		h.logger.WarnContext(ctx, "operator login rejected",
			"request_id", requestID,
			"operator", req.Operator,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid admin key"))
		return
	}

	token, err := h.tokens.GenerateAccessToken(req.Operator)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mint access token"))
		return
	}

	h.logger.InfoContext(ctx, "operator logged in",
		"request_id", requestID,
		"operator", req.Operator,
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}
