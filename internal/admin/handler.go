// Package admin exposes operator-only inspection endpoints: user records and
// their audit trail. Everything here sits behind the JWT middleware.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"kyc-gateway/internal/audit"
	"kyc-gateway/internal/platform/middleware"
	usermodels "kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/httputil"
	"kyc-gateway/pkg/requestcontext"
)

// Users is the slice of the user service the admin surface consumes.
type Users interface {
	ByID(ctx context.Context, userID id.UserID) (*usermodels.User, error)
}

// AuditLog reads the persisted audit trail.
type AuditLog interface {
	ListByUser(ctx context.Context, userID string) ([]audit.Event, error)
}

// Handler wires the inspection endpoints.
type Handler struct {
	users  Users
	events AuditLog
	logger *slog.Logger
}

func New(users Users, events AuditLog, logger *slog.Logger) *Handler {
	return &Handler{users: users, events: events, logger: logger}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/users/{userID}", h.HandleGetUser)
	r.Get("/admin/users/{userID}/audit", h.HandleListAudit)
}

// UserResponse is the operator view of a user. Raw provider values stay
// server-side; only presence is reported per credential-backing field.
type UserResponse struct {
	ID             string    `json:"id"`
	Did            string    `json:"did,omitempty"`
	HasUserCode    bool      `json:"hasUserCode"`
	PhoneFields    []string  `json:"phoneFields"`
	DocumentFields []string  `json:"documentFields"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func userResponse(u *usermodels.User) UserResponse {
	phone := presentFields(map[string]string{
		"phone":     u.ProvePhone,
		"dob":       u.ProveDob,
		"ssn":       u.ProveSsn,
		"firstName": u.ProveFirstName,
		"lastName":  u.ProveLastName,
	})
	document := presentFields(map[string]string{
		"dob":          u.DocDob,
		"gender":       u.DocGender,
		"fullName":     u.DocFullName,
		"address":      u.DocAddress,
		"country":      u.DocCountry,
		"documentType": u.DocType,
		"document":     u.DocImage,
		"face":         u.FaceImage,
		"liveness":     u.LiveFace,
		"faceMatch":    u.FaceMatch,
	})
	return UserResponse{
		ID:             u.ID.String(),
		Did:            u.DID,
		HasUserCode:    u.UserCode != "",
		PhoneFields:    phone,
		DocumentFields: document,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func presentFields(fields map[string]string) []string {
	present := make([]string, 0, len(fields))
	for name, value := range fields {
		if value != "" {
			present = append(present, name)
		}
	}
	sort.Strings(present)
	return present
}

// operator rejects requests whose context never passed the operator JWT
// check. The router mounts this handler behind RequireAuth, but PII
// inspection gets its own guard rather than trusting the mount.
func (h *Handler) operator(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()
	if !requestcontext.IsAdmin(ctx) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "operator token required"))
		return "", false
	}
	return middleware.GetSubject(ctx), true
}

// HandleGetUser handles GET /admin/users/{userID}.
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	operator, ok := h.operator(w, r)
	if !ok {
		return
	}

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "userID must be a UUID"))
		return
	}

	user, err := h.users.ByID(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "operator viewed user record",
		"request_id", requestcontext.RequestID(ctx),
		"operator", operator,
		"user_id", userID.String(),
	)
	httputil.WriteJSON(w, http.StatusOK, userResponse(user))
}

// HandleListAudit handles GET /admin/users/{userID}/audit.
func (h *Handler) HandleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	operator, ok := h.operator(w, r)
	if !ok {
		return
	}

	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "userID must be a UUID"))
		return
	}

	events, err := h.events.ListByUser(ctx, userID.String())
	if err != nil {
		h.logger.ErrorContext(ctx, "audit listing failed",
			"request_id", requestID,
			"operator", operator,
			"user_id", userID.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
