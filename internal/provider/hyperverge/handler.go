package hyperverge

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

// KYCService is the workflow surface the handler consumes.
type KYCService interface {
	SDKToken(ctx context.Context) (LoginToken, error)
	RecordKYC(ctx context.Context, result KYCResult) (IntakeResult, error)
}

// Handler exposes the document-verification intake endpoints.
type Handler struct {
	service KYCService
	logger  *slog.Logger
}

func NewHandler(service KYCService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/hyperverge/login", h.HandleLogin)
	r.Post("/hyperverge/kyc", h.HandleKYC)
}

// HandleLogin handles POST /hyperverge/login, fetching a fresh SDK token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := h.service.SDKToken(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "vendor login failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, token)
}

// KYCRequest is the HTTP request body for POST /hyperverge/kyc.
type KYCRequest struct {
	Dob                 string `json:"dob"`
	Gender              string `json:"gender"`
	FullName            string `json:"fullName"`
	Address             string `json:"address"`
	Country             string `json:"country"`
	DocType             string `json:"documentType"`
	DocImage            string `json:"documentImage"`
	FaceImage           string `json:"faceImage"`
	LiveFace            string `json:"liveFace"`
	LiveFaceConfidence  string `json:"liveFaceConfidence"`
	FaceMatch           string `json:"faceMatch"`
	FaceMatchConfidence string `json:"faceMatchConfidence"`
}

// Validate implements httputil.Validatable. A scan with no extracted fields
// at all is rejected; anything partial is stored as-is.
func (r *KYCRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.FullName = strings.TrimSpace(r.FullName)
	r.Dob = strings.TrimSpace(r.Dob)
	if r.FullName == "" && r.Dob == "" && r.DocImage == "" {
		return dErrors.New(dErrors.CodeBadRequest, "scan result carries no usable fields")
	}
	return nil
}

// HandleKYC handles POST /hyperverge/kyc.
func (h *Handler) HandleKYC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[KYCRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.RecordKYC(ctx, KYCResult{
		Dob:                 req.Dob,
		Gender:              req.Gender,
		FullName:            req.FullName,
		Address:             req.Address,
		Country:             req.Country,
		DocType:             req.DocType,
		DocImage:            req.DocImage,
		FaceImage:           req.FaceImage,
		LiveFace:            req.LiveFace,
		LiveFaceConfidence:  req.LiveFaceConfidence,
		FaceMatch:           req.FaceMatch,
		FaceMatchConfidence: req.FaceMatchConfidence,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "document kyc intake failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"userCode": result.UserCode})
}
