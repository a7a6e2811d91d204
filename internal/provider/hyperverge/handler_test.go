package hyperverge

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodels "kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/testutil"
)

type stubUsers struct {
	got usermodels.DocumentData
}

func (s *stubUsers) RecordDocumentVerification(_ context.Context, data usermodels.DocumentData) (*usermodels.User, error) {
	s.got = data
	return &usermodels.User{ID: id.NewUserID(), UserCode: "code-1"}, nil
}

type stubKYCService struct {
	token    LoginToken
	tokenErr error
	got      KYCResult
	result   IntakeResult
	err      error
}

func (s *stubKYCService) SDKToken(context.Context) (LoginToken, error) {
	return s.token, s.tokenErr
}

func (s *stubKYCService) RecordKYC(_ context.Context, result KYCResult) (IntakeResult, error) {
	s.got = result
	return s.result, s.err
}

func newRouter(service KYCService) http.Handler {
	r := chi.NewRouter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	NewHandler(service, logger).Register(r)
	return r
}

func TestHandleLogin(t *testing.T) {
	t.Run("returns the vendor sdk token", func(t *testing.T) {
		service := &stubKYCService{token: LoginToken{Token: "sdk-token", ExpiresIn: 900}}
		router := newRouter(service)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/hyperverge/login", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[LoginToken](t, rr)
		assert.Equal(t, "sdk-token", body.Token)
	})

	t.Run("maps a vendor failure to 502", func(t *testing.T) {
		service := &stubKYCService{tokenErr: dErrors.New(dErrors.CodeGateway, "vendor login failed")}
		router := newRouter(service)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/hyperverge/login", nil))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestHandleKYC(t *testing.T) {
	t.Run("records a scan and returns the user code", func(t *testing.T) {
		service := &stubKYCService{result: IntakeResult{UserCode: "code-1"}}
		router := newRouter(service)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/hyperverge/kyc", map[string]any{
			"fullName":            "Ada Lovelace",
			"dob":                 "1990-01-15",
			"documentType":        "passport",
			"documentImage":       "base64-doc",
			"faceMatch":           "yes",
			"faceMatchConfidence": "high",
		}))

		require.Equal(t, http.StatusOK, rr.Code)
		body := testutil.UnmarshalErrorResponse(t, rr)
		assert.Equal(t, "code-1", body["userCode"])

		assert.Equal(t, "Ada Lovelace", service.got.FullName)
		assert.Equal(t, "passport", service.got.DocType)
		assert.Equal(t, "high", service.got.FaceMatchConfidence)
	})

	t.Run("rejects a scan with no usable fields", func(t *testing.T) {
		router := newRouter(&stubKYCService{})

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/hyperverge/kyc", map[string]any{
			"gender": "F",
		}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRecordKYC(t *testing.T) {
	users := &stubUsers{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(nil, users, logger)

	result, err := service.RecordKYC(context.Background(), KYCResult{
		FullName: "Ada Lovelace",
		LiveFace: "yes",
	})

	require.NoError(t, err)
	assert.Equal(t, "code-1", result.UserCode)
	assert.Equal(t, "Ada Lovelace", users.got.FullName)
	assert.Equal(t, "yes", users.got.LiveFace)
}
