package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"kyc-gateway/internal/credential"
	"kyc-gateway/internal/platform/metrics"
	dErrors "kyc-gateway/pkg/domain-errors"
)

// authTokenHeader carries the possibly-rotated bearer token on every SaaS
// response.
const authTokenHeader = "X-Auth-Token"

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	met     *metrics.Metrics
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, met *metrics.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		met:     met,
	}
}

func (c *Client) VerifySignedDid(ctx context.Context, authToken, issuerDid string, doc DidDocument) (VerifiedStatus, string, error) {
	body := map[string]any{
		"issuerDid":   issuerDid,
		"didDocument": doc,
	}
	var status VerifiedStatus
	rotated, err := c.post(ctx, "verifySignedDid", "/api/didDocument/verify", authToken, body, &status)
	if err != nil {
		return VerifiedStatus{}, rotated, err
	}
	return status, rotated, nil
}

func (c *Client) RevokeAllCredentials(ctx context.Context, authToken, issuerDid, signingPrivateKey, subjectDid string) (string, error) {
	body := map[string]any{
		"issuerDid":         issuerDid,
		"subjectDid":        subjectDid,
		"signingPrivateKey": signingPrivateKey,
	}
	return c.post(ctx, "revokeAllCredentials", "/api/credentials/revokeAll", authToken, body, nil)
}

func (c *Client) HandleSubjectCredentialRequests(ctx context.Context, params HandleSubjectCredentialRequestsParams) ([]Credential, string, error) {
	body := map[string]any{
		"issuerDid":                 params.IssuerDid,
		"subjectDid":                params.SubjectDid,
		"subjectCredentialRequests": params.SubjectCredentialRequests,
		"reEncryptCredentialsOptions": map[string]string{
			"signingPrivateKey":     params.ReEncryptKeys.SigningPrivateKey,
			"encryptionPrivateKey":  params.ReEncryptKeys.EncryptionPrivateKey,
			"issuerEncryptionKeyId": params.ReEncryptKeys.EncryptionKeyID,
		},
	}
	var credentials []Credential
	rotated, err := c.post(ctx, "handleSubjectCredentialRequests", "/api/credentialRequests", params.AuthToken, body, &credentials)
	if err != nil {
		return nil, rotated, err
	}
	return credentials, rotated, nil
}

func (c *Client) IssueCredentials(ctx context.Context, authToken, issuerDid, subjectDid string, subjects []credential.Subject, signingPrivateKey string) ([]Credential, string, error) {
	body := map[string]any{
		"issuerDid":          issuerDid,
		"subjectDid":         subjectDid,
		"credentialDataList": subjects,
		"signingPrivateKey":  signingPrivateKey,
	}
	var credentials []Credential
	rotated, err := c.post(ctx, "issueCredentials", "/api/credentials/issue", authToken, body, &credentials)
	if err != nil {
		return nil, rotated, err
	}
	return credentials, rotated, nil
}

// post performs one SaaS call. The rotated token is returned even on error
// responses: the SaaS may rotate before rejecting, and losing that rotation
// strands the stored token.
func (c *Client) post(ctx context.Context, operation, path, authToken string, body any, out any) (string, error) {
	start := time.Now()
	defer func() {
		c.met.ObserveGatewayLatency(operation, time.Since(start).Seconds())
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", FormatBearerToken(authToken))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "gateway call failed", "operation", operation, "error", err)
		return "", dErrors.Wrap(err, dErrors.CodeGateway, operation+" failed")
	}
	defer resp.Body.Close()

	rotated := resp.Header.Get(authTokenHeader)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.ErrorContext(ctx, "gateway call rejected",
			"operation", operation,
			"status", resp.StatusCode,
			"body", string(snippet),
		)
		return rotated, dErrors.New(dErrors.CodeGateway,
			fmt.Sprintf("%s rejected with status %d", operation, resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return rotated, dErrors.Wrap(err, dErrors.CodeGateway, operation+" returned malformed body")
		}
	}
	return rotated, nil
}
