// Package prove integrates the phone-centric identity verification vendor.
// The vendor resolves a phone number to the identity attributes that back the
// phone-verification issuer's credentials.
package prove

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	dErrors "kyc-gateway/pkg/domain-errors"
)

// Client is a thin HTTP client for the vendor API. Only the fields this
// service consumes are decoded; everything else on the wire is ignored.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Tokens is the vendor session pair: a short-lived access token with its
// lifetime, and a refresh token for renewing the session without
// re-authenticating.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Eligibility reports whether a phone number can be verified at all.
type Eligibility struct {
	Eligible bool `json:"eligibleForInstantLink"`
}

// Identity is the attribute set the vendor resolved for a phone number.
type Identity struct {
	Phone     string `json:"phoneNumber"`
	Dob       string `json:"dob"`
	Ssn       string `json:"ssn"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Verified  bool   `json:"verified"`
}

// Authenticate exchanges the API key for a fresh access/refresh token pair.
func (c *Client) Authenticate(ctx context.Context) (Tokens, error) {
	var tokens Tokens
	err := c.post(ctx, "/token", "", map[string]string{"apiKey": c.apiKey}, &tokens)
	if err != nil {
		return Tokens{}, err
	}
	if tokens.AccessToken == "" {
		return Tokens{}, dErrors.New(dErrors.CodeGateway, "vendor returned empty access token")
	}
	return tokens, nil
}

// Refresh renews the session pair using the refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	var tokens Tokens
	err := c.post(ctx, "/token", "", map[string]string{
		"grantType":    "refresh_token",
		"refreshToken": refreshToken,
	}, &tokens)
	if err != nil {
		return Tokens{}, err
	}
	if tokens.AccessToken == "" {
		return Tokens{}, dErrors.New(dErrors.CodeGateway, "vendor returned empty access token")
	}
	return tokens, nil
}

// CheckEligibility asks whether the phone number is verifiable.
func (c *Client) CheckEligibility(ctx context.Context, accessToken, phone string) (Eligibility, error) {
	var eligibility Eligibility
	err := c.post(ctx, "/eligibility", accessToken, map[string]string{"phoneNumber": phone}, &eligibility)
	return eligibility, err
}

// ResolveIdentity fetches the verified identity attributes for a phone
// number, using the caller-supplied date of birth as the match criterion.
func (c *Client) ResolveIdentity(ctx context.Context, accessToken, phone, dob string) (Identity, error) {
	var identity Identity
	err := c.post(ctx, "/identity", accessToken, map[string]string{
		"phoneNumber": phone,
		"dob":         dob,
	}, &identity)
	return identity, err
}

func (c *Client) post(ctx context.Context, path, accessToken string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode vendor request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build vendor request")
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeGateway, fmt.Sprintf("vendor call %s failed", path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "vendor call rejected",
			"path", path,
			"status", resp.StatusCode,
		)
		return dErrors.Newf(dErrors.CodeGateway, "vendor call %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeGateway, "failed to decode vendor response")
	}
	return nil
}
