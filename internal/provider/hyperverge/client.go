// Package hyperverge integrates the document/biometric KYC vendor. The
// vendor's mobile SDK runs the scan; this service consumes the finished
// result and turns it into a pending user.
package hyperverge

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	dErrors "kyc-gateway/pkg/domain-errors"
)

// Client authenticates against the vendor so the mobile SDK can run scans
// under this deployment's identity.
type Client struct {
	baseURL string
	appID   string
	appKey  string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL, appID, appKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		appKey:  appKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// LoginToken is the short-lived vendor token the mobile SDK scans under.
type LoginToken struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// Login exchanges the app credentials for an SDK token.
func (c *Client) Login(ctx context.Context) (LoginToken, error) {
	payload, err := json.Marshal(map[string]string{
		"appId":  c.appID,
		"appKey": c.appKey,
	})
	if err != nil {
		return LoginToken{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode vendor login")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return LoginToken{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build vendor login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return LoginToken{}, dErrors.Wrap(err, dErrors.CodeGateway, "vendor login failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "vendor login rejected", "status", resp.StatusCode)
		return LoginToken{}, dErrors.Newf(dErrors.CodeGateway, "vendor login returned status %d", resp.StatusCode)
	}

	var body struct {
		Result LoginToken `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return LoginToken{}, dErrors.Wrap(err, dErrors.CodeGateway, "failed to decode vendor login response")
	}
	if body.Result.Token == "" {
		return LoginToken{}, dErrors.New(dErrors.CodeGateway, "vendor returned empty login token")
	}
	return body.Result, nil
}
