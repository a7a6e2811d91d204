// Package sms sends the wallet deep link that carries a one-time user code to
// a verified phone number.
package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	dErrors "kyc-gateway/pkg/domain-errors"
)

// Sender delivers a text message. The workflow only ever sends the deep link,
// so the surface stays minimal.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender sends through the Twilio messaging API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *slog.Logger
}

func NewTwilioSender(accountSID, authToken, from string, logger *slog.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{client: client, from: from, logger: logger}
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "sms delivery failed")
	}
	s.logger.InfoContext(ctx, "sms sent", "to", to)
	return nil
}

// NoopSender logs instead of sending. Used when Twilio credentials are not
// configured, which is the normal state in local development.
type NoopSender struct {
	logger *slog.Logger
}

func NewNoopSender(logger *slog.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) Send(ctx context.Context, to, body string) error {
	s.logger.InfoContext(ctx, "sms suppressed, no provider configured", "to", to, "body", body)
	return nil
}

// DeepLink renders the wallet deep link embedding the one-time user code.
func DeepLink(walletURL, userCode string) string {
	return fmt.Sprintf("%s/authenticate?userCode=%s", walletURL, userCode)
}
