package prove

import (
	"context"
	"log/slog"
	"time"

	usermodels "kyc-gateway/internal/user/models"
	dErrors "kyc-gateway/pkg/domain-errors"
)

const (
	accessTokenKey  = "prove:access_token"
	refreshTokenKey = "prove:refresh_token"
)

// accessTokenSlack is shaved off the vendor TTL so a cached token never
// expires mid-request.
const accessTokenSlack = 30 * time.Second

// refreshTokenTTL bounds how long a refresh token is reused. The vendor does
// not report its lifetime, so a stale one simply fails the refresh and the
// service falls back to authenticating.
const refreshTokenTTL = 24 * time.Hour

// VendorAPI is the client surface the service consumes.
type VendorAPI interface {
	Authenticate(ctx context.Context) (Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
	CheckEligibility(ctx context.Context, accessToken, phone string) (Eligibility, error)
	ResolveIdentity(ctx context.Context, accessToken, phone, dob string) (Identity, error)
}

// Users is the slice of the user service this workflow consumes.
type Users interface {
	RecordPhoneVerification(ctx context.Context, data usermodels.PhoneData) (*usermodels.User, error)
}

// TokenCache holds vendor access tokens between requests. Backed by redis in
// production; a nil cache disables caching and authenticates per request.
type TokenCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// SMSSender delivers the wallet deep link after a successful verification.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Service runs the phone-verification workflow: vendor identity resolution,
// pending-user creation, and the deep-link text that hands the one-time user
// code to the wallet.
type Service struct {
	vendor    VendorAPI
	users     Users
	cache     TokenCache
	sms       SMSSender
	logger    *slog.Logger
	walletURL string
	deepLink  func(walletURL, userCode string) string
}

func NewService(vendor VendorAPI, users Users, cache TokenCache, sms SMSSender, logger *slog.Logger, walletURL string, deepLink func(walletURL, userCode string) string) *Service {
	return &Service{
		vendor:    vendor,
		users:     users,
		cache:     cache,
		sms:       sms,
		logger:    logger,
		walletURL: walletURL,
		deepLink:  deepLink,
	}
}

// VerifyRequest is the inbound identity verification request.
type VerifyRequest struct {
	Phone string
	Dob   string
}

// VerifyResult carries the one-time user code minted for the pending user.
type VerifyResult struct {
	UserCode string
}

// VerifyIdentity resolves the phone number with the vendor, records the
// verified attributes as a pending user, and texts the wallet deep link.
// SMS delivery is best effort: a verified user who never receives the text
// can still be handed the user code out of band.
func (s *Service) VerifyIdentity(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return VerifyResult{}, err
	}

	eligibility, err := s.vendor.CheckEligibility(ctx, token, req.Phone)
	if err != nil {
		return VerifyResult{}, err
	}
	if !eligibility.Eligible {
		return VerifyResult{}, dErrors.New(dErrors.CodeBadRequest, "phone number is not eligible for verification")
	}

	identity, err := s.vendor.ResolveIdentity(ctx, token, req.Phone, req.Dob)
	if err != nil {
		return VerifyResult{}, err
	}
	if !identity.Verified {
		return VerifyResult{}, dErrors.New(dErrors.CodeVerification, "identity could not be verified for this phone number")
	}

	user, err := s.users.RecordPhoneVerification(ctx, usermodels.PhoneData{
		Phone:     identity.Phone,
		Dob:       identity.Dob,
		Ssn:       identity.Ssn,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	})
	if err != nil {
		return VerifyResult{}, err
	}

	if s.sms != nil && s.walletURL != "" {
		link := s.deepLink(s.walletURL, user.UserCode)
		if err := s.sms.Send(ctx, identity.Phone, link); err != nil {
			s.logger.WarnContext(ctx, "deep link sms failed",
				"user_id", user.ID.String(),
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "phone identity verified",
		"user_id", user.ID.String(),
	)
	return VerifyResult{UserCode: user.UserCode}, nil
}

// accessToken returns a cached vendor token, exchanging a cached refresh
// token when only the access token has lapsed. A failed refresh falls back
// to authenticating from scratch.
func (s *Service) accessToken(ctx context.Context) (string, error) {
	if s.cache != nil {
		if token, err := s.cache.Get(ctx, accessTokenKey); err == nil && token != "" {
			return token, nil
		}
		if refresh, err := s.cache.Get(ctx, refreshTokenKey); err == nil && refresh != "" {
			tokens, err := s.vendor.Refresh(ctx, refresh)
			if err == nil {
				s.cacheTokens(ctx, tokens)
				return tokens.AccessToken, nil
			}
			s.logger.WarnContext(ctx, "vendor token refresh failed, re-authenticating", "error", err)
		}
	}

	tokens, err := s.vendor.Authenticate(ctx)
	if err != nil {
		return "", err
	}
	s.cacheTokens(ctx, tokens)
	return tokens.AccessToken, nil
}

func (s *Service) cacheTokens(ctx context.Context, tokens Tokens) {
	if s.cache == nil {
		return
	}
	ttl := time.Duration(tokens.ExpiresIn)*time.Second - accessTokenSlack
	if ttl > 0 {
		if err := s.cache.Set(ctx, accessTokenKey, tokens.AccessToken, ttl); err != nil {
			s.logger.WarnContext(ctx, "failed to cache vendor access token", "error", err)
		}
	}
	if tokens.RefreshToken != "" {
		if err := s.cache.Set(ctx, refreshTokenKey, tokens.RefreshToken, refreshTokenTTL); err != nil {
			s.logger.WarnContext(ctx, "failed to cache vendor refresh token", "error", err)
		}
	}
}
