package prove_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"kyc-gateway/internal/provider/prove"
	"kyc-gateway/internal/sms"
	usermodels "kyc-gateway/internal/user/models"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
)

type fakeVendor struct {
	authCalls    int
	refreshCalls int
	tokens       prove.Tokens
	authErr      error
	refreshErr   error
	eligible     bool
	eligibleErr  error
	identity     prove.Identity
	identityErr  error

	gotRefresh string
	gotToken   string
	gotPhone   string
	gotDob     string
}

func (f *fakeVendor) Authenticate(context.Context) (prove.Tokens, error) {
	f.authCalls++
	return f.tokens, f.authErr
}

func (f *fakeVendor) Refresh(_ context.Context, refreshToken string) (prove.Tokens, error) {
	f.refreshCalls++
	f.gotRefresh = refreshToken
	return f.tokens, f.refreshErr
}

func (f *fakeVendor) CheckEligibility(_ context.Context, accessToken, phone string) (prove.Eligibility, error) {
	f.gotToken = accessToken
	f.gotPhone = phone
	return prove.Eligibility{Eligible: f.eligible}, f.eligibleErr
}

func (f *fakeVendor) ResolveIdentity(_ context.Context, accessToken, phone, dob string) (prove.Identity, error) {
	f.gotToken = accessToken
	f.gotPhone = phone
	f.gotDob = dob
	return f.identity, f.identityErr
}

type fakeUsers struct {
	got  usermodels.PhoneData
	user *usermodels.User
	err  error
}

func (f *fakeUsers) RecordPhoneVerification(_ context.Context, data usermodels.PhoneData) (*usermodels.User, error) {
	f.got = data
	return f.user, f.err
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.values[key], nil
}

func (f *fakeCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.ttls[key] = ttl
	return nil
}

type fakeSMS struct {
	to   string
	body string
	err  error
}

func (f *fakeSMS) Send(_ context.Context, to, body string) error {
	f.to = to
	f.body = body
	return f.err
}

type ProveServiceSuite struct {
	suite.Suite

	vendor *fakeVendor
	users  *fakeUsers
	cache  *fakeCache
	sms    *fakeSMS
}

func TestProveServiceSuite(t *testing.T) {
	suite.Run(t, new(ProveServiceSuite))
}

func (s *ProveServiceSuite) SetupTest() {
	s.vendor = &fakeVendor{
		tokens:   prove.Tokens{AccessToken: "vendor-token", RefreshToken: "refresh-token", ExpiresIn: 3600},
		eligible: true,
		identity: prove.Identity{
			Phone:     "+15551234567",
			Dob:       "1990-01-15",
			Ssn:       "123-45-6789",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Verified:  true,
		},
	}
	s.users = &fakeUsers{
		user: &usermodels.User{ID: id.NewUserID(), UserCode: "code-1"},
	}
	s.cache = newFakeCache()
	s.sms = &fakeSMS{}
}

func (s *ProveServiceSuite) newService() *prove.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return prove.NewService(s.vendor, s.users, s.cache, s.sms, logger, "https://wallet.example.com", sms.DeepLink)
}

func (s *ProveServiceSuite) TestVerifyIdentity() {
	s.Run("verifies, records the user, and texts the deep link", func() {
		s.SetupTest()
		result, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{
			Phone: "+15551234567",
			Dob:   "1990-01-15",
		})

		s.Require().NoError(err)
		s.Equal("code-1", result.UserCode)

		s.Equal("vendor-token", s.vendor.gotToken)
		s.Equal("+15551234567", s.vendor.gotPhone)
		s.Equal("1990-01-15", s.vendor.gotDob)

		s.Equal(usermodels.PhoneData{
			Phone:     "+15551234567",
			Dob:       "1990-01-15",
			Ssn:       "123-45-6789",
			FirstName: "Ada",
			LastName:  "Lovelace",
		}, s.users.got)

		s.Equal("+15551234567", s.sms.to)
		s.Equal("https://wallet.example.com/authenticate?userCode=code-1", s.sms.body)
	})

	s.Run("caches both vendor tokens with slack shaved off the access ttl", func() {
		s.SetupTest()
		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})
		s.Require().NoError(err)

		s.Equal(1, s.vendor.authCalls)
		s.Equal("vendor-token", s.cache.values["prove:access_token"])
		s.Equal(3600*time.Second-30*time.Second, s.cache.ttls["prove:access_token"])
		s.Equal("refresh-token", s.cache.values["prove:refresh_token"])
	})

	s.Run("reuses a cached vendor token", func() {
		s.SetupTest()
		s.cache.values["prove:access_token"] = "cached-token"

		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().NoError(err)
		s.Equal(0, s.vendor.authCalls)
		s.Equal(0, s.vendor.refreshCalls)
		s.Equal("cached-token", s.vendor.gotToken)
	})

	s.Run("exchanges a cached refresh token when the access token has lapsed", func() {
		s.SetupTest()
		s.cache.values["prove:refresh_token"] = "cached-refresh"

		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().NoError(err)
		s.Equal(0, s.vendor.authCalls)
		s.Equal(1, s.vendor.refreshCalls)
		s.Equal("cached-refresh", s.vendor.gotRefresh)
		s.Equal("vendor-token", s.cache.values["prove:access_token"])
		s.Equal("refresh-token", s.cache.values["prove:refresh_token"])
	})

	s.Run("re-authenticates when the refresh exchange fails", func() {
		s.SetupTest()
		s.cache.values["prove:refresh_token"] = "stale-refresh"
		s.vendor.refreshErr = dErrors.New(dErrors.CodeGateway, "refresh token rejected")

		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().NoError(err)
		s.Equal(1, s.vendor.refreshCalls)
		s.Equal(1, s.vendor.authCalls)
		s.Equal("vendor-token", s.cache.values["prove:access_token"])
	})

	s.Run("falls back to authenticating when the cache read fails", func() {
		s.SetupTest()
		s.cache.getErr = errors.New("redis down")

		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().NoError(err)
		s.Equal(1, s.vendor.authCalls)
	})

	s.Run("rejects an ineligible phone number", func() {
		s.SetupTest()
		s.vendor.eligible = false

		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().Error(err)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	s.Run("surfaces an unverified identity as a verification failure", func() {
		s.SetupTest()
		s.vendor.identity.Verified = false

		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().Error(err)
		s.Equal(dErrors.CodeVerification, dErrors.CodeOf(err))
	})

	s.Run("propagates vendor failures", func() {
		s.SetupTest()
		s.vendor.identityErr = dErrors.New(dErrors.CodeGateway, "vendor call failed")

		_, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().Error(err)
		s.Equal(dErrors.CodeGateway, dErrors.CodeOf(err))
	})

	s.Run("sms failure does not fail the verification", func() {
		s.SetupTest()
		s.sms.err = errors.New("twilio rejected message")

		result, err := s.newService().VerifyIdentity(context.Background(), prove.VerifyRequest{Phone: "+15551234567", Dob: "1990-01-15"})

		s.Require().NoError(err)
		s.Equal("code-1", result.UserCode)
	})
}

func TestDeepLink(t *testing.T) {
	link := sms.DeepLink("https://wallet.example.com", "code-1")
	assert.Equal(t, "https://wallet.example.com/authenticate?userCode=code-1", link)
}
