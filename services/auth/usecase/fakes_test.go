package usecase

import (
	"context"
	"time"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/services/auth"
)

// fakeUserRepo is an in-memory auth.UserRepo
type fakeUserRepo struct {
	users       []*models.User
	updateErr   error
	clearErr    error
	getCalls    int
	updateCalls int
	clearCalls  int
}

func (f *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	f.getCalls++
	for _, u := range f.users {
		if u.IsActive && match(u) {
			return u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetUserByMSISDN(_ context.Context, msisdn string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.MSISDN == msisdn })
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID.String() == id })
}

func (f *fakeUserRepo) UpdateAPICredentials(_ context.Context, userID, apiKey, apiSecret string) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, u := range f.users {
		if u.ID.String() == userID {
			u.APIKey = apiKey
			u.APISecret = apiSecret
			return nil
		}
	}
	return auth.ErrUserNotFound
}

func (f *fakeUserRepo) ClearAPICredentials(_ context.Context, userID string) error {
	f.clearCalls++
	if f.clearErr != nil {
		return f.clearErr
	}
	for _, u := range f.users {
		if u.ID.String() == userID {
			u.APIKey = ""
			u.APISecret = ""
		}
	}
	return nil
}

func (f *fakeUserRepo) ValidateAPICredentials(_ context.Context, apiKey, apiSecret string) (*models.User, error) {
	return f.find(func(u *models.User) bool {
		return u.APIKey != "" && u.APIKey == apiKey && u.APISecret == apiSecret
	})
}

// fakeChallengeRepo is an in-memory auth.ChallengeRepo. TTLs are recorded but
// not enforced.
type fakeChallengeRepo struct {
	challenges map[string]*models.OTPChallenge
	lastTTL    time.Duration
	createErr  error
	deleteErr  error
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{challenges: make(map[string]*models.OTPChallenge)}
}

func (f *fakeChallengeRepo) CreateChallenge(_ context.Context, challenge *models.OTPChallenge, ttl time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.challenges[challenge.TmpID] = challenge
	f.lastTTL = ttl
	return nil
}

func (f *fakeChallengeRepo) GetChallenge(_ context.Context, tmpID string) (*models.OTPChallenge, error) {
	challenge, ok := f.challenges[tmpID]
	if !ok {
		return nil, auth.ErrChallengeNotFound
	}
	return challenge, nil
}

func (f *fakeChallengeRepo) DeleteChallenge(_ context.Context, tmpID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.challenges, tmpID)
	return nil
}

type sentSMS struct {
	msisdn string
	code   string
}

// fakeSMSGateway records dispatched messages
type fakeSMSGateway struct {
	configured bool
	sendErr    error
	sent       []sentSMS
}

func (f *fakeSMSGateway) IsConfigured() bool {
	return f.configured
}

func (f *fakeSMSGateway) SendOTP(_ context.Context, msisdn, code string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentSMS{msisdn: msisdn, code: code})
	return nil
}

type limiterCall struct {
	op  string
	key string
}

// fakeLimiter records rate-limit checks and fails them all when err is set
type fakeLimiter struct {
	err   error
	calls []limiterCall
}

func (f *fakeLimiter) Allow(_ context.Context, op, key string, _ int, _ time.Duration) error {
	f.calls = append(f.calls, limiterCall{op: op, key: key})
	return f.err
}
