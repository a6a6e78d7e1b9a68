package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhwani-ris/authgate/internal/pkg/apperrors"
)

func TestSendOTPSuccess(t *testing.T) {
	user := testUser(t, "Mobile User")
	f := newUCFixture(t, user)

	resp, err := f.uc.SendOTP(context.Background(), "+1 (555) 123-4567")
	require.NoError(t, err)

	assert.Equal(t, "OTP sent successfully", resp.Message)
	assert.Equal(t, "+15551234567", resp.MobileNo)
	assert.NotEmpty(t, resp.TmpID)
	assert.NotEmpty(t, resp.Prompt)

	// The stored challenge and the dispatched SMS carry the same code.
	challenge, err := f.challenges.GetChallenge(context.Background(), resp.TmpID)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), challenge.UserID)
	assert.Equal(t, "+15551234567", challenge.MSISDN)
	assert.Len(t, challenge.Code, 6)

	require.Len(t, f.sms.sent, 1)
	assert.Equal(t, "+15551234567", f.sms.sent[0].msisdn)
	assert.Equal(t, challenge.Code, f.sms.sent[0].code)

	assert.Equal(t, 10*time.Minute, f.challenges.lastTTL)

	require.Len(t, f.limiter.calls, 1)
	assert.Equal(t, limiterCall{op: "otp:send", key: "+15551234567"}, f.limiter.calls[0])
}

func TestSendOTPDisabled(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))
	f.uc.cfg.OTP.Enabled = false

	_, err := f.uc.SendOTP(context.Background(), "+15551234567")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestSendOTPProviderNotConfigured(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))
	f.sms.configured = false

	_, err := f.uc.SendOTP(context.Background(), "+15551234567")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestSendOTPInvalidNumber(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))

	for _, mobileNo := range []string{"", "12ab", "+05551234567"} {
		_, err := f.uc.SendOTP(context.Background(), mobileNo)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
	assert.Empty(t, f.limiter.calls, "malformed numbers must not consume quota")
}

func TestSendOTPUnknownNumber(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))

	_, err := f.uc.SendOTP(context.Background(), "+15559999999")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, "Mobile number not found", apperrors.MessageOf(err, ""))
	assert.Empty(t, f.sms.sent)
}

func TestSendOTPRateLimited(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))
	f.limiter.err = apperrors.RateLimit("Too many requests, please try again later")

	_, err := f.uc.SendOTP(context.Background(), "+15551234567")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindRateLimit, apperrors.KindOf(err))
	assert.Zero(t, f.userRepo.getCalls)
	assert.Empty(t, f.sms.sent)
}

func TestSendOTPDispatchFailure(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))
	f.sms.sendErr = errors.New("provider timeout")

	_, err := f.uc.SendOTP(context.Background(), "+15551234567")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func sendOTP(t *testing.T, f *ucFixture) (tmpID, code string) {
	t.Helper()

	resp, err := f.uc.SendOTP(context.Background(), "+15551234567")
	require.NoError(t, err)

	challenge, err := f.challenges.GetChallenge(context.Background(), resp.TmpID)
	require.NoError(t, err)
	return resp.TmpID, challenge.Code
}

func TestVerifyOTPSuccessConsumesChallenge(t *testing.T) {
	user := testUser(t, "Mobile User")
	f := newUCFixture(t, user)
	ctx := context.Background()

	tmpID, code := sendOTP(t, f)

	resp, err := f.uc.VerifyOTP(ctx, tmpID, code)
	require.NoError(t, err)
	assert.Equal(t, "Logged In", resp.Message)
	assert.Equal(t, "john.doe", resp.User)

	apiKey, apiSecret, err := f.codec.Decode(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.APIKey, apiKey)
	assert.Equal(t, user.APISecret, apiSecret)

	// The same code must not log in twice.
	_, err = f.uc.VerifyOTP(ctx, tmpID, code)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
}

func TestVerifyOTPWrongCodeKeepsChallenge(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))
	ctx := context.Background()

	tmpID, code := sendOTP(t, f)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err := f.uc.VerifyOTP(ctx, tmpID, wrong)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))

	// A failed attempt must not burn the challenge.
	resp, err := f.uc.VerifyOTP(ctx, tmpID, code)
	require.NoError(t, err)
	assert.Equal(t, "Logged In", resp.Message)
}

func TestVerifyOTPMissingFields(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))

	for _, tc := range []struct{ tmpID, code string }{
		{"", "123456"},
		{"some-id", ""},
	} {
		_, err := f.uc.VerifyOTP(context.Background(), tc.tmpID, tc.code)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestVerifyOTPUnknownChallenge(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))

	_, err := f.uc.VerifyOTP(context.Background(), "no-such-id", "123456")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindAuthentication, apperrors.KindOf(err))
	assert.Equal(t, "Invalid or expired OTP", apperrors.MessageOf(err, ""))
}

func TestVerifyOTPRateLimited(t *testing.T) {
	f := newUCFixture(t, testUser(t, "Mobile User"))
	tmpID, code := sendOTP(t, f)

	f.limiter.err = apperrors.RateLimit("Too many requests, please try again later")

	_, err := f.uc.VerifyOTP(context.Background(), tmpID, code)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindRateLimit, apperrors.KindOf(err))
}

func TestVerifyOTPRejectsUserWithoutMobileRole(t *testing.T) {
	user := testUser(t, "Website User")
	f := newUCFixture(t, user)

	// Role was revoked between send and verify.
	user.Roles = []string{"Mobile User"}
	tmpID, code := sendOTP(t, f)
	user.Roles = []string{"Website User"}

	_, err := f.uc.VerifyOTP(context.Background(), tmpID, code)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPermission, apperrors.KindOf(err))
}

func TestGenerateOTPCode(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := generateOTPCode(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}

	// Zero falls back to the default length.
	code, err := generateOTPCode(0)
	require.NoError(t, err)
	assert.Len(t, code, 6)
}
