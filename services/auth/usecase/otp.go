package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/dhwani-ris/authgate/internal/pkg/apperrors"
	"github.com/dhwani-ris/authgate/internal/pkg/logger"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/internal/utils"
	"github.com/dhwani-ris/authgate/services/auth"
)

const otpPrompt = "Enter the OTP sent to your mobile number"

// SendOTP starts the OTP login flow: it validates the mobile number,
// resolves it to exactly one known identity, stores a challenge under a fresh
// correlation id, and dispatches the code by SMS. The correlation id is only
// returned once the SMS dispatch succeeded.
func (u *AuthUC) SendOTP(ctx context.Context, mobileNo string) (*models.OTPSendResponse, error) {
	if !u.cfg.OTP.Enabled {
		return nil, apperrors.Unavailable("OTP login is not enabled")
	}
	if !u.smsGW.IsConfigured() {
		return nil, apperrors.Unavailable("OTP login is not configured")
	}

	msisdn, err := utils.ValidateMobileNumber(mobileNo)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := u.limiter.Allow(ctx, "otp:send", msisdn, otpSendRateLimit, otpSendRateWindow); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetUserByMSISDN(ctx, msisdn)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.Validation("Mobile number not found")
		}
		logger.Error("OTP send error", logger.String("msisdn", msisdn), logger.Err(err))
		return nil, apperrors.Internal("Failed to send OTP, please try again later", err)
	}

	code, err := generateOTPCode(u.cfg.OTP.CodeLength)
	if err != nil {
		logger.Error("Failed to generate OTP code", logger.Err(err))
		return nil, apperrors.Internal("Failed to send OTP, please try again later", err)
	}

	challenge := &models.OTPChallenge{
		TmpID:     uuid.New().String(),
		MSISDN:    msisdn,
		UserID:    user.ID.String(),
		Code:      code,
		CreatedAt: time.Now().Unix(),
	}

	ttl := time.Duration(u.cfg.OTP.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = otpSendRateWindow
	}

	if err := u.challengeRepo.CreateChallenge(ctx, challenge, ttl); err != nil {
		logger.Error("Failed to store OTP challenge", logger.Err(err))
		return nil, apperrors.Internal("Failed to send OTP, please try again later", err)
	}

	if err := u.smsGW.SendOTP(ctx, msisdn, code); err != nil {
		logger.Error("Failed to dispatch OTP SMS", logger.String("msisdn", msisdn), logger.Err(err))
		return nil, apperrors.Internal("Failed to send OTP, please try again later", err)
	}

	logger.Info("OTP challenge created",
		logger.String("tmp_id", challenge.TmpID),
		logger.String("user_id", user.ID.String()))

	return &models.OTPSendResponse{
		Message:  "OTP sent successfully",
		TmpID:    challenge.TmpID,
		MobileNo: msisdn,
		Prompt:   otpPrompt,
	}, nil
}

// VerifyOTP completes the OTP login flow. A wrong code leaves the challenge
// in place (retries are bounded by the per-correlation-id rate limit); a
// correct code consumes it exactly once and issues a token the same way the
// password login does.
func (u *AuthUC) VerifyOTP(ctx context.Context, tmpID, code string) (*models.LoginResponse, error) {
	if tmpID == "" || code == "" {
		return nil, apperrors.Validation("tmp_id and otp are required")
	}

	if err := u.limiter.Allow(ctx, "otp:verify", tmpID, otpVerifyRateLimit, otpVerifyRateWindow); err != nil {
		return nil, err
	}

	challenge, err := u.challengeRepo.GetChallenge(ctx, tmpID)
	if err != nil {
		if errors.Is(err, auth.ErrChallengeNotFound) {
			logger.Warn("OTP verify with unknown or expired challenge", logger.String("tmp_id", tmpID))
			return nil, apperrors.Authentication("Invalid or expired OTP")
		}
		logger.Error("OTP verify error", logger.String("tmp_id", tmpID), logger.Err(err))
		return nil, apperrors.Internal("Unable to login", err)
	}

	if subtle.ConstantTimeCompare([]byte(challenge.Code), []byte(code)) != 1 {
		logger.Warn("OTP verify with wrong code", logger.String("tmp_id", tmpID))
		return nil, apperrors.Authentication("Invalid or expired OTP")
	}

	user, err := u.userRepo.GetUserByID(ctx, challenge.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, apperrors.Authentication("Invalid or expired OTP")
		}
		logger.Error("OTP verify error", logger.String("tmp_id", tmpID), logger.Err(err))
		return nil, apperrors.Internal("Unable to login", err)
	}

	if !user.HasRole(MobileUserRoles...) {
		logger.Warn("OTP login rejected: user lacks mobile role",
			logger.String("user_id", user.ID.String()))
		return nil, apperrors.Permission("Not allowed to use mobile app")
	}

	resp, err := u.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	// Consume the challenge; only the issued token remains as credential.
	if err := u.challengeRepo.DeleteChallenge(ctx, tmpID); err != nil {
		logger.Warn("Failed to delete consumed OTP challenge",
			logger.String("tmp_id", tmpID),
			logger.Err(err))
	}

	logger.Info("OTP login succeeded",
		logger.String("tmp_id", tmpID),
		logger.String("user_id", user.ID.String()))

	resp.Message = "Logged In"
	return resp, nil
}

// generateOTPCode returns a random numeric code of the given length
func generateOTPCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}

	return string(code), nil
}
