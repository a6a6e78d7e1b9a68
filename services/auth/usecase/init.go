package usecase

import (
	"time"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/internal/pkg/token"
	"github.com/dhwani-ris/authgate/services/auth"
)

// MobileUserRoles is the role set granting mobile app access. A user needs
// at least one of these roles to log in through this gateway.
var MobileUserRoles = []string{"Mobile User"}

const (
	loginRateLimit  = 5
	loginRateWindow = time.Hour

	otpSendRateLimit  = 5
	otpSendRateWindow = 10 * time.Minute

	otpVerifyRateLimit  = 5
	otpVerifyRateWindow = 10 * time.Minute
)

// AuthUC implements the authentication use cases
type AuthUC struct {
	cfg           *models.Config
	userRepo      auth.UserRepo
	challengeRepo auth.ChallengeRepo
	smsGW         auth.SMSGateway
	limiter       auth.RateLimiter
	codec         *token.Codec
}

// NewAuthUC creates a new authentication use case
func NewAuthUC(
	cfg *models.Config,
	userRepo auth.UserRepo,
	challengeRepo auth.ChallengeRepo,
	smsGW auth.SMSGateway,
	limiter auth.RateLimiter,
	codec *token.Codec,
) *AuthUC {
	return &AuthUC{
		cfg:           cfg,
		userRepo:      userRepo,
		challengeRepo: challengeRepo,
		smsGW:         smsGW,
		limiter:       limiter,
		codec:         codec,
	}
}
