package auth

import (
	"context"

	"github.com/dhwani-ris/authgate/internal/pkg/models"
)

// UseCase defines the authentication operations exposed over HTTP
type UseCase interface {
	Login(ctx context.Context, username, password, clientKey string) (*models.LoginResponse, error)
	Logout(ctx context.Context, user *models.User) (*models.LogoutResponse, error)
	SendOTP(ctx context.Context, mobileNo string) (*models.OTPSendResponse, error)
	VerifyOTP(ctx context.Context, tmpID, code string) (*models.LoginResponse, error)
}
