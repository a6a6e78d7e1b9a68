package auth

import "context"

// SMSGateway dispatches OTP messages through the configured SMS provider
type SMSGateway interface {
	IsConfigured() bool
	SendOTP(ctx context.Context, msisdn, code string) error
}
