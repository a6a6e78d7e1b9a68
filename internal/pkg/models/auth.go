package models

// LoginRequest represents a request to login with username and password
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// OTPSendRequest represents a request to send an OTP to a mobile number
type OTPSendRequest struct {
	MobileNo string `json:"mobile_no" validate:"required"`
}

// OTPVerifyRequest represents a request to verify an OTP challenge
type OTPVerifyRequest struct {
	TmpID string `json:"tmp_id" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// LoginResponse represents the response after successful authentication,
// for both password and OTP logins
type LoginResponse struct {
	Message  string `json:"message"`
	User     string `json:"user"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

// LogoutResponse represents the response after logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// OTPSendResponse represents the response after an OTP was dispatched
type OTPSendResponse struct {
	Message  string `json:"message"`
	TmpID    string `json:"tmp_id"`
	MobileNo string `json:"mobile_no"`
	Prompt   string `json:"prompt"`
}

// OTPChallenge links an OTP-send request to its subsequent verify request.
// Stored in redis under the tmp_id with the challenge TTL.
type OTPChallenge struct {
	TmpID     string `json:"tmp_id"`
	MSISDN    string `json:"msisdn"`
	UserID    string `json:"user_id"`
	Code      string `json:"code"`
	CreatedAt int64  `json:"created_at"`
}
