package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhwani-ris/authgate/internal/pkg/apperrors"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
)

// fakeUseCase returns canned responses per operation
type fakeUseCase struct {
	loginResp  *models.LoginResponse
	loginErr   error
	logoutResp *models.LogoutResponse
	logoutErr  error
	sendResp   *models.OTPSendResponse
	sendErr    error
	verifyResp *models.LoginResponse
	verifyErr  error

	gotUsername string
	gotMobileNo string
	gotTmpID    string
	gotOTP      string
}

func (f *fakeUseCase) Login(_ context.Context, username, _, _ string) (*models.LoginResponse, error) {
	f.gotUsername = username
	return f.loginResp, f.loginErr
}

func (f *fakeUseCase) Logout(_ context.Context, _ *models.User) (*models.LogoutResponse, error) {
	return f.logoutResp, f.logoutErr
}

func (f *fakeUseCase) SendOTP(_ context.Context, mobileNo string) (*models.OTPSendResponse, error) {
	f.gotMobileNo = mobileNo
	return f.sendResp, f.sendErr
}

func (f *fakeUseCase) VerifyOTP(_ context.Context, tmpID, otp string) (*models.LoginResponse, error) {
	f.gotTmpID = tmpID
	f.gotOTP = otp
	return f.verifyResp, f.verifyErr
}

func doRequest(handler echo.HandlerFunc, body string, setup ...func(echo.Context)) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(stdhttp.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for _, fn := range setup {
		fn(c)
	}
	_ = handler(c)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoginHandlerSuccess(t *testing.T) {
	uc := &fakeUseCase{loginResp: &models.LoginResponse{
		Message:  "Logged In",
		User:     "john.doe",
		FullName: "John Doe",
		Token:    "encrypted-token",
	}}
	handler := NewAuthHandler(uc)

	rec := doRequest(handler.Login, `{"username":"john.doe","password":"secret"}`)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "john.doe", uc.gotUsername)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Logged In", resp.Message)
	assert.Equal(t, "encrypted-token", resp.Token)
}

func TestLoginHandlerErrorStatus(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad credentials", apperrors.Authentication("Invalid username or password"), stdhttp.StatusUnauthorized},
		{"role gate", apperrors.Permission("Not allowed to use mobile app"), stdhttp.StatusForbidden},
		{"validation", apperrors.Validation("Username and password are required"), stdhttp.StatusBadRequest},
		{"rate limited", apperrors.RateLimit("Too many requests, please try again later"), stdhttp.StatusTooManyRequests},
		{"untagged", assertableErr("boom"), stdhttp.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(&fakeUseCase{loginErr: tc.err})

			rec := doRequest(handler.Login, `{"username":"john.doe","password":"secret"}`)
			assert.Equal(t, tc.wantStatus, rec.Code)

			body := decodeError(t, rec)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestLoginHandlerUntaggedErrorIsOpaque(t *testing.T) {
	handler := NewAuthHandler(&fakeUseCase{loginErr: assertableErr("pq: connection refused")})

	rec := doRequest(handler.Login, `{"username":"john.doe","password":"secret"}`)
	require.Equal(t, stdhttp.StatusInternalServerError, rec.Code)

	// Internal details stay out of the response body.
	body := decodeError(t, rec)
	assert.Equal(t, "Unable to login", body["error"])
}

func TestLoginHandlerMalformedBody(t *testing.T) {
	handler := NewAuthHandler(&fakeUseCase{})

	rec := doRequest(handler.Login, `{"username":`)
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	uc := &fakeUseCase{logoutResp: &models.LogoutResponse{Message: "Logged out successfully"}}
	handler := NewAuthHandler(uc)

	user := &models.User{ID: uuid.New(), Username: "john.doe"}
	rec := doRequest(handler.Logout, ``, func(c echo.Context) { c.Set("user", user) })

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var resp models.LogoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Logged out successfully", resp.Message)
}

func TestLogoutHandlerWithoutUser(t *testing.T) {
	handler := NewAuthHandler(&fakeUseCase{})

	rec := doRequest(handler.Logout, ``)
	assert.Equal(t, stdhttp.StatusUnauthorized, rec.Code)
}

func TestSendOTPHandlerSuccess(t *testing.T) {
	uc := &fakeUseCase{sendResp: &models.OTPSendResponse{
		Message:  "OTP sent successfully",
		TmpID:    "tmp-123",
		MobileNo: "+15551234567",
		Prompt:   "Enter the OTP sent to your mobile number",
	}}
	handler := NewAuthHandler(uc)

	rec := doRequest(handler.SendOTP, `{"mobile_no":"+15551234567"}`)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "+15551234567", uc.gotMobileNo)

	var resp models.OTPSendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tmp-123", resp.TmpID)
}

func TestSendOTPHandlerMissingNumber(t *testing.T) {
	handler := NewAuthHandler(&fakeUseCase{})

	rec := doRequest(handler.SendOTP, `{}`)
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestSendOTPHandlerUnavailable(t *testing.T) {
	handler := NewAuthHandler(&fakeUseCase{sendErr: apperrors.Unavailable("OTP login is not enabled")})

	rec := doRequest(handler.SendOTP, `{"mobile_no":"+15551234567"}`)
	require.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "OTP login is not enabled", body["error"])
}

func TestVerifyOTPHandlerSuccess(t *testing.T) {
	uc := &fakeUseCase{verifyResp: &models.LoginResponse{
		Message: "Logged In",
		User:    "john.doe",
		Token:   "encrypted-token",
	}}
	handler := NewAuthHandler(uc)

	rec := doRequest(handler.VerifyOTP, `{"tmp_id":"tmp-123","otp":"123456"}`)
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "tmp-123", uc.gotTmpID)
	assert.Equal(t, "123456", uc.gotOTP)
}

func TestVerifyOTPHandlerMissingFields(t *testing.T) {
	handler := NewAuthHandler(&fakeUseCase{})

	for _, body := range []string{`{}`, `{"tmp_id":"tmp-123"}`, `{"otp":"123456"}`} {
		rec := doRequest(handler.VerifyOTP, body)
		assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	}
}

func TestVerifyOTPHandlerWrongCode(t *testing.T) {
	handler := NewAuthHandler(&fakeUseCase{verifyErr: apperrors.Authentication("Invalid or expired OTP")})

	rec := doRequest(handler.VerifyOTP, `{"tmp_id":"tmp-123","otp":"000000"}`)
	require.Equal(t, stdhttp.StatusUnauthorized, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "Invalid or expired OTP", body["error"])
}

// assertableErr is a plain error with no kind attached
type assertableErr string

func (e assertableErr) Error() string { return string(e) }
