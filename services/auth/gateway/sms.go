package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dhwani-ris/authgate/internal/pkg/logger"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
	"github.com/dhwani-ris/authgate/internal/pkg/retry"
)

// SMSGW dispatches OTP messages through an HTTP SMS provider
type SMSGW struct {
	cfg     models.SMSConfig
	client  *http.Client
	retrier *retry.Retrier
}

// NewSMSGW creates a new SMS gateway
func NewSMSGW(cfg models.SMSConfig) *SMSGW {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &SMSGW{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
		},
		retrier: retry.New(retry.DefaultConfig()),
	}
}

// IsConfigured reports whether a provider endpoint is configured
func (g *SMSGW) IsConfigured() bool {
	return g.cfg.ProviderURL != ""
}

// smsRequest is the provider wire format
type smsRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"sender_id,omitempty"`
}

// SendOTP dispatches the OTP code to the mobile number. Transient provider
// failures are retried with backoff; a final failure propagates to the caller
// so no correlation id is handed out for an undelivered code.
func (g *SMSGW) SendOTP(ctx context.Context, msisdn, code string) error {
	payload := smsRequest{
		To:       msisdn,
		Message:  fmt.Sprintf("Your one-time login code is %s. It expires in 10 minutes.", code),
		SenderID: g.cfg.SenderID,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	err = g.retrier.Do(ctx, "sms dispatch", func(ctx context.Context) error {
		return g.post(ctx, body)
	})
	if err != nil {
		return fmt.Errorf("failed to dispatch otp sms: %w", err)
	}

	logger.Info("Dispatched OTP SMS", logger.String("msisdn", msisdn))
	return nil
}

func (g *SMSGW) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.ProviderURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", g.cfg.APIKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little of the body for the server-side log only.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Warn("SMS provider returned an error",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(snippet)))
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	return nil
}
