package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hellostore_backend/internal/logger"
)

// Verifier validates a human-challenge token before the auth flows touch the
// database. A failed or unreachable verification always reads as "not human".
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

const siteverifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// TurnstileVerifier calls the Cloudflare Turnstile siteverify endpoint.
type TurnstileVerifier struct {
	secret   string
	endpoint string
	client   *http.Client
}

func NewTurnstileVerifier(secret string) *TurnstileVerifier {
	return &TurnstileVerifier{
		secret:   secret,
		endpoint: siteverifyURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// WithEndpoint overrides the siteverify URL. Intended for tests.
func (v *TurnstileVerifier) WithEndpoint(endpoint string) *TurnstileVerifier {
	v.endpoint = endpoint
	return v
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *TurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		logger.CtxWithError(ctx, "Turnstile verification request failed", err)
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("turnstile siteverify returned status %d", resp.StatusCode)
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode siteverify response: %w", err)
	}

	if !result.Success {
		logger.CtxWarn(ctx, "Turnstile verification rejected", "error_codes", result.ErrorCodes)
	}
	return result.Success, nil
}

// NoopVerifier accepts everything. Used when the bot check is disabled.
type NoopVerifier struct{}

func (NoopVerifier) Verify(context.Context, string, string) (bool, error) {
	return true, nil
}
