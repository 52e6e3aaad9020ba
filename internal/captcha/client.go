package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eventdeskio/eventdesk-leads/pkg/logging"
)

const (
	defaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"
	defaultTimeout  = 10 * time.Second

	// ErrorCodeTransport marks verification attempts that never got a
	// usable answer out of the oracle. Callers must treat it the same as
	// an explicit rejection.
	ErrorCodeTransport = "transport"
)

// Result is what the verification oracle said about a token.
// Policy (score thresholds etc.) is layered on top by the caller.
type Result struct {
	Success   bool
	Score     float64
	ErrorCode string
}

// Verifier checks a client-supplied verification token.
type Verifier interface {
	Verify(ctx context.Context, token string) Result
}

// Client verifies reCAPTCHA tokens against Google's siteverify endpoint.
type Client struct {
	endpoint   string
	secret     string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewClient creates a siteverify client. Returns nil when no secret is
// configured so callers can treat verification as disabled.
func NewClient(secret string, logger *logging.Logger) *Client {
	if strings.TrimSpace(secret) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		endpoint: defaultEndpoint,
		secret:   secret,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify posts the token and shared secret to the oracle. Transport or
// decode failures surface as an unsuccessful Result, never as an error.
func (c *Client) Verify(ctx context.Context, token string) Result {
	form := url.Values{
		"secret":   {c.secret},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Error("captcha: build request failed", "error", err)
		return Result{Success: false, ErrorCode: ErrorCodeTransport}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("captcha: siteverify request failed", "error", err)
		return Result{Success: false, ErrorCode: ErrorCodeTransport}
	}
	defer resp.Body.Close()

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Error("captcha: decode siteverify response failed", "error", err)
		return Result{Success: false, ErrorCode: ErrorCodeTransport}
	}

	result := Result{
		Success: body.Success,
		Score:   body.Score,
	}
	if len(body.ErrorCodes) > 0 {
		result.ErrorCode = body.ErrorCodes[0]
	}

	if !result.Success {
		c.logger.Warn("captcha: verification rejected", "error_code", result.ErrorCode)
	}
	return result
}

var _ Verifier = (*Client)(nil)
