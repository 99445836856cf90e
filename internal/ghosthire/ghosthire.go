// Package ghosthire is a client for the GhostHire scoring service. It builds
// and normalizes analysis payloads, talks to the service over HTTP and sorts
// failures into validation, network, response and service errors.
package ghosthire

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAPIURL  = "http://127.0.0.1:5000"
	DefaultTimeout = 10 * time.Second

	AnalyzePath = "/analyze"
	LocPath     = "/loc"

	userAgent = "spigell/ghosthire"
	// Max length of job text echoed into debug logs.
	logExcerpt = 80
)

type Config struct {
	APIURL  string
	Timeout time.Duration
}

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// Analyze normalizes a loosely keyed payload and submits it for analysis.
func (c *Client) Analyze(ctx context.Context, payload map[string]any) (*AnalysisResult, error) {
	req, err := Normalize(payload)
	if err != nil {
		return nil, err
	}

	return c.AnalyzeRequest(ctx, req)
}

// AnalyzeRequest submits an already normalized request.
func (c *Client) AnalyzeRequest(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	req = req.normalized()
	if req.Empty() {
		return nil, ErrValidation
	}

	c.logger.Debug("submitting analysis",
		zap.String("job_text", excerpt(req.JobText, logExcerpt)),
		zap.String("job_url", req.JobURL),
	)

	// a body that is JSON but not an object fails here as an invalid response
	var raw map[string]any
	if err := c.postJSON(ctx, c.APIURL+AnalyzePath, req, &raw); err != nil {
		return nil, err
	}

	return decodeResult(raw), nil
}

// Loc fetches the current lines-of-code counter.
func (c *Client) Loc(ctx context.Context) (*LocCounter, error) {
	var counter LocCounter
	if err := c.getJSON(ctx, c.APIURL+LocPath, &counter); err != nil {
		return nil, err
	}

	return &counter, nil
}
