package api

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// DefaultTimeout bounds a single request, including a full streamed reply
const DefaultTimeout = 120 * time.Second

// Read limits for non-streamed bodies
const (
	maxErrorBody    = 4096
	maxMetadataBody = 64 << 10
)

// HTTPClient is the subset of tls_client.HttpClient the client needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeminiClient is the main client for interacting with the Gemini API
type GeminiClient struct {
	httpClient HTTPClient
	apiKey     string
	baseURL    string
	timeout    time.Duration
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*GeminiClient)

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *GeminiClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the TLS client, mainly for tests
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *GeminiClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *GeminiClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates a new GeminiClient
func NewClient(apiKey string, opts ...ClientOption) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, apierrors.ErrEmptyAPIKey
	}

	client := &GeminiClient{
		apiKey:  apiKey,
		baseURL: models.EndpointBase,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close marks the client closed; in-flight streams finish on their own
func (c *GeminiClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *GeminiClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// BaseURL returns the API base URL
func (c *GeminiClient) BaseURL() string {
	return c.baseURL
}

// StartChat creates a new chat session with empty history
func (c *GeminiClient) StartChat(model string) *ChatSession {
	return &ChatSession{
		client: c,
		model:  model,
	}
}

// ValidateModel checks that the key is accepted and the model is reachable
// by fetching the model's metadata.
func (c *GeminiClient) ValidateModel(ctx context.Context, model string) error {
	if c.IsClosed() {
		return apierrors.ErrClientClosed
	}

	endpoint := modelPath(model)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, models.DefaultHeaders())
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(ctx, "validate model", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, endpoint, model)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBody))
	if err != nil {
		return apierrors.NewNetworkErrorWithEndpoint("validate model", endpoint, err)
	}

	if !gjson.ValidBytes(body) || parseModelName(body) == "" {
		return apierrors.NewParseError("model metadata has no name", PathModelName)
	}

	return nil
}

// newRequest builds a request against baseURL with the key header set
func (c *GeminiClient) newRequest(ctx context.Context, method, endpoint string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	req.Header.Set(models.HeaderAPIKey, c.apiKey)

	return req, nil
}

// modelPath returns the relative path of a model resource
func modelPath(model string) string {
	return models.PathModels + "/" + model
}

// transportError classifies a failed Do call
func transportError(ctx context.Context, operation, endpoint string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		return context.Canceled
	case context.DeadlineExceeded:
		return apierrors.NewTimeoutError(operation)
	}
	return apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, err)
}

// statusError converts a non-200 response into a typed error
func statusError(resp *http.Response, endpoint, model string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return classifyStatus(resp.StatusCode, endpoint, model, raw)
}
