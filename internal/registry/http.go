package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/hyeonlab/lawtrace/pkg/retry"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultRate     = 2.0 // requests per second against the registry
	defaultBurst    = 1
	defaultPageSize = 100
)

// HTTPClient talks to the registry's open API. Every request carries a fixed
// timeout, waits on a politeness limiter and retries transient faults with
// bounded exponential backoff.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	client    *http.Client
	limiter   *rate.Limiter
	retryOpts []retry.Option
}

type ClientOption func(*HTTPClient)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *HTTPClient) {
		if burst <= 0 {
			burst = defaultBurst
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithRetryOptions(opts ...retry.Option) ClientOption {
	return func(c *HTTPClient) {
		c.retryOpts = opts
	}
}

func NewHTTPClient(baseURL, apiKey string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRate), defaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Search(ctx context.Context, name string) ([]StatuteSummary, error) {
	params := url.Values{}
	params.Set("target", "law")
	params.Set("query", name)
	params.Set("display", fmt.Sprint(defaultPageSize))

	var env lawSearchEnvelope
	if err := c.getJSON(ctx, "lawSearch.do", params, &env); err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}

	summaries := make([]StatuteSummary, 0, len(env.LawSearch.Laws))
	for _, row := range env.LawSearch.Laws {
		summaries = append(summaries, row.toSummary())
	}
	return summaries, nil
}

func (c *HTTPClient) Detail(ctx context.Context, masterID string) (*StatuteDetail, error) {
	params := url.Values{}
	params.Set("target", "law")
	params.Set("MST", masterID)

	var env lawDetailEnvelope
	if err := c.getJSON(ctx, "lawService.do", params, &env); err != nil {
		return nil, fmt.Errorf("detail %s: %w", masterID, err)
	}
	if env.Law.Basic.MasterNo == "" {
		return nil, fmt.Errorf("detail %s: %w", masterID, ErrNotFound)
	}
	return env.toDetail(), nil
}

func (c *HTTPClient) RecentlyAmended(ctx context.Context, since time.Time) ([]StatuteSummary, error) {
	params := url.Values{}
	params.Set("target", "eflaw")
	params.Set("regDt", since.Format("20060102")+"~"+time.Now().Format("20060102"))
	params.Set("display", fmt.Sprint(defaultPageSize))

	var env lawSearchEnvelope
	if err := c.getJSON(ctx, "lawSearch.do", params, &env); err != nil {
		return nil, fmt.Errorf("recently amended: %w", err)
	}

	summaries := make([]StatuteSummary, 0, len(env.LawSearch.Laws))
	for _, row := range env.LawSearch.Laws {
		summaries = append(summaries, row.toSummary())
	}
	return summaries, nil
}

func (c *HTTPClient) CatalogPage(ctx context.Context, page, size int) (*CatalogPage, error) {
	if size <= 0 {
		size = defaultPageSize
	}
	params := url.Values{}
	params.Set("target", "law")
	params.Set("query", "*")
	params.Set("page", fmt.Sprint(page))
	params.Set("display", fmt.Sprint(size))

	var env lawSearchEnvelope
	if err := c.getJSON(ctx, "lawSearch.do", params, &env); err != nil {
		return nil, fmt.Errorf("catalog page %d: %w", page, err)
	}

	result := &CatalogPage{Total: int(env.LawSearch.TotalCnt)}
	for _, row := range env.LawSearch.Laws {
		result.Statutes = append(result.Statutes, row.toSummary())
	}
	return result, nil
}

func (c *HTTPClient) PrecedentExists(ctx context.Context, caseNo string) (bool, error) {
	params := url.Values{}
	params.Set("target", "prec")
	params.Set("query", caseNo)

	var env precSearchEnvelope
	if err := c.getJSON(ctx, "lawSearch.do", params, &env); err != nil {
		return false, fmt.Errorf("precedent %q: %w", caseNo, err)
	}
	return env.PrecSearch.TotalCnt > 0, nil
}

// getJSON performs one GET with rate limiting and retry, decoding the body into out.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("OC", c.apiKey)
	params.Set("type", "JSON")
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	body, err := retry.Do(ctx, func() ([]byte, error) {
		return c.fetch(ctx, reqURL)
	}, IsTransient, c.retryOpts...)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// Client-side transport faults (timeout, reset) are retryable.
		return nil, &TransientError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &TransientError{Op: "fetch", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("registry rejected request: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Op: "read body", Err: err}
	}
	return body, nil
}
