package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTavilyURL is Tavily's search endpoint.
const DefaultTavilyURL = "https://api.tavily.com"

// TavilyConfig configures the Tavily client.
type TavilyConfig struct {
	APIKey      string
	BaseURL     string        // Default: DefaultTavilyURL
	MaxResults  int           // Default: 5
	SearchDepth string        // "basic" or "advanced". Default: "basic"
	Timeout     time.Duration // Default: 30s
	Retries     int           // Transport-level retries. Default: 2
}

// DefaultTavilyConfig returns a TavilyConfig with sensible defaults and no key.
func DefaultTavilyConfig() TavilyConfig {
	return TavilyConfig{
		BaseURL:     DefaultTavilyURL,
		MaxResults:  5,
		SearchDepth: "basic",
		Timeout:     30 * time.Second,
		Retries:     2,
	}
}

// Tavily implements Searcher using the Tavily REST API.
type Tavily struct {
	client *resty.Client
	cfg    TavilyConfig
}

type tavilyRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	IncludeAnswer  bool     `json:"include_answer"`
}

// Result is a single search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type tavilyResponse struct {
	Query        string   `json:"query"`
	Results      []Result `json:"results"`
	ResponseTime float64  `json:"response_time"`
}

// NewTavily creates a Tavily client. A missing key is not an error here; the
// first Search reports it so the session can continue without search.
func NewTavily(cfg TavilyConfig) *Tavily {
	def := DefaultTavilyConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.SearchDepth == "" {
		cfg.SearchDepth = def.SearchDepth
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
			}
			if r == nil {
				return false
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})

	return &Tavily{client: client, cfg: cfg}
}

// Search runs query against Tavily, restricted to AuthoritativeDomains, and
// renders the hits as plain text blocks.
func (t *Tavily) Search(ctx context.Context, query string) (string, error) {
	results, err := t.Lookup(ctx, query)
	if err != nil {
		return "", err
	}
	return Render(results), nil
}

// Lookup returns the structured results for query.
func (t *Tavily) Lookup(ctx context.Context, query string) ([]Result, error) {
	if t.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetAuthToken(t.cfg.APIKey).
		SetBody(tavilyRequest{
			Query:          query,
			SearchDepth:    t.cfg.SearchDepth,
			MaxResults:     t.cfg.MaxResults,
			IncludeDomains: AuthoritativeDomains,
		}).
		Post("/search")
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &ErrStatus{Code: resp.StatusCode(), Body: truncate(resp.String(), 200)}
	}

	body := resp.Body()
	if err := validateBody(body); err != nil {
		return nil, &ErrInvalidResponse{Body: body, Err: err}
	}

	var out tavilyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ErrInvalidResponse{Body: body, Err: err}
	}
	return out.Results, nil
}

// Render formats results as numbered text blocks separated by blank lines.
func Render(results []Result) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s\nURL: %s\n%s", i+1, strings.TrimSpace(r.Title), r.URL, strings.TrimSpace(r.Content))
	}
	return b.String()
}

// countResults counts the blocks Render produced.
func countResults(text string) int {
	if text == "" || IsSentinel(text) {
		return 0
	}
	return strings.Count("\n"+text, "\nURL: ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
