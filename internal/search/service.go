package search

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
)

const defaultEndpoint = "https://kagi.com/api/v0/search"

// Result is one article that mentions the target URL.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Response is the payload of POST /kagi-search.
type Response struct {
	TargetURL string   `json:"target_url"`
	Results   []Result `json:"results"`
}

type kagiItem struct {
	T       int    `json:"t"`
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type kagiResponse struct {
	Data []kagiItem `json:"data"`
}

// Service finds articles that mention or link to a URL via the Kagi search
// API.
type Service struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

// NewService reads the API key from KAGI_API_KEY.
func NewService() (*Service, error) {
	apiKey := os.Getenv("KAGI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("KAGI_API_KEY environment variable is required")
	}
	return &Service{
		client:   resty.New(),
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
	}, nil
}

// Search queries for mentions of the target URL or its domain, drops the
// target itself (and optionally its whole domain) from the results, and
// caps the list at the requested limit.
func (s *Service) Search(req Request) (*Response, error) {
	targetDomain := domainOf(req.TargetURL)
	query := fmt.Sprintf("%q OR %q", req.TargetURL, targetDomain)

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	var parsed kagiResponse
	resp, err := s.client.R().
		SetHeader("Authorization", "Bot "+s.apiKey).
		SetQueryParam("q", query).
		// Fetch extra so there is room for filtering.
		SetQueryParam("limit", fmt.Sprintf("%d", limit*2)).
		SetResult(&parsed).
		Get(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("kagi search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("kagi search failed: %s", resp.Status())
	}

	excludeDomain := true
	if req.ExcludeDomain != nil {
		excludeDomain = *req.ExcludeDomain
	}

	results := []Result{}
	for _, item := range parsed.Data {
		if item.URL == "" || item.URL == req.TargetURL {
			continue
		}
		if excludeDomain && domainOf(item.URL) == targetDomain {
			continue
		}
		results = append(results, Result{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: item.Snippet,
		})
		if len(results) >= limit {
			break
		}
	}

	return &Response{TargetURL: req.TargetURL, Results: results}, nil
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
