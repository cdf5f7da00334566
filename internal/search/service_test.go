package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return &Service{
		client:   resty.New(),
		apiKey:   "test-key",
		endpoint: ts.URL,
	}
}

func writeJSON(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func kagiPayload(urls ...string) []byte {
	var items []map[string]any
	for _, u := range urls {
		items = append(items, map[string]any{
			"t": 0, "url": u, "title": "Title for " + u, "snippet": "...",
		})
	}
	data, _ := json.Marshal(map[string]any{"data": items})
	return data
}

func TestSearchFiltersTargetAndDomain(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bot test-key" {
			t.Errorf("Authorization = %q, want Bot test-key", got)
		}
		writeJSON(w, kagiPayload(
			"https://target.example/post",       // exact target, dropped
			"https://target.example/other",      // same domain, dropped
			"https://blog.example/mentions-it",  // kept
			"https://news.example/talks-about",  // kept
		))
	})

	resp, err := svc.Search(Request{TargetURL: "https://target.example/post", Limit: 10})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(resp.Results), resp.Results)
	}
	if resp.Results[0].URL != "https://blog.example/mentions-it" {
		t.Errorf("first result = %q", resp.Results[0].URL)
	}
	if resp.TargetURL != "https://target.example/post" {
		t.Errorf("TargetURL = %q", resp.TargetURL)
	}
}

func TestSearchKeepsSameDomainWhenAllowed(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, kagiPayload("https://target.example/other"))
	})

	exclude := false
	resp, err := svc.Search(Request{
		TargetURL:     "https://target.example/post",
		Limit:         10,
		ExcludeDomain: &exclude,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("got %d results, want 1 (same-domain allowed)", len(resp.Results))
	}
}

func TestSearchAppliesLimit(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, kagiPayload(
			"https://a.example/1",
			"https://b.example/2",
			"https://c.example/3",
		))
	})

	resp, err := svc.Search(Request{TargetURL: "https://target.example/post", Limit: 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("got %d results, want 2 (limit)", len(resp.Results))
	}
}

func TestSearchUpstreamError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := svc.Search(Request{TargetURL: "https://target.example/post"}); err == nil {
		t.Error("Search() error = nil, want error on upstream failure")
	}
}
