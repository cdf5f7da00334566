package capture

import (
	"log"

	"github.com/sitelens/sitelens/pkg/browser"
)

// Pool is the slice of the browser pool the service needs.
type Pool interface {
	Acquire() (browser.Instance, bool)
	Release(browser.Instance)
}

// Render describes a completed screenshot for the history recorder.
type Render struct {
	URL         string
	Width       int
	Height      int
	Format      string
	SizeBytes   int
	CacheHit    bool
	Placeholder bool
}

// Recorder receives one Render per completed call. Implementations must be
// best effort; the service ignores their outcome.
type Recorder interface {
	Record(r Render)
}

// Request is one screenshot call as seen by the routing layer.
type Request struct {
	URL      string
	Width    int
	Height   int
	FullPage bool
	Quality  int
	Format   string
	UseCache bool
	WaitFor  string
	WaitTime int
	Timeout  int
}

func (r Request) withDefaults() Request {
	if r.Width <= 0 {
		r.Width = 200
	}
	if r.Height <= 0 {
		r.Height = 150
	}
	if r.Quality <= 0 {
		r.Quality = 90
	}
	if r.Format == "" {
		r.Format = "jpeg"
	}
	return r
}

func (r Request) renderOptions() browser.RenderOptions {
	return browser.RenderOptions{
		URL:      r.URL,
		Width:    r.Width,
		Height:   r.Height,
		FullPage: r.FullPage,
		Quality:  r.Quality,
		Format:   r.Format,
		WaitFor:  r.WaitFor,
		WaitTime: r.WaitTime,
		Timeout:  r.Timeout,
	}
}

// Service orchestrates cache lookup, pool acquisition, rendering and cache
// store. It is the error boundary for screenshots: every failure below it
// degrades to a placeholder image, so Get always returns displayable bytes.
type Service struct {
	pool  Pool
	cache *Cache

	// Recorder, when set, gets one record per completed call.
	Recorder Recorder

	render    func(browser.Instance, browser.RenderOptions) ([]byte, error)
	transient func(browser.RenderOptions) ([]byte, error)
}

// NewService wires the production renderer and transient fallback.
func NewService(pool Pool, cache *Cache) *Service {
	return &Service{
		pool:      pool,
		cache:     cache,
		render:    browser.Capture,
		transient: browser.CaptureTransient,
	}
}

// Get runs one screenshot call end to end. There is no retry: a failure
// anywhere downgrades to the placeholder, it does not re-render.
func (s *Service) Get(req Request) []byte {
	req = req.withDefaults()

	if req.UseCache {
		if data, ok := s.cache.Get(req.URL, req.Width, req.Height); ok {
			log.Printf("Using cached screenshot for %s", req.URL)
			s.record(req, len(data), true, false)
			return data
		}
	}

	data, err := s.renderOnce(req)
	if err != nil {
		log.Printf("Failed to get screenshot for %s: %v", req.URL, err)
		data = browser.Placeholder(req.URL, req.Width, req.Height)
		s.record(req, len(data), false, true)
		return data
	}

	if req.UseCache {
		s.cache.Put(req.URL, req.Width, req.Height, data)
	}
	s.record(req, len(data), false, false)
	return data
}

// renderOnce prefers a pooled instance and falls back to a transient one
// when the pool is exhausted. A pooled instance is always released, even if
// the render panics.
func (s *Service) renderOnce(req Request) ([]byte, error) {
	opts := req.renderOptions()

	inst, ok := s.pool.Acquire()
	if !ok {
		log.Printf("No browser available from pool, falling back to a transient instance")
		return s.transient(opts)
	}
	defer s.pool.Release(inst)

	return s.render(inst, opts)
}

func (s *Service) record(req Request, size int, cacheHit, placeholder bool) {
	if s.Recorder == nil {
		return
	}
	s.Recorder.Record(Render{
		URL:         req.URL,
		Width:       req.Width,
		Height:      req.Height,
		Format:      req.Format,
		SizeBytes:   size,
		CacheHit:    cacheHit,
		Placeholder: placeholder,
	})
}
