package browser

import (
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Instance is the slice of the Playwright browser surface the pool and
// renderer need. playwright.Browser satisfies it.
type Instance interface {
	NewPage(options ...playwright.BrowserNewPageOptions) (playwright.Page, error)
	Close(options ...playwright.BrowserCloseOptions) error
}

var _ Instance = (playwright.Browser)(nil)

// Indirections over the Playwright runtime, overridable in tests.
var (
	startRuntime = playwright.Run
	launch       = func(pw *playwright.Playwright, headless bool) (Instance, error) {
		return launchBrowser(pw, headless)
	}
)

// Health is a point-in-time snapshot of the pool state.
type Health struct {
	Initialized bool `json:"initialized"`
	Shutdown    bool `json:"shutdown"`
	PoolSize    int  `json:"pool_size"`
	Available   int  `json:"available_browsers"`
}

// Pool keeps a bounded set of warm browser instances so requests don't pay
// the launch cost. Construct it once in main and inject it wherever a
// browser is needed.
type Pool struct {
	size     int
	headless bool

	mu          sync.Mutex
	free        []Instance
	pw          *playwright.Playwright
	initialized bool
	down        bool
}

// NewPool creates a pool targeting size warm instances. The pool is inert
// until Initialize or the first Acquire.
func NewPool(size int) *Pool {
	return &Pool{size: size, headless: true}
}

// Initialize launches up to size browsers. It is idempotent and safe to call
// concurrently. A slot whose Chromium launch fails is retried with Firefox;
// if both fail the slot is simply absent and the pool runs degraded.
func (p *Pool) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	log.Printf("Initializing browser pool with %d instances...", p.size)

	pw, err := startRuntime()
	if err != nil {
		return fmt.Errorf("could not start playwright: %w", err)
	}
	p.pw = pw

	for i := 0; i < p.size; i++ {
		b, err := launch(pw, p.headless)
		if err != nil {
			log.Printf("Failed to create browser instance %d/%d: %v", i+1, p.size, err)
			continue
		}
		p.free = append(p.free, b)
		log.Printf("Created browser instance %d/%d", i+1, p.size)
	}

	p.initialized = true
	log.Printf("Browser pool initialized with %d instances", len(p.free))
	return nil
}

// Acquire hands out a free instance. It returns (nil, false) when the pool
// is exhausted or shut down; it never blocks waiting for a release.
func (p *Pool) Acquire() (Instance, bool) {
	p.mu.Lock()
	if !p.initialized && !p.down {
		p.mu.Unlock()
		if err := p.Initialize(); err != nil {
			log.Printf("Failed to initialize browser pool: %v", err)
			return nil, false
		}
		p.mu.Lock()
	}
	defer p.mu.Unlock()

	if p.down || len(p.free) == 0 {
		return nil, false
	}

	b := p.free[0]
	p.free = p.free[1:]
	log.Printf("Retrieved browser from pool, %d remaining", len(p.free))
	return b, true
}

// Release returns an instance to the free list. When the pool is shut down
// or already at capacity the instance is closed instead, so the free list
// never grows past the configured size.
func (p *Pool) Release(b Instance) {
	if b == nil {
		return
	}

	p.mu.Lock()
	if p.down || len(p.free) >= p.size {
		p.mu.Unlock()
		if err := b.Close(); err != nil {
			log.Printf("Failed to close excess browser: %v", err)
		}
		return
	}
	p.free = append(p.free, b)
	log.Printf("Returned browser to pool, %d available", len(p.free))
	p.mu.Unlock()
}

// Shutdown closes every pooled instance and stops the Playwright runtime.
// The shutdown flag is set before any close so concurrent Acquires start
// failing immediately. Repeated calls are no-ops. Close calls happen outside
// the lock since closing a browser can itself take a while.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	if p.down {
		p.mu.Unlock()
		return nil
	}
	p.down = true
	drained := p.free
	p.free = nil
	pw := p.pw
	p.pw = nil
	p.mu.Unlock()

	log.Printf("Shutting down browser pool...")
	for _, b := range drained {
		if err := b.Close(); err != nil {
			log.Printf("Failed to close browser during shutdown: %v", err)
		}
	}

	if pw != nil {
		if err := pw.Stop(); err != nil {
			return fmt.Errorf("could not stop playwright: %w", err)
		}
	}

	log.Printf("Browser pool shutdown complete")
	return nil
}

// Health reports the current pool state.
func (p *Pool) Health() Health {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Health{
		Initialized: p.initialized,
		Shutdown:    p.down,
		PoolSize:    p.size,
		Available:   len(p.free),
	}
}

// Replace shuts down old and brings up a fresh pool with the given capacity.
// This is a heavyweight operation: every warm browser is torn down and
// relaunched. It exists as the explicit way to change pool capacity at
// runtime.
func Replace(old *Pool, size int) (*Pool, error) {
	if old != nil {
		if err := old.Shutdown(); err != nil {
			log.Printf("Error shutting down old pool: %v", err)
		}
	}
	p := NewPool(size)
	if err := p.Initialize(); err != nil {
		return nil, err
	}
	return p, nil
}
