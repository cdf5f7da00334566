package browser

import (
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Launch args matching what headless Chromium needs in containers.
var chromiumArgs = []string{
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
	"--disable-accelerated-2d-canvas",
	"--no-first-run",
	"--no-zygote",
	"--disable-gpu",
	"--disable-web-security",
	"--disable-features=VizDisplayCompositor",
}

// RenderOptions describe a single capture. Zero values fall back to the
// defaults applied by withDefaults.
type RenderOptions struct {
	URL       string
	Width     int
	Height    int
	FullPage  bool
	Quality   int
	Format    string
	WaitFor   string
	WaitTime  int // ms, settle delay after load
	UserAgent string
	Timeout   int // ms, navigation and selector waits
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.Quality <= 0 {
		o.Quality = 90
	}
	if o.Format == "" {
		o.Format = "jpeg"
	}
	if o.WaitTime < 0 {
		o.WaitTime = 0
	}
	if o.Timeout <= 0 {
		o.Timeout = 30000
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	return o
}

// Capture drives one browser instance through navigation, wait and capture.
// The page is always closed before returning, success or not. Failures come
// back as errors; substituting a placeholder is the caller's decision.
func Capture(inst Instance, opts RenderOptions) ([]byte, error) {
	opts = opts.withDefaults()

	page, err := inst.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{Width: opts.Width, Height: opts.Height},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Printf("Failed to close page: %v", err)
		}
	}()

	if err := page.SetExtraHTTPHeaders(map[string]string{"User-Agent": opts.UserAgent}); err != nil {
		return nil, fmt.Errorf("could not set headers: %w", err)
	}

	log.Printf("Navigating to %s", opts.URL)
	if _, err := page.Goto(opts.URL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(opts.Timeout)),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, fmt.Errorf("could not navigate to %s: %w", opts.URL, err)
	}

	if opts.WaitFor != "" {
		if _, err := page.WaitForSelector(opts.WaitFor, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(float64(opts.Timeout)),
		}); err != nil {
			return nil, fmt.Errorf("could not find element %q: %w", opts.WaitFor, err)
		}
	}

	// Let late-loading content (fonts, lazy images) settle before capturing.
	if opts.WaitTime > 0 {
		page.WaitForTimeout(float64(opts.WaitTime))
	}

	shotOpts := playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(opts.FullPage),
	}
	if opts.Format == "png" {
		shotOpts.Type = playwright.ScreenshotTypePng
	} else {
		shotOpts.Type = playwright.ScreenshotTypeJpeg
		shotOpts.Quality = playwright.Int(opts.Quality)
	}

	data, err := page.Screenshot(shotOpts)
	if err != nil {
		return nil, fmt.Errorf("could not take screenshot: %w", err)
	}

	log.Printf("Screenshot taken successfully (%d bytes)", len(data))
	return data, nil
}

// Session is a transient, unpooled browser with its own Playwright runtime.
// It is the fallback when the pool is exhausted and the backend for the
// thumbnail and full-page endpoints, which want real errors rather than
// placeholders.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewSession starts a standalone browser. Chromium first, Firefox as
// fallback, mirroring the pool's per-slot launch behavior.
func NewSession(headless bool) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	b, err := launchBrowser(pw, headless)
	if err != nil {
		if stopErr := pw.Stop(); stopErr != nil {
			log.Printf("Failed to stop playwright after launch failure: %v", stopErr)
		}
		return nil, err
	}

	return &Session{pw: pw, browser: b}, nil
}

// Screenshot captures with the session's browser. Errors propagate.
func (s *Session) Screenshot(opts RenderOptions) ([]byte, error) {
	return Capture(s.browser, opts)
}

// Close tears down the browser and the Playwright runtime.
func (s *Session) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Printf("Failed to close browser: %v", err)
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			log.Printf("Failed to stop playwright: %v", err)
		}
		s.pw = nil
	}
}

// CaptureTransient renders with a one-off session that is fully torn down
// afterward.
func CaptureTransient(opts RenderOptions) ([]byte, error) {
	s, err := NewSession(true)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Screenshot(opts)
}

func launchBrowser(pw *playwright.Playwright, headless bool) (playwright.Browser, error) {
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless:        playwright.Bool(headless),
		Args:            chromiumArgs,
		ChromiumSandbox: playwright.Bool(false),
	})
	if err == nil {
		return b, nil
	}

	log.Printf("Chromium launch failed (%v), trying Firefox", err)
	fb, ferr := pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if ferr != nil {
		return nil, fmt.Errorf("could not launch chromium (%v) or firefox: %w", err, ferr)
	}
	return fb, nil
}

// Install downloads the browser engines Playwright drives. Meant to run once
// at startup.
func Install() error {
	err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium", "firefox"},
	})
	if err != nil {
		return fmt.Errorf("could not install browsers: %w", err)
	}
	return nil
}
