package screenshot

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/sitelens/sitelens/internal/config"
	"github.com/sitelens/sitelens/pkg/browser"
)

func newTestApp(t *testing.T, transient func(browser.RenderOptions) ([]byte, error)) *fiber.App {
	t.Helper()

	orig := renderTransient
	if transient != nil {
		renderTransient = transient
	}
	t.Cleanup(func() { renderTransient = orig })

	app := fiber.New()
	// The service is only reached past validation; validation tests leave
	// it nil on purpose.
	MountController(app.Group("/screenshot"), nil, config.Load())
	return app
}

func TestGetScreenshotValidation(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name string
		path string
	}{
		{"missing url", "/screenshot"},
		{"malformed url", "/screenshot?url=::bad::"},
		{"width too small", "/screenshot?url=https://example.com&width=2"},
		{"width too large", "/screenshot?url=https://example.com&width=99999"},
		{"quality out of range", "/screenshot?url=https://example.com&quality=101"},
		{"unknown format", "/screenshot?url=https://example.com&format=bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestGetThumbnailServesImage(t *testing.T) {
	want := []byte("jpeg-bytes")
	var gotOpts browser.RenderOptions
	app := newTestApp(t, func(opts browser.RenderOptions) ([]byte, error) {
		gotOpts = opts
		return want, nil
	})

	req := httptest.NewRequest("GET", "/screenshot/thumbnail?url=https://example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != string(want) {
		t.Errorf("body = %q, want %q", body, want)
	}

	if gotOpts.Width != 200 || gotOpts.Height != 150 || gotOpts.FullPage {
		t.Errorf("render options = %+v, want 200x150 non-full-page", gotOpts)
	}
	if gotOpts.Quality != 85 {
		t.Errorf("Quality = %d, want 85", gotOpts.Quality)
	}
}

func TestGetThumbnailRenderErrorIsSurfaced(t *testing.T) {
	app := newTestApp(t, func(opts browser.RenderOptions) ([]byte, error) {
		return nil, errors.New("browser launch failed")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/screenshot/thumbnail?url=https://example.com", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 (bare path surfaces errors)", resp.StatusCode)
	}
}

func TestGetFullPageDefaults(t *testing.T) {
	var gotOpts browser.RenderOptions
	app := newTestApp(t, func(opts browser.RenderOptions) ([]byte, error) {
		gotOpts = opts
		return []byte("x"), nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/screenshot/full-page?url=https://example.com", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if !gotOpts.FullPage {
		t.Error("FullPage = false, want true")
	}
	if gotOpts.Width != 1200 {
		t.Errorf("Width = %d, want 1200", gotOpts.Width)
	}
	if gotOpts.Quality != 90 {
		t.Errorf("Quality = %d, want 90", gotOpts.Quality)
	}
}

func TestPostScreenshotValidation(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest("POST", "/screenshot", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400 on empty body", resp.StatusCode)
	}
}
