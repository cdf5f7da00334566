package screenshot

import (
	"encoding/base64"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/sitelens/sitelens/internal/config"
	"github.com/sitelens/sitelens/pkg/browser"
	"github.com/sitelens/sitelens/pkg/capture"
)

func MountController(router fiber.Router, svc *capture.Service, cfg *config.Config) {
	router.Get("/", GetScreenshot(svc, cfg))
	router.Post("/", PostScreenshot(svc, cfg))
	router.Get("/thumbnail", GetThumbnail(cfg))
	router.Get("/full-page", GetFullPage(cfg))
}

// GetScreenshot serves the raw image bytes for a URL, cached when possible.
// Validation failures return 400; everything past validation returns some
// image, real or placeholder.
func GetScreenshot(svc *capture.Service, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := ScreenshotQuery{
			URL:      c.Query("url"),
			Width:    c.QueryInt("width", cfg.Width),
			Height:   c.QueryInt("height", cfg.Height),
			Quality:  c.QueryInt("quality", cfg.Quality),
			Format:   c.Query("format", cfg.Format),
			FullPage: c.QueryBool("full_page", false),
			UseCache: c.QueryBool("use_cache", true),
		}

		if err := q.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		log.Printf("Taking screenshot: %s (%dx%d)", q.URL, q.Width, q.Height)

		data := svc.Get(capture.Request{
			URL:      q.URL,
			Width:    q.Width,
			Height:   q.Height,
			FullPage: q.FullPage,
			Quality:  q.Quality,
			Format:   q.Format,
			UseCache: q.UseCache,
			WaitTime: cfg.WaitTime,
			Timeout:  cfg.Timeout,
		})

		c.Context().SetContentType("image/" + q.Format)
		return c.Status(fiber.StatusOK).Send(data)
	}
}

// PostScreenshot is the JSON flavor: same pipeline, base64 response.
func PostScreenshot(svc *capture.Service, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ScreenshotBody
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := body.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if body.Width == 0 {
			body.Width = cfg.Width
		}
		if body.Height == 0 {
			body.Height = cfg.Height
		}
		if body.Quality == 0 {
			body.Quality = cfg.Quality
		}
		if body.Format == "" {
			body.Format = cfg.Format
		}
		useCache := true
		if body.UseCache != nil {
			useCache = *body.UseCache
		}

		data := svc.Get(capture.Request{
			URL:      body.URL,
			Width:    body.Width,
			Height:   body.Height,
			FullPage: body.FullPage,
			Quality:  body.Quality,
			Format:   body.Format,
			UseCache: useCache,
			WaitTime: cfg.WaitTime,
			Timeout:  cfg.Timeout,
		})

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"url":          body.URL,
			"image_base64": base64.StdEncoding.EncodeToString(data),
			"width":        body.Width,
			"height":       body.Height,
			"format":       body.Format,
			"size_bytes":   len(data),
		})
	}
}

// GetThumbnail captures a small non-full-page image with a transient
// browser. This path surfaces real errors instead of placeholders.
func GetThumbnail(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := ThumbnailQuery{
			URL:     c.Query("url"),
			Width:   c.QueryInt("width", 200),
			Height:  c.QueryInt("height", 150),
			Quality: c.QueryInt("quality", 85),
		}

		if err := q.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		data, err := renderTransient(browser.RenderOptions{
			URL:      q.URL,
			Width:    q.Width,
			Height:   q.Height,
			Quality:  q.Quality,
			Format:   "jpeg",
			WaitTime: cfg.WaitTime,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Context().SetContentType("image/jpeg")
		return c.Status(fiber.StatusOK).Send(data)
	}
}

// GetFullPage captures the entire page at the given viewport width with a
// transient browser.
func GetFullPage(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := FullPageQuery{
			URL:     c.Query("url"),
			Width:   c.QueryInt("width", 1200),
			Quality: c.QueryInt("quality", 90),
		}

		if err := q.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		data, err := renderTransient(browser.RenderOptions{
			URL:      q.URL,
			Width:    q.Width,
			FullPage: true,
			Quality:  q.Quality,
			Format:   "jpeg",
			WaitTime: cfg.WaitTime,
			Timeout:  cfg.Timeout,
		})
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Context().SetContentType("image/jpeg")
		return c.Status(fiber.StatusOK).Send(data)
	}
}

// Overridable in tests so handler tests don't launch real browsers.
var renderTransient = browser.CaptureTransient
