package links

import (
	"bufio"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/sitelens/sitelens/pkg/links"
)

func MountController(router fiber.Router, finder links.LinkSource, maxDepth int) {
	router.Get("/links", GetLinks(finder))
	router.Get("/autonomous-path", AutonomousPath(finder, maxDepth))
}

// GetLinks fetches a page and returns its link summary plus the regular
// links found in the main content.
func GetLinks(finder links.LinkSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := LinksQuery{URL: c.Query("url")}
		if err := q.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		page, err := finder.Analyze(q.URL)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		summary := page.Summary()
		regular := page.Regular
		if regular == nil {
			regular = []string{}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"total_links":                    summary.TotalLinks,
			"main_text_links":                summary.MainTextLinks,
			"image_links_within_main_text":   summary.ImageLinksWithinMainText,
			"regular_links_within_main_text": summary.RegularLinksWithinMainText,
			"other_links":                    summary.OtherLinks,
			"regular_links":                  regular,
		})
	}
}

// AutonomousPath streams the progress of a depth-first link walk from
// start_url towards end_url as newline-delimited JSON events.
func AutonomousPath(finder links.LinkSource, defaultDepth int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := PathQuery{
			StartURL: c.Query("start_url"),
			EndURL:   c.Query("end_url"),
			MaxDepth: c.QueryInt("max_depth", defaultDepth),
		}
		if err := q.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		pf := links.NewPathFinder(finder, q.MaxDepth)

		c.Set(fiber.HeaderContentType, "application/x-ndjson")
		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			enc := json.NewEncoder(w)
			path := pf.Find(q.StartURL, q.EndURL, func(ev links.Event) {
				_ = enc.Encode(ev)
				_ = w.Flush()
			})
			if path == nil {
				_ = enc.Encode(links.Event{Event: "not_found", Path: []string{}})
				_ = w.Flush()
			}
		}))
		return nil
	}
}
