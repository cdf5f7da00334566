package search

import (
	"github.com/gofiber/fiber/v2"
)

func MountController(router fiber.Router, svc *Service) {
	router.Post("/kagi-search", KagiSearch(svc))
}

// KagiSearch finds articles mentioning a target URL. Returns 503 when the
// search integration is not configured.
func KagiSearch(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if svc == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "search service is not configured",
			})
		}

		var req Request
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := req.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		result, err := svc.Search(req)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusOK).JSON(result)
	}
}
