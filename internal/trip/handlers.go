package trip

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:id", func(c *fiber.Ctx) error {
		summary, err := svc.Summarize(c.Context(), c.Params("id"), c.Query("run"))
		if err != nil {
			if errors.Is(err, ErrNoDays) {
				// Header still renders: hand the metadata back with the error.
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"error": ErrNoDays.Error(),
					"meta":  summary.Meta,
				})
			}
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "trip not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(summary)
	})

	r.Get("/:id/meta", func(c *fiber.Ctx) error {
		meta, err := svc.Meta(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "trip not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(meta)
	})
}
