package controller

import (
	"strings"

	"lawpro-be/internal/pkg/serverutils"
	"lawpro-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBrowserKeyController interface {
	RegisterRoutes(r fiber.Router)
	Issue(ctx *fiber.Ctx) error
}

type browserKeyController struct {
	service service.IBrowserKeyService
}

func NewBrowserKeyController(service service.IBrowserKeyService) IBrowserKeyController {
	return &browserKeyController{service: service}
}

func (c *browserKeyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/browser/v1")
	h.Post("/key", c.Issue)
}

// Issue hands out a browser key. A still valid bearer token keeps its key.
func (c *browserKeyController) Issue(ctx *fiber.Ctx) error {
	existing := strings.TrimPrefix(ctx.Get("Authorization"), "Bearer ")

	res, err := c.service.Issue(existing)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success issue browser key", res))
}
