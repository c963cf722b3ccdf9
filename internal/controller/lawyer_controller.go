package controller

import (
	"strconv"

	"lawpro-be/internal/dto"
	"lawpro-be/internal/pkg/serverutils"
	"lawpro-be/internal/service"
	"lawpro-be/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type ILawyerController interface {
	RegisterRoutes(r fiber.Router)
	FindLawyers(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Contact(ctx *fiber.Ctx) error
}

type lawyerController struct {
	service service.ILawyerService
}

func NewLawyerController(service service.ILawyerService) ILawyerController {
	return &lawyerController{service: service}
}

// RegisterRoutes mounts the directory. It is public; a browser key is not
// needed to browse lawyers.
func (c *lawyerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lawyer/v1")
	h.Get("/lawyers", c.FindLawyers)
	h.Get("/lawyers/:id", c.Show)
	h.Post("/lawyers/:id/contact", c.Contact)
}

func lawyerIdOf(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.KindValidation, "invalid lawyer id")
	}
	return id, nil
}

func (c *lawyerController) FindLawyers(ctx *fiber.Ctx) error {
	var req dto.FindLawyersRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperr.Wrap(err, apperr.KindValidation, "invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.FindLawyers(ctx.UserContext(), req.Location, req.CaseType)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find lawyers", res))
}

func (c *lawyerController) Show(ctx *fiber.Ctx) error {
	id, err := lawyerIdOf(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetLawyer(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show lawyer", res))
}

func (c *lawyerController) Contact(ctx *fiber.Ctx) error {
	id, err := lawyerIdOf(ctx)
	if err != nil {
		return err
	}

	var req dto.ContactLawyerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Wrap(err, apperr.KindValidation, "invalid request body")
	}
	req.LawyerId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ContactLawyer(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success contact lawyer", res))
}
