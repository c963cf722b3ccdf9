package controller

import (
	"lawpro-be/internal/dto"
	"lawpro-be/internal/pkg/serverutils"
	"lawpro-be/internal/service"
	"lawpro-be/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetCaseInfo(ctx *fiber.Ctx) error
	ConfirmCaseInfo(ctx *fiber.Ctx) error
	GetTurnPhase(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	secret  string
}

func NewChatController(service service.IChatService, browserKeySecret string) IChatController {
	return &chatController{service: service, secret: browserKeySecret}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.BrowserKeyMiddleware(c.secret))
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions", c.GetAllSessions)
	h.Get("/sessions/:id/messages", c.GetChatHistory)
	h.Post("/sessions/:id/messages", c.SendMessage)
	h.Get("/sessions/:id/case-info", c.GetCaseInfo)
	h.Put("/sessions/:id/case-info", c.ConfirmCaseInfo)
	h.Get("/sessions/:id/phase", c.GetTurnPhase)
}

func browserKeyOf(ctx *fiber.Ctx) string {
	key, _ := ctx.Locals(serverutils.BrowserKeyLocal).(string)
	return key
}

func sessionIdOf(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.KindValidation, "invalid session id")
	}
	return id, nil
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.UserContext(), browserKeyOf(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllSessions(ctx.UserContext(), browserKeyOf(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all chat sessions", res))
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	id, err := sessionIdOf(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetChatHistory(ctx.UserContext(), browserKeyOf(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	id, err := sessionIdOf(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Wrap(err, apperr.KindValidation, "invalid request body")
	}
	req.ChatSessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), browserKeyOf(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) GetCaseInfo(ctx *fiber.Ctx) error {
	id, err := sessionIdOf(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetCaseInfo(ctx.UserContext(), browserKeyOf(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get case info", res))
}

func (c *chatController) ConfirmCaseInfo(ctx *fiber.Ctx) error {
	id, err := sessionIdOf(ctx)
	if err != nil {
		return err
	}

	var req dto.ConfirmCaseInfoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.Wrap(err, apperr.KindValidation, "invalid request body")
	}
	req.ChatSessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ConfirmCaseInfo(ctx.UserContext(), browserKeyOf(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success confirm case info", res))
}

func (c *chatController) GetTurnPhase(ctx *fiber.Ctx) error {
	id, err := sessionIdOf(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetTurnPhase(ctx.UserContext(), browserKeyOf(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get turn phase", res))
}
