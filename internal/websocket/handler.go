package websocket

import (
	"lawpro-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ServeWs handles websocket requests from the peer.
func ServeWs(hub *Hub, c *websocket.Conn, browserKey string) {
	client := &Client{Hub: hub, Conn: c, BrowserKey: browserKey, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}

// Handler upgrades /ws?token=<browser key token> connections.
type Handler struct {
	hub    *Hub
	secret string
}

func NewHandler(hub *Hub, secret string) *Handler {
	return &Handler{hub: hub, secret: secret}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Use("/ws", h.upgrade)
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		ServeWs(h.hub, c, c.Locals(serverutils.BrowserKeyLocal).(string))
	}))
}

func (h *Handler) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	key, err := serverutils.ParseBrowserKey(ctx.Query("token"), h.secret)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid browser key"))
	}
	ctx.Locals(serverutils.BrowserKeyLocal, key)
	return ctx.Next()
}
