package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/kayako-bot/internal/api/dto"
	"github.com/spec-kit/kayako-bot/internal/dispatch"
	apperrors "github.com/spec-kit/kayako-bot/pkg/util"
)

// MessagesHandler feeds chat messages forwarded by a host into the dispatcher.
type MessagesHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(dispatcher *dispatch.Dispatcher) *MessagesHandler {
	return &MessagesHandler{dispatcher: dispatcher}
}

// Dispatch POST /v1/messages.
func (h *MessagesHandler) Dispatch(c *fiber.Ctx) error {
	var req dto.IncomingMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", nil)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	replies := h.dispatcher.Dispatch(c.UserContext(), dispatch.Message{
		ID:      req.ID,
		Channel: req.Channel,
		Sender:  req.Sender,
		Text:    req.Text,
	})
	if replies == nil {
		replies = []dispatch.Reply{}
	}
	return c.JSON(fiber.Map{"data": dto.DispatchResponse{MessageID: req.ID, Replies: replies}})
}
