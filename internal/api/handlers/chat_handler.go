package handlers

import (
	"fitness_chat_service/internal/chat/app"
	errprocess "fitness_chat_service/pkg/err"
	"fitness_chat_service/pkg/logger"
	"fitness_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler chat REST endpoints
type ChatHandler struct {
	Usecase app.ChatUseCase
}

// NewChatHandler create ChatHandler
func NewChatHandler(uc app.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		Usecase: uc,
	}
}

// CreateChatReq body of POST /chat
type CreateChatReq struct {
	TrainerID string `json:"trainerId"`
	UserID    string `json:"userId"`
	Content   string `json:"content"`
}

// GetChatReq query (or body) of GET /chat
type GetChatReq struct {
	TrainerID string `json:"trainerId" query:"trainerId"`
	UserID    string `json:"userId" query:"userId"`
}

// UpdateMessageReq body of PUT /chat/message
type UpdateMessageReq struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	Content   string `json:"content"`
}

// MarkReadReq body of PUT /chat/read
type MarkReadReq struct {
	ChatID string `json:"chatId"`
}

// MessageRes error body
type MessageRes struct {
	Message string `json:"message"`
}

// CreateOrAppend create a chat or append a message to it
// @Summary Send a message
// @Description Creates the trainer/user chat on first message, otherwise appends to it
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateChatReq true "message"
// @Success 201 {object} domain.Chat
// @Failure 400 {object} MessageRes
// @Failure 401 {object} MessageRes
// @Failure 500 {object} MessageRes
// @Router /chat [post]
func (h *ChatHandler) CreateOrAppend(c *fiber.Ctx) error {
	var req CreateChatReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	chat, err := h.Usecase.CreateOrAppend(c.UserContext(), req.TrainerID, req.UserID, req.Content, middlewares.MemberID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(chat)
}

// GetChat chat between a trainer and a user
// @Summary Get a chat
// @Description trainerId and userId are read from the query string, missing fields fall back to a JSON body
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainerId query string true "trainer id"
// @Param userId query string true "user id"
// @Success 200 {object} domain.Chat
// @Failure 400 {object} MessageRes
// @Failure 404 {object} MessageRes
// @Failure 500 {object} MessageRes
// @Router /chat [get]
func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	var req GetChatReq
	if err := c.QueryParser(&req); err != nil {
		return badBody(c, err)
	}
	if (req.TrainerID == "" || req.UserID == "") && len(c.Body()) > 0 {
		// GET bodies often arrive without a Content-Type, always decode as JSON
		var body GetChatReq
		if err := c.App().Config().JSONDecoder(c.Body(), &body); err != nil {
			return badBody(c, err)
		}
		if req.TrainerID == "" {
			req.TrainerID = body.TrainerID
		}
		if req.UserID == "" {
			req.UserID = body.UserID
		}
	}

	chat, err := h.Usecase.GetChat(c.UserContext(), req.TrainerID, req.UserID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(chat)
}

// UpdateMessage edit a message
// @Summary Edit a message
// @Description Overwrites the content of one message, other messages are untouched
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateMessageReq true "message edit"
// @Success 200 {object} domain.Chat
// @Failure 400 {object} MessageRes
// @Failure 404 {object} MessageRes
// @Failure 500 {object} MessageRes
// @Router /chat/message [put]
func (h *ChatHandler) UpdateMessage(c *fiber.Ctx) error {
	var req UpdateMessageReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	chat, err := h.Usecase.UpdateMessage(c.UserContext(), req.ChatID, req.MessageID, req.Content)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(chat)
}

// MarkRead mark the partner's messages read
// @Summary Mark messages read
// @Description Marks every message in the chat not sent by the caller as read, the caller must be the trainer or the user
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkReadReq true "chat"
// @Success 200 {object} domain.Chat
// @Failure 400 {object} MessageRes
// @Failure 403 {object} MessageRes
// @Failure 404 {object} MessageRes
// @Failure 500 {object} MessageRes
// @Router /chat/read [put]
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	var req MarkReadReq
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	chat, err := h.Usecase.MarkRead(c.UserContext(), req.ChatID, middlewares.MemberID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(chat)
}

// ListTrainerChats chat list of a trainer
// @Summary List a trainer's chats
// @Description Most recently updated first, with last message, unread count and user profile
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param trainerId path string true "trainer id"
// @Success 200 {array} domain.ChatSummary
// @Failure 400 {object} MessageRes
// @Failure 500 {object} MessageRes
// @Router /chat/trainer/{trainerId} [get]
func (h *ChatHandler) ListTrainerChats(c *fiber.Ctx) error {
	chats, err := h.Usecase.ListTrainerChats(c.UserContext(), c.Params("trainerId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(chats)
}

func badBody(c *fiber.Ctx, err error) error {
	logger.Log.Debug("parse request", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(MessageRes{Message: "invalid request"})
}

func errorResponse(c *fiber.Ctx, err error) error {
	status, msg := errprocess.Status(err)
	if status >= fiber.StatusInternalServerError {
		logger.Log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(MessageRes{Message: msg})
}
