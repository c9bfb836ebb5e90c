package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/middleware"
	"neoguard-console-backend/internal/common/respond"
	"neoguard-console-backend/internal/features/messages/feed"
	"neoguard-console-backend/internal/features/messages/service"
)

type MessagesHandler struct {
	service service.MessagesService
	feed    *feed.Listener
}

func NewMessagesHandler(service service.MessagesService, feed *feed.Listener) *MessagesHandler {
	return &MessagesHandler{service: service, feed: feed}
}

func (h *MessagesHandler) RegisterRoutes(router *gin.RouterGroup, requireToken gin.HandlerFunc) {
	router.GET("/get-messages", h.getMessages)
	router.GET("/search-messages", h.searchMessages)
	router.GET("/message-feed", h.messageFeed)
	router.POST("/send-message", requireToken, h.sendMessage)
	router.POST("/summarize", requireToken, h.summarize)
}

// @Summary Recent message logs for the wallet's chat
// @Tags messages
// @Produce json
// @Param walletAddress query string true "Wallet address"
// @Param limit query int false "Row limit, capped at 200"
// @Router /get-messages [get]
func (h *MessagesHandler) getMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	page, err := h.service.GetMessages(c.Request.Context(), c.Query("walletAddress"), limit)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": page})
}

// @Summary Full-text search over message logs
// @Tags messages
// @Produce json
// @Param walletAddress query string true "Wallet address"
// @Param query query string true "Search query"
// @Router /search-messages [get]
func (h *MessagesHandler) searchMessages(c *gin.Context) {
	page, err := h.service.SearchMessages(c.Request.Context(), c.Query("walletAddress"), c.Query("query"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": page})
}

// @Summary Relay a message to the chat via the bot
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /send-message [post]
func (h *MessagesHandler) sendMessage(c *gin.Context) {
	wallet, ok := middleware.WalletFromContext(c)
	if !ok {
		respond.Fail(c, apperr.New(apperr.CodeUnauthenticated, "missing token wallet"))
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	if err := h.service.SendMessage(c.Request.Context(), wallet, req.Message); err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "sent"})
}

// @Summary Summarize a batch of messages
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /summarize [post]
func (h *MessagesHandler) summarize(c *gin.Context) {
	var req struct {
		Messages []string `json:"messages"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), req.Messages)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": summary})
}

// @Summary Live message feed (SSE)
// @Tags messages
// @Produce text/event-stream
// @Param chatId query int true "Telegram chat id"
// @Router /message-feed [get]
func (h *MessagesHandler) messageFeed(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Query("chatId"), 10, 64)
	if err != nil {
		respond.Fail(c, apperr.New(apperr.CodeInvalidRequest, "chatId must be an integer"))
		return
	}

	events, cancel := h.feed.Subscribe(chatID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event := <-events:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: message\ndata: %s\n\n", payload)
			c.Writer.Flush()
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		}
	}
}
