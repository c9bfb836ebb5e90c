package http

import (
	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/respond"
	"neoguard-console-backend/internal/features/exceptions/service"
	"neoguard-console-backend/internal/features/signedmsg"
)

type ExceptionsHandler struct {
	service service.ExceptionsService
}

func NewExceptionsHandler(service service.ExceptionsService) *ExceptionsHandler {
	return &ExceptionsHandler{service: service}
}

func (h *ExceptionsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/get-exceptions", h.getExceptions)
	router.POST("/add-exception", h.addException)
	router.POST("/remove-exception", h.removeException)
}

// @Summary List exceptions for the wallet's chat
// @Tags exceptions
// @Produce json
// @Param walletAddress query string true "Wallet address"
// @Router /get-exceptions [get]
func (h *ExceptionsHandler) getExceptions(c *gin.Context) {
	exceptions, err := h.service.GetExceptions(c.Request.Context(), c.Query("walletAddress"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": exceptions})
}

// @Summary Add an exception (signed)
// @Tags exceptions
// @Accept json
// @Produce json
// @Router /add-exception [post]
func (h *ExceptionsHandler) addException(c *gin.Context) {
	var req struct {
		signedmsg.Request
		UserID int64 `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	if err := h.service.AddException(c.Request.Context(), req.Request, req.UserID); err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "exception added"})
}

// @Summary Remove an exception (signed)
// @Tags exceptions
// @Accept json
// @Produce json
// @Router /remove-exception [post]
func (h *ExceptionsHandler) removeException(c *gin.Context) {
	var req struct {
		signedmsg.Request
		UserID int64 `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	if err := h.service.RemoveException(c.Request.Context(), req.Request, req.UserID); err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "exception removed"})
}
