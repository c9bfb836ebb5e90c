package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/common/respond"
	"neoguard-console-backend/internal/features/stats/service"
)

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(service service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/get-stats", h.getStats)
}

// @Summary Moderation stats and 7-bucket trend series
// @Tags stats
// @Produce json
// @Param chatId query int true "Telegram chat id"
// @Param granularity query string false "daily|weekly|monthly"
// @Router /get-stats [get]
func (h *StatsHandler) getStats(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Query("chatId"), 10, 64)
	if err != nil {
		respond.Fail(c, apperr.New(apperr.CodeInvalidRequest, "chatId must be an integer"))
		return
	}

	overview, err := h.service.GetStats(c.Request.Context(), chatID, c.Query("granularity"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": overview})
}
