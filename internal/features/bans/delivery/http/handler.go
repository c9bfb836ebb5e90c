package http

import (
	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/respond"
	"neoguard-console-backend/internal/features/bans/service"
)

type BansHandler struct {
	service service.BansService
}

func NewBansHandler(service service.BansService) *BansHandler {
	return &BansHandler{service: service}
}

func (h *BansHandler) RegisterRoutes(router *gin.RouterGroup, requireToken gin.HandlerFunc) {
	router.GET("/get-bans", h.getBans)
	router.POST("/check-blacklisted-users", h.checkBlacklistedUsers)
	router.POST("/submit-review", requireToken, h.submitReview)
}

// @Summary Ban log for the wallet's chat
// @Tags bans
// @Produce json
// @Param walletAddress query string true "Wallet address"
// @Router /get-bans [get]
func (h *BansHandler) getBans(c *gin.Context) {
	records, err := h.service.GetBans(c.Request.Context(), c.Query("walletAddress"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": records})
}

// @Summary Subset of user ids on the global blacklist
// @Tags bans
// @Accept json
// @Produce json
// @Router /check-blacklisted-users [post]
func (h *BansHandler) checkBlacklistedUsers(c *gin.Context) {
	var req struct {
		UserIDs []int64 `json:"userIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	ids, err := h.service.CheckBlacklisted(c.Request.Context(), req.UserIDs)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": ids})
}

// @Summary Flag a spam ban for human review
// @Tags bans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /submit-review [post]
func (h *BansHandler) submitReview(c *gin.Context) {
	var req struct {
		UserID      int64  `json:"userId"`
		MessageText string `json:"messageText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	review, err := h.service.SubmitReview(c.Request.Context(), req.UserID, req.MessageText)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": review})
}
