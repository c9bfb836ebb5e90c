package http

import (
	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/respond"
	"neoguard-console-backend/internal/features/settings/models"
	"neoguard-console-backend/internal/features/settings/service"
	"neoguard-console-backend/internal/features/signedmsg"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/get-settings", h.getSettings)
	router.POST("/update-setting", h.updateSetting)
	router.POST("/update-community-info", h.updateCommunityInfo)
	router.POST("/update-telegram", h.updateTelegram)
}

// @Summary Get moderation feature toggles
// @Tags settings
// @Produce json
// @Param walletAddress query string true "Wallet address"
// @Router /get-settings [get]
func (h *SettingsHandler) getSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context(), c.Query("walletAddress"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"data": settings})
}

// @Summary Update one moderation toggle (signed)
// @Tags settings
// @Accept json
// @Produce json
// @Router /update-setting [post]
func (h *SettingsHandler) updateSetting(c *gin.Context) {
	var req struct {
		signedmsg.Request
		SettingName string `json:"settingName"`
		Value       bool   `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	if err := h.service.UpdateSetting(c.Request.Context(), req.Request, req.SettingName, req.Value); err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "setting updated"})
}

// @Summary Update community metadata (signed)
// @Tags settings
// @Accept json
// @Produce json
// @Router /update-community-info [post]
func (h *SettingsHandler) updateCommunityInfo(c *gin.Context) {
	var req struct {
		signedmsg.Request
		models.CommunityInfo
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	if err := h.service.UpdateCommunityInfo(c.Request.Context(), req.Request, req.CommunityInfo); err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "community info updated"})
}

// @Summary Link a Telegram chat id to the wallet's account (signed)
// @Tags settings
// @Accept json
// @Produce json
// @Failure 409 {object} map[string]interface{} "Chat id owned by another wallet"
// @Router /update-telegram [post]
func (h *SettingsHandler) updateTelegram(c *gin.Context) {
	var req struct {
		signedmsg.Request
		ChatID int64 `json:"chatId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	if err := h.service.UpdateTelegram(c.Request.Context(), req.Request, req.ChatID); err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "telegram chat updated"})
}
