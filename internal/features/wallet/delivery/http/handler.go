package http

import (
	"github.com/gin-gonic/gin"

	"neoguard-console-backend/internal/common/respond"
	"neoguard-console-backend/internal/features/signedmsg"
	"neoguard-console-backend/internal/features/wallet/service"
)

type WalletHandler struct {
	service service.WalletService
}

func NewWalletHandler(service service.WalletService) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/get-user", h.getUser)
	router.POST("/verify-signature", h.verifySignature)
	router.POST("/check-eligibility", h.checkEligibility)
	router.POST("/verify", h.verify)
	router.POST("/create-account-if-eligible", h.createAccountIfEligible)
}

// @Summary Get account by wallet address
// @Tags wallet
// @Produce json
// @Param walletAddress query string true "Wallet address"
// @Success 200 {object} map[string]interface{} "Account row"
// @Failure 404 {object} map[string]interface{} "Unknown wallet"
// @Router /get-user [get]
func (h *WalletHandler) getUser(c *gin.Context) {
	account, err := h.service.GetUser(c.Request.Context(), c.Query("walletAddress"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"user": account})
}

func (h *WalletHandler) verifySignature(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"walletAddress"`
		Message       string `json:"message"`
		Signature     string `json:"signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	valid, err := h.service.VerifySignature(req.WalletAddress, req.Message, req.Signature)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"valid": valid})
}

// @Summary Check token-balance eligibility for a wallet
// @Tags wallet
// @Accept json
// @Produce json
// @Router /check-eligibility [post]
func (h *WalletHandler) checkEligibility(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	result, err := h.service.CheckEligibility(c.Request.Context(), req.WalletAddress)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"meetsThreshold": result.MeetsThreshold, "balance": result.Balance})
}

// @Summary Verify wallet ownership and issue a bearer token
// @Tags wallet
// @Accept json
// @Produce json
// @Router /verify [post]
func (h *WalletHandler) verify(c *gin.Context) {
	var req signedmsg.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	token, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"token": token})
}

func (h *WalletHandler) createAccountIfEligible(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Fail(c, respond.BindError(err))
		return
	}

	result, err := h.service.CreateAccountIfEligible(c.Request.Context(), req.WalletAddress)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"userCreated": result.UserCreated,
		"accountId":   result.AccountID,
		"settingsId":  result.SettingsID,
	})
}
