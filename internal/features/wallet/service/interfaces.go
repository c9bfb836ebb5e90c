package service

import (
	"context"
	"math/big"

	"neoguard-console-backend/internal/features/signedmsg"
	"neoguard-console-backend/internal/features/wallet/models"
)

// BalanceChecker reads the eligibility token balance of a wallet.
type BalanceChecker interface {
	TokenBalance(ctx context.Context, wallet string) (*big.Int, error)
}

// WalletService gates console access behind a token balance and issues
// bearer tokens for wallets that prove key ownership.
type WalletService interface {
	GetUser(ctx context.Context, wallet string) (*models.Account, error)
	CheckEligibility(ctx context.Context, wallet string) (*models.EligibilityResult, error)
	CreateAccountIfEligible(ctx context.Context, wallet string) (*models.CreateAccountResult, error)
	VerifySignature(wallet, message, signature string) (bool, error)
	Verify(ctx context.Context, req signedmsg.Request) (string, error)
}
