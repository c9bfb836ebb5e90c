package repository

import (
	"context"

	"neoguard-console-backend/internal/features/wallet/models"
)

// Repository provides account storage. Lookups return nil, nil when the
// wallet has no account.
type Repository interface {
	GetByWallet(ctx context.Context, wallet string) (*models.Account, error)
	// CreateWithSettings creates the settings row and the account row in
	// one transaction and returns both ids.
	CreateWithSettings(ctx context.Context, wallet string, eligible bool) (accountID, settingsID int64, err error)
	UpdateEligibility(ctx context.Context, wallet string, eligible bool) error
}
