package repository

import (
	"context"

	"neoguard-console-backend/internal/features/settings/models"
)

// Repository provides settings and account-metadata storage.
type Repository interface {
	// GetByWallet returns the wallet's settings row, or nil when the
	// wallet has no account.
	GetByWallet(ctx context.Context, wallet string) (*models.Settings, error)
	// SettingsIDForWallet returns the id of the settings row owned by the
	// wallet, or 0 when the wallet has no account.
	SettingsIDForWallet(ctx context.Context, wallet string) (int64, error)
	// UpdateFlag sets one whitelisted boolean column.
	UpdateFlag(ctx context.Context, settingsID int64, column string, value bool) error
	// UpdateCommunityInfo updates the account's community metadata and
	// reports whether a row matched.
	UpdateCommunityInfo(ctx context.Context, wallet string, info models.CommunityInfo) (bool, error)
	// ChatIDOwner returns the wallet owning the chat id, or "" when the
	// chat id is unclaimed.
	ChatIDOwner(ctx context.Context, chatID int64) (string, error)
	// UpdateTelegramChatID links the chat id to the wallet's account and
	// reports whether a row matched.
	UpdateTelegramChatID(ctx context.Context, wallet string, chatID int64) (bool, error)
}
