package repository

import (
	"context"

	"neoguard-console-backend/internal/features/exceptions/models"
)

// Repository provides exception storage.
type Repository interface {
	// ChatIDForWallet resolves the wallet's linked chat, 0 when unlinked.
	ChatIDForWallet(ctx context.Context, wallet string) (int64, error)
	ListByChat(ctx context.Context, chatID int64) ([]models.Exception, error)
	// Insert is a no-op when the pair already exists.
	Insert(ctx context.Context, chatID, userID int64) error
	// Delete is a no-op when the pair does not exist.
	Delete(ctx context.Context, chatID, userID int64) error
}
