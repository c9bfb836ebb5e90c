package repository

import (
	"context"

	"neoguard-console-backend/internal/features/messages/models"
)

// Repository provides message-log reads and the bot-originated write.
type Repository interface {
	// ChatIDForWallet resolves the wallet's linked chat, 0 when unlinked.
	ChatIDForWallet(ctx context.Context, wallet string) (int64, error)
	Recent(ctx context.Context, chatID int64, limit int) ([]models.MessageLog, error)
	// Search calls the search_message_logs stored procedure.
	Search(ctx context.Context, chatID int64, query string) ([]models.MessageLog, error)
	TeamIDs(ctx context.Context, chatID int64) ([]int64, error)
	BlacklistedAmong(ctx context.Context, userIDs []int64) ([]int64, error)
	// InsertBotMessage records a relayed message as bot-originated: one
	// parent log row plus one message log row, in one transaction.
	InsertBotMessage(ctx context.Context, chatID, botID int64, text string) error
}
