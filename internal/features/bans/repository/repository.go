package repository

import (
	"context"

	"neoguard-console-backend/internal/features/bans/models"
)

// Repository provides ban-log reads and review writes.
type Repository interface {
	// ChatIDForWallet resolves the wallet's linked chat, 0 when unlinked.
	ChatIDForWallet(ctx context.Context, wallet string) (int64, error)
	// BansForChat returns moderation actions already enriched with the
	// blacklist flag, triggering message and latest review.
	BansForChat(ctx context.Context, chatID int64) ([]models.BanRecord, error)
	InsertReview(ctx context.Context, userID int64, platform, reason, note string) (*models.Review, error)
	BlacklistedAmong(ctx context.Context, userIDs []int64) ([]int64, error)
}
