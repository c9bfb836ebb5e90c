package service

import (
	"context"

	"neoguard-console-backend/internal/features/messages/models"
)

// Sender relays operator messages through the Telegram bot.
type Sender interface {
	BotID() int64
	SendMessage(chatID int64, text string) (int, error)
}

// Summarizer produces a free-text summary of a message batch.
type Summarizer interface {
	Summarize(ctx context.Context, messages []string) (string, error)
}

// MessagesService serves the message log views and the operator send path.
type MessagesService interface {
	GetMessages(ctx context.Context, wallet string, limit int) (*models.MessagePage, error)
	SearchMessages(ctx context.Context, wallet, query string) (*models.MessagePage, error)
	SendMessage(ctx context.Context, wallet, text string) error
	Summarize(ctx context.Context, messages []string) (string, error)
}
