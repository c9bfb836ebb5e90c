package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"neoguard-console-backend/internal/common/logger"
)

// Client sends operator-authored messages into the moderated chat through
// the Bot API. It shares the bot identity with the Telegram-side process.
type Client struct {
	bot *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	logger.Info().Str("bot", bot.Self.UserName).Msg("telegram bot connected")
	return &Client{bot: bot}, nil
}

// BotID returns the bot's own Telegram user id, used to tag relayed
// messages as bot-originated in the log tables.
func (c *Client) BotID() int64 {
	return c.bot.Self.ID
}

// SendMessage relays text to the chat and returns the Telegram message id.
func (c *Client) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("sendMessage: %w", err)
	}
	return sent.MessageID, nil
}
