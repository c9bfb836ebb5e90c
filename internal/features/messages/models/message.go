package models

import "time"

// MessageLog is one chat message recorded by the Telegram-side bot.
type MessageLog struct {
	ID        string    `db:"id" json:"id"`
	LogID     string    `db:"log_id" json:"logId"`
	ChatID    int64     `db:"chat_id" json:"chatId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// MessagePage is the get-messages / search-messages payload: rows plus the
// id sets the view uses to badge authors.
type MessagePage struct {
	ChatID         int64        `json:"chatId"`
	Messages       []MessageLog `json:"messages"`
	TeamIDs        []int64      `json:"teamIds"`
	BlacklistedIDs []int64      `json:"blacklistedIds"`
}
