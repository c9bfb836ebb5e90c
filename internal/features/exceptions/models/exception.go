package models

import "time"

// Exception is a (chat, user) pair exempted from automated enforcement.
// GloballyBlacklisted is annotated at read time from the global list.
type Exception struct {
	ChatID              int64     `db:"chat_id" json:"chatId"`
	UserID              int64     `db:"user_id" json:"userId"`
	GloballyBlacklisted bool      `db:"globally_blacklisted" json:"globallyBlacklisted"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
}
