package models

import "time"

// Review is a human-review flag raised from the console for a spam ban.
type Review struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Platform  string    `db:"platform" json:"platform"`
	Reason    string    `db:"reason" json:"reason"`
	Note      string    `db:"note" json:"note"`
	Reviewed  bool      `db:"reviewed" json:"reviewed"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// BanRecord is one moderation action enriched for the ban log view:
// global-blacklist flag, the best-effort triggering spam message, and any
// review raised for the user.
type BanRecord struct {
	ID             string    `db:"id" json:"id"`
	ChatID         int64     `db:"chat_id" json:"chatId"`
	UserID         int64     `db:"user_id" json:"userId"`
	Action         string    `db:"action" json:"action"`
	Reason         string    `db:"reason" json:"reason"`
	GloballyBanned bool      `db:"globally_banned" json:"globallyBanned"`
	SpamMessage    string    `db:"spam_message" json:"spamMessage"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	Review         *Review   `json:"review,omitempty"`
}
