package models

import "time"

// Account is one console operator, keyed by wallet address. The chat id
// links the account to the moderated Telegram group.
type Account struct {
	ID             int64     `db:"id" json:"id"`
	WalletAddress  string    `db:"wallet_address" json:"walletAddress"`
	TelegramChatID *int64    `db:"telegram_chat_id" json:"telegramChatId"`
	IsEligible     bool      `db:"is_eligible" json:"isEligible"`
	SettingsID     int64     `db:"settings_id" json:"settingsId"`
	CommunityName  string    `db:"community_name" json:"communityName"`
	Twitter        string    `db:"twitter" json:"twitter"`
	Discord        string    `db:"discord" json:"discord"`
	Website        string    `db:"website" json:"website"`
	ProjectType    string    `db:"project_type" json:"projectType"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// EligibilityResult is the outcome of a balance check against the
// threshold. Balance is in whole tokens.
type EligibilityResult struct {
	MeetsThreshold bool   `json:"meetsThreshold"`
	Balance        string `json:"balance"`
}

// CreateAccountResult reports account creation. The call is idempotent:
// an existing wallet returns its ids with UserCreated false.
type CreateAccountResult struct {
	UserCreated bool  `json:"userCreated"`
	AccountID   int64 `json:"accountId"`
	SettingsID  int64 `json:"settingsId"`
}
