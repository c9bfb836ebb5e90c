package models

// Counts are point-in-time totals for the dashboard cards.
type Counts struct {
	MessagesScanned       int64 `db:"messages_scanned" json:"messagesScanned"`
	BansIssued            int64 `db:"bans_issued" json:"bansIssued"`
	SpamDeleted           int64 `db:"spam_deleted" json:"spamDeleted"`
	GlobalMessagesScanned int64 `db:"global_messages_scanned" json:"globalMessagesScanned"`
	GlobalBansIssued      int64 `db:"global_bans_issued" json:"globalBansIssued"`
	GlobalSpamDeleted     int64 `db:"global_spam_deleted" json:"globalSpamDeleted"`
	BlacklistSize         int64 `db:"blacklist_size" json:"blacklistSize"`
}

// Bucket is one period of a trend series.
type Bucket struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// Overview is the get-stats response payload: counts plus two fixed-length
// trend series.
type Overview struct {
	ChatID          int64    `json:"chatId"`
	Granularity     string   `json:"granularity"`
	Counts          Counts   `json:"counts"`
	BanActivity     []Bucket `json:"banActivity"`
	MessageActivity []Bucket `json:"messageActivity"`
}
