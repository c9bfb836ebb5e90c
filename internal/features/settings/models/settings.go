package models

import "time"

// Settings holds the moderation feature toggles, 1:1 with an account.
type Settings struct {
	ID                 int64     `db:"id" json:"id"`
	UseGlobalBlacklist bool      `db:"use_global_blacklist" json:"use_global_blacklist"`
	UseSpamDetection   bool      `db:"use_spam_detection" json:"use_spam_detection"`
	UseFileScanner     bool      `db:"use_file_scanner" json:"use_file_scanner"`
	UseURLScanner      bool      `db:"use_url_scanner" json:"use_url_scanner"`
	UseMemberMonitor   bool      `db:"use_member_monitor" json:"use_member_monitor"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// CommunityInfo is the operator-editable community metadata on the account.
type CommunityInfo struct {
	CommunityName string `json:"communityName"`
	Twitter       string `json:"twitter"`
	Discord       string `json:"discord"`
	Website       string `json:"website"`
	ProjectType   string `json:"projectType"`
}

// SettingColumns whitelists the flag names accepted by update-setting and
// maps them to their columns. Names and columns are deliberately identical;
// the map is the only place a request string becomes SQL.
var SettingColumns = map[string]string{
	"use_global_blacklist": "use_global_blacklist",
	"use_spam_detection":   "use_spam_detection",
	"use_file_scanner":     "use_file_scanner",
	"use_url_scanner":      "use_url_scanner",
	"use_member_monitor":   "use_member_monitor",
}
