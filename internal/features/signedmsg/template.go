package signedmsg

import (
	"fmt"
	"strconv"
)

// Message templates signed by the operator's wallet. Verification recomputes
// the message from the request's own parameters, so the templates are exact
// and positional: any drift between builder and client invalidates requests.

func SignInMessage(ts int64) string {
	return fmt.Sprintf("Sign in to NeoGuard at timestamp %d", ts)
}

func UpdateTelegramMessage(chatID int64, wallet string, ts int64) string {
	return fmt.Sprintf("Update Telegram Chat ID to %d for wallet %s at timestamp %d", chatID, wallet, ts)
}

func UpdateSettingMessage(name string, value bool, ts int64) string {
	return fmt.Sprintf("Update setting %s to %s at timestamp %d", name, strconv.FormatBool(value), ts)
}

func UpdateCommunityInfoMessage(wallet string, ts int64) string {
	return fmt.Sprintf("Update community info for wallet %s at timestamp %d", wallet, ts)
}

func AddExceptionMessage(userID int64, ts int64) string {
	return fmt.Sprintf("Add exception for user %d at timestamp %d", userID, ts)
}

func RemoveExceptionMessage(userID int64, ts int64) string {
	return fmt.Sprintf("Remove exception for user %d at timestamp %d", userID, ts)
}
