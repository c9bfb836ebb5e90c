package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"neoguard-console-backend/internal/features/settings/models"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByWallet(ctx context.Context, wallet string) (*models.Settings, error) {
	const q = `
		SELECT s.id, s.use_global_blacklist, s.use_spam_detection, s.use_file_scanner,
		       s.use_url_scanner, s.use_member_monitor, s.created_at, s.updated_at
		FROM settings s
		JOIN accounts a ON a.settings_id = s.id
		WHERE lower(a.wallet_address) = lower($1)`
	var settings models.Settings
	if err := r.db.GetContext(ctx, &settings, q, wallet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *Repository) SettingsIDForWallet(ctx context.Context, wallet string) (int64, error) {
	const q = `SELECT settings_id FROM accounts WHERE lower(wallet_address) = lower($1)`
	var id int64
	if err := r.db.GetContext(ctx, &id, q, wallet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}

// UpdateFlag interpolates the column name; callers must pass a value from
// models.SettingColumns, never request input.
func (r *Repository) UpdateFlag(ctx context.Context, settingsID int64, column string, value bool) error {
	q := fmt.Sprintf(`UPDATE settings SET %s = $2, updated_at = now() WHERE id = $1`, column)
	_, err := r.db.ExecContext(ctx, q, settingsID, value)
	return err
}

func (r *Repository) UpdateCommunityInfo(ctx context.Context, wallet string, info models.CommunityInfo) (bool, error) {
	const q = `
		UPDATE accounts
		SET community_name = $2, twitter = $3, discord = $4, website = $5,
		    project_type = $6, updated_at = now()
		WHERE lower(wallet_address) = lower($1)`
	res, err := r.db.ExecContext(ctx, q, wallet,
		info.CommunityName, info.Twitter, info.Discord, info.Website, info.ProjectType)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Repository) ChatIDOwner(ctx context.Context, chatID int64) (string, error) {
	const q = `SELECT wallet_address FROM accounts WHERE telegram_chat_id = $1`
	var wallet string
	if err := r.db.GetContext(ctx, &wallet, q, chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return wallet, nil
}

func (r *Repository) UpdateTelegramChatID(ctx context.Context, wallet string, chatID int64) (bool, error) {
	const q = `
		UPDATE accounts SET telegram_chat_id = $2, updated_at = now()
		WHERE lower(wallet_address) = lower($1)`
	res, err := r.db.ExecContext(ctx, q, wallet, chatID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
