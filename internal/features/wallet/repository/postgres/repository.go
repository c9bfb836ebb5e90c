package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"neoguard-console-backend/internal/features/wallet/models"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const accountColumns = `
	id, wallet_address, telegram_chat_id, is_eligible, settings_id,
	COALESCE(community_name, '') AS community_name,
	COALESCE(twitter, '') AS twitter,
	COALESCE(discord, '') AS discord,
	COALESCE(website, '') AS website,
	COALESCE(project_type, '') AS project_type,
	created_at, updated_at`

func (r *Repository) GetByWallet(ctx context.Context, wallet string) (*models.Account, error) {
	const q = `SELECT` + accountColumns + ` FROM accounts WHERE lower(wallet_address) = lower($1)`
	var account models.Account
	if err := r.db.GetContext(ctx, &account, q, wallet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) CreateWithSettings(ctx context.Context, wallet string, eligible bool) (int64, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	var settingsID int64
	if err := tx.QueryRowxContext(ctx, `INSERT INTO settings DEFAULT VALUES RETURNING id`).Scan(&settingsID); err != nil {
		return 0, 0, fmt.Errorf("insert settings: %w", err)
	}

	var accountID int64
	const q = `
		INSERT INTO accounts (wallet_address, is_eligible, settings_id)
		VALUES (lower($1), $2, $3)
		RETURNING id`
	if err := tx.QueryRowxContext(ctx, q, wallet, eligible, settingsID).Scan(&accountID); err != nil {
		return 0, 0, fmt.Errorf("insert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return accountID, settingsID, nil
}

func (r *Repository) UpdateEligibility(ctx context.Context, wallet string, eligible bool) error {
	const q = `UPDATE accounts SET is_eligible = $2, updated_at = now() WHERE lower(wallet_address) = lower($1)`
	_, err := r.db.ExecContext(ctx, q, wallet, eligible)
	return err
}
