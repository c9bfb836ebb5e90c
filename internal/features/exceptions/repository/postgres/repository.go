package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"neoguard-console-backend/internal/features/exceptions/models"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ChatIDForWallet(ctx context.Context, wallet string) (int64, error) {
	const q = `SELECT COALESCE(telegram_chat_id, 0) FROM accounts WHERE lower(wallet_address) = lower($1)`
	var chatID int64
	if err := r.db.GetContext(ctx, &chatID, q, wallet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return chatID, nil
}

func (r *Repository) ListByChat(ctx context.Context, chatID int64) ([]models.Exception, error) {
	const q = `
		SELECT e.chat_id, e.user_id, e.created_at,
		       (b.user_id IS NOT NULL) AS globally_blacklisted
		FROM chat_exceptions e
		LEFT JOIN blacklisted_tg_users b ON b.user_id = e.user_id
		WHERE e.chat_id = $1
		ORDER BY e.created_at DESC`
	exceptions := []models.Exception{}
	if err := r.db.SelectContext(ctx, &exceptions, q, chatID); err != nil {
		return nil, err
	}
	return exceptions, nil
}

func (r *Repository) Insert(ctx context.Context, chatID, userID int64) error {
	const q = `
		INSERT INTO chat_exceptions (chat_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (chat_id, user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, q, chatID, userID)
	return err
}

func (r *Repository) Delete(ctx context.Context, chatID, userID int64) error {
	const q = `DELETE FROM chat_exceptions WHERE chat_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, q, chatID, userID)
	return err
}
