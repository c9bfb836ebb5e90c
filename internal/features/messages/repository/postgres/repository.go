package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"neoguard-console-backend/internal/features/messages/models"
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

func (r *Repository) Recent(ctx context.Context, chatID int64, limit int) ([]models.MessageLog, error) {
	const q = `
		SELECT m.id, m.log_id, l.chat_id, l.user_id, m.message, m.created_at
		FROM tg_message_logs m
		JOIN tg_logs l ON l.id = m.log_id
		WHERE l.chat_id = $1
		ORDER BY m.created_at DESC
		LIMIT $2`
	messages := []models.MessageLog{}
	if err := r.db.SelectContext(ctx, &messages, q, chatID, limit); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *Repository) Search(ctx context.Context, chatID int64, query string) ([]models.MessageLog, error) {
	const q = `SELECT id, log_id, chat_id, user_id, message, created_at FROM search_message_logs($1, $2)`
	messages := []models.MessageLog{}
	if err := r.db.SelectContext(ctx, &messages, q, chatID, query); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *Repository) TeamIDs(ctx context.Context, chatID int64) ([]int64, error) {
	const q = `SELECT user_id FROM team_members WHERE chat_id = $1`
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, q, chatID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) BlacklistedAmong(ctx context.Context, userIDs []int64) ([]int64, error) {
	if len(userIDs) == 0 {
		return []int64{}, nil
	}
	const q = `SELECT user_id FROM blacklisted_tg_users WHERE user_id = ANY($1)`
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, q, pq.Array(userIDs)); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) InsertBotMessage(ctx context.Context, chatID, botID int64, text string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var logID string
	const insertLog = `
		INSERT INTO tg_logs (chat_id, user_id, log_type, content)
		VALUES ($1, $2, 'bot_message', $3)
		RETURNING id`
	if err := tx.QueryRowxContext(ctx, insertLog, chatID, botID, text).Scan(&logID); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}

	const insertMessage = `INSERT INTO tg_message_logs (log_id, message) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, insertMessage, logID, text); err != nil {
		return fmt.Errorf("insert message log: %w", err)
	}

	return tx.Commit()
}
