package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"neoguard-console-backend/internal/features/bans/models"
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

// banRow carries the enriched moderation row; review columns are nullable
// because most bans have no review.
type banRow struct {
	ID             string         `db:"id"`
	ChatID         int64          `db:"chat_id"`
	UserID         int64          `db:"user_id"`
	Action         string         `db:"action"`
	Reason         string         `db:"reason"`
	GloballyBanned bool           `db:"globally_banned"`
	SpamMessage    string         `db:"spam_message"`
	CreatedAt      time.Time      `db:"created_at"`
	ReviewID       sql.NullInt64  `db:"review_id"`
	ReviewPlatform sql.NullString `db:"review_platform"`
	ReviewReason   sql.NullString `db:"review_reason"`
	ReviewNote     sql.NullString `db:"review_note"`
	ReviewReviewed sql.NullBool   `db:"review_reviewed"`
	ReviewCreated  sql.NullTime   `db:"review_created_at"`
}

func (r *Repository) BansForChat(ctx context.Context, chatID int64) ([]models.BanRecord, error) {
	const q = `
		SELECT m.id, l.chat_id, l.user_id, m.action, COALESCE(m.reason, '') AS reason, m.created_at,
		       (b.user_id IS NOT NULL) AS globally_banned,
		       COALESCE(sm.message, '') AS spam_message,
		       r.id AS review_id, r.platform AS review_platform, r.reason AS review_reason,
		       r.note AS review_note, r.reviewed AS review_reviewed, r.created_at AS review_created_at
		FROM tg_moderation_logs m
		JOIN tg_logs l ON l.id = m.log_id
		LEFT JOIN blacklisted_tg_users b ON b.user_id = l.user_id
		LEFT JOIN LATERAL (
			SELECT ml.message
			FROM tg_message_logs ml
			JOIN tg_logs l2 ON l2.id = ml.log_id
			WHERE l2.chat_id = l.chat_id AND l2.user_id = l.user_id
			ORDER BY ml.created_at DESC
			LIMIT 1
		) sm ON true
		LEFT JOIN LATERAL (
			SELECT br.id, br.platform, br.reason, br.note, br.reviewed, br.created_at
			FROM ban_reviews br
			WHERE br.user_id = l.user_id
			ORDER BY br.created_at DESC
			LIMIT 1
		) r ON true
		WHERE l.chat_id = $1 AND m.action IN ('ban', 'delete')
		ORDER BY m.created_at DESC`

	rows := []banRow{}
	if err := r.db.SelectContext(ctx, &rows, q, chatID); err != nil {
		return nil, err
	}

	records := make([]models.BanRecord, 0, len(rows))
	for _, row := range rows {
		record := models.BanRecord{
			ID:             row.ID,
			ChatID:         row.ChatID,
			UserID:         row.UserID,
			Action:         row.Action,
			Reason:         row.Reason,
			GloballyBanned: row.GloballyBanned,
			SpamMessage:    row.SpamMessage,
			CreatedAt:      row.CreatedAt,
		}
		if row.ReviewID.Valid {
			record.Review = &models.Review{
				ID:        row.ReviewID.Int64,
				UserID:    row.UserID,
				Platform:  row.ReviewPlatform.String,
				Reason:    row.ReviewReason.String,
				Note:      row.ReviewNote.String,
				Reviewed:  row.ReviewReviewed.Bool,
				CreatedAt: row.ReviewCreated.Time,
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *Repository) InsertReview(ctx context.Context, userID int64, platform, reason, note string) (*models.Review, error) {
	const q = `
		INSERT INTO ban_reviews (user_id, platform, reason, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, platform, reason, note, reviewed, created_at`
	var review models.Review
	if err := r.db.GetContext(ctx, &review, q, userID, platform, reason, note); err != nil {
		return nil, err
	}
	return &review, nil
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
