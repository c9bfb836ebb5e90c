package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"neoguard-console-backend/internal/features/stats/models"
	"neoguard-console-backend/internal/features/stats/repository"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Counts(ctx context.Context, chatID int64) (models.Counts, error) {
	const q = `
		SELECT
			(SELECT count(*) FROM tg_message_logs m JOIN tg_logs l ON l.id = m.log_id WHERE l.chat_id = $1) AS messages_scanned,
			(SELECT count(*) FROM tg_moderation_logs m JOIN tg_logs l ON l.id = m.log_id WHERE l.chat_id = $1 AND m.action = 'ban') AS bans_issued,
			(SELECT count(*) FROM tg_moderation_logs m JOIN tg_logs l ON l.id = m.log_id WHERE l.chat_id = $1 AND m.action = 'delete') AS spam_deleted,
			(SELECT count(*) FROM tg_message_logs) AS global_messages_scanned,
			(SELECT count(*) FROM tg_moderation_logs WHERE action = 'ban') AS global_bans_issued,
			(SELECT count(*) FROM tg_moderation_logs WHERE action = 'delete') AS global_spam_deleted,
			(SELECT count(*) FROM blacklisted_tg_users) AS blacklist_size`
	var counts models.Counts
	err := r.db.GetContext(ctx, &counts, q, chatID)
	return counts, err
}

func (r *Repository) SeriesCounts(ctx context.Context, chatID int64, kind repository.LogKind, granularity string, from time.Time) (map[time.Time]int64, error) {
	const q = `SELECT bucket, n FROM count_logs_by_period($1, $2, $3, $4)`
	rows, err := r.db.QueryxContext(ctx, q, chatID, string(kind), granularity, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[time.Time]int64)
	for rows.Next() {
		var bucket time.Time
		var n int64
		if err := rows.Scan(&bucket, &n); err != nil {
			return nil, err
		}
		counts[bucket.UTC()] = n
	}
	return counts, rows.Err()
}
