package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) repository.SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin subscription toggle: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	res, err := tx.ExecContext(ctx, `
DELETE FROM subscriptions WHERE subscriber_id = ? AND channel_id = ?`,
		subscriberID, channelID,
	)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete subscription rows affected: %w", err)
	}

	subscribed := false
	if removed == 0 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
VALUES (?, ?, ?)
ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
			subscriberID, channelID, time.Now().UTC(),
		); err != nil {
			if isForeignKeyViolation(err) {
				return false, fmt.Errorf("insert subscription: %w", repository.ErrNotFound)
			}
			return false, fmt.Errorf("insert subscription: %w", err)
		}
		subscribed = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit subscription toggle: %w", err)
	}
	return subscribed, nil
}

func (r *SubscriptionRepository) ListSubscribers(ctx context.Context, channelID int64) ([]domain.Subscriber, error) {
	return r.list(ctx, `
SELECT `+ownerColumns+`, s.created_at
FROM subscriptions s
JOIN users u ON u.id = s.subscriber_id
WHERE s.channel_id = ?
ORDER BY s.created_at DESC, s.id DESC`, channelID)
}

func (r *SubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]domain.Subscriber, error) {
	return r.list(ctx, `
SELECT `+ownerColumns+`, s.created_at
FROM subscriptions s
JOIN users u ON u.id = s.channel_id
WHERE s.subscriber_id = ?
ORDER BY s.created_at DESC, s.id DESC`, subscriberID)
}

func (r *SubscriptionRepository) list(ctx context.Context, query string, id int64) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Subscriber, 0)
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ID, &s.Username, &s.FullName, &s.Avatar, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subs, nil
}
