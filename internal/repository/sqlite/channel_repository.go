package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type ChannelRepository struct {
	db *sql.DB
}

func NewChannelRepository(db *sql.DB) repository.ChannelRepository {
	return &ChannelRepository{db: db}
}

// Profile looks the channel up by username, ignoring case. viewerID 0 is never subscribed.
func (r *ChannelRepository) Profile(ctx context.Context, username string, viewerID int64) (*domain.ChannelProfile, error) {
	var p domain.ChannelProfile
	err := r.db.QueryRowContext(ctx, `
SELECT
	u.id, u.username, u.email, u.full_name, u.avatar, u.cover_image,
	(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
	(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
	EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?)
FROM users u
WHERE u.username = ?`,
		viewerID, username,
	).Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.FullName,
		&p.Avatar,
		&p.CoverImage,
		&p.SubscribersCount,
		&p.ChannelsSubscribedToCount,
		&p.IsSubscribed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("channel: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("channel profile: %w", err)
	}
	return &p, nil
}

// Stats counts every video the owner has, published or not.
func (r *ChannelRepository) Stats(ctx context.Context, ownerID int64) (*domain.ChannelStats, error) {
	var s domain.ChannelStats
	err := r.db.QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM videos WHERE owner_id = ?),
	(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = ?),
	(SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.target_id
		WHERE l.target_kind = 'video' AND v.owner_id = ?),
	(SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?)`,
		ownerID, ownerID, ownerID, ownerID,
	).Scan(&s.TotalVideos, &s.TotalViews, &s.TotalLikes, &s.TotalSubscribers)
	if err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}
	return &s, nil
}
