package repository

import (
	"context"

	"vidtube/internal/domain"
)

type SubscriptionRepository interface {
	// Toggle removes the edge if present, otherwise inserts it, atomically. It reports the resulting state.
	Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error)
	ListSubscribers(ctx context.Context, channelID int64) ([]domain.Subscriber, error)
	ListSubscribedChannels(ctx context.Context, subscriberID int64) ([]domain.Subscriber, error)
}
