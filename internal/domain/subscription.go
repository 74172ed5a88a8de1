package domain

import "time"

// Subscription is a directed edge from subscriber to channel.
type Subscription struct {
	ID           int64
	SubscriberID int64
	ChannelID    int64
	CreatedAt    time.Time
}

// Subscriber is a user in a subscription listing with the time the edge was created.
type Subscriber struct {
	UserSummary
	SubscribedAt time.Time
}
