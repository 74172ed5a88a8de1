package service

import (
	"context"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type SubscriptionService interface {
	Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error)
	Subscribers(ctx context.Context, channelID int64) ([]domain.Subscriber, error)
	SubscribedChannels(ctx context.Context, subscriberID int64) ([]domain.Subscriber, error)
}

type subscriptionService struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository) SubscriptionService {
	return &subscriptionService{subs: subs, users: users}
}

func (s *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if subscriberID == channelID {
		return false, apperr.Validation("you cannot subscribe to your own channel")
	}
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return false, repoError(err, "channel not found", "failed to toggle subscription")
	}
	subscribed, err := s.subs.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return false, repoError(err, "channel not found", "failed to toggle subscription")
	}
	return subscribed, nil
}

func (s *subscriptionService) Subscribers(ctx context.Context, channelID int64) ([]domain.Subscriber, error) {
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return nil, repoError(err, "channel not found", "failed to fetch subscribers")
	}
	subs, err := s.subs.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch subscribers", err)
	}
	return subs, nil
}

func (s *subscriptionService) SubscribedChannels(ctx context.Context, subscriberID int64) ([]domain.Subscriber, error) {
	channels, err := s.subs.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch subscribed channels", err)
	}
	return channels, nil
}
