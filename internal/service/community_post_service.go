package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

const maxPostLength = 5000

type CommunityPostPage struct {
	Posts []domain.CommunityPostWithOwner
	Total int64
	Page  domain.Page
}

type CommunityPostService interface {
	Create(ctx context.Context, ownerID int64, content string) (*domain.CommunityPost, error)
	List(ctx context.Context, page domain.Page) (*CommunityPostPage, error)
	ListByUser(ctx context.Context, userID int64, page domain.Page) (*CommunityPostPage, error)
	Update(ctx context.Context, actorID, postID int64, content string) (*domain.CommunityPost, error)
	Delete(ctx context.Context, actorID, postID int64) error
}

type communityPostService struct {
	posts repository.CommunityPostRepository
	users repository.UserRepository
}

func NewCommunityPostService(posts repository.CommunityPostRepository, users repository.UserRepository) CommunityPostService {
	return &communityPostService{posts: posts, users: users}
}

func (s *communityPostService) Create(ctx context.Context, ownerID int64, content string) (*domain.CommunityPost, error) {
	content, err := validPostContent(content)
	if err != nil {
		return nil, err
	}
	post := &domain.CommunityPost{OwnerID: ownerID, Content: content}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, apperr.Internal("failed to create community post", err)
	}
	return post, nil
}

func (s *communityPostService) List(ctx context.Context, page domain.Page) (*CommunityPostPage, error) {
	posts, total, err := s.posts.List(ctx, 0, page)
	if err != nil {
		return nil, apperr.Internal("failed to fetch community posts", err)
	}
	return &CommunityPostPage{Posts: posts, Total: total, Page: page}, nil
}

func (s *communityPostService) ListByUser(ctx context.Context, userID int64, page domain.Page) (*CommunityPostPage, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, repoError(err, "user not found", "failed to fetch community posts")
	}
	posts, total, err := s.posts.List(ctx, userID, page)
	if err != nil {
		return nil, apperr.Internal("failed to fetch community posts", err)
	}
	return &CommunityPostPage{Posts: posts, Total: total, Page: page}, nil
}

func (s *communityPostService) Update(ctx context.Context, actorID, postID int64, content string) (*domain.CommunityPost, error) {
	if _, err := s.owned(ctx, actorID, postID, "update this community post"); err != nil {
		return nil, err
	}
	content, err := validPostContent(content)
	if err != nil {
		return nil, err
	}
	updated, err := s.posts.UpdateContent(ctx, postID, content)
	if err != nil {
		return nil, repoError(err, "community post not found", "failed to update community post")
	}
	return updated, nil
}

func (s *communityPostService) Delete(ctx context.Context, actorID, postID int64) error {
	if _, err := s.owned(ctx, actorID, postID, "delete this community post"); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return repoError(err, "community post not found", "failed to delete community post")
	}
	return nil
}

func (s *communityPostService) owned(ctx context.Context, actorID, postID int64, action string) (*domain.CommunityPost, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, repoError(err, "community post not found", "failed to fetch community post")
	}
	if err := authorize(actorID, post, action); err != nil {
		return nil, err
	}
	return post, nil
}

func validPostContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.Validation("content is required")
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return "", apperr.Validation("content is too long")
	}
	return content, nil
}
