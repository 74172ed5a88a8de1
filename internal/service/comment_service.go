package service

import (
	"context"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type CommentPage struct {
	Comments []domain.CommentWithOwner
	Total    int64
	Page     domain.Page
}

type CommentService interface {
	// List shows comments of a video the viewer can see.
	List(ctx context.Context, viewerID, videoID int64, page domain.Page) (*CommentPage, error)
	Add(ctx context.Context, ownerID, videoID int64, content string) (*domain.Comment, error)
	Update(ctx context.Context, actorID, commentID int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, actorID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository) CommentService {
	return &commentService{comments: comments, videos: videos}
}

func (s *commentService) List(ctx context.Context, viewerID, videoID int64, page domain.Page) (*CommentPage, error) {
	if _, err := visibleVideo(ctx, s.videos, videoID, viewerID, "failed to fetch comments"); err != nil {
		return nil, err
	}
	comments, total, err := s.comments.ListByVideo(ctx, videoID, page)
	if err != nil {
		return nil, apperr.Internal("failed to fetch comments", err)
	}
	return &CommentPage{Comments: comments, Total: total, Page: page}, nil
}

func (s *commentService) Add(ctx context.Context, ownerID, videoID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	if _, err := visibleVideo(ctx, s.videos, videoID, ownerID, "failed to add comment"); err != nil {
		return nil, err
	}

	comment := &domain.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, repoError(err, "video not found", "failed to add comment")
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actorID, commentID int64, content string) (*domain.Comment, error) {
	if _, err := s.owned(ctx, actorID, commentID, "update this comment"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	updated, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, repoError(err, "comment not found", "failed to update comment")
	}
	return updated, nil
}

func (s *commentService) Delete(ctx context.Context, actorID, commentID int64) error {
	if _, err := s.owned(ctx, actorID, commentID, "delete this comment"); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return repoError(err, "comment not found", "failed to delete comment")
	}
	return nil
}

func (s *commentService) owned(ctx context.Context, actorID, commentID int64, action string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, repoError(err, "comment not found", "failed to fetch comment")
	}
	if err := authorize(actorID, comment, action); err != nil {
		return nil, err
	}
	return comment, nil
}
