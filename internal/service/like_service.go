package service

import (
	"context"
	"fmt"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

// LikeService toggles likes on videos, comments and community posts.
type LikeService interface {
	Toggle(ctx context.Context, userID int64, target domain.LikeTarget) (bool, error)
}

type likeService struct {
	likes    repository.LikeRepository
	videos   repository.VideoRepository
	comments repository.CommentRepository
	posts    repository.CommunityPostRepository
}

func NewLikeService(
	likes repository.LikeRepository,
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	posts repository.CommunityPostRepository,
) LikeService {
	return &likeService{likes: likes, videos: videos, comments: comments, posts: posts}
}

func (s *likeService) Toggle(ctx context.Context, userID int64, target domain.LikeTarget) (bool, error) {
	if err := s.ensureTarget(ctx, userID, target); err != nil {
		return false, err
	}
	liked, err := s.likes.Toggle(ctx, userID, target)
	if err != nil {
		return false, apperr.Internal("failed to toggle like", err)
	}
	return liked, nil
}

// ensureTarget checks the target exists and, for videos and their comments, that the
// user can see the video.
func (s *likeService) ensureTarget(ctx context.Context, userID int64, target domain.LikeTarget) error {
	var err error
	switch target.Kind {
	case domain.LikeVideo:
		_, err = visibleVideo(ctx, s.videos, target.ID, userID, "failed to toggle like")
		return err
	case domain.LikeComment:
		var comment *domain.Comment
		if comment, err = s.comments.GetByID(ctx, target.ID); err != nil {
			break
		}
		if _, err := visibleVideo(ctx, s.videos, comment.VideoID, userID, "failed to toggle like"); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.NotFound("comment not found")
			}
			return err
		}
	case domain.LikeCommunityPost:
		_, err = s.posts.GetByID(ctx, target.ID)
	default:
		return apperr.Validation(fmt.Sprintf("cannot like a %q", target.Kind))
	}
	if err != nil {
		return repoError(err, targetLabel(target.Kind)+" not found", "failed to toggle like")
	}
	return nil
}

func targetLabel(kind domain.LikeKind) string {
	switch kind {
	case domain.LikeCommunityPost:
		return "community post"
	default:
		return string(kind)
	}
}
