package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
)

func (h *Handler) toggleVideoLike(c *gin.Context) error {
	return h.toggleLike(c, domain.LikeVideo, "videoId")
}

func (h *Handler) toggleCommentLike(c *gin.Context) error {
	return h.toggleLike(c, domain.LikeComment, "commentId")
}

func (h *Handler) toggleCommunityPostLike(c *gin.Context) error {
	return h.toggleLike(c, domain.LikeCommunityPost, "communityPostId")
}

func (h *Handler) toggleLike(c *gin.Context, kind domain.LikeKind, param string) error {
	id, err := pathID(c, param)
	if err != nil {
		return err
	}
	target, err := domain.NewLikeTarget(kind, id)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	liked, err := h.likes.Toggle(c.Request.Context(), currentUser(c).ID, target)
	if err != nil {
		return err
	}

	message := "like removed successfully"
	if liked {
		message = "like added successfully"
	}
	respond(c, http.StatusOK, gin.H{"isLiked": liked}, message)
	return nil
}

func (h *Handler) likedVideos(c *gin.Context) error {
	videos, err := h.graph.LikedVideos(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, likedVideosToResponse(videos), "liked videos fetched successfully")
	return nil
}
