package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listCommunityPosts(c *gin.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	result, err := h.posts.List(c.Request.Context(), page)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK,
		pageResponse("communityPosts", "totalCommunityPosts", communityPostsToResponse(result.Posts), result.Total, result.Page),
		"community posts fetched successfully")
	return nil
}

func (h *Handler) userCommunityPosts(c *gin.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	result, err := h.posts.ListByUser(c.Request.Context(), userID, page)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK,
		pageResponse("communityPosts", "totalCommunityPosts", communityPostsToResponse(result.Posts), result.Total, result.Page),
		"community posts fetched successfully")
	return nil
}

func (h *Handler) createCommunityPost(c *gin.Context) error {
	var req contentRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err)
	}
	post, err := h.posts.Create(c.Request.Context(), currentUser(c).ID, req.Content)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, communityPostToResponse(*post), "community post created successfully")
	return nil
}

func (h *Handler) updateCommunityPost(c *gin.Context) error {
	postID, err := pathID(c, "communityPostId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := c.ShouldBind(&req); err != nil {
		req = contentRequest{}
	}
	post, err := h.posts.Update(c.Request.Context(), currentUser(c).ID, postID, req.Content)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, communityPostToResponse(*post), "community post updated successfully")
	return nil
}

func (h *Handler) deleteCommunityPost(c *gin.Context) error {
	postID, err := pathID(c, "communityPostId")
	if err != nil {
		return err
	}
	if err := h.posts.Delete(c.Request.Context(), currentUser(c).ID, postID); err != nil {
		return err
	}
	respond(c, http.StatusOK, gin.H{}, "community post deleted successfully")
	return nil
}
