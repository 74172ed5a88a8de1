package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type contentRequest struct {
	Content string `form:"content" json:"content"`
}

func (h *Handler) listComments(c *gin.Context) error {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		return err
	}
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	result, err := h.comments.List(c.Request.Context(), currentUser(c).ID, videoID, page)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK,
		pageResponse("comments", "totalComments", commentsToResponse(result.Comments), result.Total, result.Page),
		"comments fetched successfully")
	return nil
}

func (h *Handler) addComment(c *gin.Context) error {
	videoID, err := pathID(c, "videoId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err)
	}
	comment, err := h.comments.Add(c.Request.Context(), currentUser(c).ID, videoID, req.Content)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, commentToResponse(*comment), "comment added successfully")
	return nil
}

func (h *Handler) updateComment(c *gin.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}
	var req contentRequest
	if err := c.ShouldBind(&req); err != nil {
		req = contentRequest{}
	}
	comment, err := h.comments.Update(c.Request.Context(), currentUser(c).ID, commentID, req.Content)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, commentToResponse(*comment), "comment updated successfully")
	return nil
}

func (h *Handler) deleteComment(c *gin.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}
	if err := h.comments.Delete(c.Request.Context(), currentUser(c).ID, commentID); err != nil {
		return err
	}
	respond(c, http.StatusOK, gin.H{}, "comment deleted successfully")
	return nil
}
