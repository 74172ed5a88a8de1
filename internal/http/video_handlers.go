package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/internal/service"
)

type videoForm struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

func (h *Handler) listVideos(c *gin.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	var ownerID int64
	if raw := c.Query("userId"); raw != "" {
		if ownerID, err = parseID(raw, "userId"); err != nil {
			return err
		}
	}

	result, err := h.videos.List(c.Request.Context(), service.VideoQuery{
		Page:     page,
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		OwnerID:  ownerID,
		ViewerID: currentUser(c).ID,
	})
	if err != nil {
		return err
	}
	respond(c, http.StatusOK,
		pageResponse("videos", "totalVideos", videosToResponse(result.Videos), result.Total, result.Page),
		"videos fetched successfully")
	return nil
}

func (h *Handler) publishVideo(c *gin.Context) error {
	var form videoForm
	if err := c.ShouldBind(&form); err != nil {
		return bindError(err)
	}

	uploads, err := h.newUploadDir()
	if err != nil {
		return err
	}
	defer uploads.cleanup()

	videoPath, err := uploads.save(c, "videoFile")
	if err != nil {
		return err
	}
	thumbnailPath, err := uploads.save(c, "thumbnail")
	if err != nil {
		return err
	}

	video, err := h.videos.Publish(c.Request.Context(), currentUser(c).ID, service.PublishInput{
		Title:         form.Title,
		Description:   form.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, videoToResponse(*video), "video published successfully")
	return nil
}

func (h *Handler) getVideo(c *gin.Context) error {
	id, err := pathID(c, "videoId")
	if err != nil {
		return err
	}
	video, err := h.videos.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, videoWithOwnerToResponse(*video), "video fetched successfully")
	return nil
}

func (h *Handler) updateVideo(c *gin.Context) error {
	id, err := pathID(c, "videoId")
	if err != nil {
		return err
	}

	// Ownership is decided before the payload, so a bad body still reaches the service.
	var form videoForm
	if err := c.ShouldBind(&form); err != nil {
		form = videoForm{}
	}

	uploads, err := h.newUploadDir()
	if err != nil {
		return err
	}
	defer uploads.cleanup()

	thumbnailPath, err := uploads.save(c, "thumbnail")
	if err != nil {
		return err
	}

	video, err := h.videos.Update(c.Request.Context(), currentUser(c).ID, id, service.UpdateVideoInput{
		Title:         form.Title,
		Description:   form.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, videoToResponse(*video), "video updated successfully")
	return nil
}

func (h *Handler) deleteVideo(c *gin.Context) error {
	id, err := pathID(c, "videoId")
	if err != nil {
		return err
	}
	if err := h.videos.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		return err
	}
	respond(c, http.StatusOK, gin.H{}, "video deleted successfully")
	return nil
}

func (h *Handler) togglePublish(c *gin.Context) error {
	id, err := pathID(c, "videoId")
	if err != nil {
		return err
	}
	video, err := h.videos.TogglePublish(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, gin.H{"isPublished": video.IsPublished}, "video publish status toggled successfully")
	return nil
}
