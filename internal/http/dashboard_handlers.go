package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) channelStats(c *gin.Context) error {
	stats, err := h.dashboard.Stats(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, ChannelStatsResponse{
		TotalVideos:      stats.TotalVideos,
		TotalViews:       stats.TotalViews,
		TotalLikes:       stats.TotalLikes,
		TotalSubscribers: stats.TotalSubscribers,
	}, "channel stats fetched successfully")
	return nil
}

func (h *Handler) channelVideos(c *gin.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	result, err := h.dashboard.Videos(c.Request.Context(), currentUser(c).ID, page)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK,
		pageResponse("videos", "totalVideos", videosToResponse(result.Videos), result.Total, result.Page),
		"channel videos fetched successfully")
	return nil
}
