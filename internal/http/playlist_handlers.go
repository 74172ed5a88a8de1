package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type playlistRequest struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
}

func (h *Handler) createPlaylist(c *gin.Context) error {
	var req playlistRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err)
	}
	playlist, err := h.playlists.Create(c.Request.Context(), currentUser(c).ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, playlistToResponse(*playlist), "playlist created successfully")
	return nil
}

func (h *Handler) userPlaylists(c *gin.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	result, err := h.playlists.ListByUser(c.Request.Context(), userID, page)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK,
		pageResponse("playlists", "totalPlaylists", playlistsToResponse(result.Playlists), result.Total, result.Page),
		"playlists fetched successfully")
	return nil
}

func (h *Handler) getPlaylist(c *gin.Context) error {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		return err
	}
	details, err := h.playlists.Get(c.Request.Context(), currentUser(c).ID, playlistID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, playlistDetailsToResponse(details), "playlist fetched successfully")
	return nil
}

func (h *Handler) updatePlaylist(c *gin.Context) error {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		return err
	}
	var req playlistRequest
	if err := c.ShouldBind(&req); err != nil {
		req = playlistRequest{}
	}
	playlist, err := h.playlists.Update(c.Request.Context(), currentUser(c).ID, playlistID, req.Name, req.Description)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, playlistToResponse(*playlist), "playlist updated successfully")
	return nil
}

func (h *Handler) deletePlaylist(c *gin.Context) error {
	playlistID, err := pathID(c, "playlistId")
	if err != nil {
		return err
	}
	if err := h.playlists.Delete(c.Request.Context(), currentUser(c).ID, playlistID); err != nil {
		return err
	}
	respond(c, http.StatusOK, gin.H{}, "playlist deleted successfully")
	return nil
}

func (h *Handler) addVideoToPlaylist(c *gin.Context) error {
	videoID, playlistID, err := playlistVideoIDs(c)
	if err != nil {
		return err
	}
	details, err := h.playlists.AddVideo(c.Request.Context(), currentUser(c).ID, playlistID, videoID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, playlistDetailsToResponse(details), "video added to playlist successfully")
	return nil
}

func (h *Handler) removeVideoFromPlaylist(c *gin.Context) error {
	videoID, playlistID, err := playlistVideoIDs(c)
	if err != nil {
		return err
	}
	details, err := h.playlists.RemoveVideo(c.Request.Context(), currentUser(c).ID, playlistID, videoID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, playlistDetailsToResponse(details), "video removed from playlist successfully")
	return nil
}

func playlistVideoIDs(c *gin.Context) (videoID, playlistID int64, err error) {
	if videoID, err = pathID(c, "videoId"); err != nil {
		return 0, 0, err
	}
	if playlistID, err = pathID(c, "playlistId"); err != nil {
		return 0, 0, err
	}
	return videoID, playlistID, nil
}
