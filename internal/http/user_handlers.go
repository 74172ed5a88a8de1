package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/service"
)

type registerRequest struct {
	FullName string `form:"fullName" json:"fullName" binding:"required"`
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type sessionResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

func (h *Handler) register(c *gin.Context) error {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err)
	}

	uploads, err := h.newUploadDir()
	if err != nil {
		return err
	}
	defer uploads.cleanup()

	avatarPath, err := uploads.save(c, "avatar")
	if err != nil {
		return err
	}
	coverPath, err := uploads.save(c, "coverImage")
	if err != nil {
		return err
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		return err
	}

	respond(c, http.StatusCreated, userToResponse(user), "user registered successfully")
	return nil
}

func (h *Handler) login(c *gin.Context) error {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		return bindError(err)
	}

	user, pair, err := h.users.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setSessionCookies(c, pair)
	resp := userToResponse(user)
	respond(c, http.StatusOK, sessionResponse{
		User:         &resp,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "user logged in successfully")
	return nil
}

// refreshToken accepts the refresh token from its cookie or the request body.
func (h *Handler) refreshToken(c *gin.Context) error {
	raw, _ := c.Cookie(refreshTokenCookie)
	if strings.TrimSpace(raw) == "" {
		var req refreshRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBind(&req); err != nil {
				return bindError(err)
			}
		}
		raw = req.RefreshToken
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apperr.Unauthorized("unauthorized request")
	}

	pair, err := h.tokens.RotateRefresh(c.Request.Context(), raw)
	if err != nil {
		return err
	}

	h.setSessionCookies(c, pair)
	respond(c, http.StatusOK, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "access token refreshed")
	return nil
}

func (h *Handler) logout(c *gin.Context) error {
	if err := h.users.Logout(c.Request.Context(), currentUser(c).ID); err != nil {
		return err
	}
	h.clearSessionCookies(c)
	respond(c, http.StatusOK, gin.H{}, "user logged out")
	return nil
}

func (h *Handler) changePassword(c *gin.Context) error {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	if err := h.users.ChangePassword(c.Request.Context(), currentUser(c).ID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	respond(c, http.StatusOK, gin.H{}, "password changed successfully")
	return nil
}

func (h *Handler) getCurrentUser(c *gin.Context) error {
	respond(c, http.StatusOK, userToResponse(currentUser(c)), "current user fetched successfully")
	return nil
}

func (h *Handler) updateAccount(c *gin.Context) error {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}
	user, err := h.users.UpdateAccount(c.Request.Context(), currentUser(c).ID, req.FullName, req.Email)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, userToResponse(user), "account details updated successfully")
	return nil
}

func (h *Handler) updateAvatar(c *gin.Context) error {
	return h.replaceImage(c, "avatar", h.users.UpdateAvatar, "avatar updated successfully")
}

func (h *Handler) updateCoverImage(c *gin.Context) error {
	return h.replaceImage(c, "coverImage", h.users.UpdateCoverImage, "cover image updated successfully")
}

func (h *Handler) replaceImage(
	c *gin.Context,
	field string,
	update func(ctx context.Context, id int64, localPath string) (*domain.User, error),
	message string,
) error {
	uploads, err := h.newUploadDir()
	if err != nil {
		return err
	}
	defer uploads.cleanup()

	path, err := uploads.save(c, field)
	if err != nil {
		return err
	}
	if path == "" {
		return apperr.Validation(field + " file is missing")
	}

	user, err := update(c.Request.Context(), currentUser(c).ID, path)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, userToResponse(user), message)
	return nil
}

func (h *Handler) channelProfile(c *gin.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return apperr.Validation("username is missing")
	}
	profile, err := h.graph.ChannelProfile(c.Request.Context(), username, currentUser(c).ID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, ChannelProfileResponse{
		ID:                        profile.ID,
		Username:                  profile.Username,
		Email:                     profile.Email,
		FullName:                  profile.FullName,
		Avatar:                    profile.Avatar,
		CoverImage:                profile.CoverImage,
		SubscribersCount:          profile.SubscribersCount,
		ChannelsSubscribedToCount: profile.ChannelsSubscribedToCount,
		IsSubscribed:              profile.IsSubscribed,
	}, "user channel fetched successfully")
	return nil
}

func (h *Handler) watchHistory(c *gin.Context) error {
	videos, err := h.graph.WatchHistory(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, videosToResponse(videos), "watch history fetched successfully")
	return nil
}
