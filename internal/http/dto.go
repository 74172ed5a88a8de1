package http

import (
	"time"

	"vidtube/internal/domain"
)

type UserResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type OwnerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

type VideoResponse struct {
	ID          int64          `json:"id"`
	VideoFile   string         `json:"videoFile"`
	Thumbnail   string         `json:"thumbnail"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Duration    float64        `json:"duration"`
	Views       int64          `json:"views"`
	IsPublished bool           `json:"isPublished"`
	OwnerID     int64          `json:"ownerId"`
	Owner       *OwnerResponse `json:"owner,omitempty"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type LikedVideoResponse struct {
	VideoResponse
	LikedAt string `json:"likedAt"`
}

type CommentResponse struct {
	ID        int64          `json:"id"`
	VideoID   int64          `json:"videoId"`
	Content   string         `json:"content"`
	OwnerID   int64          `json:"ownerId"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

type CommunityPostResponse struct {
	ID        int64          `json:"id"`
	Content   string         `json:"content"`
	OwnerID   int64          `json:"ownerId"`
	Owner     *OwnerResponse `json:"owner,omitempty"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

type PlaylistResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OwnerID     int64           `json:"ownerId"`
	TotalVideos int64           `json:"totalVideos"`
	Owner       *OwnerResponse  `json:"owner,omitempty"`
	Videos      []VideoResponse `json:"videos,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

type SubscriberResponse struct {
	OwnerResponse
	SubscribedAt string `json:"subscribedAt"`
}

type ChannelProfileResponse struct {
	ID                        int64  `json:"id"`
	Username                  string `json:"username"`
	Email                     string `json:"email"`
	FullName                  string `json:"fullName"`
	Avatar                    string `json:"avatar"`
	CoverImage                string `json:"coverImage"`
	SubscribersCount          int64  `json:"subscribersCount"`
	ChannelsSubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"`
}

type ChannelStatsResponse struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  formatTime(u.CreatedAt),
		UpdatedAt:  formatTime(u.UpdatedAt),
	}
}

func ownerToResponse(s domain.UserSummary) *OwnerResponse {
	return &OwnerResponse{
		ID:       s.ID,
		Username: s.Username,
		FullName: s.FullName,
		Avatar:   s.Avatar,
	}
}

func videoToResponse(v domain.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Title:       v.Title,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		OwnerID:     v.OwnerID,
		CreatedAt:   formatTime(v.CreatedAt),
		UpdatedAt:   formatTime(v.UpdatedAt),
	}
}

func videoWithOwnerToResponse(v domain.VideoWithOwner) VideoResponse {
	resp := videoToResponse(v.Video)
	resp.Owner = ownerToResponse(v.Owner)
	return resp
}

func videosToResponse(videos []domain.VideoWithOwner) []VideoResponse {
	resp := make([]VideoResponse, len(videos))
	for i := range videos {
		resp[i] = videoWithOwnerToResponse(videos[i])
	}
	return resp
}

func likedVideosToResponse(videos []domain.LikedVideo) []LikedVideoResponse {
	resp := make([]LikedVideoResponse, len(videos))
	for i := range videos {
		resp[i] = LikedVideoResponse{
			VideoResponse: videoWithOwnerToResponse(videos[i].VideoWithOwner),
			LikedAt:       formatTime(videos[i].LikedAt),
		}
	}
	return resp
}

func commentToResponse(c domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Content:   c.Content,
		OwnerID:   c.OwnerID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func commentsToResponse(comments []domain.CommentWithOwner) []CommentResponse {
	resp := make([]CommentResponse, len(comments))
	for i := range comments {
		resp[i] = commentToResponse(comments[i].Comment)
		resp[i].Owner = ownerToResponse(comments[i].Owner)
	}
	return resp
}

func communityPostToResponse(p domain.CommunityPost) CommunityPostResponse {
	return CommunityPostResponse{
		ID:        p.ID,
		Content:   p.Content,
		OwnerID:   p.OwnerID,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func communityPostsToResponse(posts []domain.CommunityPostWithOwner) []CommunityPostResponse {
	resp := make([]CommunityPostResponse, len(posts))
	for i := range posts {
		resp[i] = communityPostToResponse(posts[i].CommunityPost)
		resp[i].Owner = ownerToResponse(posts[i].Owner)
	}
	return resp
}

func playlistToResponse(p domain.Playlist) PlaylistResponse {
	return PlaylistResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		TotalVideos: p.VideoCount,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func playlistDetailsToResponse(p *domain.PlaylistDetails) PlaylistResponse {
	resp := playlistToResponse(p.Playlist)
	resp.Owner = ownerToResponse(p.Owner)
	resp.Videos = videosToResponse(p.Videos)
	return resp
}

func playlistsToResponse(playlists []domain.Playlist) []PlaylistResponse {
	resp := make([]PlaylistResponse, len(playlists))
	for i := range playlists {
		resp[i] = playlistToResponse(playlists[i])
	}
	return resp
}

func subscribersToResponse(subs []domain.Subscriber) []SubscriberResponse {
	resp := make([]SubscriberResponse, len(subs))
	for i := range subs {
		resp[i] = SubscriberResponse{
			OwnerResponse: *ownerToResponse(subs[i].UserSummary),
			SubscribedAt:  formatTime(subs[i].SubscribedAt),
		}
	}
	return resp
}
