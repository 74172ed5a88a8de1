package domain

import "time"

type Video struct {
	ID          int64
	OwnerID     int64
	VideoFile   string
	Thumbnail   string
	Title       string
	Description string
	Duration    float64
	Views       int64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (v *Video) OwnedBy() int64 { return v.OwnerID }

// VisibleTo reports whether viewerID may see the video. Drafts are owner-only.
func (v *Video) VisibleTo(viewerID int64) bool {
	return v.IsPublished || v.OwnerID == viewerID
}

// VideoWithOwner is a video joined with its owner's public fields.
type VideoWithOwner struct {
	Video
	Owner UserSummary
}

// LikedVideo is a video the user liked, with the time of the like.
type LikedVideo struct {
	VideoWithOwner
	LikedAt time.Time
}

// VideoSort is a sortable video column.
type VideoSort string

const (
	SortByCreatedAt VideoSort = "createdAt"
	SortByViews     VideoSort = "views"
	SortByDuration  VideoSort = "duration"
	SortByTitle     VideoSort = "title"
)

// Valid reports whether s is an allowed sort column.
func (s VideoSort) Valid() bool {
	switch s {
	case SortByCreatedAt, SortByViews, SortByDuration, SortByTitle:
		return true
	}
	return false
}

// VideoFilter narrows a video listing.
type VideoFilter struct {
	Page      Page
	Query     string
	OwnerID   int64
	SortBy    VideoSort
	Ascending bool
	// ViewerID sees their own unpublished videos in listings.
	ViewerID int64
}
