package domain

import "time"

type Playlist struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	VideoCount  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Playlist) OwnedBy() int64 { return p.OwnerID }

// PlaylistDetails is a playlist with its owner and videos in insertion order.
type PlaylistDetails struct {
	Playlist
	Owner  UserSummary
	Videos []VideoWithOwner
}
