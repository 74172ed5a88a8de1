package domain

import "time"

// CommunityPost is a short text post published on a channel.
type CommunityPost struct {
	ID        int64
	OwnerID   int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *CommunityPost) OwnedBy() int64 { return p.OwnerID }

type CommunityPostWithOwner struct {
	CommunityPost
	Owner UserSummary
}
