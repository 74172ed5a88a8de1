package domain

import "time"

type Comment struct {
	ID        int64
	VideoID   int64
	OwnerID   int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) OwnedBy() int64 { return c.OwnerID }

type CommentWithOwner struct {
	Comment
	Owner UserSummary
}
