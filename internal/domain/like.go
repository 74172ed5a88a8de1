package domain

import (
	"fmt"
	"time"
)

// LikeKind tags the entity a like points at.
type LikeKind string

const (
	LikeVideo         LikeKind = "video"
	LikeComment       LikeKind = "comment"
	LikeCommunityPost LikeKind = "community_post"
)

// LikeTarget identifies exactly one likeable entity.
type LikeTarget struct {
	Kind LikeKind
	ID   int64
}

// NewLikeTarget validates kind and id.
func NewLikeTarget(kind LikeKind, id int64) (LikeTarget, error) {
	switch kind {
	case LikeVideo, LikeComment, LikeCommunityPost:
	default:
		return LikeTarget{}, fmt.Errorf("unknown like kind %q", kind)
	}
	if id <= 0 {
		return LikeTarget{}, fmt.Errorf("invalid like target id %d", id)
	}
	return LikeTarget{Kind: kind, ID: id}, nil
}

type Like struct {
	ID        int64
	LikedBy   int64
	Target    LikeTarget
	CreatedAt time.Time
}
