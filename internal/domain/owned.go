package domain

// Owned is implemented by content that only its owner may mutate.
type Owned interface {
	OwnedBy() int64
}
