package domain

import "time"

// User represents a registered account. A user is also a channel.
type User struct {
	ID               int64
	Username         string
	Email            string
	FullName         string
	Avatar           string
	CoverImage       string
	PasswordHash     string
	RefreshTokenHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Sanitized returns a copy without credential fields.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.PasswordHash = ""
	clean.RefreshTokenHash = ""
	return &clean
}

// Summary returns the public fields embedded next to owned content.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// UserSummary is the public projection of a user.
type UserSummary struct {
	ID       int64
	Username string
	FullName string
	Avatar   string
}
