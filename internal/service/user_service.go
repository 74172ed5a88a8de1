package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
	"vidtube/internal/media"
	"vidtube/internal/repository"
)

const minPasswordLength = 8

// RegisterInput carries a registration form. Image paths point at temp files.
type RegisterInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// LoginInput identifies the account by username or email.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*domain.User, TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateAccount(ctx context.Context, id int64, fullName, email string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id int64, localPath string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id int64, localPath string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	tokens TokenService
	media  media.Host
	logger logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, tokens TokenService, host media.Host, logger logrus.FieldLogger) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		media:  host,
		logger: logger,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.FullName == "" || in.Username == "" || in.Email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperr.Validation("all fields are required")
	}
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if in.AvatarPath == "" {
		return nil, apperr.Validation("avatar file is required")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, apperr.Internal("failed to register user", err)
	}
	if exists {
		return nil, apperr.Conflict("user with email or username already exists")
	}

	avatar, err := media.Upload(ctx, s.media, in.AvatarPath)
	if err != nil {
		return nil, apperr.Internal("failed to upload avatar", err)
	}
	var coverURL string
	if in.CoverImagePath != "" {
		cover, err := media.Upload(ctx, s.media, in.CoverImagePath)
		if err != nil {
			discardUploads(ctx, s.media, s.logger, avatar.URL)
			return nil, apperr.Internal("failed to upload cover image", err)
		}
		coverURL = cover.URL
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		discardUploads(ctx, s.media, s.logger, avatar.URL, coverURL)
		return nil, apperr.Internal("failed to register user", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		Avatar:       avatar.URL,
		CoverImage:   coverURL,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		discardUploads(ctx, s.media, s.logger, avatar.URL, coverURL)
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Conflict("user with email or username already exists")
		}
		return nil, apperr.Internal("failed to register user", err)
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return user.Sanitized(), nil
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*domain.User, TokenPair, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" && email == "" {
		return nil, TokenPair{}, apperr.Validation("username or email is required")
	}
	if in.Password == "" {
		return nil, TokenPair{}, apperr.Validation("password is required")
	}

	user, err := s.users.FindByLogin(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, apperr.Unauthorized("invalid user credentials")
		}
		return nil, TokenPair{}, apperr.Internal("failed to log in", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, TokenPair{}, apperr.Unauthorized("invalid user credentials")
	}

	pair, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user.Sanitized(), pair, nil
}

func (s *userService) Logout(ctx context.Context, userID int64) error {
	return s.tokens.Revoke(ctx, userID)
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperr.Validation("old and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return apperr.Validation("password must be at least 8 characters")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return repoError(err, "user not found", "failed to change password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperr.Validation("invalid old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to change password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return repoError(err, "user not found", "failed to change password")
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "user not found", "failed to load user")
	}
	return user.Sanitized(), nil
}

func (s *userService) UpdateAccount(ctx context.Context, id int64, fullName, email string) (*domain.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, apperr.Validation("full name and email are required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateAccount(ctx, id, fullName, email)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperr.Conflict("email is already in use")
		}
		return nil, repoError(err, "user not found", "failed to update account")
	}
	return user.Sanitized(), nil
}

func (s *userService) UpdateAvatar(ctx context.Context, id int64, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apperr.Validation("avatar file is missing")
	}
	return s.replaceImage(ctx, id, localPath, "avatar", s.users.UpdateAvatar)
}

func (s *userService) UpdateCoverImage(ctx context.Context, id int64, localPath string) (*domain.User, error) {
	if localPath == "" {
		return nil, apperr.Validation("cover image file is missing")
	}
	return s.replaceImage(ctx, id, localPath, "cover image", s.users.UpdateCoverImage)
}

func (s *userService) replaceImage(
	ctx context.Context,
	id int64,
	localPath, label string,
	update func(ctx context.Context, id int64, url string) (*domain.User, error),
) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "user not found", "failed to update "+label)
	}

	asset, err := media.Upload(ctx, s.media, localPath)
	if err != nil {
		return nil, apperr.Internal("failed to upload "+label, err)
	}
	user, err := update(ctx, id, asset.URL)
	if err != nil {
		discardUploads(ctx, s.media, s.logger, asset.URL)
		return nil, repoError(err, "user not found", "failed to update "+label)
	}

	previous := current.Avatar
	if label != "avatar" {
		previous = current.CoverImage
	}
	if previous != "" {
		if err := s.media.Delete(ctx, previous); err != nil {
			s.logger.WithError(err).WithField("user_id", id).Warnf("delete previous %s", label)
		}
	}
	return user.Sanitized(), nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.Validation("email is invalid")
	}
	return nil
}
