package http

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vidtube/internal/domain"
	"vidtube/internal/media"
	"vidtube/internal/ratelimit"
	"vidtube/internal/repository"
	"vidtube/internal/repository/sqlite"
	"vidtube/internal/service"
	"vidtube/internal/token"
)

const testPassword = "password123"

type testServer struct {
	router    *gin.Engine
	db        *sql.DB
	users     repository.UserRepository
	videos    repository.VideoRepository
	comments  repository.CommentRepository
	tokens    service.TokenService
	uploadDir string
}

func newTestServer(t *testing.T, limiter ratelimit.Limiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(db, nil))

	manager, err := token.NewManager(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	})
	require.NoError(t, err)

	host, err := media.NewDiskHost(t.TempDir(), "http://localhost/media")
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	users := sqlite.NewUserRepository(db)
	videos := sqlite.NewVideoRepository(db)
	comments := sqlite.NewCommentRepository(db)
	likes := sqlite.NewLikeRepository(db)
	posts := sqlite.NewCommunityPostRepository(db)
	history := sqlite.NewWatchHistoryRepository(db)
	channels := sqlite.NewChannelRepository(db)

	tokens := service.NewTokenService(users, manager, service.RefreshReuse, logger)
	uploadDir := t.TempDir()

	h := NewHandler(Services{
		Users:          service.NewUserService(users, tokens, host, logger),
		Tokens:         tokens,
		Videos:         service.NewVideoService(videos, history, host, "http://localhost/media/default.png", logger),
		Comments:       service.NewCommentService(comments, videos),
		Likes:          service.NewLikeService(likes, videos, comments, posts),
		Subscriptions:  service.NewSubscriptionService(sqlite.NewSubscriptionRepository(db), users),
		Playlists:      service.NewPlaylistService(sqlite.NewPlaylistRepository(db), videos, users),
		CommunityPosts: service.NewCommunityPostService(posts, users),
		Dashboard:      service.NewDashboardService(channels, videos),
		Graph:          service.NewSocialGraph(channels, history, likes),
	}, Options{
		AllowedOrigins: []string{"http://localhost:5173"},
		Cookies:        CookieConfig{Secure: true, SameSite: http.SameSiteLaxMode, AccessTTL: 15 * time.Minute, RefreshTTL: 24 * time.Hour},
		UploadDir:      uploadDir,
		MaxUploadBytes: 8 << 20,
		Limiter:        limiter,
		Logger:         logger,
	})

	router := gin.New()
	h.RegisterRoutes(router)

	return &testServer{
		router:    router,
		db:        db,
		users:     users,
		videos:    videos,
		comments:  comments,
		tokens:    tokens,
		uploadDir: uploadDir,
	}
}

func (s *testServer) createUser(t *testing.T, username string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		Avatar:       "http://localhost/media/" + username + ".png",
		PasswordHash: string(hash),
	}
	_, err = s.users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func (s *testServer) accessToken(t *testing.T, userID int64) string {
	t.Helper()
	pair, err := s.tokens.IssuePair(context.Background(), userID)
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testServer) createVideo(t *testing.T, ownerID int64, title string) *domain.Video {
	t.Helper()
	video := &domain.Video{
		OwnerID:     ownerID,
		VideoFile:   "http://localhost/media/" + title + ".mp4",
		Thumbnail:   "http://localhost/media/default.png",
		Title:       title,
		Description: "about " + title,
		IsPublished: true,
	}
	_, err := s.videos.Create(context.Background(), video)
	require.NoError(t, err)
	return video
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// authed sends a request carrying the bearer token.
func (s *testServer) authed(method, target, accessToken string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req)
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	env := decode(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
