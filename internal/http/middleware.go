package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/domain"
)

const (
	ctxLoggerKey = "logger"
	ctxUserKey   = "currentUser"

	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
	requestIDHeader    = "X-Request-ID"
)

// logRequests tags each request with an id and logs it when it completes.
func logRequests(base logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		entry := base.WithField("request_id", reqID)
		c.Set(ctxLoggerKey, entry)

		c.Next()

		status := c.Writer.Status()
		entry = entry.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    status,
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request completed")
		case status >= http.StatusBadRequest:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

func requestLogger(c *gin.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := c.Get(ctxLoggerKey); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return fallback
}

// recoverJSON answers panics with the error envelope instead of an empty 500.
func (h *Handler) recoverJSON() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		requestLogger(c, h.logger).
			WithField("stack", string(debug.Stack())).
			Errorf("panic: %v", recovered)
		h.writeError(c, apperr.Internal("internal server error", fmt.Errorf("panic: %v", recovered)))
	})
}

// requireAuth verifies the access token and attaches the sanitized user.
// The accessToken cookie takes precedence over the Authorization header.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := accessTokenFrom(c)
		if raw == "" {
			h.writeError(c, apperr.Unauthorized("unauthorized request"))
			return
		}

		ctx := c.Request.Context()
		identity, err := h.tokens.VerifyAccess(ctx, raw)
		if err != nil {
			h.writeError(c, err)
			return
		}
		user, err := h.users.GetByID(ctx, identity.UserID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				h.writeError(c, apperr.Unauthorized("invalid access token"))
				return
			}
			h.writeError(c, err)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxLoggerKey, requestLogger(c, h.logger).WithField("user_id", user.ID))
		c.Next()
	}
}

func accessTokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(accessTokenCookie); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// currentUser is only valid behind requireAuth.
func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// rateLimit throttles by client IP. A limiter backend failure lets the request through.
func (h *Handler) rateLimit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter == nil {
			c.Next()
			return
		}
		allowed, err := h.limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			requestLogger(c, h.logger).WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			respondError(c, http.StatusTooManyRequests, "too many requests, try again later", nil)
			return
		}
		c.Next()
	}
}

// limitBody caps request bodies for upload routes.
func (h *Handler) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.maxUploadBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
		}
		c.Next()
	}
}
