package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"vidtube/internal/service"
)

// CookieConfig controls the session cookies set on login and refresh.
type CookieConfig struct {
	Secure     bool
	Domain     string
	SameSite   http.SameSite
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// ParseSameSite maps a config value to a cookie mode, defaulting to Lax.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (h *Handler) setSessionCookies(c *gin.Context, pair service.TokenPair) {
	h.setCookie(c, accessTokenCookie, pair.AccessToken, h.cookies.AccessTTL)
	h.setCookie(c, refreshTokenCookie, pair.RefreshToken, h.cookies.RefreshTTL)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	h.setCookie(c, accessTokenCookie, "", -1)
	h.setCookie(c, refreshTokenCookie, "", -1)
}

// setCookie writes an httpOnly cookie; a negative ttl expires it immediately.
func (h *Handler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	maxAge := int(ttl / time.Second)
	if ttl < 0 {
		maxAge = -1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	})
}
