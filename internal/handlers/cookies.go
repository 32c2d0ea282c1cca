package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie - параметры cookie сессии
type SessionCookie struct {
	Name     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// ParseSameSite: "none", "lax", "strict"; по умолчанию None (SPA на другом домене)
func ParseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteNoneMode
	}
}

// Set ставит HttpOnly cookie с Max-Age = время жизни сессии
func (sc SessionCookie) Set(c *gin.Context, token string, expiresAt time.Time, now time.Time) {
	maxAge := int(expiresAt.Sub(now).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(c.Writer, sc.build(token, maxAge))
}

// Clear удаляет cookie (Max-Age < 0)
func (sc SessionCookie) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, sc.build("", -1))
}

func (sc SessionCookie) build(value string, maxAge int) *http.Cookie {
	sameSite := sc.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     sc.Name,
		Value:    value,
		Path:     "/",
		Domain:   sc.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		// браузеры отбрасывают SameSite=None без Secure
		Secure:   sc.Secure || sameSite == http.SameSiteNoneMode,
		SameSite: sameSite,
	}
}
