package middleware

import (
	"net/http"
	"time"
)

// SessionCookie reads and writes the cookie that carries the session token.
type SessionCookie struct {
	name   string
	secure bool
}

func NewSessionCookie(name string, secure bool) *SessionCookie {
	return &SessionCookie{name: name, secure: secure}
}

// Set stores the token for ttl.
func (c *SessionCookie) Set(w http.ResponseWriter, token string, ttl time.Duration) {
	c.write(w, token, int(ttl.Seconds()))
}

// Clear tells the browser to drop the cookie.
func (c *SessionCookie) Clear(w http.ResponseWriter) {
	c.write(w, "", -1)
}

// Token returns the cookie value, or "" when absent.
func (c *SessionCookie) Token(r *http.Request) string {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (c *SessionCookie) write(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
