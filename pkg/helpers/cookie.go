package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Manager writes and clears the session cookie. The cookie value is wrapped
// with an HMAC-SHA256 signature independent of the token's own signature,
// so tampering is detectable at the transport layer as well.
//
// Attributes: HttpOnly always; Secure iff the deployment scheme is https;
// SameSite=Strict when Secure, Lax otherwise. Clear must reuse the exact
// same attributes or browsers will keep the stale cookie.
type Manager struct {
	Name   string
	Domain string
	Secure bool
	secret []byte
}

func NewCookie(name, domain string, secure bool, secret string) *Manager {
	return &Manager{Name: name, Domain: domain, Secure: secure, secret: []byte(secret)}
}

func (m *Manager) sameSite() http.SameSite {
	if m.Secure {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

// Set writes the signed session cookie, expiring with the token.
func (m *Manager) Set(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(m.Name, m.Sign(token), maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// Clear emits an immediately-expiring cookie with matching attributes so the
// browser deletes the session cookie. Safe to call with no session present.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(m.Name, "", -1, "/", m.Domain, m.Secure, true)
}

// Sign wraps value as "payload|timestamp|mac" where the mac covers the
// cookie name, payload and timestamp.
func (m *Manager) Sign(value string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(value))
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return payload + "|" + ts + "|" + m.mac(payload, ts)
}

// Verify checks the wrapper signature and returns the embedded value.
// It returns ok=false for any malformed or tampered input.
func (m *Manager) Verify(signed string) (string, bool) {
	parts := strings.Split(signed, "|")
	if len(parts) != 3 {
		return "", false
	}
	payload, ts, mac := parts[0], parts[1], parts[2]
	if !hmac.Equal([]byte(mac), []byte(m.mac(payload, ts))) {
		return "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (m *Manager) mac(payload, ts string) string {
	h := hmac.New(sha256.New, m.secret)
	h.Write([]byte(m.Name))
	h.Write([]byte{'|'})
	h.Write([]byte(payload))
	h.Write([]byte{'|'})
	h.Write([]byte(ts))
	return hex.EncodeToString(h.Sum(nil))
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
