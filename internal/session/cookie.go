package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	CookieName = "__oauth_txn"

	// TTL bounds one login round trip; anything slower restarts.
	TTL = 5 * time.Minute
)

// Codec signs and verifies the transaction cookie value so a client
// cannot substitute another flow's identifier.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) sign(id string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Encode produces the cookie value "id.signature".
func (c *Codec) Encode(id string) string {
	return id + "." + c.sign(id)
}

// Decode verifies a cookie value and returns the transaction ID.
// Tampered or malformed values return ok=false.
func (c *Codec) Decode(value string) (id string, ok bool) {
	idPart, sig, found := strings.Cut(value, ".")
	if !found || idPart == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(idPart))) {
		return "", false
	}
	return idPart, true
}

// SetCookie issues the login-transaction cookie to the client.
func SetCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL.Seconds()),
	})
}

// ClearCookie removes the login-transaction cookie once consumed.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
