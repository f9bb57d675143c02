package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "token"

// sessionCookie finds the backend's session cookie in the jar.
func (c *Client) sessionCookie() (string, bool) {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == sessionCookieName {
			return cookie.Value, cookie.Value != ""
		}
	}
	return "", false
}

// HasSession reports whether a session cookie is currently held.
func (c *Client) HasSession() bool {
	_, ok := c.sessionCookie()
	return ok
}

// SessionExpiresAt decodes the JWT session cookie without verifying it and
// reports its expiry. Signature validation stays on the server; the client
// only reads the claim to hint at expiring sessions.
func (c *Client) SessionExpiresAt() (time.Time, bool) {
	value, ok := c.sessionCookie()
	if !ok {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
