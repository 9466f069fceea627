package httpx

import (
	"net/http"
	"time"
)

const (
	// SessionCookie carries the signed session token (httpOnly).
	SessionCookie = "session-token"

	// AuthenticatedCookie is readable by the browser so the UI can tell it
	// is logged in without seeing the token.
	AuthenticatedCookie = "authenticated"
)

// SetSessionCookies issues the session cookie pair.
func SetSessionCookies(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     AuthenticatedCookie,
		Value:    "true",
		Path:     "/",
		Expires:  expires,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(w http.ResponseWriter, secure bool) {
	for _, name := range []string{SessionCookie, AuthenticatedCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name == SessionCookie,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
