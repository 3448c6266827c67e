package gate

import (
	"net/http"
	"time"
)

// CookieName is the single persisted onboarding flag.
const CookieName = "onboarding-completed"

// CookieMaxAge is one year.
const CookieMaxAge = 365 * 24 * time.Hour

// FlagStore is the persistence contract for the onboarding flag. Setting the
// flag when it is already set is a no-op; failures surface to the caller so it
// can retry or re-show the onboarding flow.
type FlagStore interface {
	Get(r *http.Request) bool
	Set(w http.ResponseWriter) error
	Clear(w http.ResponseWriter) error
}

// CookieStore implements FlagStore on a single boolean cookie.
type CookieStore struct {
	// Secure marks the cookie Secure; enabled in production.
	Secure bool
}

// Get reports whether the request carries the completed flag.
func (s CookieStore) Get(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	return err == nil && c.Value == "true"
}

// Set marks onboarding completed. Idempotent by construction: the cookie
// value is constant.
func (s CookieStore) Set(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "true",
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the flag.
func (s CookieStore) Clear(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Middleware applies the gate ahead of content handlers, issuing redirects
// for the two redirect states and passing ServeContent requests through.
func Middleware(cfg Config, store FlagStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := cfg.Evaluate(r.URL.Path, store.Get(r))
			switch d.Action {
			case RedirectToOnboarding, RedirectToHome:
				http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
