// Package gate implements the per-request locale router and onboarding gate:
// a small state machine that negotiates the request locale and decides whether
// to serve content, redirect into the one-time onboarding flow, or redirect
// out of it.
package gate

import (
	"strings"
)

// Action is the terminal state of one gate evaluation.
type Action int

const (
	ServeContent Action = iota
	RedirectToOnboarding
	RedirectToHome
)

func (a Action) String() string {
	switch a {
	case RedirectToOnboarding:
		return "redirect_to_onboarding"
	case RedirectToHome:
		return "redirect_to_home"
	default:
		return "serve_content"
	}
}

// Decision is the outcome of evaluating one request.
type Decision struct {
	Action Action
	// Locale is the negotiated locale, always a supported one.
	Locale string
	// Location is the redirect target for the redirect actions, empty for
	// ServeContent.
	Location string
}

// Config holds the static inputs of the state machine.
type Config struct {
	// Locales is the supported locale set; DefaultLocale is substituted when
	// the path carries no supported locale prefix. Negotiation never fails.
	Locales       []string
	DefaultLocale string

	// Bypass short-circuits the onboarding check entirely (development
	// environment without forced onboarding).
	Bypass bool

	// OnboardingPath is the locale-relative onboarding route segment.
	OnboardingPath string
}

// DefaultLocales is the supported locale set of the catalog site.
var DefaultLocales = []string{"tr", "en", "de", "es", "fr", "it", "ru", "ro", "bg", "el", "hu", "az"}

// NegotiateLocale resolves the target locale from the path prefix. An absent
// or unsupported prefix falls back to the default locale; this step always
// succeeds.
func (c Config) NegotiateLocale(path string) string {
	first := firstSegment(path)
	for _, loc := range c.Locales {
		if first == loc {
			return loc
		}
	}
	return c.DefaultLocale
}

// Evaluate runs the state machine for one request path given the persisted
// onboarding flag.
func (c Config) Evaluate(path string, onboardingDone bool) Decision {
	locale := c.NegotiateLocale(path)
	d := Decision{Action: ServeContent, Locale: locale}

	if c.Bypass {
		return d
	}

	onboarding := c.onboardingPath()
	if c.isProtected(path) && !onboardingDone {
		d.Action = RedirectToOnboarding
		d.Location = "/" + locale + "/" + onboarding
		return d
	}

	if strings.Contains(path, "/"+onboarding) && onboardingDone {
		d.Action = RedirectToHome
		d.Location = "/" + locale
		return d
	}

	return d
}

// isProtected reports whether the path is gated: not a static asset, not an
// API route, and not the onboarding flow itself.
func (c Config) isProtected(path string) bool {
	return !strings.HasPrefix(path, "/api") &&
		!strings.HasPrefix(path, "/_") &&
		!strings.Contains(path, ".") &&
		!strings.Contains(path, "/"+c.onboardingPath())
}

func (c Config) onboardingPath() string {
	if c.OnboardingPath != "" {
		return c.OnboardingPath
	}
	return "onboarding"
}

func firstSegment(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
