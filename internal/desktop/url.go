package desktop

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	ErrEmptyURL            = errors.New("empty URL")
	ErrInvalidURL          = errors.New("invalid URL format")
	ErrBlockedProtocol     = errors.New("blocked protocol")
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
	ErrDomainBlocked       = errors.New("domain blocked")
	ErrDomainNotPermitted  = errors.New("domain not in allow list")
)

var (
	blockedSchemes = []string{"javascript", "data", "vbscript", "file"}
	allowedSchemes = []string{"http", "https", "mailto", "tel", "ftp"}
)

// URLPolicy restricts which hosts a browser window may open. Empty lists
// allow everything.
type URLPolicy struct {
	AllowedDomains []string
	BlockedDomains []string
}

// Location is a validated browser address.
type Location struct {
	URL      string
	Scheme   string
	Host     string
	External bool
	// Embedded is false for relative paths and for mailto/tel links, which
	// are handed off rather than rendered in the window.
	Embedded bool
}

// ParseLocation trims and validates raw against policy. Protocol-relative
// addresses are promoted to https; relative paths are accepted as-is.
func ParseLocation(raw string, policy URLPolicy) (Location, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return Location{}, ErrEmptyURL
	}

	loc := Location{URL: clean, Embedded: true}
	switch {
	case strings.HasPrefix(clean, "//"):
		u, err := url.Parse("https:" + clean)
		if err != nil || u.Hostname() == "" {
			return Location{}, ErrInvalidURL
		}
		loc.Scheme, loc.Host, loc.External = "https", u.Hostname(), true
	case strings.HasPrefix(clean, "/"), strings.HasPrefix(clean, "./"), strings.HasPrefix(clean, "../"), !strings.Contains(clean, ":"):
		loc.Embedded = false
		return loc, nil
	default:
		u, err := url.Parse(clean)
		if err != nil || u.Scheme == "" {
			return Location{}, ErrInvalidURL
		}
		scheme := strings.ToLower(u.Scheme)
		if slices.Contains(blockedSchemes, scheme) {
			return Location{}, fmt.Errorf("%w: %s:", ErrBlockedProtocol, scheme)
		}
		if !slices.Contains(allowedSchemes, scheme) {
			return Location{}, fmt.Errorf("%w: %s:", ErrUnsupportedProtocol, scheme)
		}
		loc.Scheme, loc.Host = scheme, u.Hostname()
		loc.External = !isLocalHost(loc.Host)
		if scheme == "mailto" || scheme == "tel" {
			loc.Embedded = false
		}
	}

	if loc.Host != "" {
		if slices.Contains(policy.BlockedDomains, loc.Host) {
			return Location{}, fmt.Errorf("%w: %s", ErrDomainBlocked, loc.Host)
		}
		if len(policy.AllowedDomains) > 0 && !slices.Contains(policy.AllowedDomains, loc.Host) {
			return Location{}, fmt.Errorf("%w: %s", ErrDomainNotPermitted, loc.Host)
		}
	}
	return loc, nil
}

func isLocalHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1"
}
