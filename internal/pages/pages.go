// Package pages holds the dashboard's presentational route surface: the
// protected prefixes, their titles and the JSON descriptors the SPA renders.
// There is no decision logic here; access is governed by the session guard.
package pages

import "strings"

// Descriptor is the JSON shape served for a dashboard page.
type Descriptor struct {
	Route     string `json:"route"`
	Title     string `json:"title"`
	Protected bool   `json:"protected"`
}

// ProtectedPrefixes lists every path prefix gated by the session guard.
var ProtectedPrefixes = []string{
	"/dashboard",
	"/wallet",
	"/cards",
	"/transactions",
	"/payments",
	"/settings",
	"/contact",
}

var titles = map[string]string{
	"/auth":         "Sign In",
	"/dashboard":    "Overview",
	"/wallet":       "Wallet",
	"/cards":        "Cards",
	"/transactions": "Transactions",
	"/payments":     "Payments",
	"/settings":     "Settings",
	"/contact":      "Contact Us",
}

const fallbackTitle = "Dashboard"

// Title returns the display title for a route, falling back to a generic one
// for unknown paths.
func Title(route string) string {
	if title, ok := titles[normalize(route)]; ok {
		return title
	}
	return fallbackTitle
}

// IsProtected reports whether the route falls under a guarded prefix.
func IsProtected(route string) bool {
	route = normalize(route)
	for _, prefix := range ProtectedPrefixes {
		if route == prefix || strings.HasPrefix(route, prefix+"/") {
			return true
		}
	}
	return false
}

// Describe builds the descriptor served for a route.
func Describe(route string) Descriptor {
	route = normalize(route)
	return Descriptor{Route: route, Title: Title(route), Protected: IsProtected(route)}
}

func normalize(route string) string {
	route = strings.TrimRight(route, "/")
	if route == "" {
		route = "/"
	}
	return route
}
