package service

import "time"

// ValidFreshness reports whether token is one of the supported freshness
// windows. The HTTP boundary rejects anything else, so the lenient default
// in CutoffFor is never reachable from a client request.
func ValidFreshness(token string) bool {
	switch token {
	case "24h", "7d", "30d":
		return true
	}
	return false
}

// CutoffFor computes the recency cutoff for a freshness window, measured
// from now (wall-clock). Unrecognized tokens return now unchanged.
func CutoffFor(freshness string, now time.Time) time.Time {
	switch freshness {
	case "24h":
		return now.AddDate(0, 0, -1)
	case "7d":
		return now.AddDate(0, 0, -7)
	case "30d":
		return now.AddDate(0, 0, -30)
	}
	return now
}

// FreshnessLabel humanizes a freshness token for report signals. Unknown
// tokens echo through raw.
func FreshnessLabel(freshness string) string {
	switch freshness {
	case "24h":
		return "Last 24 hours"
	case "7d":
		return "Last 7 days"
	case "30d":
		return "Last 30 days"
	}
	return freshness
}
