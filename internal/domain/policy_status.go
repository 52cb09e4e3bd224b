package domain

import "time"

// PolicyStatus is the lifecycle status of a policy derived from its dates
type PolicyStatus string

const (
	PolicyStatusActive       PolicyStatus = "active"
	PolicyStatusExpiringSoon PolicyStatus = "expiring-soon"
	PolicyStatusExpired      PolicyStatus = "expired"
)

// ExpiringSoonDays is the inclusive window (in whole days before end date) for expiring-soon
const ExpiringSoonDays = 30

// IsValidPolicyStatus checks if the given status is one of the known statuses
func IsValidPolicyStatus(status string) bool {
	switch PolicyStatus(status) {
	case PolicyStatusActive, PolicyStatusExpiringSoon, PolicyStatusExpired:
		return true
	}
	return false
}

// ClassifyStatus derives a policy status from its end date and now.
// startDate is accepted but not consulted: a policy that has not started yet
// is still reported by its distance to expiry. A zero now means time.Now().
func ClassifyStatus(startDate, endDate, now time.Time) PolicyStatus {
	_ = startDate
	if now.IsZero() {
		now = time.Now()
	}

	daysUntilExpiry := WholeDaysBetween(now, endDate)
	switch {
	case daysUntilExpiry < 0:
		return PolicyStatusExpired
	case daysUntilExpiry <= ExpiringSoonDays:
		return PolicyStatusExpiringSoon
	default:
		return PolicyStatusActive
	}
}

// WholeDaysBetween returns (to - from) in whole days, truncated toward zero
func WholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
