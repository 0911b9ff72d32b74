package services

import (
	"time"

	"code_enforce_app_go/models"
)

// Time status values computed from a case's deadline relative to a reference
// date.
const (
	TimeStatusOnTime     = "ontime"
	TimeStatusNearingDue = "nearing-due"
	TimeStatusOverdue    = "overdue"
	TimeStatusClosed     = "closed"
)

// nearingDueWindowDays is the number of days before the deadline at which a
// case starts showing as nearing-due.
const nearingDueWindowDays = 3

// TimeStatus computes a case's display status from its deadline and stored
// status. Closed cases are always "closed" regardless of dates. An
// unparsable deadline defaults to "ontime" - fail-open on bad data rather
// than flagging the case overdue.
//
// Pure function: stable for the same inputs within the same calendar day.
func TimeStatus(c *models.Case, today time.Time) string {
	if c.IsClosed() {
		return TimeStatusClosed
	}

	deadline, err := ParseDate(c.ComplianceDeadline)
	if err != nil {
		return TimeStatusOnTime
	}

	diffDays := daysUntil(StartOfDay(today), StartOfDay(deadline))
	switch {
	case diffDays < 0:
		return TimeStatusOverdue
	case diffDays <= nearingDueWindowDays:
		return TimeStatusNearingDue
	default:
		return TimeStatusOnTime
	}
}

// daysUntil returns the signed number of calendar days from 'from' to 'to',
// both already truncated to midnight.
func daysUntil(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// IsValidTimeStatus checks if the time status is valid
func IsValidTimeStatus(status string) bool {
	switch status {
	case TimeStatusOnTime, TimeStatusNearingDue, TimeStatusOverdue, TimeStatusClosed:
		return true
	}
	return false
}
