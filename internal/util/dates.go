package util

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted in query strings and exports
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

// ParseDate accepts a calendar date (midnight UTC) or a full RFC 3339 timestamp
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseOptionalDate returns nil for an empty value
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseRangeEnd parses the upper bound of a range. A bare calendar date covers
// the whole day, so "2024-03-31" includes policies starting that afternoon.
func ParseRangeEnd(value string) (*time.Time, error) {
	t, err := ParseOptionalDate(value)
	if err != nil || t == nil {
		return t, err
	}
	if len(strings.TrimSpace(value)) == len(DateLayout) {
		end := EndOfDay(*t)
		return &end, nil
	}
	return t, nil
}

// EndOfDay returns the last nanosecond of t's calendar day
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}
