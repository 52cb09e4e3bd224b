package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-31", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), false},
		{" 2024-03-31 ", time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-31T10:30:00+05:30", time.Date(2024, 3, 31, 5, 0, 0, 0, time.UTC), false},
		{"31/03/2024", time.Time{}, true},
		{"2024-02-30", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.value)
		if tt.wantErr {
			if err != ErrInvalidDate {
				t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.value, err)
			}
			continue
		}
		if err != nil || !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, %v, want %v", tt.value, got, err, tt.want)
		}
	}
}

func TestParseOptionalDate_Empty(t *testing.T) {
	got, err := ParseOptionalDate("  ")
	if got != nil || err != nil {
		t.Errorf("ParseOptionalDate(blank) = %v, %v, want nil, nil", got, err)
	}
}

func TestParseRangeEnd(t *testing.T) {
	got, err := ParseRangeEnd("2024-03-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseRangeEnd(date) = %v, want %v", got, want)
	}

	// Explicit timestamps are taken as given
	got, err = ParseRangeEnd("2024-03-31T12:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseRangeEnd(timestamp) = %v", got)
	}
}

func TestEndOfDay_MonthBoundary(t *testing.T) {
	got := EndOfDay(time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC))
	if got.Month() != time.February || got.Day() != 29 || got.Hour() != 23 {
		t.Errorf("EndOfDay(leap day) = %v", got)
	}
}
