package utils

import (
	"testing"
	"time"
)

func TestISTDateString(t *testing.T) {
	// 20:00 UTC is 01:30 the next day in IST
	late := time.Date(2025, time.June, 23, 20, 0, 0, 0, time.UTC)
	if got := ISTDateString(late); got != "2025-06-24" {
		t.Errorf("Expected 2025-06-24 for 20:00 UTC, got %s", got)
	}

	// 10:00 UTC stays on the same IST day
	midday := time.Date(2025, time.June, 23, 10, 0, 0, 0, time.UTC)
	if got := ISTDateString(midday); got != "2025-06-23" {
		t.Errorf("Expected 2025-06-23 for 10:00 UTC, got %s", got)
	}
}

func TestDaysSinceBase(t *testing.T) {
	now := time.Date(2025, time.June, 28, 12, 0, 0, 0, IST)
	if got := DaysSinceBase("2025-06-23", now); got != 5 {
		t.Errorf("Expected 5 days since base, got %d", got)
	}
}

func TestDaysSinceBaseSameDay(t *testing.T) {
	now := time.Date(2025, time.June, 23, 0, 30, 0, 0, IST)
	if got := DaysSinceBase("2025-06-23", now); got != 0 {
		t.Errorf("Expected 0 days on the base date, got %d", got)
	}
}

func TestDaysSinceBaseNeverNegative(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, IST)
	if got := DaysSinceBase("2025-06-23", now); got != 0 {
		t.Errorf("Expected 0 for a pre-base date, got %d", got)
	}
}

func TestDaysSinceBaseCrossesISTMidnight(t *testing.T) {
	// 19:00 UTC on June 27 is already June 28 in IST
	now := time.Date(2025, time.June, 27, 19, 0, 0, 0, time.UTC)
	if got := DaysSinceBase("2025-06-23", now); got != 5 {
		t.Errorf("Expected 5 days across the IST midnight boundary, got %d", got)
	}
}
