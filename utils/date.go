package utils

import "time"

// IST is the fixed timezone the daily quiz rotates in, UTC+5:30
var IST = time.FixedZone("IST", 5*3600+30*60)

// ISTDateString formats a time as YYYY-MM-DD in IST
func ISTDateString(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

// DaysSinceBase returns the whole days elapsed from an IST base date
// ("YYYY-MM-DD") to the IST calendar day of now. Never negative.
func DaysSinceBase(baseDate string, now time.Time) int {
	base, err := time.ParseInLocation("2006-01-02", baseDate, IST)
	if err != nil {
		return 0
	}

	today, err := time.ParseInLocation("2006-01-02", ISTDateString(now), IST)
	if err != nil {
		return 0
	}

	days := int(today.Sub(base).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
