package usecase

import "time"

// IsTradingHours reports whether t falls within regular trading hours:
// Monday through Friday, 09:30:00 to 16:00:00 inclusive of both endpoints.
// t must already be exchange-local. Exchange holidays are not accounted for.
func IsTradingHours(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	if minutes < 9*60+30 || minutes > 16*60 {
		return false
	}
	if minutes == 16*60 && (t.Second() > 0 || t.Nanosecond() > 0) {
		return false
	}
	return true
}
