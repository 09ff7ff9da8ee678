package usecase

import (
	"testing"
	"time"
)

func TestIsTradingHours(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	// 2024-05-01 is a Wednesday; 2024-05-04 a Saturday.
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"wednesday open bell", time.Date(2024, 5, 1, 9, 30, 0, 0, ny), true},
		{"one second before open", time.Date(2024, 5, 1, 9, 29, 59, 0, ny), false},
		{"closing bell inclusive", time.Date(2024, 5, 1, 16, 0, 0, 0, ny), true},
		{"one second after close", time.Date(2024, 5, 1, 16, 0, 1, 0, ny), false},
		{"midday", time.Date(2024, 5, 1, 12, 15, 0, 0, ny), true},
		{"saturday midday", time.Date(2024, 5, 4, 12, 0, 0, 0, ny), false},
		{"sunday morning", time.Date(2024, 5, 5, 10, 0, 0, 0, ny), false},
		{"weekday before open", time.Date(2024, 5, 1, 8, 0, 0, 0, ny), false},
		{"weekday evening", time.Date(2024, 5, 1, 19, 30, 0, 0, ny), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTradingHours(tc.at); got != tc.want {
				t.Errorf("IsTradingHours(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}
