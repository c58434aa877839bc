package utils

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "utc midday",
			in:   time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
			want: "2024-01-05",
		},
		{
			name: "utc last second",
			in:   time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC),
			want: "2024-01-05",
		},
		{
			name: "local time ahead of utc falls on previous utc day",
			in:   time.Date(2024, 1, 6, 8, 0, 0, 0, tokyo),
			want: "2024-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.in); got != tt.want {
				t.Errorf("DayKey(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	in := time.Date(2024, 3, 10, 17, 45, 12, 500, time.UTC)

	start := StartOfDay(in)
	if want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", start, want)
	}

	end := EndOfDay(in)
	if want := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC); !end.Equal(want) {
		t.Errorf("EndOfDay() = %v, want %v", end, want)
	}
}

func TestDaysBetween(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day different hours",
			a:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "late evening to early morning counts as one day",
			a:    time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "seven days",
			a:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC),
			want: 7,
		},
		{
			name: "negative",
			a:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			want: -7,
		},
		{
			name: "across a daylight saving change",
			a:    time.Date(2024, 3, 9, 12, 0, 0, 0, newYork),
			b:    time.Date(2024, 3, 11, 12, 0, 0, 0, newYork),
			want: 2,
		},
		{
			name: "leap day",
			a:    time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		day     string
		n       int
		want    string
		wantErr bool
	}{
		{day: "2024-01-01", n: -1, want: "2023-12-31"},
		{day: "2024-02-28", n: 1, want: "2024-02-29"},
		{day: "2024-02-29", n: 1, want: "2024-03-01"},
		{day: "2024-01-05", n: 0, want: "2024-01-05"},
		{day: "not-a-date", n: 1, wantErr: true},
	}

	for _, tt := range tests {
		got, err := AddDays(tt.day, tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("AddDays(%q, %d) error = %v, wantErr %v", tt.day, tt.n, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.day, tt.n, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-05", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{in: "2024-01-05T10:30:00Z", want: time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)},
		{in: "2024-01-05T10:30:00+02:00", want: time.Date(2024, 1, 5, 8, 30, 0, 0, time.UTC)},
		{in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
