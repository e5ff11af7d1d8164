package daterange

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	dr, err := New(
		time.Date(2025, time.June, 1, 23, 45, 0, 0, loc),
		time.Date(2025, time.June, 5, 2, 0, 0, 0, loc),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !dr.Start.Equal(day(2025, time.June, 1)) {
		t.Fatalf("start = %v, want 2025-06-01T00:00:00Z", dr.Start)
	}
	if !dr.End.Equal(day(2025, time.June, 4)) {
		t.Fatalf("end = %v, want 2025-06-04T00:00:00Z", dr.End)
	}
}

func TestNewRejectsInvalidBounds(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"inverted", day(2025, time.June, 10), day(2025, time.June, 1)},
		{"equal", day(2025, time.June, 1), day(2025, time.June, 1)},
		{"zero start", time.Time{}, day(2025, time.June, 1)},
		{"zero end", day(2025, time.June, 1), time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.start, tc.end); !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	june := DateRange{Start: day(2025, time.June, 1), End: day(2025, time.June, 30)}

	cases := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", june, true},
		{"nested", DateRange{Start: day(2025, time.June, 10), End: day(2025, time.June, 20)}, true},
		{"straddles start", DateRange{Start: day(2025, time.May, 25), End: day(2025, time.June, 2)}, true},
		{"straddles end", DateRange{Start: day(2025, time.June, 29), End: day(2025, time.July, 5)}, true},
		{"adjacent after", DateRange{Start: day(2025, time.June, 30), End: day(2025, time.July, 31)}, false},
		{"adjacent before", DateRange{Start: day(2025, time.May, 1), End: day(2025, time.June, 1)}, false},
		{"disjoint", DateRange{Start: day(2025, time.August, 1), End: day(2025, time.August, 10)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := june.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// Overlap is symmetric.
			if got := tc.other.Overlaps(june); got != tc.want {
				t.Fatalf("reverse Overlaps = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestContainsDateHalfOpen(t *testing.T) {
	dr := DateRange{Start: day(2025, time.June, 1), End: day(2025, time.June, 30)}

	if !dr.ContainsDate(day(2025, time.June, 1)) {
		t.Fatal("start date must be contained")
	}
	if !dr.ContainsDate(day(2025, time.June, 29)) {
		t.Fatal("last night must be contained")
	}
	if dr.ContainsDate(day(2025, time.June, 30)) {
		t.Fatal("end date must be excluded")
	}
	if !dr.ContainsDate(time.Date(2025, time.June, 15, 18, 0, 0, 0, time.UTC)) {
		t.Fatal("time of day must be ignored")
	}
}

func TestNightsAndDays(t *testing.T) {
	dr := DateRange{Start: day(2025, time.June, 1), End: day(2025, time.June, 5)}

	if got := dr.Nights(); got != 4 {
		t.Fatalf("Nights = %d, want 4", got)
	}

	days := dr.Days()
	if len(days) != 4 {
		t.Fatalf("len(Days) = %d, want 4", len(days))
	}
	if !days[0].Equal(dr.Start) {
		t.Fatalf("first day = %v, want %v", days[0], dr.Start)
	}
	if !days[3].Equal(day(2025, time.June, 4)) {
		t.Fatalf("last day = %v, want 2025-06-04", days[3])
	}
}

func TestAdjacent(t *testing.T) {
	june := DateRange{Start: day(2025, time.June, 1), End: day(2025, time.June, 30)}
	july := DateRange{Start: day(2025, time.June, 30), End: day(2025, time.July, 31)}

	if !june.Adjacent(july) || !july.Adjacent(june) {
		t.Fatal("shared boundary must be adjacent in both directions")
	}
	if june.Adjacent(june) {
		t.Fatal("a range is not adjacent to itself")
	}
}
