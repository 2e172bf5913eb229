package timeutil

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestDayOfConvertsToLocationBeforeTruncating(t *testing.T) {
	ny := time.FixedZone("ET", -5*60*60)
	// 02:00 UTC on Jan 3 is still Jan 2 on the east coast.
	instant := time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC)

	if got := DayOf(instant, ny); got != NewDay(2024, time.January, 2) {
		t.Fatalf("expected 2024-01-02 in ET, got %s", got)
	}
	if got := DayOf(instant, time.UTC); got != NewDay(2024, time.January, 3) {
		t.Fatalf("expected 2024-01-03 in UTC, got %s", got)
	}
}

func TestDayOfIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 9, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)
	if DayOf(morning, nil) != DayOf(night, nil) {
		t.Fatalf("expected same day for %s and %s", morning, night)
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	d, err := ParseDay("2024-10-22")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if d.String() != "2024-10-22" {
		t.Fatalf("expected round trip, got %s", d)
	}
	if _, err := ParseDay("10/22/2024"); err == nil {
		t.Fatal("expected error for non-canonical layout")
	}
}

func TestNewDayNormalizes(t *testing.T) {
	if got := NewDay(2024, time.February, 30); got.String() != "2024-03-01" {
		t.Fatalf("expected normalization to 2024-03-01, got %s", got)
	}
}

func TestDayBeforeAndAddDays(t *testing.T) {
	d := NewDay(2024, time.December, 31)
	next := d.AddDays(1)
	if next.String() != "2025-01-01" {
		t.Fatalf("expected year rollover, got %s", next)
	}
	if !d.Before(next) || next.Before(d) || d.Before(d) {
		t.Fatalf("unexpected ordering between %s and %s", d, next)
	}
}

func TestDayIsZero(t *testing.T) {
	var d Day
	if !d.IsZero() {
		t.Fatal("expected zero day")
	}
	if NewDay(2024, time.January, 1).IsZero() {
		t.Fatal("expected non-zero day")
	}
}

func TestDayJSONAsValueAndMapKey(t *testing.T) {
	d := NewDay(2024, time.April, 5)
	payload := map[Day]Day{d: d.AddDays(1)}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `{"2024-04-05":"2024-04-06"}` {
		t.Fatalf("unexpected json %s", raw)
	}

	var decoded map[Day]Day
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded[d] != d.AddDays(1) {
		t.Fatalf("unexpected decoded map %+v", decoded)
	}
}

func TestResolveLocation(t *testing.T) {
	if loc := ResolveLocation("UTC"); loc == nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC, got %v", loc)
	}
	if loc := ResolveLocation("Not/AZone"); loc != nil {
		t.Fatalf("expected nil for invalid timezone, got %v", loc)
	}
	if loc := ResolveLocation(""); loc != nil {
		t.Fatalf("expected nil for empty timezone")
	}
}
