package geometry

import (
	"errors"
	"testing"
	"time"
)

var testContainer = GridContainer{
	WidthPx:   700,
	HeightPx:  560,
	DayCount:  7,
	StartHour: 7,
	EndHour:   21,
}

// Понедельник 2025-01-06 07:00 UTC
var testAnchor = time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC)

func TestContainerRatios(t *testing.T) {
	if got := testContainer.DayPx(); got != 100 {
		t.Errorf("DayPx() = %d, want 100", got)
	}
	if got := testContainer.HalfHourPx(); got != 20 {
		t.Errorf("HalfHourPx() = %d, want 20", got)
	}
	if got := testContainer.HalfHourSlots(); got != 28 {
		t.Errorf("HalfHourSlots() = %d, want 28", got)
	}
}

func TestDecode(t *testing.T) {
	// Ячейка x=250 y=100 h=60: среда, 2ч30м от начала сетки, 90 минут.
	// С якорем Пн 07:00 и поправкой -1ч старт — среда 08:30.
	decoded := Decode(testContainer, 250, 100, 60, 0, testAnchor)

	wantStart := time.Date(2025, 1, 8, 8, 30, 0, 0, time.UTC)
	if !decoded.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", decoded.Start, wantStart)
	}
	if decoded.Duration != 90*time.Minute {
		t.Errorf("Duration = %v, want 90m", decoded.Duration)
	}
	if decoded.WeekdayOffset != 2 {
		t.Errorf("WeekdayOffset = %d, want 2", decoded.WeekdayOffset)
	}
}

func TestDecodeWeekDelta(t *testing.T) {
	base := Decode(testContainer, 250, 100, 60, 0, testAnchor)
	next := Decode(testContainer, 250, 100, 60, 2, testAnchor)

	if want := base.Start.AddDate(0, 0, 14); !next.Start.Equal(want) {
		t.Errorf("Start with delta 2 = %v, want %v", next.Start, want)
	}
	if next.Duration != base.Duration {
		t.Errorf("Duration must not depend on week delta")
	}
}

func TestDecodeIdempotent(t *testing.T) {
	first := Decode(testContainer, 250, 100, 60, 1, testAnchor)
	second := Decode(testContainer, 250, 100, 60, 1, testAnchor)

	if !first.Start.Equal(second.Start) || first.Duration != second.Duration || first.WeekdayOffset != second.WeekdayOffset {
		t.Errorf("Decode is not idempotent: %+v != %+v", first, second)
	}
}

func TestDecodedCheck(t *testing.T) {
	tests := []struct {
		name    string
		x, y, h int
		wantErr bool
	}{
		{"valid", 250, 100, 60, false},
		{"weekday past grid", 1400, 100, 60, true},
		{"negative x", -100, 100, 60, true},
		{"zero duration", 250, 100, 10, true},
	}

	for _, tt := range tests {
		decoded := Decode(testContainer, tt.x, tt.y, tt.h, 0, testAnchor)
		err := decoded.Check(testContainer)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Check() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrGeometryOutOfRange) {
			t.Errorf("%s: error must wrap ErrGeometryOutOfRange, got %v", tt.name, err)
		}
	}
}

func TestAnchorMonday(t *testing.T) {
	wantMonday := time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"monday itself", time.Date(2025, 1, 6, 0, 30, 0, 0, time.UTC)},
		{"wednesday", time.Date(2025, 1, 8, 15, 45, 0, 0, time.UTC)},
		{"sunday", time.Date(2025, 1, 12, 23, 59, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := AnchorMonday(tt.now)
		if !got.Equal(wantMonday) {
			t.Errorf("%s: AnchorMonday(%v) = %v, want %v", tt.name, tt.now, got, wantMonday)
		}
	}
}

func TestISOWeeksInYear(t *testing.T) {
	if got := ISOWeeksInYear(2025); got != 52 {
		t.Errorf("ISOWeeksInYear(2025) = %d, want 52", got)
	}
	if got := ISOWeeksInYear(2026); got != 53 {
		t.Errorf("ISOWeeksInYear(2026) = %d, want 53", got)
	}
}

func TestNormalizeISOWeek(t *testing.T) {
	tests := []struct {
		week, year, want int
	}{
		{38, 2025, 38},
		{52, 2025, 52},
		{53, 2025, 1}, // 2025 имеет 52 недели: переполнение в новый год
		{55, 2025, 3},
		{53, 2026, 53}, // 2026 имеет 53 недели: без переполнения
		{54, 2026, 1},
	}

	for _, tt := range tests {
		if got := NormalizeISOWeek(tt.week, tt.year); got != tt.want {
			t.Errorf("NormalizeISOWeek(%d, %d) = %d, want %d", tt.week, tt.year, got, tt.want)
		}
	}
}
