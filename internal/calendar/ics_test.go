package calendar

import (
	"strings"
	"testing"
	"time"

	"ut1-planning-parser/internal/scraper"
)

func testEvents() []scraper.CalendarEvent {
	return []scraper.CalendarEvent{
		{
			Start:      time.Date(2025, 9, 17, 8, 30, 0, 0, time.UTC),
			Duration:   90 * time.Minute,
			Course:     "DROIT CIVIL, L2",
			Room:       "Salle AR104",
			Instructor: "DUPONT J.",
			Groups:     []string{"Groupe A"},
			Notes:      "CM amphi",
		},
		{
			Start:    time.Date(2025, 9, 18, 13, 0, 0, 0, time.UTC),
			Duration: 2 * time.Hour,
			Course:   "ANGLAIS",
			Room:     "Salle MH101",
		},
	}
}

func newTestAssembler() *Assembler {
	a := NewAssembler("-//test//planning//FR", "ut1-planning")
	a.now = func() time.Time { return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestBuild(t *testing.T) {
	ics := newTestAssembler().Build(testEvents())

	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"PRODID:-//test//planning//FR\r\n",
		"BEGIN:VEVENT\r\n",
		"DTSTART:20250917T083000Z\r\n",
		"DTEND:20250917T100000Z\r\n",
		"DTSTART:20250918T130000Z\r\n",
		"SUMMARY:DROIT CIVIL\\, L2\r\n", // запятая экранируется по RFC 5545
		"LOCATION:Salle AR104\r\n",
		"CATEGORIES:Groupe A\r\n",
		"DESCRIPTION:DUPONT J.\\nGroupe A\\nCM amphi\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("calendar missing %q", want)
		}
	}

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("got %d VEVENT blocks, want 2", got)
	}
}

func TestBuildDeterministicUIDs(t *testing.T) {
	a := newTestAssembler()

	first := a.Build(testEvents())
	second := a.Build(testEvents())

	if first != second {
		t.Errorf("Build is not deterministic for identical input")
	}
	if !strings.Contains(first, "@ut1-planning\r\n") {
		t.Errorf("UID domain missing")
	}
}

func TestBuildEmpty(t *testing.T) {
	ics := newTestAssembler().Build(nil)

	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Errorf("empty input must produce no VEVENT blocks")
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Errorf("calendar must still be well-formed")
	}
}
