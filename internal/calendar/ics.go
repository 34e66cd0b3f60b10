package calendar

import (
	"fmt"
	"strings"
	"time"

	"ut1-planning-parser/internal/checksum"
	"ut1-planning-parser/internal/scraper"
)

// Assembler собирает из слитого списка событий один VCALENDAR (RFC 5545).
// Это тонкий завершающий шаг: сериализация и доставка файла живут в
// publish, не здесь.
type Assembler struct {
	prodID    string
	uidDomain string
	uids      *checksum.Generator
	now       func() time.Time
}

func NewAssembler(prodID, uidDomain string) *Assembler {
	return &Assembler{
		prodID:    prodID,
		uidDomain: uidDomain,
		uids:      checksum.NewGenerator(),
		now:       time.Now,
	}
}

// Build возвращает содержимое .ics файла для списка событий.
func (a *Assembler) Build(events []scraper.CalendarEvent) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", a.prodID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(a.now().UTC())

	for _, evt := range events {
		ics.WriteString("BEGIN:VEVENT\r\n")
		ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", a.uids.EventUID(evt.Course, evt.Room, evt.Start), a.uidDomain))
		ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(evt.Start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(evt.Start.Add(evt.Duration))))
		ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Course)))
		if evt.Room != "" {
			ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(evt.Room)))
		}
		if desc := description(evt); desc != "" {
			ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(desc)))
		}
		if len(evt.Groups) > 0 {
			ics.WriteString(fmt.Sprintf("CATEGORIES:%s\r\n", escapeICS(strings.Join(evt.Groups, ","))))
		}
		ics.WriteString("STATUS:CONFIRMED\r\n")
		ics.WriteString("TRANSP:OPAQUE\r\n")
		ics.WriteString("END:VEVENT\r\n")
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// description складывает преподавателя, группы и примечание в одно поле.
// Поле ORGANIZER требует mailto-URI, а портал отдаёт только ФИО.
func description(evt scraper.CalendarEvent) string {
	var parts []string
	if evt.Instructor != "" {
		parts = append(parts, evt.Instructor)
	}
	if len(evt.Groups) > 0 {
		parts = append(parts, strings.Join(evt.Groups, ", "))
	}
	if evt.Notes != "" {
		parts = append(parts, evt.Notes)
	}
	return strings.Join(parts, "\n")
}

// formatICSTime форматирует время как iCalendar datetime
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS экранирует спецсимволы по RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
