package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ut1-planning-parser/internal/normalize"
)

// ErrMalformedEventText означает, что после нормализации в блобе осталось
// меньше четырёх полезных строк и позиционный контракт неприменим.
var ErrMalformedEventText = errors.New("malformed event text")

const openingMarker = `eventText">`

var brReplacer = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n")

// Record — структурированное содержимое одного блока события.
type Record struct {
	Course     string
	Room       string
	Instructor string
	Groups     []string
	Notes      string
}

// ParseEventText разбирает HTML-блоб блока события. Портал всегда отдаёт
// жирный заголовок курса и далее поля через <br> в фиксированном порядке:
// аудитория, преподаватель, [группы...], примечание. Контракт позиционный
// и хрупкий по построению, поэтому при нехватке строк парсер падает с
// ErrMalformedEventText, а не молча обрезает.
func ParseEventText(blob string) (*Record, error) {
	frag := blob
	if i := strings.LastIndex(frag, openingMarker); i >= 0 {
		frag = frag[i+len(openingMarker):]
	}

	// <br> → \n до парсинга: goquery не сохраняет переводы строк.
	frag = brReplacer.Replace(frag)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(frag))
	if err != nil {
		return nil, fmt.Errorf("failed to parse event HTML: %w", err)
	}

	title := doc.Find("b").First()
	course := normalize.CleanLine(title.Text())
	title.Remove()

	// Хвостовой "</div>" портала глотает сам HTML-парсер.
	lines := normalize.SplitLines(doc.Text())
	if course != "" {
		lines = append([]string{course}, lines...)
	}

	if len(lines) < 4 {
		return nil, fmt.Errorf("%w: got %d usable lines, need at least 4", ErrMalformedEventText, len(lines))
	}

	rec := &Record{
		Course:     lines[0],
		Room:       lines[1],
		Instructor: lines[2],
		Notes:      lines[len(lines)-1],
	}
	if middle := lines[3 : len(lines)-1]; len(middle) > 0 {
		rec.Groups = append(rec.Groups, middle...)
	}

	return rec, nil
}
