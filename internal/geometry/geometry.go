package geometry

import (
	"errors"
	"fmt"
	"time"
)

// ErrGeometryOutOfRange means a decoded cell falls outside the grid
// (weekday past the last column, or a non-positive duration).
var ErrGeometryOutOfRange = errors.New("geometry out of range")

// GridContainer описывает пиксельную область, в которую портал рендерит
// недельную сетку. Все коэффициенты px→время выводятся из неё, констант
// уровня модуля нет.
type GridContainer struct {
	WidthPx   int
	HeightPx  int
	DayCount  int
	StartHour int
	EndHour   int
}

func (c GridContainer) Validate() error {
	if c.WidthPx <= 0 {
		return fmt.Errorf("container width must be > 0, got %d", c.WidthPx)
	}
	if c.HeightPx <= 0 {
		return fmt.Errorf("container height must be > 0, got %d", c.HeightPx)
	}
	if c.DayCount <= 0 {
		return fmt.Errorf("day count must be > 0, got %d", c.DayCount)
	}
	if c.EndHour <= c.StartHour {
		return fmt.Errorf("hour span invalid: %d..%d", c.StartHour, c.EndHour)
	}
	return nil
}

// HalfHourSlots возвращает число получасовых строк сетки (14 часов → 28).
func (c GridContainer) HalfHourSlots() int {
	return (c.EndHour - c.StartHour) * 2
}

// DayPx — ширина одной колонки-дня в пикселях.
func (c GridContainer) DayPx() int {
	return c.WidthPx / c.DayCount
}

// HalfHourPx — высота одной получасовой строки в пикселях.
func (c GridContainer) HalfHourPx() int {
	return c.HeightPx / c.HalfHourSlots()
}

// Decoded — результат декодирования одной ячейки.
type Decoded struct {
	Start         time.Time
	Duration      time.Duration
	WeekdayOffset int
}

// Decode переводит пиксельную позицию и высоту блока в начало события и
// длительность. Чистая функция: никакого скрытого состояния, никаких
// обращений к wall-clock. Усечение к нулю намеренное — события выровнены
// по получасовой сетке.
//
// Выход за границы сетки здесь не проверяется: отрицательный weekday или
// нулевая длительность — это условие malformed-geometry на стороне
// вызывающего (см. Check).
func Decode(c GridContainer, xPx, yPx, blockHeightPx, weekDelta int, anchorMonday time.Time) Decoded {
	weekday := xPx / c.DayPx()
	offsetMin := (yPx / c.HalfHourPx()) * 30
	durationMin := (blockHeightPx / c.HalfHourPx()) * 30

	// -1 час: портал рендерит сетку со сдвигом на таймзону.
	start := anchorMonday.
		AddDate(0, 0, weekday+weekDelta*7).
		Add(time.Duration(offsetMin)*time.Minute - time.Hour)

	return Decoded{
		Start:         start,
		Duration:      time.Duration(durationMin) * time.Minute,
		WeekdayOffset: weekday,
	}
}

// Check валидирует декодированную ячейку относительно сетки.
func (d Decoded) Check(c GridContainer) error {
	if d.WeekdayOffset < 0 || d.WeekdayOffset >= c.DayCount {
		return fmt.Errorf("%w: weekday offset %d outside 0..%d", ErrGeometryOutOfRange, d.WeekdayOffset, c.DayCount-1)
	}
	if d.Duration <= 0 {
		return fmt.Errorf("%w: non-positive duration %s", ErrGeometryOutOfRange, d.Duration)
	}
	return nil
}

// AnchorMonday возвращает ближайший прошедший понедельник 07:00 относительно
// now (если now — понедельник, то этот же день). Вычисляется один раз на
// запуск и передаётся декодеру явно.
func AnchorMonday(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 7, 0, 0, 0, now.Location())
	back := (int(day.Weekday()) + 6) % 7 // Monday == 0
	return day.AddDate(0, 0, -back)
}

// NormalizeISOWeek приводит номер недели к диапазону 1..52(53) года year.
// Нужен только для текста кнопки пагинации: математика недельных сдвигов
// использует смещения, а не разности номеров, и через границу года не
// ломается.
func NormalizeISOWeek(week, year int) int {
	weeks := ISOWeeksInYear(year)
	for week > weeks {
		week -= weeks
		year++
		weeks = ISOWeeksInYear(year)
	}
	return week
}

// ISOWeeksInYear возвращает 52 или 53: 28 декабря всегда лежит в последней
// ISO-неделе года.
func ISOWeeksInYear(year int) int {
	_, w := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}
