package browser

import (
	"fmt"
	"regexp"
	"strconv"
)

// Портал не отдаёт ни одного настоящего таймстемпа: вся геометрия живёт в
// инлайновых style-атрибутах. Разбираем их регулярками.
var (
	containerRe = regexp.MustCompile(`width:\s*(\d+)(?:\.\d+)?px;\s*height:\s*(\d+)(?:\.\d+)?px`)
	positionRe  = regexp.MustCompile(`left:\s*(-?\d+)(?:\.\d+)?px;\s*top:\s*(-?\d+)(?:\.\d+)?px`)
	heightRe    = regexp.MustCompile(`height:\s*(-?\d+)(?:\.\d+)?px`)
)

// parseContainerStyle извлекает width/height контейнера из style атрибута.
func parseContainerStyle(style string) (width, height int, err error) {
	m := containerRe.FindStringSubmatch(style)
	if m == nil {
		return 0, 0, fmt.Errorf("no width/height in container style: %q", style)
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	return width, height, nil
}

// parsePositionStyle извлекает left/top блока события.
func parsePositionStyle(style string) (x, y int, err error) {
	m := positionRe.FindStringSubmatch(style)
	if m == nil {
		return 0, 0, fmt.Errorf("no left/top in event style: %q", style)
	}
	x, _ = strconv.Atoi(m[1])
	y, _ = strconv.Atoi(m[2])
	return x, y, nil
}

// parseHeightStyle извлекает height таблицы события.
func parseHeightStyle(style string) (int, error) {
	m := heightRe.FindStringSubmatch(style)
	if m == nil {
		return 0, fmt.Errorf("no height in event table style: %q", style)
	}
	h, _ := strconv.Atoi(m[1])
	return h, nil
}
