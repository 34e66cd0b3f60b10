package normalize

import (
	"regexp"
	"strings"
)

var spacesRe = regexp.MustCompile(`\s+`)

// CleanLine нормализует одну строку из блока события: NBSP → пробел,
// множественные пробелы схлопываются, края обрезаются.
func CleanLine(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitLines режет фрагмент по переводам строк, чистит каждую строку и
// отбрасывает пустые.
func SplitLines(s string) []string {
	var lines []string
	for _, raw := range strings.Split(s, "\n") {
		line := CleanLine(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
