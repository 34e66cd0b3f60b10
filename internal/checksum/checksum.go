package checksum

import (
	"crypto/sha256"
	"fmt"
	"time"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// EventUID генерирует детерминированный UID события.
// Формула: SHA256(course|room|start_iso). Один и тот же слот расписания
// всегда даёт один UID — повторная публикация календаря идемпотентна для
// клиентов.
func (g *Generator) EventUID(course, room string, start time.Time) string {
	startISO := start.UTC().Format("2006-01-02T15:04")

	content := fmt.Sprintf("%s|%s|%s", course, room, startISO)

	hash := sha256.Sum256([]byte(content))

	return fmt.Sprintf("%x", hash)
}

// VerifyEventUID проверяет соответствие UID
func (g *Generator) VerifyEventUID(expected, course, room string, start time.Time) bool {
	return g.EventUID(course, room, start) == expected
}
