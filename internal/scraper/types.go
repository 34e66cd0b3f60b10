package scraper

import "time"

// RawCell — один неразобранный блок расписания: абсолютная позиция внутри
// контейнера, высота таблицы события и HTML-блоб с текстом. Производится
// браузерной сессией, потребляется ровно один раз.
type RawCell struct {
	X        int
	Y        int
	HeightPx int
	TextBlob string
}

// CalendarEvent — итоговое событие календаря. После создания не мутирует.
type CalendarEvent struct {
	Start      time.Time
	Duration   time.Duration
	Course     string
	Room       string
	Instructor string
	Groups     []string
	Notes      string
}

// Selectors — CSS-селекторы портала, вынесены в YAML как у любого
// скрейпера: вёрстка меняется чаще кода.
type Selectors struct {
	Container     string `yaml:"container"`
	Cell          string `yaml:"cell"`
	EventTable    string `yaml:"event_table"`
	EventText     string `yaml:"event_text"`
	WeekButton    string `yaml:"week_button"`
	UsernameInput string `yaml:"username_input"`
	PasswordInput string `yaml:"password_input"`
}
