package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testSelectorsYAML = `container: "div.grilleData"
cell: "div.grilleData > div"
event_table: "table.event"
event_text: "div.eventText"
week_button: "button.x-btn-text"
username_input: "input#username"
password_input: "input#password"
`

func TestLoadSelectorsForResolvesAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "selectors.yaml"), []byte(testSelectorsYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg := &Config{SelectorsFile: "selectors.yaml"}

	// Относительный путь должен разрешаться от каталога конфига,
	// а не от рабочего каталога процесса.
	selectors, err := cfg.LoadSelectorsFor(dir)
	if err != nil {
		t.Fatalf("LoadSelectorsFor() error = %v", err)
	}
	if selectors.Container != "div.grilleData" {
		t.Errorf("Container = %q, want %q", selectors.Container, "div.grilleData")
	}
	if selectors.WeekButton != "button.x-btn-text" {
		t.Errorf("WeekButton = %q, want %q", selectors.WeekButton, "button.x-btn-text")
	}
}

func TestLoadSelectorsForAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	absPath := filepath.Join(dir, "selectors.yaml")
	if err := os.WriteFile(absPath, []byte(testSelectorsYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg := &Config{SelectorsFile: absPath}

	if _, err := cfg.LoadSelectorsFor("unrelated-dir"); err != nil {
		t.Errorf("LoadSelectorsFor() error = %v, want nil", err)
	}
}

func TestLoadSelectorsMissingField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selectors.yaml")
	if err := os.WriteFile(path, []byte("container: \"div.grilleData\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadSelectors(path); err == nil {
		t.Error("LoadSelectors() error = nil, want validation error")
	}
}
