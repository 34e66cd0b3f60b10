package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ut1-planning-parser/internal/scraper"
)

// LoadSelectors загружает CSS-селекторы портала из YAML файла.
func LoadSelectors(filePath string) (*scraper.Selectors, error) {
	if filePath == "" {
		return nil, fmt.Errorf("selectors file path is empty")
	}

	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("selectors file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close selectors file: %v\n", closeErr)
		}
	}()

	var selectors scraper.Selectors
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(&selectors); err != nil {
		return nil, err
	}

	return &selectors, nil
}

// LoadSelectorsFor разрешает относительный путь из конфига относительно
// каталога самого конфиг-файла.
func (c *Config) LoadSelectorsFor(baseDir string) (*scraper.Selectors, error) {
	filePath := c.SelectorsFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(baseDir, filePath)
	}
	return LoadSelectors(filePath)
}

// validateSelectors проверяет минимальный набор селекторов
func validateSelectors(s *scraper.Selectors) error {
	if s.Container == "" {
		return fmt.Errorf("container is required")
	}
	if s.Cell == "" {
		return fmt.Errorf("cell is required")
	}
	if s.EventTable == "" {
		return fmt.Errorf("event_table is required")
	}
	if s.EventText == "" {
		return fmt.Errorf("event_text is required")
	}
	if s.WeekButton == "" {
		return fmt.Errorf("week_button is required")
	}
	if s.UsernameInput == "" {
		return fmt.Errorf("username_input is required")
	}
	if s.PasswordInput == "" {
		return fmt.Errorf("password_input is required")
	}
	return nil
}
