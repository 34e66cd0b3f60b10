package config

import (
	"fmt"
	"time"
)

type Config struct {
	Portal        PortalConfig        `yaml:"portal"`
	Browser       BrowserConfig       `yaml:"browser"`
	Grid          GridConfig          `yaml:"grid"`
	Scrape        ScrapeConfig        `yaml:"scrape"`
	SelectorsFile string              `yaml:"selectors_file"`
	Calendar      CalendarConfig      `yaml:"calendar"`
	Publish       PublishConfig       `yaml:"publish"`
	Storage       StorageConfig       `yaml:"storage"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type PortalConfig struct {
	URL         string `yaml:"url"`
	UsernameEnv string `yaml:"username_env"`
	PasswordEnv string `yaml:"password_env"`
}

type BrowserConfig struct {
	ChromePath        string `yaml:"chrome_path"`
	Headless          bool   `yaml:"headless"`
	BlockAssets       bool   `yaml:"block_assets"`
	PageTimeoutS      int    `yaml:"page_timeout_s"`
	WaitElemTimeoutS  int    `yaml:"wait_element_timeout_s"`
	LoginRetryOnStall bool   `yaml:"login_retry_on_stall"`
}

// GridConfig задаёт раскладку сетки явно, вместо констант в коде: разные
// порталы рисуют 6 или 7 колонок и разный часовой диапазон.
type GridConfig struct {
	DayCount  int `yaml:"day_count"`
	StartHour int `yaml:"start_hour"`
	EndHour   int `yaml:"end_hour"`
}

type ScrapeConfig struct {
	Weeks         int `yaml:"weeks"`
	MaxConcurrent int `yaml:"max_concurrent"`
	WeekTimeoutS  int `yaml:"week_timeout_s"`
}

type CalendarConfig struct {
	ProdID     string `yaml:"prod_id"`
	UIDDomain  string `yaml:"uid_domain"`
	OutputPath string `yaml:"output_path"`
}

type PublishConfig struct {
	Mode       string `yaml:"mode"` // scp | copy | none
	Server     string `yaml:"server"`
	RemotePath string `yaml:"remote_path"`
}

type StorageConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type SchedulerConfig struct {
	Mode      string `yaml:"mode"` // oneshot | interval
	IntervalS int    `yaml:"interval_s"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if c.Portal.URL == "" {
		return fmt.Errorf("portal.url is required")
	}
	if c.Portal.UsernameEnv == "" {
		return fmt.Errorf("portal.username_env is required")
	}
	if c.Portal.PasswordEnv == "" {
		return fmt.Errorf("portal.password_env is required")
	}
	if c.Browser.PageTimeoutS <= 0 {
		return fmt.Errorf("browser.page_timeout_s must be > 0")
	}
	if c.Browser.WaitElemTimeoutS <= 0 {
		return fmt.Errorf("browser.wait_element_timeout_s must be > 0")
	}
	if c.Grid.DayCount <= 0 {
		return fmt.Errorf("grid.day_count must be > 0")
	}
	if c.Grid.EndHour <= c.Grid.StartHour {
		return fmt.Errorf("grid.end_hour must be > grid.start_hour")
	}
	if c.Scrape.Weeks <= 0 {
		return fmt.Errorf("scrape.weeks must be > 0")
	}
	if c.Scrape.MaxConcurrent < 0 {
		return fmt.Errorf("scrape.max_concurrent must be >= 0")
	}
	if c.Scrape.WeekTimeoutS <= 0 {
		return fmt.Errorf("scrape.week_timeout_s must be > 0")
	}
	if c.SelectorsFile == "" {
		return fmt.Errorf("selectors_file is required")
	}
	if c.Calendar.ProdID == "" {
		return fmt.Errorf("calendar.prod_id is required")
	}
	if c.Calendar.UIDDomain == "" {
		return fmt.Errorf("calendar.uid_domain is required")
	}
	if c.Calendar.OutputPath == "" {
		return fmt.Errorf("calendar.output_path is required")
	}
	if c.Publish.Mode != "scp" && c.Publish.Mode != "copy" && c.Publish.Mode != "none" {
		return fmt.Errorf("publish.mode must be 'scp', 'copy' or 'none'")
	}
	if c.Publish.Mode == "scp" && c.Publish.Server == "" {
		return fmt.Errorf("publish.server is required when publish.mode is 'scp'")
	}
	if c.Publish.Mode != "none" && c.Publish.RemotePath == "" {
		return fmt.Errorf("publish.remote_path is required when publish.mode is '%s'", c.Publish.Mode)
	}
	if c.Storage.Enabled {
		if c.Storage.Driver != "mssql" {
			return fmt.Errorf("storage.driver must be 'mssql'")
		}
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.enabled is true")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	}
	if c.Scheduler.Mode != "oneshot" && c.Scheduler.Mode != "interval" {
		return fmt.Errorf("scheduler.mode must be 'oneshot' or 'interval'")
	}
	if c.Scheduler.Mode == "interval" && c.Scheduler.IntervalS <= 0 {
		return fmt.Errorf("scheduler.interval_s must be > 0 when mode is 'interval'")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetPageTimeout() time.Duration {
	return time.Duration(c.Browser.PageTimeoutS) * time.Second
}

func (c *Config) GetWaitElemTimeout() time.Duration {
	return time.Duration(c.Browser.WaitElemTimeoutS) * time.Second
}

func (c *Config) GetWeekTimeout() time.Duration {
	return time.Duration(c.Scrape.WeekTimeoutS) * time.Second
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}

func (c *Config) GetSchedulerInterval() time.Duration {
	return time.Duration(c.Scheduler.IntervalS) * time.Second
}
