package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"ut1-planning-parser/internal/config"
	"ut1-planning-parser/internal/geometry"
	"ut1-planning-parser/internal/observability"
	"ut1-planning-parser/internal/scraper"
)

// Browser владеет headless Chrome и аутентифицированной вкладкой.
// Куки сессии общие для всех вкладок, поэтому логин выполняется один раз,
// а воркеры получают свежие вкладки через NewSession.
type Browser struct {
	cfg       *config.Config
	selectors *scraper.Selectors
	logger    *observability.Logger

	browser   *rod.Browser
	container geometry.GridContainer
	haveGrid  bool
}

func Launch(cfg *config.Config, selectors *scraper.Selectors, logger *observability.Logger) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Browser.Headless).
		NoSandbox(true).
		Set("blink-settings", "imagesEnabled=false")
	if cfg.Browser.ChromePath != "" {
		l = l.Bin(cfg.Browser.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}

	return &Browser{
		cfg:       cfg,
		selectors: selectors,
		logger:    logger,
		browser:   b,
	}, nil
}

// Login открывает портал, вводит учётные данные и дожидается первой
// отрисовки сетки. Размеры контейнера читаются здесь же: один раз на
// запуск, дальше значение общее для всех недель.
func (b *Browser) Login(ctx context.Context, username, password string) error {
	page, err := b.newTab(ctx)
	if err != nil {
		return err
	}

	b.logger.Info("Navigating to portal", "url", b.cfg.Portal.URL)
	if err := page.Navigate(b.cfg.Portal.URL); err != nil {
		return fmt.Errorf("failed to navigate to portal: %w", err)
	}

	userInput, err := page.Timeout(b.cfg.GetWaitElemTimeout()).Element(b.selectors.UsernameInput)
	if err != nil {
		return fmt.Errorf("login form did not load: %w", err)
	}
	if err := userInput.Input(username); err != nil {
		return fmt.Errorf("failed to type username: %w", err)
	}

	passInput, err := page.Timeout(b.cfg.GetWaitElemTimeout()).Element(b.selectors.PasswordInput)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}
	if err := passInput.Input(password); err != nil {
		return fmt.Errorf("failed to type password: %w", err)
	}
	if err := passInput.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	b.logger.Info("Waiting for planning grid")
	grid, err := page.Timeout(b.cfg.GetWaitElemTimeout()).Element(b.selectors.Container)
	if err != nil && b.cfg.Browser.LoginRetryOnStall {
		// Портал иногда зависает на редиректе после CAS. Одна перезагрузка
		// обычно лечит.
		b.logger.Warn("Planning grid did not appear, reloading", "error", err.Error())
		if err := page.Reload(); err != nil {
			return fmt.Errorf("failed to reload planning page: %w", err)
		}
		grid, err = page.Timeout(b.cfg.GetWaitElemTimeout()).Element(b.selectors.Container)
	}
	if err != nil {
		return fmt.Errorf("planning grid did not render: %w", err)
	}

	style, err := grid.Attribute("style")
	if err != nil || style == nil {
		return fmt.Errorf("failed to read container style attribute: %v", err)
	}

	width, height, err := parseContainerStyle(*style)
	if err != nil {
		return fmt.Errorf("failed to parse container style: %w", err)
	}

	b.container = geometry.GridContainer{
		WidthPx:   width,
		HeightPx:  height,
		DayCount:  b.cfg.Grid.DayCount,
		StartHour: b.cfg.Grid.StartHour,
		EndHour:   b.cfg.Grid.EndHour,
	}
	if err := b.container.Validate(); err != nil {
		return fmt.Errorf("container dimensions invalid: %w", err)
	}
	b.haveGrid = true

	b.logger.Info("Planning container read",
		"width_px", width,
		"height_px", height,
		"day_px", b.container.DayPx(),
		"half_hour_px", b.container.HalfHourPx(),
	)
	return nil
}

// Container возвращает размеры сетки, прочитанные при логине.
func (b *Browser) Container(ctx context.Context) (geometry.GridContainer, error) {
	if !b.haveGrid {
		return geometry.GridContainer{}, ErrContainerUnavailable
	}
	return b.container, nil
}

// NewSession открывает новую вкладку под одного воркера.
func (b *Browser) NewSession(ctx context.Context) (PageSession, error) {
	page, err := b.newTab(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{
		page:      page,
		cfg:       b.cfg,
		selectors: b.selectors,
		logger:    b.logger,
	}, nil
}

func (b *Browser) newTab(ctx context.Context) (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open tab: %w", err)
	}
	page = page.Context(ctx)

	if b.cfg.Browser.BlockAssets {
		if err := blockAssets(page); err != nil {
			return nil, err
		}
	}
	return page, nil
}

// blockAssets режет css/картинки/шрифты: расписанию нужна только вёрстка,
// а страницы портала тяжёлые.
func blockAssets(page *rod.Page) error {
	router := page.HijackRequests()
	for _, kind := range []proto.NetworkResourceType{
		proto.NetworkResourceTypeStylesheet,
		proto.NetworkResourceTypeImage,
		proto.NetworkResourceTypeFont,
		proto.NetworkResourceTypeMedia,
	} {
		if err := router.Add("*", kind, func(h *rod.Hijack) {
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		}); err != nil {
			return fmt.Errorf("failed to install request hijack: %w", err)
		}
	}
	go router.Run()
	return nil
}

func (b *Browser) Close() error {
	if b.browser != nil {
		return b.browser.Close()
	}
	return nil
}
