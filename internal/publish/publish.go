package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"ut1-planning-parser/internal/config"
	"ut1-planning-parser/internal/observability"
)

// Publisher доставляет собранный .ics файл: scp на сервер в проде,
// локальная копия при разработке, none для прогонов всухую.
type Publisher struct {
	cfg    *config.Config
	logger *observability.Logger
}

func NewPublisher(cfg *config.Config, logger *observability.Logger) *Publisher {
	return &Publisher{cfg: cfg, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, icsPath string) error {
	switch p.cfg.Publish.Mode {
	case "none":
		p.logger.Info("Publish skipped", "mode", "none", "path", icsPath)
		return nil
	case "scp":
		return p.publishSCP(ctx, icsPath)
	case "copy":
		return p.publishCopy(icsPath)
	default:
		return fmt.Errorf("unknown publish mode: %s", p.cfg.Publish.Mode)
	}
}

func (p *Publisher) publishSCP(ctx context.Context, icsPath string) error {
	target := fmt.Sprintf("%s:%s", p.cfg.Publish.Server, p.cfg.Publish.RemotePath)

	cmd := exec.CommandContext(ctx, "scp", icsPath, target)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("scp to %s failed: %w: %s", target, err, string(out))
	}

	p.logger.Info("Calendar deployed",
		"mode", "scp",
		"target", target,
	)
	return nil
}

func (p *Publisher) publishCopy(icsPath string) error {
	src, err := os.Open(icsPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", icsPath, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			p.logger.Warn("Failed to close source file", "error", closeErr.Error())
		}
	}()

	dst, err := os.Create(p.cfg.Publish.RemotePath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", p.cfg.Publish.RemotePath, err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil {
			p.logger.Warn("Failed to close destination file", "error", closeErr.Error())
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy calendar: %w", err)
	}

	p.logger.Info("Calendar deployed",
		"mode", "copy",
		"target", p.cfg.Publish.RemotePath,
	)
	return nil
}
