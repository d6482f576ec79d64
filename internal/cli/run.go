package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"scrollgrip/internal/config"
	"scrollgrip/internal/eventbus"
	"scrollgrip/internal/ui"
)

// errNoInput is returned when there is no file argument and stdin is a terminal
var errNoInput = errors.New("no input: pass a file or pipe text on stdin")

func run(ctx context.Context, stdin io.Reader, opts *options, args []string) error {
	logger := loggerFromContext(ctx)
	bus := eventbus.NewWithLogger(logger)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok && event.Path != "" {
			logger.Info("loaded config", "path", event.Path)
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			logger.Error(event.Message, "err", event.Err)
		}
	})

	svc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadConfig(svc, opts)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}
	if opts.saveConfig {
		if err := svc.Save(cfg); err != nil {
			return err
		}
	}

	doc, err := readDocument(stdin, args)
	if err != nil {
		return err
	}
	logger.Debug("document read", "name", doc.Name, "lines", len(doc.Lines), "width", doc.Width)

	if opts.native {
		return ui.RunPager(strings.NewReader(strings.Join(doc.Lines, "\n")))
	}

	model := ui.NewModel(doc, *cfg, bus, logger)
	defer model.Close()
	if err := model.Err(); err != nil {
		logger.Warn("scrollbars unavailable, using plain pager", "err", err)
		return ui.RunPager(strings.NewReader(strings.Join(doc.Lines, "\n")))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	logger.Info("starting UI", "document", doc.Name)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("interrupted")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}

// loadConfig picks the config file: an explicit path, then the directory's
// .scrollgrip.toml, then the user config
func loadConfig(svc config.ConfigService, opts *options) (*config.Config, error) {
	if opts.configPath != "" {
		return svc.LoadFromPath(opts.configPath)
	}

	dir := opts.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		dir = wd
	}
	local := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(local); err == nil {
		return svc.LoadFromPath(local)
	}
	return svc.Load()
}

// applyOverrides copies non-empty flag values over the loaded config
func applyOverrides(cfg *config.Config, opts *options) error {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Direction, opts.direction)
	set(&cfg.RTLConvention, opts.rtlConvention)
	set(&cfg.PointerEvents, opts.pointerEvents)
	set(&cfg.Visibility, opts.visibility)
	set(&cfg.Orientation, opts.orientation)
	set(&cfg.Appearance, opts.appearance)
	set(&cfg.Position, opts.position)
	set(&cfg.TrackClickBehavior, opts.trackClick)
	set(&cfg.Easing, opts.easing)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// readDocument reads the named file, or stdin when it is not a terminal
func readDocument(stdin io.Reader, args []string) (*ui.Document, error) {
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ui.ReadDocument(filepath.Base(args[0]), f)
	}
	if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return nil, errNoInput
	}
	return ui.ReadDocument("stdin", stdin)
}
