package app

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/MedAssist/internal/completion"
	"github.com/Rorical/MedAssist/internal/config"
	"github.com/Rorical/MedAssist/internal/connectivity"
	"github.com/Rorical/MedAssist/internal/core"
	"github.com/Rorical/MedAssist/internal/dispatcher"
	"github.com/Rorical/MedAssist/internal/eventbus"
	"github.com/Rorical/MedAssist/internal/logging"
	"github.com/Rorical/MedAssist/internal/models"
	"github.com/Rorical/MedAssist/internal/utils"
)

// Options are the command line switches that affect the application.
type Options struct {
	Profile string // overrides the active profile for this run
	Offline bool   // force the connectivity probe to report offline
}

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.AskService
	model      *AppModel
	logger     *slog.Logger
	logCloser  io.Closer
}

// LoadConfig loads the profile file and applies the --profile switch.
func LoadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.Profile != "" {
		if err := cfg.UseProfile(opts.Profile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// NewService wires the completion client and connectivity probe for cfg.
func NewService(cfg *config.Config, opts Options, eb *eventbus.EventBus, logger *slog.Logger) *core.AskService {
	client := completion.NewClient(completion.Options{
		Endpoint:  cfg.GetBaseURL(),
		APIKey:    cfg.GetAPIKey(),
		SiteTitle: cfg.GetSiteTitle(),
		Referer:   cfg.GetReferer(),
	})
	logger.Info("completion client ready", "endpoint", client.Endpoint(), "offline_forced", opts.Offline)
	checker := connectivity.NewOverride(connectivity.NewInterfaceProbe(), opts.Offline)
	return core.NewAskService(client, checker, eb, logger)
}

func NewApplication(opts Options) (*Application, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser := openLog()
	logger.Info("starting", "profile", cfg.ActiveProfile, "configured", cfg.IsValid(), "offline", opts.Offline)

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Error("event bus error", "operation", e.Operation, "error", e.Err)
	})

	disp := dispatcher.NewEventDispatcher(eb)
	service := NewService(cfg, opts, eb, logger)

	renderer, err := utils.NewMarkdownRenderer(utils.StyleAuto, defaultContentWidth)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	model := NewAppModel(disp, renderer, createInitialAppModel(cfg), siteTitle(cfg))

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
		logger:     logger,
		logCloser:  logCloser,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
	app.logger.Info("stopped")
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}

func openLog() (*slog.Logger, io.Closer) {
	dir, err := config.Dir()
	if err != nil {
		return logging.Discard(), nil
	}
	logger, closer, err := logging.NewFileLogger(dir, slog.LevelInfo)
	if err != nil {
		return logging.Discard(), nil
	}
	return logger, closer
}

func siteTitle(cfg *config.Config) string {
	if title := cfg.GetSiteTitle(); title != "" {
		return title
	}
	return completion.DefaultSiteTitle
}

func createInitialAppModel(cfg *config.Config) models.AppModel {
	return models.AppModel{
		Phase:       models.PhaseIdle,
		ProfileName: cfg.ActiveProfile,
		Configured:  cfg.IsValid(),
	}
}
