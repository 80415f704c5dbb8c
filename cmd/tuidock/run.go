package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/input"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/server"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
	"golang.org/x/term"
)

// filterMouseMotion drops mouse motion while nothing follows the pointer.
// Presses, drags, reorders and window moves all need motion events.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	m, ok := model.(*app.Model)
	if !ok {
		return msg
	}

	if m.Press != nil || m.WindowDrag != nil || m.Reordering != nil {
		return msg
	}
	if m.Docking.ActiveDrag() != nil {
		return msg
	}

	return nil
}

// cliLogger writes to stderr for everything that happens outside the TUI.
func cliLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tuidock",
	})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig reads the user config and applies command line overrides.
func loadConfig(logger *log.Logger) *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	if themeName != "" {
		userConfig.Appearance.Theme = themeName
	}
	if layoutName != "" {
		userConfig.Layout.Name = layoutName
	}
	if noSave {
		userConfig.Layout.Autosave = false
	}
	return userConfig
}

// openStore opens the layout store. A nil store disables persistence.
func openStore(logger *log.Logger) *layout.Store {
	dir, err := layout.DefaultDir()
	if err != nil {
		logger.Warn("layouts will not be saved", "err", err)
		return nil
	}
	// The store only logs warnings unless --debug is set, so nothing is
	// written over the running UI.
	var storeLogger *log.Logger
	if debugMode {
		storeLogger = logger
	}
	store, err := layout.NewStore(dir, storeLogger)
	if err != nil {
		logger.Warn("layouts will not be saved", "err", err)
		return nil
	}
	return store
}

func runLocal(ctx context.Context) error {
	logger := cliLogger()
	userConfig := loadConfig(logger)

	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		logger.Warn("failed to initialize theme", "theme", userConfig.Appearance.Theme, "err", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		logger.Warn("config reload disabled", "err", err)
		configPath = ""
	}
	if debugMode {
		logger.Debug("configuration", "path", configPath)
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	app.SetInputHandler(input.HandleInput)

	model := app.New(app.Options{
		Config:     userConfig,
		ConfigPath: configPath,
		Layouts:    openStore(logger),
		Width:      width,
		Height:     height,
		Debug:      debugMode,
	})

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	finalModel, err := p.Run()

	if final, ok := finalModel.(*app.Model); ok {
		final.Cleanup()
	} else {
		model.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

func runSSHServer(ctx context.Context, sshHost, sshPort, sshKeyPath string) error {
	logger := cliLogger()
	userConfig := loadConfig(logger)

	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		logger.Warn("failed to initialize theme", "theme", userConfig.Appearance.Theme, "err", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &server.SSHServerConfig{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
		Config:  userConfig,
		Layouts: openStore(logger),
		Logger:  logger,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}
