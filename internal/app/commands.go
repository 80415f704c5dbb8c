package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
)

// ConfigReloadedMsg carries a config file that changed on disk. Err is set
// when the new file could not be parsed.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
	Err    error
}

// WatchConfig starts watching the config file. It does nothing when the
// model was built without a config path.
func (m *Model) WatchConfig() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.watchCtx, m.cancel = ctx, cancel
	err := config.Watch(ctx, m.configPath, func(cfg *config.UserConfig, err error) {
		select {
		case m.configCh <- ConfigReloadedMsg{Config: cfg, Err: err}:
		case <-ctx.Done():
		}
	})
	if err != nil {
		m.LogWarn("config reload disabled: %v", err)
		return nil
	}
	return ListenForConfigChanges(ctx, m.configCh)
}

// ListenForConfigChanges waits for the next reload and hands it to Update.
func ListenForConfigChanges(ctx context.Context, ch <-chan ConfigReloadedMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-ch:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}
