package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/charmbracelet/x/ansi"
)

// ringWriter feeds structured log lines into the model's log buffer.
type ringWriter struct {
	m *Model
}

func (w ringWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(ansi.Strip(string(p)), "\n"), "\n") {
		if line == "" {
			continue
		}
		level, msg, _ := strings.Cut(line, " ")
		w.m.Log(normalizeLevel(level), "%s", msg)
	}
	return len(p), nil
}

func normalizeLevel(l string) string {
	switch l {
	case "DEBU":
		return "DEBUG"
	case "ERRO", "FATA":
		return "ERROR"
	case "INFO", "WARN":
		return l
	default:
		return "INFO"
	}
}

// newRingLogger returns a logger whose output lands in the log viewer, so
// the engine and the UI share one log.
func newRingLogger(m *Model, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(ringWriter{m: m}, log.Options{
		Level:     level,
		Formatter: log.TextFormatter,
	})
}

// Log adds a new log message to the log buffer.
func (m *Model) Log(level, format string, args ...any) {
	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}

	// Sticky scroll: stay at the bottom if we were there.
	if m.ShowLogs {
		perPage := m.logsPerPage()
		if m.LogScrollOffset >= len(m.LogMessages)-perPage-2 {
			m.LogScrollOffset = max(len(m.LogMessages)-perPage, 0)
		}
	}
}

func (m *Model) logsPerPage() int {
	return max(m.Height-12, 1)
}

// LogInfo logs an informational message.
func (m *Model) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *Model) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *Model) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification.
func (m *Model) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		m.LogError("%s", message)
	case "warning":
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (m *Model) CleanupNotifications() {
	now := time.Now()
	var active []Notification
	for _, n := range m.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	m.Notifications = active
}

// ScrollLogs moves the log viewer by delta lines.
func (m *Model) ScrollLogs(delta int) {
	maxScroll := max(len(m.LogMessages)-m.logsPerPage(), 0)
	m.LogScrollOffset = min(max(m.LogScrollOffset+delta, 0), maxScroll)
}
