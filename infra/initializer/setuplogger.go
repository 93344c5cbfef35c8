package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.ErrorLevel: {Light: "#FF6B6B", Dark: "#FF6B6B"},
	log.WarnLevel:  {Light: "#EE6FF8", Dark: "#EE6FF8"},
	log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
	log.DebugLevel: {Light: "#7E57C2", Dark: "#7E57C2"},
}

var levelMarks = map[log.Level]string{
	log.ErrorLevel: "ERR",
	log.WarnLevel:  "WRN",
	log.InfoLevel:  "INF",
	log.DebugLevel: "DBG",
}

// SetupLogger builds the process logger and installs it as slog's default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	return setupLogger(os.Stdout, cfg)
}

func setupLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	styles := log.DefaultStyles()
	for level, color := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(levelMarks[level]).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}
	keyColor := levelColors[log.DebugLevel]
	for _, key := range []string{"error", "userID", "prefix", "caller", "time"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])

	formattersMap := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formattersMap[cfg.Format]; ok {
		formatter = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})

	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)

	return slogger
}
