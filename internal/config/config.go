package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration values.
type Config struct {
	// Toolkit layout
	BaseDir     string // MA5_BASE: root of the toolkit installation
	OptionsFile string // installation_options.dat
	RecordsFile string // cache of validated library locations

	// External collaborators
	Installer string // install-manager command used by 'install'
	Editor    string

	// Run behaviour
	Script bool // non-interactive session
	Forced bool // answer yes to every confirmation

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	base := getEnv("MA5_BASE", defaultBaseDir())

	return Config{
		BaseDir:     base,
		OptionsFile: getEnv("MA5_OPTIONS_FILE", filepath.Join(base, "madanalysis", "input", "installation_options.dat")),
		RecordsFile: getEnv("MA5_RECORDS_FILE", filepath.Join(base, "madanalysis", "input", "libraries.yaml")),

		Installer: getEnv("MA5_INSTALLER", filepath.Join(base, "bin", "ma5-install")),
		Editor:    getEnv("EDITOR", "vi"),

		Script: getEnv("MA5_SCRIPT", "false") == "true",
		Forced: getEnv("MA5_FORCED", "false") == "true",

		LogFile:  getEnv("MA5_LOG_FILE", "/tmp/ma5.log"),
		LogLevel: parseLogLevel(getEnv("MA5_LOG_LEVEL", "INFO")),
	}
}

// ToolsDir is the bundled local installation directory.
func (c Config) ToolsDir() string {
	return filepath.Join(c.BaseDir, "tools")
}

func defaultBaseDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
