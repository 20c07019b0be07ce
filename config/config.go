// Package config exposes the application configuration: embedded
// name/version, environment variables, and an optional TOML overlay file.
package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const defaultPort = 5000

// fileConfig mirrors the optional librarian.toml overlay. Values set here
// take precedence over environment variables.
type fileConfig struct {
	AppName       string `toml:"app_name"`
	Listen        string `toml:"listen"`
	Port          int    `toml:"port"`
	DataFolder    string `toml:"data_folder"`
	LogFolder     string `toml:"log_folder"`
	SessionSecret string `toml:"session_secret"`
}

var overlay fileConfig

// LoadFile reads the TOML overlay at path. A missing file is not an error.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &overlay)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

// GetAppName returns the configured application identifier.
func GetAppName() string {
	if overlay.AppName != "" {
		return overlay.AppName
	}
	if appName := os.Getenv("APP_NAME"); appName != "" {
		return appName
	}
	return "LibraryManagement"
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("LIBRARIAN_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("LIBRARIAN_DEBUG") == "true"
}

func GetDataFolder() string {
	if overlay.DataFolder != "" {
		return overlay.DataFolder
	}
	dataFolder := os.Getenv("LIBRARIAN_DATA_FOLDER")
	if dataFolder == "" {
		dataFolder = "data"
	}
	return dataFolder
}

func GetLogFolder() string {
	if overlay.LogFolder != "" {
		return overlay.LogFolder
	}
	logFolderPath := os.Getenv("LIBRARIAN_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	if overlay.Listen != "" {
		return overlay.Listen
	}
	return os.Getenv("LIBRARIAN_LISTEN")
}

func GetPort() int {
	if overlay.Port != 0 {
		return overlay.Port
	}
	port, err := strconv.Atoi(os.Getenv("LIBRARIAN_PORT"))
	if err != nil || port <= 0 {
		return defaultPort
	}
	return port
}

// GetSessionSecret returns the secret used to sign session cookies. Empty
// means none was configured; the caller decides the fallback.
func GetSessionSecret() string {
	if overlay.SessionSecret != "" {
		return overlay.SessionSecret
	}
	return os.Getenv("LIBRARIAN_SESSION_SECRET")
}
