package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	speederrors "github.com/princespaghetti/speedcfg/internal/errors"
	"github.com/princespaghetti/speedcfg/internal/logging"
)

const (
	defaultTimeoutSeconds = 10
	defaultServerID       = 0
)

// Settings is the resolved CLI configuration: flags, then SPEEDCFG_*
// environment variables, then the optional config file.
type Settings struct {
	Timeout   time.Duration
	ServerID  uint16
	URL       string
	UserAgent string
	Format    string
	Out       string
	LogLevel  logging.Level
	LogFormat logging.Format
}

// newViper returns a viper instance with defaults and env lookup set up.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("timeout", strconv.Itoa(defaultTimeoutSeconds))
	v.SetDefault("server", strconv.Itoa(defaultServerID))
	v.SetDefault("format", formatText)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Environment variables support: SPEEDCFG_TIMEOUT, SPEEDCFG_LOG_LEVEL, ...
	v.SetEnvPrefix("SPEEDCFG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// loadSettings reads the config file named by the "config" key, if any, and
// resolves every setting.
func loadSettings(v *viper.Viper) (*Settings, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read config %s: %v", speederrors.ErrInvalidConfig, path, err)
		}
	}

	level, err := logging.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", speederrors.ErrInvalidConfig, err)
	}
	logFormat, err := logging.ParseFormat(v.GetString("log.format"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", speederrors.ErrInvalidConfig, err)
	}
	format := strings.ToLower(strings.TrimSpace(v.GetString("format")))
	if !validFormat(format) {
		return nil, fmt.Errorf("%w: unknown output format %q", speederrors.ErrInvalidConfig, v.GetString("format"))
	}

	return &Settings{
		Timeout:   time.Duration(parseUint16(v.GetString("timeout"), defaultTimeoutSeconds)) * time.Second,
		ServerID:  parseUint16(v.GetString("server"), defaultServerID),
		URL:       v.GetString("url"),
		UserAgent: v.GetString("user_agent"),
		Format:    format,
		Out:       v.GetString("out"),
		LogLevel:  level,
		LogFormat: logFormat,
	}, nil
}

// parseUint16 parses s as an unsigned 16-bit integer, falling back to def
// when s is empty or not a valid number.
func parseUint16(s string, def uint16) uint16 {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return def
	}
	return uint16(n)
}
