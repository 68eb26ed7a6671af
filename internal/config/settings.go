package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/i18n"
)

// Configuration keys.
const (
	KeyAPIBaseURL     = "api.base_url"
	KeyAPITimeout     = "api.timeout"
	KeyWebBaseURL     = "web.base_url"
	KeyDatabasePath   = "database.path"
	KeyCookieFile     = "credentials.cookie_file"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLogFile        = "logging.file"
	KeyUploadParallel = "upload.parallel"
	KeyTheme          = "ui.theme"
	KeyLang           = "ui.lang"
)

// Defaults for unset keys.
const (
	DefaultAPIBaseURL     = "http://localhost:8080"
	DefaultAPITimeout     = 30 * time.Second
	DefaultDatabasePath   = "~/.local/share/claim/claim.db"
	DefaultCookieFile     = "~/.config/claim/cookies.txt"
	DefaultLogFile        = "~/.local/state/claim/claim.log"
	DefaultUploadParallel = 3
	DefaultTheme          = "default"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	APIBaseURL     string
	WebBaseURL     string
	DatabasePath   string
	CookieFile     string
	LogLevel       string
	LogFormat      string
	LogFile        string
	Theme          string
	Lang           language.Tag
	APITimeout     time.Duration
	UploadParallel int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBaseURL, DefaultAPIBaseURL)
	v.SetDefault(KeyAPITimeout, DefaultAPITimeout)
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyCookieFile, DefaultCookieFile)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyUploadParallel, DefaultUploadParallel)
	v.SetDefault(KeyTheme, DefaultTheme)
}

// Load reads and validates Settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		APIBaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIBaseURL)), "/"),
		WebBaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString(KeyWebBaseURL)), "/"),
		APITimeout:     v.GetDuration(KeyAPITimeout),
		DatabasePath:   ExpandPath(v.GetString(KeyDatabasePath)),
		CookieFile:     ExpandPath(v.GetString(KeyCookieFile)),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		LogFile:        ExpandPath(v.GetString(KeyLogFile)),
		Theme:          v.GetString(KeyTheme),
		UploadParallel: v.GetInt(KeyUploadParallel),
	}

	if s.APIBaseURL == "" {
		return s, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyAPIBaseURL)
	}
	if err := validateBaseURL(s.APIBaseURL); err != nil {
		return s, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, KeyAPIBaseURL, err)
	}
	if s.WebBaseURL == "" {
		s.WebBaseURL = s.APIBaseURL
	} else if err := validateBaseURL(s.WebBaseURL); err != nil {
		return s, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, KeyWebBaseURL, err)
	}
	if s.APITimeout <= 0 {
		s.APITimeout = DefaultAPITimeout
	}
	if s.UploadParallel <= 0 {
		s.UploadParallel = DefaultUploadParallel
	}
	// An unset language follows the locale; a configured one must be supported.
	if lang := strings.TrimSpace(v.GetString(KeyLang)); lang == "" {
		s.Lang = i18n.Match(i18n.EnvLocale())
	} else {
		tag, err := i18n.Parse(lang)
		if err != nil {
			return s, fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, KeyLang, err)
		}
		s.Lang = tag
	}
	if s.LogFormat != "console" && s.LogFormat != "json" {
		return s, fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, s.LogFormat)
	}

	return s, nil
}

func validateBaseURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
