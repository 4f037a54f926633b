//nolint:mnd //no magic number
package config

import (
	"log/slog"

	"github.com/xdoubleu/essentia/v2/pkg/config"
)

type Config struct {
	Env                 string
	Port                int
	WebURL              string
	SentryDsn           string
	SampleRate          float64
	DBDsn               string
	Release             string
	UniboBaseURL        string
	OpenDataURL         string
	ViewerBaseURL       string
	ProviderBaseURL     string
	SubjectsCacheExpiry string
	CalendarCacheExpiry string
	SyncCatalogue       bool
}

func New(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.ProdEnv)
	cfg.Port = parser.EnvInt("PORT", 8000)
	cfg.WebURL = parser.EnvStr("WEB_URL", "http://localhost:8000")
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.DBDsn = parser.EnvStr("DB_DSN", "postgres://postgres@localhost/postgres")
	cfg.Release = parser.EnvStr("RELEASE", config.DevEnv)

	cfg.UniboBaseURL = parser.EnvStr("UNIBO_BASE_URL", "https://corsi.unibo.it")
	cfg.OpenDataURL = parser.EnvStr("OPENDATA_URL", "https://dati.unibo.it")
	cfg.ViewerBaseURL = parser.EnvStr(
		"VIEWER_BASE_URL",
		"https://simonrob.github.io/online-ics-feed-viewer/",
	)
	cfg.ProviderBaseURL = parser.EnvStr(
		"PROVIDER_BASE_URL",
		"https://www.google.com/calendar/render",
	)

	cfg.SubjectsCacheExpiry = parser.EnvStr("SUBJECTS_CACHE_EXPIRY", "1h")
	cfg.CalendarCacheExpiry = parser.EnvStr("CALENDAR_CACHE_EXPIRY", "10m")
	cfg.SyncCatalogue = parser.EnvBool("SYNC_CATALOGUE", true)

	return cfg
}
