package main

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"
	"unical.xdoubleu.com/internal/config"
)

//go:embed templates/html/*html
var htmlTemplates embed.FS

type Application struct {
	logger *slog.Logger
	config config.Config
	apps   *Apps
	tpl    *template.Template
}

//	@title			unical
//	@version		1.0
//	@license.name	GPL-3.0
//	@Produce		html

func main() {
	cfg := config.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	logger := slog.New(sentrytools.NewLogHandler(cfg.Env,
		slog.NewTextHandler(os.Stdout, nil)))
	db, err := postgres.Connect(
		logger,
		cfg.DBDsn,
		25, //nolint:mnd //no magic number
		"15m",
		60,             //nolint:mnd //no magic number
		10*time.Second, //nolint:mnd //no magic number
		5*time.Minute,  //nolint:mnd //no magic number
	)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	apps := NewApps(logger, cfg, db)

	err = apps.ApplyMigrations(db)
	if err != nil {
		panic(err)
	}

	app := NewApplication(logger, cfg, apps)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,  //nolint:mnd //no magic number
		WriteTimeout: 30 * time.Second, //nolint:mnd //upstream timetables can be slow
	}
	err = httptools.Serve(logger, srv, cfg.Env)
	if err != nil {
		logger.Error("failed to serve server", logging.ErrAttr(err))
	}
}

func NewApplication(
	logger *slog.Logger,
	config config.Config,
	apps *Apps,
) *Application {
	tpl := template.Must(template.ParseFS(htmlTemplates, "templates/html/*.html"))

	return &Application{
		logger: logger,
		config: config,
		apps:   apps,
		tpl:    tpl,
	}
}

func (app *Application) ApplyMigrations(db *pgxpool.Pool) error {
	return app.apps.ApplyMigrations(db)
}
