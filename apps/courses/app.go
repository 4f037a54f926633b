package courses

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	// needed for embedding timezone data.
	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
	"unical.xdoubleu.com/apps/courses/internal/jobs"
	"unical.xdoubleu.com/apps/courses/internal/repositories"
	"unical.xdoubleu.com/apps/courses/internal/services"
	"unical.xdoubleu.com/apps/courses/pkg/unibo"
	"unical.xdoubleu.com/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

//go:embed templates/html/**/*html
var htmlTemplates embed.FS

//go:embed static/**
var static embed.FS

type Clients struct {
	Unibo unibo.Client
}

type Courses struct {
	logger    *slog.Logger
	ctx       context.Context
	ctxCancel context.CancelFunc
	Config    config.Config
	clients   Clients
	Services  *services.Services
	tpl       *template.Template
	static    embed.FS
	jobQueue  *threading.JobQueue
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	db postgres.DB,
) *Courses {
	clients := Clients{
		Unibo: unibo.New(logger, cfg.UniboBaseURL, cfg.OpenDataURL),
	}

	repos := repositories.New(postgres.NewSpanDB(db))

	return NewInner(logger, cfg, repos.Courses, clients)
}

func NewInner(
	logger *slog.Logger,
	cfg config.Config,
	store services.CourseStore,
	clients Clients,
) *Courses {
	tpl := template.Must(template.ParseFS(htmlTemplates, "templates/html/**/*.html"))

	//nolint:mnd //no magic number
	jobQueue := threading.NewJobQueue(logger, 2, 100)

	//nolint:exhaustruct //other fields are optional
	app := &Courses{
		logger:   logger,
		Config:   cfg,
		clients:  clients,
		tpl:      tpl,
		static:   static,
		jobQueue: jobQueue,
	}

	app.setContext()

	appServices, err := services.New(logger, cfg, jobQueue, store, clients.Unibo)
	if err != nil {
		panic(err)
	}
	app.Services = appServices

	app.setJobs()

	return app
}

func (app *Courses) setJobs() {
	if app.Config.SyncCatalogue {
		err := app.jobQueue.AddJob(
			jobs.NewOpenDataJob(app.Services.Courses),
			app.Services.WebSocket.UpdateState,
		)
		if err != nil {
			panic(err)
		}
	}

	err := app.jobQueue.AddJob(
		jobs.NewSubjectsJob(app.Services.Courses),
		app.Services.WebSocket.UpdateState,
	)
	if err != nil {
		panic(err)
	}

	app.Services.WebSocket.RegisterTopics(app.jobQueue.FetchJobIDs())
}

func (app *Courses) setContext() {
	ctx, cancel := context.WithCancel(context.Background())
	app.ctx = ctx
	app.ctxCancel = cancel
}

func (app *Courses) ApplyMigrations(db *pgxpool.Pool) error {
	migrationsDB := stdlib.OpenDBFromPool(db)

	goose.SetLogger(slog.NewLogLogger(app.logger.Handler(), slog.LevelInfo))

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(string(goose.DialectPostgres)); err != nil {
		return err
	}

	if err := goose.Up(migrationsDB, "migrations"); err != nil {
		return err
	}

	return nil
}

func (app *Courses) GetName() string {
	return "courses"
}
