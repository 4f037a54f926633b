package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
	"github.com/xhit/go-str2duration/v2"
	"unical.xdoubleu.com/apps/courses/internal/filter"
	"unical.xdoubleu.com/apps/courses/internal/models"
	"unical.xdoubleu.com/apps/courses/pkg/unibo"
	"unical.xdoubleu.com/internal/config"
)

// CourseStore persists the course catalogue.
type CourseStore interface {
	GetAll(ctx context.Context) ([]models.Course, error)
	GetByCode(ctx context.Context, code int) (*models.Course, error)
	UpsertMany(ctx context.Context, courses []models.Course) error
	DeleteAllExcept(ctx context.Context, codes []int) (int64, error)
	SetWebsite(ctx context.Context, code int, website unibo.Website) error
}

type Services struct {
	Courses   *CourseService
	Feeds     *FeedService
	Filter    *FilterService
	WebSocket *WebSocketService
}

func New(
	logger *slog.Logger,
	cfg config.Config,
	jobQueue *threading.JobQueue,
	store CourseStore,
	client unibo.Client,
) (*Services, error) {
	subjectsExpiry, err := str2duration.ParseDuration(cfg.SubjectsCacheExpiry)
	if err != nil {
		return nil, fmt.Errorf("invalid subjects cache expiry: %w", err)
	}

	calendarExpiry, err := str2duration.ParseDuration(cfg.CalendarCacheExpiry)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar cache expiry: %w", err)
	}

	courses := &CourseService{
		logger:   logger,
		store:    store,
		client:   client,
		subjects: newCache(subjectsExpiry),
	}
	feeds := &FeedService{
		logger:    logger,
		courses:   courses,
		client:    client,
		calendars: newCache(calendarExpiry),
	}
	filterService := &FilterService{
		courses: courses,
		links:   filter.NewLinkRenderer(cfg.ViewerBaseURL, cfg.ProviderBaseURL),
		badges:  filter.NewBadgeRenderer(""),
	}

	return &Services{
		Courses:   courses,
		Feeds:     feeds,
		Filter:    filterService,
		WebSocket: NewWebSocketService(logger, []string{cfg.WebURL}, jobQueue),
	}, nil
}

func newCache(expiry time.Duration) *cache.Cache {
	//nolint:mnd //expired entries are purged at a multiple of the expiry
	return cache.New(expiry, 5*expiry)
}
