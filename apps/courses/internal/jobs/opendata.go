package jobs

import (
	"context"
	"log/slog"
	"time"

	"unical.xdoubleu.com/apps/courses/internal/services"
)

// OpenDataJob syncs the course catalogue from the open data portal.
type OpenDataJob struct {
	courseService *services.CourseService
	now           func() time.Time
}

func NewOpenDataJob(courseService *services.CourseService) OpenDataJob {
	return OpenDataJob{
		courseService: courseService,
		now:           time.Now,
	}
}

func (j OpenDataJob) ID() string {
	return "opendata"
}

func (j OpenDataJob) RunEvery() time.Duration {
	//nolint:mnd //no magic number
	return 24 * time.Hour
}

func (j OpenDataJob) Run(ctx context.Context, logger *slog.Logger) error {
	year := j.now().Year()

	logger.Debug("syncing course catalogue", slog.Int("year", year))
	synced, err := j.courseService.SyncCatalogue(ctx, year)
	if err != nil {
		return err
	}

	logger.Info("synced course catalogue", slog.Int("courses", synced))
	return nil
}
