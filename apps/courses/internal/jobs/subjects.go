package jobs

import (
	"context"
	"log/slog"
	"time"

	"unical.xdoubleu.com/apps/courses/internal/services"
)

// SubjectsJob keeps the subjects cache warm for visited courses.
type SubjectsJob struct {
	courseService *services.CourseService
}

func NewSubjectsJob(courseService *services.CourseService) SubjectsJob {
	return SubjectsJob{
		courseService: courseService,
	}
}

func (j SubjectsJob) ID() string {
	return "subjects"
}

func (j SubjectsJob) RunEvery() time.Duration {
	//nolint:mnd //no magic number
	return 45 * time.Minute
}

func (j SubjectsJob) Run(ctx context.Context, logger *slog.Logger) error {
	warmed, err := j.courseService.WarmSubjects(ctx)
	if err != nil {
		return err
	}

	logger.Debug("warmed subjects cache", slog.Int("groups", warmed))
	return nil
}
