package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"golang.org/x/sync/errgroup"
	"unical.xdoubleu.com/apps/courses/internal/models"
	"unical.xdoubleu.com/apps/courses/pkg/unibo"
)

type CourseService struct {
	logger   *slog.Logger
	store    CourseStore
	client   unibo.Client
	subjects *cache.Cache
}

func (service *CourseService) GetAll(ctx context.Context) ([]models.Course, error) {
	return service.store.GetAll(ctx)
}

func (service *CourseService) GetByCode(
	ctx context.Context,
	code int,
) (*models.Course, error) {
	return service.store.GetByCode(ctx, code)
}

// GetWebsite returns the website of the course, scraping and storing it on first use.
func (service *CourseService) GetWebsite(
	ctx context.Context,
	course *models.Course,
) (unibo.Website, error) {
	if course.Website != nil {
		return *course.Website, nil
	}

	website, err := service.client.GetWebsite(ctx, course.URL)
	if err != nil {
		return unibo.Website{}, err
	}

	err = service.store.SetWebsite(ctx, course.Code, *website)
	if err != nil {
		return unibo.Website{}, err
	}

	course.Website = website
	return *website, nil
}

// GetCurricula fetches the curricula of every year of the course concurrently.
func (service *CourseService) GetCurricula(
	ctx context.Context,
	course *models.Course,
) ([]models.YearCurricula, error) {
	website, err := service.GetWebsite(ctx, course)
	if err != nil {
		return nil, err
	}

	years := course.Years()
	result := make([]models.YearCurricula, len(years))

	g, gctx := errgroup.WithContext(ctx)
	for i, year := range years {
		g.Go(func() error {
			curricula, err := service.client.GetCurricula(gctx, website, year)
			if err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}

			result[i] = models.YearCurricula{
				Year:      year,
				Curricula: models.CurriculaFromUnibo(curricula),
			}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

func (service *CourseService) GetTimetable(
	ctx context.Context,
	course *models.Course,
	year int,
	curriculum string,
) (unibo.Timetable, error) {
	website, err := service.GetWebsite(ctx, course)
	if err != nil {
		return nil, err
	}

	return service.client.GetTimetable(ctx, website, year, curriculum)
}

// GetSubjects returns the subjects taught in a year and curriculum, sorted by name.
func (service *CourseService) GetSubjects(
	ctx context.Context,
	course *models.Course,
	year int,
	curriculum string,
) ([]unibo.Subject, error) {
	key := fmt.Sprintf("%d-%d-%s", course.Code, year, curriculum)
	if subjects, found := service.subjects.Get(key); found {
		//nolint:errcheck //only subjects are stored under these keys
		return subjects.([]unibo.Subject), nil
	}

	timetable, err := service.GetTimetable(ctx, course, year, curriculum)
	if err != nil {
		return nil, err
	}

	subjects := timetable.Subjects()
	service.subjects.Set(key, subjects, cache.DefaultExpiration)

	return subjects, nil
}

// SyncCatalogue replaces the stored catalogue with the courses of academicYear.
func (service *CourseService) SyncCatalogue(
	ctx context.Context,
	academicYear int,
) (int, error) {
	published, err := service.client.GetCourses(ctx)
	if err != nil {
		return 0, err
	}

	yearStr := strconv.Itoa(academicYear)

	courses := []models.Course{}
	codes := []int{}
	for _, course := range published {
		if !strings.Contains(course.AcademicYear, yearStr) {
			continue
		}

		courses = append(courses, models.CourseFromUnibo(course))
		codes = append(codes, course.Code)
	}

	if len(courses) == 0 {
		return 0, fmt.Errorf("no courses published for %d", academicYear)
	}

	if err = service.store.UpsertMany(ctx, courses); err != nil {
		return 0, err
	}

	removed, err := service.store.DeleteAllExcept(ctx, codes)
	if err != nil {
		return 0, err
	}

	service.logger.Debug(
		"synced course catalogue",
		slog.Int("courses", len(courses)),
		slog.Int64("removed", removed),
	)

	return len(courses), nil
}

// WarmSubjects fills the subjects cache for the courses whose website is known.
func (service *CourseService) WarmSubjects(ctx context.Context) (int, error) {
	courses, err := service.store.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	warmed := 0
	for i := range courses {
		course := &courses[i]
		if course.Website == nil {
			continue
		}

		curricula, err := service.GetCurricula(ctx, course)
		if err != nil {
			service.logger.Warn(
				"unable to fetch curricula",
				slog.Int("course", course.Code),
				logging.ErrAttr(err),
			)
			continue
		}

		for _, year := range curricula {
			for _, curriculum := range year.Curricula {
				_, err = service.GetSubjects(ctx, course, year.Year, curriculum.Code)
				if err != nil {
					service.logger.Warn(
						"unable to fetch subjects",
						slog.Int("course", course.Code),
						slog.Int("year", year.Year),
						logging.ErrAttr(err),
					)
					continue
				}
				warmed++
			}
		}
	}

	return warmed, nil
}
