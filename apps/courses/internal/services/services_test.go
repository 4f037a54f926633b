package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
	"unical.xdoubleu.com/apps/courses/internal/filter"
	"unical.xdoubleu.com/apps/courses/internal/models"
	"unical.xdoubleu.com/apps/courses/internal/services"
	"unical.xdoubleu.com/apps/courses/mocks"
	"unical.xdoubleu.com/internal/config"
)

func newTestServices(t *testing.T, store services.CourseStore) *services.Services {
	t.Helper()

	cfg := config.New(logging.NewNopLogger())

	appServices, err := services.New(
		logging.NewNopLogger(),
		cfg,
		threading.NewJobQueue(logging.NewNopLogger(), 1, 10),
		store,
		mocks.NewMockUniboClient(),
	)
	require.Nil(t, err)

	return appServices
}

func TestNewInvalidExpiry(t *testing.T) {
	cfg := config.New(logging.NewNopLogger())
	cfg.SubjectsCacheExpiry = "soon"

	_, err := services.New(
		logging.NewNopLogger(),
		cfg,
		threading.NewJobQueue(logging.NewNopLogger(), 1, 10),
		mocks.NewMockCourseStore(),
		mocks.NewMockUniboClient(),
	)
	assert.NotNil(t, err)
}

func TestParseSubjects(t *testing.T) {
	assert.Equal(t, []string{}, services.ParseSubjects(""))
	assert.Equal(
		t,
		[]string{"CS301", "CS302"},
		services.ParseSubjects(",CS302,,CS301,CS302,"),
	)
}

func TestFeedPath(t *testing.T) {
	assert.Equal(
		t,
		"/courses/cal/8009/3?curr=A",
		services.FeedPath(filter.Lectures, 8009, 3, "A"),
	)
	assert.Equal(
		t,
		"/courses/exams/8009/1?curr=",
		services.FeedPath(filter.Exams, 8009, 1, ""),
	)
}

func TestSyncCatalogue(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	store := mocks.NewMockCourseStore(models.Course{Code: 42, DurationYears: 1})
	appServices := newTestServices(t, store)

	courses, err := appServices.Courses.GetAll(context.Background())
	require.Nil(t, err)
	require.Len(t, courses, 1)

	synced, err := appServices.Courses.SyncCatalogue(
		context.Background(),
		time.Now().Year(),
	)
	require.Nil(t, err)
	assert.Equal(t, 1, synced)

	courses, err = appServices.Courses.GetAll(context.Background())
	require.Nil(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, mocks.MockCourseCode, courses[0].Code)

	_, err = appServices.Courses.SyncCatalogue(context.Background(), 1900)
	assert.NotNil(t, err)
}

func TestGetWebsiteIsStored(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	store := mocks.NewMockCourseStore(models.Course{Code: 42, DurationYears: 2})
	appServices := newTestServices(t, store)

	course, err := appServices.Courses.GetByCode(context.Background(), 42)
	require.Nil(t, err)
	assert.Nil(t, course.Website)

	website, err := appServices.Courses.GetWebsite(context.Background(), course)
	require.Nil(t, err)
	assert.Equal(t, "informatica", website.ID)

	stored, err := appServices.Courses.GetByCode(context.Background(), 42)
	require.Nil(t, err)
	require.NotNil(t, stored.Website)
	assert.Equal(t, website, *stored.Website)
}

func TestGetCurricula(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	store := mocks.NewMockCourseStore(models.Course{Code: 42, DurationYears: 2})
	appServices := newTestServices(t, store)

	course, err := appServices.Courses.GetByCode(context.Background(), 42)
	require.Nil(t, err)

	curricula, err := appServices.Courses.GetCurricula(context.Background(), course)
	require.Nil(t, err)
	require.Len(t, curricula, 2)

	assert.Equal(t, 1, curricula[0].Year)
	assert.Equal(t, []models.Curriculum{models.DefaultCurriculum}, curricula[0].Curricula)
	assert.Equal(t, 2, curricula[1].Year)
	assert.Len(t, curricula[1].Curricula, 2)
}

func TestGetSubjectsSortedByName(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	store := mocks.NewMockCourseStore(models.Course{Code: 42, DurationYears: 1})
	appServices := newTestServices(t, store)

	course, err := appServices.Courses.GetByCode(context.Background(), 42)
	require.Nil(t, err)

	subjects, err := appServices.Courses.GetSubjects(context.Background(), course, 1, "")
	require.Nil(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Reti", subjects[0].Name)
	assert.Equal(t, "Sistemi operativi", subjects[1].Name)
}

func TestBuildFilter(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	store := mocks.NewMockCourseStore(models.Course{Code: 42, DurationYears: 2})
	appServices := newTestServices(t, store)

	course, err := appServices.Courses.GetByCode(context.Background(), 42)
	require.Nil(t, err)

	courseFilter, err := appServices.Filter.Build(context.Background(), course, "example.com")
	require.Nil(t, err)

	require.Len(t, courseFilter.View.Years, 2)
	assert.Len(t, courseFilter.View.Years[0].Groups, 1)
	assert.Len(t, courseFilter.View.Years[1].Groups, 2)

	group := courseFilter.View.Years[1].Groups[0]
	assert.Equal(t, "l2_A_badges", group.BadgesID)
	require.Len(t, group.Feeds, 2)
	assert.Equal(t, "l2_A", group.Feeds[0].Targets.Plain)
	assert.Equal(t, "webcal://example.com/courses/cal/42/2?curr=A", group.Feeds[0].Links.Plain)
	assert.Equal(t, "e2_A_google", group.Feeds[1].Targets.Provider)

	commands := courseFilter.Page.Toggle(filter.Toggle{
		Group:   group.Key,
		Token:   "CS302",
		Checked: true,
	})
	assert.Len(t, commands, 9)
}
