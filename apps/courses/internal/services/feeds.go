package services

import (
	"context"
	"crypto/sha1" //nolint:gosec //only used for stable event uids
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/patrickmn/go-cache"
	"unical.xdoubleu.com/apps/courses/internal/filter"
	"unical.xdoubleu.com/apps/courses/internal/models"
	"unical.xdoubleu.com/apps/courses/pkg/unibo"
)

//nolint:mnd //exam sessions have no published end
const examDuration = 2 * time.Hour

type FeedService struct {
	logger    *slog.Logger
	courses   *CourseService
	client    unibo.Client
	calendars *cache.Cache
}

// FeedRequest identifies one calendar feed. Subjects are sorted and distinct.
type FeedRequest struct {
	Course     *models.Course
	Year       int
	Curriculum string
	Subjects   []string
}

func (request FeedRequest) cacheKey(mode filter.Mode) string {
	return fmt.Sprintf(
		"%s-%d-%d-%s-%s",
		mode,
		request.Course.Code,
		request.Year,
		request.Curriculum,
		strings.Join(request.Subjects, ","),
	)
}

// ParseSubjects splits a subjects query value into sorted distinct codes.
func ParseSubjects(raw string) []string {
	subjects := []string{}
	for _, code := range strings.Split(raw, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		subjects = append(subjects, code)
	}

	slices.Sort(subjects)
	return slices.Compact(subjects)
}

// Lectures returns the serialized lecture calendar of a feed request.
func (service *FeedService) Lectures(
	ctx context.Context,
	request FeedRequest,
) (string, error) {
	key := request.cacheKey(filter.Lectures)
	if cal, found := service.calendars.Get(key); found {
		//nolint:errcheck //only calendars are stored under these keys
		return cal.(string), nil
	}

	timetable, err := service.courses.GetTimetable(
		ctx,
		request.Course,
		request.Year,
		request.Curriculum,
	)
	if err != nil {
		return "", err
	}

	if len(request.Subjects) > 0 {
		timetable = timetable.Filter(request.Subjects)
	}

	cal, err := lecturesCalendar(timetable, request.Course, request.Year)
	if err != nil {
		return "", err
	}

	serialized := cal.Serialize()
	service.calendars.Set(key, serialized, cache.DefaultExpiration)

	return serialized, nil
}

// Exams returns the serialized exam calendar of a feed request. Without
// explicit subjects the exams of the subjects taught in the year are kept.
func (service *FeedService) Exams(
	ctx context.Context,
	request FeedRequest,
) (string, error) {
	key := request.cacheKey(filter.Exams)
	if cal, found := service.calendars.Get(key); found {
		//nolint:errcheck //only calendars are stored under these keys
		return cal.(string), nil
	}

	website, err := service.courses.GetWebsite(ctx, request.Course)
	if err != nil {
		return "", err
	}

	codes := request.Subjects
	if len(codes) == 0 {
		var subjects []unibo.Subject
		subjects, err = service.courses.GetSubjects(
			ctx,
			request.Course,
			request.Year,
			request.Curriculum,
		)
		if err != nil {
			return "", err
		}

		for _, subject := range subjects {
			codes = append(codes, subject.Code)
		}
	}

	exams, err := service.client.GetExams(ctx, website)
	if err != nil {
		return "", err
	}

	exams = slices.DeleteFunc(exams, func(exam unibo.Exam) bool {
		return !slices.Contains(codes, exam.SubjectCode)
	})
	service.logger.Debug(
		"built exams feed",
		slog.Int("course", request.Course.Code),
		slog.Int("year", request.Year),
		slog.Int("exams", len(exams)),
	)

	cal, err := examsCalendar(
		exams,
		fmt.Sprintf("%s - esami %d anno", request.Course.Description, request.Year),
		fmt.Sprintf(
			"Appelli d'esame del %d anno del corso di %s",
			request.Year,
			request.Course.Description,
		),
	)
	if err != nil {
		return "", err
	}

	serialized := cal.Serialize()
	service.calendars.Set(key, serialized, cache.DefaultExpiration)

	return serialized, nil
}

func eventUID(format string, args ...any) (string, error) {
	//nolint:gosec //only used for stable event uids
	sha := sha1.New()
	if _, err := fmt.Fprintf(sha, format, args...); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sha.Sum(nil)), nil
}

func lecturesCalendar(
	timetable unibo.Timetable,
	course *models.Course,
	year int,
) (*ics.Calendar, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)

	for _, event := range timetable {
		uid, err := eventUID("%s%s%s", event.ModuleCode, event.Start, event.End)
		if err != nil {
			return nil, err
		}

		e := cal.AddEvent(uid)
		e.SetOrganizer(event.Teacher)
		e.SetSummary(event.Title)
		e.SetStartAt(event.Start.Time)
		e.SetEndAt(event.End.Time)
		e.SetDtStampTime(time.Now())

		b := strings.Builder{}
		fmt.Fprintf(&b, "Docente: %s\n", event.Teacher)
		if len(event.Classrooms) > 0 {
			classroom := event.Classrooms[0].Description
			fmt.Fprintf(&b, "Aula: %s\n", classroom)
			e.SetLocation(classroom)
		}
		fmt.Fprintf(&b, "Cfu: %d\n", event.Cfu)
		fmt.Fprintf(&b, "Periodo: %s\n", event.Period)
		fmt.Fprintf(&b, "Codice modulo: %s\n", event.ModuleCode)
		if event.Remote && event.Teams != "" {
			fmt.Fprintf(&b, "Teams: %s\n", event.Teams)
		}

		e.SetDescription(b.String())
	}

	cal.SetName(fmt.Sprintf("%s - %d anno", course.Description, year))
	cal.SetDescription(fmt.Sprintf(
		"Orario delle lezioni del %d anno del corso di %s",
		year,
		course.Description,
	))

	return cal, nil
}

func examsCalendar(exams []unibo.Exam, title, description string) (*ics.Calendar, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)

	for _, exam := range exams {
		uid, err := eventUID(
			"%s%s%s%s",
			exam.SubjectName,
			exam.Date,
			exam.Location,
			exam.Teacher,
		)
		if err != nil {
			return nil, err
		}

		e := cal.AddEvent(uid)
		e.SetOrganizer(exam.Teacher)
		e.SetSummary(exam.SubjectName)
		e.SetStartAt(exam.Date)
		e.SetEndAt(exam.Date.Add(examDuration))
		e.SetLocation(exam.Location)
		e.SetDtStampTime(time.Now())

		b := strings.Builder{}
		fmt.Fprintf(&b, "Docente: %s\n", exam.Teacher)
		fmt.Fprintf(&b, "Codice: %s\n", exam.SubjectCode)
		fmt.Fprintf(&b, "Tipo: %s\n", exam.Type)

		e.SetDescription(b.String())
	}

	cal.SetName(title)
	cal.SetDescription(description)

	return cal, nil
}
