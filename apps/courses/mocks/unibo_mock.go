package mocks

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"unical.xdoubleu.com/apps/courses/pkg/unibo"
)

const MockCourseCode = 8009

type MockUniboClient struct {
	timetableCalls atomic.Int64
}

func NewMockUniboClient() *MockUniboClient {
	return &MockUniboClient{}
}

// TimetableCalls counts the timetables fetched so far.
func (client *MockUniboClient) TimetableCalls() int64 {
	return client.timetableCalls.Load()
}

func (client *MockUniboClient) GetCourses(_ context.Context) ([]unibo.Course, error) {
	year := time.Now().Year()

	return []unibo.Course{
		{
			AcademicYear:  fmt.Sprintf("%d/%d", year, year+1),
			Code:          MockCourseCode,
			Description:   "INFORMATICA",
			URL:           "https://www.unibo.it/it/studiare/8009",
			Campus:        "Bologna",
			Typology:      "Laurea",
			DurationYears: 3,
			Languages:     "italiano",
			Access:        "libero",
		},
		{
			AcademicYear:  "1999/2000",
			Code:          1,
			Description:   "OLD",
			URL:           "https://www.unibo.it/it/studiare/1",
			DurationYears: 2,
		},
	}, nil
}

func (client *MockUniboClient) GetWebsite(
	_ context.Context,
	_ string,
) (*unibo.Website, error) {
	return &unibo.Website{Typology: "laurea", ID: "informatica"}, nil
}

func (client *MockUniboClient) GetCurricula(
	_ context.Context,
	_ unibo.Website,
	year int,
) ([]unibo.Curriculum, error) {
	if year == 1 {
		return []unibo.Curriculum{}, nil
	}

	return []unibo.Curriculum{
		{Selected: true, Value: "A", Label: "Curriculum A"},
		{Selected: false, Value: "B", Label: "Curriculum B"},
	}, nil
}

func (client *MockUniboClient) GetTimetable(
	_ context.Context,
	_ unibo.Website,
	_ int,
	_ string,
) (unibo.Timetable, error) {
	client.timetableCalls.Add(1)

	start := time.Date(2025, time.October, 6, 9, 0, 0, 0, time.UTC)

	return unibo.Timetable{
		{
			ModuleCode: "CS301",
			Title:      "Sistemi operativi",
			Teacher:    "Mario Rossi",
			Cfu:        6,
			Start:      unibo.CalendarTime{Time: start},
			End:        unibo.CalendarTime{Time: start.Add(2 * time.Hour)},
			Classrooms: []unibo.Classroom{{Description: "Aula 1"}},
		},
		{
			ModuleCode: "CS302",
			Title:      "Reti",
			Teacher:    "Anna Bianchi",
			Cfu:        6,
			Start:      unibo.CalendarTime{Time: start.Add(24 * time.Hour)},
			End:        unibo.CalendarTime{Time: start.Add(26 * time.Hour)},
		},
	}, nil
}

func (client *MockUniboClient) GetExams(
	_ context.Context,
	_ unibo.Website,
) ([]unibo.Exam, error) {
	date := time.Date(2026, time.January, 16, 9, 0, 0, 0, time.UTC)

	return []unibo.Exam{
		{
			SubjectCode: "CS301",
			SubjectName: "Sistemi operativi",
			Date:        date,
			Type:        "Scritto",
			Location:    "Aula 1",
			Teacher:     "Mario Rossi",
		},
		{
			SubjectCode: "XX999",
			SubjectName: "Altro",
			Date:        date,
			Type:        "Orale",
			Location:    "Aula 2",
			Teacher:     "Luca Verdi",
		},
	}, nil
}
