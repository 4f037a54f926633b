package unibo

import "context"

type Client interface {
	GetCourses(ctx context.Context) ([]Course, error)
	GetWebsite(ctx context.Context, courseURL string) (*Website, error)
	GetCurricula(ctx context.Context, website Website, year int) ([]Curriculum, error)
	GetTimetable(
		ctx context.Context,
		website Website,
		year int,
		curriculum string,
	) (Timetable, error)
	GetExams(ctx context.Context, website Website) ([]Exam, error)
}
