package repositories

import (
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type Repositories struct {
	Courses *CourseRepository
}

func New(db postgres.DB) *Repositories {
	return &Repositories{
		Courses: &CourseRepository{db: db},
	}
}
