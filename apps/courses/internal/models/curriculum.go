package models

import "unical.xdoubleu.com/apps/courses/pkg/unibo"

// DefaultCurriculum is used when a year publishes no curricula.
//
//nolint:gochecknoglobals //shared default
var DefaultCurriculum = Curriculum{Code: "", Label: "Curriculum unico"}

type Curriculum struct {
	Code  string
	Label string
}

type YearCurricula struct {
	Year      int
	Curricula []Curriculum
}

func CurriculaFromUnibo(curricula []unibo.Curriculum) []Curriculum {
	if len(curricula) == 0 {
		return []Curriculum{DefaultCurriculum}
	}

	result := make([]Curriculum, 0, len(curricula))
	for _, curriculum := range curricula {
		result = append(result, Curriculum{
			Code:  curriculum.Value,
			Label: curriculum.Label,
		})
	}
	return result
}
