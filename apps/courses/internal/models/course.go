package models

import (
	"strconv"

	"unical.xdoubleu.com/apps/courses/pkg/unibo"
)

type Course struct {
	Code          int
	AcademicYear  string
	Description   string
	URL           string
	Campus        string
	Site          string
	Areas         string
	Typology      string
	DurationYears int
	International bool
	Languages     string
	Access        string
	Website       *unibo.Website
}

func CourseFromUnibo(course unibo.Course) Course {
	return Course{
		Code:          course.Code,
		AcademicYear:  course.AcademicYear,
		Description:   course.Description,
		URL:           course.URL,
		Campus:        course.Campus,
		Site:          course.Site,
		Areas:         course.Areas,
		Typology:      course.Typology,
		DurationYears: course.DurationYears,
		International: course.International,
		Languages:     course.Languages,
		Access:        course.Access,
		Website:       nil,
	}
}

func (course Course) CodeString() string {
	return strconv.Itoa(course.Code)
}

// Years lists the years of the course starting at 1.
func (course Course) Years() []int {
	years := make([]int, 0, course.DurationYears)
	for year := 1; year <= course.DurationYears; year++ {
		years = append(years, year)
	}
	return years
}

func (course Course) HasYear(year int) bool {
	return year >= 1 && year <= course.DurationYears
}
