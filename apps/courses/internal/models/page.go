package models

import (
	"html/template"

	"unical.xdoubleu.com/apps/courses/internal/filter"
)

// CoursePage is the view of a course with one filter group per year and curriculum.
type CoursePage struct {
	Course    Course
	Years     []YearView
	SocketURL string
}

type YearView struct {
	Year   int
	Groups []GroupView
}

type GroupView struct {
	Key        filter.GroupKey
	Curriculum Curriculum
	Subjects   []SubjectControl
	BadgesID   string
	Badges     template.HTML
	Feeds      []FeedView
}

type SubjectControl struct {
	Code    string
	Name    string
	Checked bool
}

type FeedView struct {
	Mode       filter.Mode
	Title      string
	Targets    filter.BlockTargets
	Links      filter.Links
	NativeHref template.URL
}
