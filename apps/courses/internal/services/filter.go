package services

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"unical.xdoubleu.com/apps/courses/internal/filter"
	"unical.xdoubleu.com/apps/courses/internal/models"
)

type FilterService struct {
	courses *CourseService
	links   filter.LinkRenderer
	badges  filter.BadgeRenderer
}

// CourseFilter is the filter page of a course together with its initial view.
type CourseFilter struct {
	Page *filter.Page
	View models.CoursePage
}

func FeedPath(mode filter.Mode, course int, year int, curriculum string) string {
	endpoint := "cal"
	if mode == filter.Exams {
		endpoint = "exams"
	}

	return fmt.Sprintf(
		"/courses/%s/%d/%d?curr=%s",
		endpoint,
		course,
		year,
		url.QueryEscape(curriculum),
	)
}

// Build lays out one filter group per year and curriculum of the course.
func (service *FilterService) Build(
	ctx context.Context,
	course *models.Course,
	host string,
) (*CourseFilter, error) {
	curricula, err := service.courses.GetCurricula(ctx, course)
	if err != nil {
		return nil, err
	}

	cfg := filter.PageConfig{
		Host:        host,
		Blocks:      []filter.Block{},
		Controls:    []filter.Control{},
		BadgeGroups: []filter.GroupKey{},
		Links:       service.links,
		Badges:      service.badges,
	}

	subjects := map[filter.GroupKey][]models.SubjectControl{}
	for _, year := range curricula {
		for _, curriculum := range year.Curricula {
			group := filter.GroupKey{Year: year.Year, Curriculum: curriculum.Code}

			for _, mode := range filter.Modes {
				cfg.Blocks = append(cfg.Blocks, filter.Block{
					Mode:     mode,
					Group:    group,
					FeedPath: FeedPath(mode, course.Code, year.Year, curriculum.Code),
				})
			}
			cfg.BadgeGroups = append(cfg.BadgeGroups, group)

			taught, err := service.courses.GetSubjects(ctx, course, year.Year, curriculum.Code)
			if err != nil {
				service.courses.logger.Warn(
					"unable to fetch subjects",
					slog.Int("course", course.Code),
					slog.String("group", group.String()),
					logging.ErrAttr(err),
				)
				continue
			}

			for _, subject := range taught {
				cfg.Controls = append(cfg.Controls, filter.Control{
					Group:   group,
					Token:   subject.Code,
					Label:   subject.Name,
					Checked: false,
				})
				subjects[group] = append(subjects[group], models.SubjectControl{
					Code:    subject.Code,
					Name:    subject.Name,
					Checked: false,
				})
			}
		}
	}

	page := filter.NewPage(cfg)

	view := models.CoursePage{
		Course:    *course,
		Years:     []models.YearView{},
		SocketURL: fmt.Sprintf("/courses/api/filter?course=%d", course.Code),
	}

	for _, year := range curricula {
		yearView := models.YearView{Year: year.Year, Groups: []models.GroupView{}}

		for _, curriculum := range year.Curricula {
			group := filter.GroupKey{Year: year.Year, Curriculum: curriculum.Code}
			yearView.Groups = append(
				yearView.Groups,
				service.groupView(page, group, curriculum, subjects[group]),
			)
		}

		view.Years = append(view.Years, yearView)
	}

	return &CourseFilter{Page: page, View: view}, nil
}

func (service *FilterService) groupView(
	page *filter.Page,
	group filter.GroupKey,
	curriculum models.Curriculum,
	subjects []models.SubjectControl,
) models.GroupView {
	badgesID, _ := page.Layout().Badges(group)

	badges := service.badges.Render(page.State().Registry.CheckedLabels(group))

	view := models.GroupView{
		Key:        group,
		Curriculum: curriculum,
		Subjects:   subjects,
		BadgesID:   badgesID,
		Badges:     template.HTML(badges), //nolint:gosec //labels are escaped
		Feeds:      []models.FeedView{},
	}

	for _, mode := range filter.Modes {
		targets, ok := page.Layout().Block(mode, group)
		if !ok {
			continue
		}

		links, _ := page.Links(mode, group)
		view.Feeds = append(view.Feeds, models.FeedView{
			Mode:       mode,
			Title:      mode.Title(),
			Targets:    targets,
			Links:      links,
			NativeHref: template.URL(links.Native), //nolint:gosec //webcal feed of this page
		})
	}

	return view
}
