package courses

import (
	"context"
	"net/http"
	"strconv"

	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
	"unical.xdoubleu.com/apps/courses/internal/services"
)

type feedBuilder func(ctx context.Context, request services.FeedRequest) (string, error)

func (app *Courses) lecturesFeedHandler(w http.ResponseWriter, r *http.Request) {
	app.serveFeed(w, r, "lezioni.ics", app.Services.Feeds.Lectures)
}

func (app *Courses) examsFeedHandler(w http.ResponseWriter, r *http.Request) {
	app.serveFeed(w, r, "esami.ics", app.Services.Feeds.Exams)
}

func (app *Courses) serveFeed(
	w http.ResponseWriter,
	r *http.Request,
	filename string,
	build feedBuilder,
) {
	yearStr, err := parse.URLParam[string](r, "year", nil)
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}

	course, ok := app.courseFromPath(w, r)
	if !ok {
		return
	}

	if !course.HasYear(year) {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	cal, err := build(r.Context(), services.FeedRequest{
		Course:     course,
		Year:       year,
		Curriculum: query.Get("curr"),
		Subjects:   services.ParseSubjects(query.Get("subjects")),
	})
	if err != nil {
		app.logger.Error("failed to build calendar", logging.ErrAttr(err))
		http.Error(w, "Unable to retrieve calendar", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Content-Type, Content-Length, Accept-Encoding, Authorization",
	)
	w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")

	_, err = w.Write([]byte(cal))
	if err != nil {
		app.logger.Error("failed to write calendar", logging.ErrAttr(err))
	}
}
