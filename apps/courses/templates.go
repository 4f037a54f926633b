package courses

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
	tpltools "github.com/xdoubleu/essentia/v2/pkg/tpl"
	"unical.xdoubleu.com/apps/courses/internal/models"
)

func (app *Courses) templateRoutes(prefix string, mux *http.ServeMux) {
	mux.Handle(
		fmt.Sprintf("GET /%s/static/", prefix),
		http.StripPrefix("/"+prefix, http.FileServerFS(app.static)),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/{$}", prefix),
		app.indexHandler,
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/{id}", prefix),
		app.courseHandler,
	)
}

func (app *Courses) indexHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := app.Services.Courses.GetAll(r.Context())
	if err != nil {
		panic(err)
	}

	tpltools.RenderWithPanic(app.tpl, w, "index.html", courses)
}

func (app *Courses) courseHandler(w http.ResponseWriter, r *http.Request) {
	course, ok := app.courseFromPath(w, r)
	if !ok {
		return
	}

	courseFilter, err := app.Services.Filter.Build(r.Context(), course, r.Host)
	if err != nil {
		app.logger.Error("failed to build course filter", logging.ErrAttr(err))
		http.Error(w, "Unable to retrieve curricula", http.StatusBadGateway)
		return
	}

	tpltools.RenderWithPanic(app.tpl, w, "course.html", courseFilter.View)
}

// courseFromPath resolves the {id} path value, writing the error response when it fails.
func (app *Courses) courseFromPath(
	w http.ResponseWriter,
	r *http.Request,
) (*models.Course, bool) {
	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		http.Error(w, "Invalid course id", http.StatusBadRequest)
		return nil, false
	}

	return app.courseFromID(w, r, id)
}

func (app *Courses) courseFromID(
	w http.ResponseWriter,
	r *http.Request,
	id string,
) (*models.Course, bool) {
	code, err := strconv.Atoi(id)
	if err != nil {
		http.Error(w, "Invalid course id", http.StatusBadRequest)
		return nil, false
	}

	course, err := app.Services.Courses.GetByCode(r.Context(), code)
	if errors.Is(err, database.ErrResourceNotFound) {
		http.Error(w, "Course not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		panic(err)
	}

	return course, true
}
