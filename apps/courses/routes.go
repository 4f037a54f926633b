package courses

import (
	"fmt"
	"net/http"
)

func (app *Courses) apiRoutes(prefix string, mux *http.ServeMux) {
	apiPrefix := fmt.Sprintf("/%s/api", prefix)

	app.wsRoutes(apiPrefix, mux)
}

func (app *Courses) feedRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/cal/{id}/{year}", prefix),
		app.lecturesFeedHandler,
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/exams/{id}/{year}", prefix),
		app.examsFeedHandler,
	)
}

func (app *Courses) Routes(prefix string, mux *http.ServeMux) {
	app.templateRoutes(prefix, mux)
	app.feedRoutes(prefix, mux)
	app.apiRoutes(prefix, mux)
}
