package courses

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	wstools "github.com/xdoubleu/essentia/v2/pkg/communication/wstools"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"unical.xdoubleu.com/apps/courses/internal/dtos"
	"unical.xdoubleu.com/apps/courses/internal/filter"
)

func (app *Courses) wsRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/filter", prefix),
		app.FilterSocketHandler,
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/jobs", prefix),
		app.Services.WebSocket.Handler(),
	)
}

// FilterSocketHandler runs one filter session per connection. The page state
// lives for the lifetime of the connection and is rendered in full on connect.
func (app *Courses) FilterSocketHandler(w http.ResponseWriter, r *http.Request) {
	course, ok := app.courseFromID(w, r, r.URL.Query().Get("course"))
	if !ok {
		return
	}

	courseFilter, err := app.Services.Filter.Build(r.Context(), course, r.Host)
	if err != nil {
		app.logger.Error("failed to build course filter", logging.ErrAttr(err))
		http.Error(w, "Unable to retrieve curricula", http.StatusBadGateway)
		return
	}

	conn, err := websocket.Accept(
		w,
		r,
		//nolint:exhaustruct //other fields are optional
		&websocket.AcceptOptions{OriginPatterns: app.originPatterns()},
	)
	if err != nil {
		app.logger.Warn("websocket accept error", logging.ErrAttr(err))
		return
	}
	defer conn.Close(
		websocket.StatusNormalClosure,
		"closing connection",
	)

	logger := app.logger.With(
		slog.String("session", uuid.NewString()),
		slog.Int("course", course.Code),
	)
	logger.Debug("filter session started")

	app.runFilterSession(r.Context(), logger, conn, courseFilter.Page)
}

func (app *Courses) runFilterSession(
	ctx context.Context,
	logger *slog.Logger,
	conn *websocket.Conn,
	page *filter.Page,
) {
	err := wsjson.Write(ctx, conn, dtos.NewCommandsMessageDto(page.Render()))
	if err != nil {
		logger.Warn("write error", logging.ErrAttr(err))
		return
	}

	for {
		var msg dtos.ToggleMessageDto
		err = wsjson.Read(ctx, conn, &msg)
		if err != nil {
			logger.Debug("filter session ended", logging.ErrAttr(err))
			return
		}

		if valid, errors := msg.Validate(); !valid {
			wstools.FailedValidationResponse(ctx, conn, errors)
			return
		}

		commands := page.Toggle(msg.Toggle())
		err = wsjson.Write(ctx, conn, dtos.NewCommandsMessageDto(commands))
		if err != nil {
			logger.Warn("write error", logging.ErrAttr(err))
			return
		}
	}
}

func (app *Courses) originPatterns() []string {
	webURL, err := url.Parse(app.Config.WebURL)
	if err != nil || webURL.Host == "" {
		return []string{}
	}
	return []string{webURL.Host}
}
