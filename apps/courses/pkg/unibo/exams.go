package unibo

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

//nolint:gochecknoglobals //lookup table
var italianMonths = map[string]time.Month{
	"gennaio":   time.January,
	"febbraio":  time.February,
	"marzo":     time.March,
	"aprile":    time.April,
	"maggio":    time.May,
	"giugno":    time.June,
	"luglio":    time.July,
	"agosto":    time.August,
	"settembre": time.September,
	"ottobre":   time.October,
	"novembre":  time.November,
	"dicembre":  time.December,
}

// GetExams scrapes the exam sessions published on the course website.
func (client client) GetExams(ctx context.Context, website Website) ([]Exam, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)

	exams := []Exam{}
	c.OnHTML(".dropdown-component", func(h *colly.HTMLElement) {
		code, name := parseSubjectHeading(h.ChildText("h3"))

		h.ForEach("table.single-item", func(_ int, table *colly.HTMLElement) {
			exam := Exam{
				SubjectCode: code,
				SubjectName: name,
			}

			table.ForEach("tr", func(_ int, row *colly.HTMLElement) {
				value := strings.TrimSpace(row.ChildText("td"))

				switch strings.ToLower(strings.TrimSpace(row.ChildText("th"))) {
				case "data e ora":
					date, err := parseExamDate(value)
					if err != nil {
						client.logger.Warn(
							"unable to parse exam date",
							slog.String("value", value),
						)
						return
					}
					exam.Date = date
				case "tipo prova":
					exam.Type = value
				case "luogo":
					exam.Location = value
				case "docente":
					exam.Teacher = value
				}
			})

			if exam.Date.IsZero() {
				return
			}

			exams = append(exams, exam)
		})
	})

	c.OnHTML("a.next", func(h *colly.HTMLElement) {
		if err := h.Request.Visit(h.Attr("href")); err != nil {
			client.logger.Debug("stopped following exam pages", logging.ErrAttr(err))
		}
	})

	examsURL := fmt.Sprintf("%s/%s/%s/appelli", client.baseURL, website.Typology, website.ID)
	client.logger.Debug("scraping exams", slog.String("url", examsURL))

	if err := c.Visit(examsURL); err != nil {
		return nil, fmt.Errorf("unable to get exams page: %w", err)
	}

	return exams, nil
}

// parseSubjectHeading splits "00819 - PROGRAMMAZIONE" into its code and name.
func parseSubjectHeading(heading string) (string, string) {
	code, name, ok := strings.Cut(heading, " - ")
	if !ok {
		return "", strings.TrimSpace(heading)
	}
	return strings.TrimSpace(code), strings.TrimSpace(name)
}

// parseExamDate parses dates like "16 gennaio 2025 ore 09:00".
func parseExamDate(value string) (time.Time, error) {
	fields := strings.Fields(strings.ToLower(value))
	//nolint:mnd //day month year
	if len(fields) < 3 {
		return time.Time{}, fmt.Errorf("invalid exam date %q", value)
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in %q: %w", value, err)
	}

	month, ok := italianMonths[fields[1]]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid month in %q", value)
	}

	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in %q: %w", value, err)
	}

	hour, minute := 0, 0
	//nolint:mnd //"ore" followed by the time
	if len(fields) >= 5 && fields[3] == "ore" {
		clock, err := time.Parse("15:04", fields[4])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time in %q: %w", value, err)
		}
		hour, minute = clock.Hour(), clock.Minute()
	}

	return time.Date(year, month, day, hour, minute, 0, 0, rome()), nil
}
