package unibo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

const (
	DefaultBaseURL     = "https://corsi.unibo.it"
	DefaultOpenDataURL = "https://dati.unibo.it"

	userAgent = "unical.xdoubleu.com/1.0"
)

type client struct {
	logger      *slog.Logger
	baseURL     string
	openDataURL string
	httpClient  *http.Client
}

func New(logger *slog.Logger, baseURL string, openDataURL string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if openDataURL == "" {
		openDataURL = DefaultOpenDataURL
	}

	return client{
		logger:      logger,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		openDataURL: strings.TrimSuffix(openDataURL, "/"),
		httpClient: &http.Client{
			//nolint:mnd //upstream can be slow during enrolment periods
			Timeout: 30 * time.Second,
		},
	}
}

func (client client) sendRequest(
	ctx context.Context,
	rawURL string,
	accept string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	res, err := client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("non-200 from %s: %d", rawURL, res.StatusCode)
	}

	return res, nil
}

func (client client) getJSON(ctx context.Context, rawURL string, dst any) error {
	res, err := client.sendRequest(ctx, rawURL, "application/json")
	if err != nil {
		return err
	}
	defer res.Body.Close()

	err = httptools.ReadJSON(res.Body, dst)
	if err != nil {
		return err
	}

	return nil
}

func (client client) timetableURL(website Website, endpoint string, year int) string {
	query := url.Values{}
	query.Set("anno", strconv.Itoa(year))

	return fmt.Sprintf(
		"%s/%s/%s/orario-lezioni/%s?%s",
		client.baseURL,
		website.Typology,
		website.ID,
		endpoint,
		query.Encode(),
	)
}

func (client client) GetCurricula(
	ctx context.Context,
	website Website,
	year int,
) ([]Curriculum, error) {
	var curricula []Curriculum

	err := client.getJSON(
		ctx,
		client.timetableURL(website, "@@available_curricula", year),
		&curricula,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch curricula: %w", err)
	}

	return curricula, nil
}

func (client client) GetTimetable(
	ctx context.Context,
	website Website,
	year int,
	curriculum string,
) (Timetable, error) {
	u := client.timetableURL(website, "@@orario_reale_json", year)
	if curriculum != "" {
		u += "&curricula=" + url.QueryEscape(curriculum)
	}

	var timetable Timetable
	if err := client.getJSON(ctx, u, &timetable); err != nil {
		return nil, fmt.Errorf("unable to fetch timetable: %w", err)
	}

	return timetable, nil
}

// GetWebsite scrapes the courses website link from the course page.
func (client client) GetWebsite(ctx context.Context, courseURL string) (*Website, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)

	var website *Website
	c.OnHTML(fmt.Sprintf(`a[href^="%s/"]`, client.baseURL), func(h *colly.HTMLElement) {
		if website != nil {
			return
		}
		website = client.parseWebsite(h.Attr("href"))
	})

	client.logger.Debug("scraping course website", slog.String("url", courseURL))

	if err := c.Visit(courseURL); err != nil {
		return nil, fmt.Errorf("unable to get course page: %w", err)
	}

	if website == nil {
		return nil, fmt.Errorf("unable to find course website on %s", courseURL)
	}

	return website, nil
}

// parseWebsite turns https://corsi.unibo.it/laurea/IngegneriaInformatica into its Website.
func (client client) parseWebsite(href string) *Website {
	path, ok := strings.CutPrefix(href, client.baseURL+"/")
	if !ok {
		return nil
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	//nolint:mnd //typology and id
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}

	return &Website{Typology: parts[0], ID: parts[1]}
}
