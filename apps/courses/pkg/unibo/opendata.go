package unibo

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
)

const (
	packageID     = "degree-programmes"
	resourceAlias = "corsi_latest_it"
	csvColumns    = 15
)

type ckanResource struct {
	Alias        string `json:"alias"`
	URL          string `json:"url"`
	Format       string `json:"format"`
	LastModified string `json:"last_modified"`
}

type ckanPackage struct {
	Success bool `json:"success"`
	Result  struct {
		Resources []ckanResource `json:"resources"`
	} `json:"result"`
}

// GetCourses downloads the degree programmes from the open data portal.
func (client client) GetCourses(ctx context.Context) ([]Course, error) {
	query := url.Values{}
	query.Set("id", packageID)

	var pkg ckanPackage
	err := client.getJSON(
		ctx,
		fmt.Sprintf("%s/api/3/action/package_show?%s", client.openDataURL, query.Encode()),
		&pkg,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to get package: %w", err)
	}

	if !pkg.Success || len(pkg.Result.Resources) == 0 {
		return nil, errors.New("no resources found in open data package")
	}

	var resource *ckanResource
	for i := range pkg.Result.Resources {
		if pkg.Result.Resources[i].Alias == resourceAlias {
			resource = &pkg.Result.Resources[i]
			break
		}
	}

	if resource == nil {
		return nil, fmt.Errorf("unable to find resource '%s'", resourceAlias)
	}

	res, err := client.sendRequest(ctx, resource.URL, "text/csv")
	if err != nil {
		return nil, fmt.Errorf("unable to download courses: %w", err)
	}
	defer res.Body.Close()

	return parseCoursesCSV(res.Body)
}

func parseCoursesCSV(body io.Reader) ([]Course, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	// header
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	courses := []Course{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(row) < csvColumns {
			return nil, fmt.Errorf("unexpected number of columns: %d", len(row))
		}

		code, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("invalid course code %q: %w", row[2], err)
		}

		years, err := strconv.Atoi(row[9])
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", row[9], err)
		}

		international, err := strconv.ParseBool(row[10])
		if err != nil {
			return nil, fmt.Errorf("invalid international flag %q: %w", row[10], err)
		}

		courses = append(courses, Course{
			AcademicYear:          row[0],
			Enrollable:            row[1],
			Code:                  code,
			Description:           row[3],
			URL:                   row[4],
			Campus:                row[5],
			Site:                  row[6],
			Areas:                 row[7],
			Typology:              row[8],
			DurationYears:         years,
			International:         international,
			InternationalTitle:    row[11],
			InternationalLanguage: row[12],
			Languages:             row[13],
			Access:                row[14],
		})
	}

	return courses, nil
}
