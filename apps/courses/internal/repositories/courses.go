package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"unical.xdoubleu.com/apps/courses/internal/models"
	"unical.xdoubleu.com/apps/courses/pkg/unibo"
)

type CourseRepository struct {
	db postgres.DB
}

const courseColumns = `
	code, academic_year, description, url, campus, site, areas, typology,
	duration_years, international, languages, access,
	website_typology, website_id
`

func scanCourse(row pgx.Row) (*models.Course, error) {
	//nolint:exhaustruct //website is set below
	course := models.Course{}

	var websiteTypology, websiteID *string
	err := row.Scan(
		&course.Code,
		&course.AcademicYear,
		&course.Description,
		&course.URL,
		&course.Campus,
		&course.Site,
		&course.Areas,
		&course.Typology,
		&course.DurationYears,
		&course.International,
		&course.Languages,
		&course.Access,
		&websiteTypology,
		&websiteID,
	)
	if err != nil {
		return nil, err
	}

	if websiteTypology != nil && websiteID != nil {
		course.Website = &unibo.Website{
			Typology: *websiteTypology,
			ID:       *websiteID,
		}
	}

	return &course, nil
}

func (repo *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + `
		FROM courses.courses
		ORDER BY code DESC
	`

	rows, err := repo.db.Query(ctx, query)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course *models.Course
		course, err = scanCourse(rows)
		if err != nil {
			return nil, postgres.PgxErrorToHTTPError(err)
		}

		courses = append(courses, *course)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return courses, nil
}

func (repo *CourseRepository) GetByCode(
	ctx context.Context,
	code int,
) (*models.Course, error) {
	query := `SELECT ` + courseColumns + `
		FROM courses.courses
		WHERE code = $1
	`

	course, err := scanCourse(repo.db.QueryRow(ctx, query, code))
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return course, nil
}

func (repo *CourseRepository) UpsertMany(
	ctx context.Context,
	courses []models.Course,
) error {
	query := `
		INSERT INTO courses.courses (code, academic_year, description, url,
		campus, site, areas, typology, duration_years, international,
		languages, access, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		ON CONFLICT (code)
		DO UPDATE SET academic_year = $2, description = $3, url = $4,
		campus = $5, site = $6, areas = $7, typology = $8,
		duration_years = $9, international = $10, languages = $11,
		access = $12, updated_at = now()
	`

	//nolint:exhaustruct //fields are optional
	b := &pgx.Batch{}
	for _, course := range courses {
		b.Queue(
			query,
			course.Code,
			course.AcademicYear,
			course.Description,
			course.URL,
			course.Campus,
			course.Site,
			course.Areas,
			course.Typology,
			course.DurationYears,
			course.International,
			course.Languages,
			course.Access,
		)
	}

	err := repo.db.SendBatch(ctx, b).Close()
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	return nil
}

// DeleteAllExcept removes the courses no longer published in the catalogue.
func (repo *CourseRepository) DeleteAllExcept(
	ctx context.Context,
	codes []int,
) (int64, error) {
	query := `
		DELETE FROM courses.courses
		WHERE NOT (code = ANY($1))
	`

	result, err := repo.db.Exec(ctx, query, codes)
	if err != nil {
		return 0, postgres.PgxErrorToHTTPError(err)
	}

	return result.RowsAffected(), nil
}

func (repo *CourseRepository) SetWebsite(
	ctx context.Context,
	code int,
	website unibo.Website,
) error {
	query := `
		UPDATE courses.courses
		SET website_typology = $2, website_id = $3
		WHERE code = $1
	`

	result, err := repo.db.Exec(ctx, query, code, website.Typology, website.ID)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}
