package unibo

import (
	"slices"
	"strings"
	"time"
)

// Course is one row of the degree programmes open data set.
type Course struct {
	AcademicYear          string
	Enrollable            string
	Code                  int
	Description           string
	URL                   string
	Campus                string
	Site                  string
	Areas                 string
	Typology              string
	DurationYears         int
	International         bool
	InternationalTitle    string
	InternationalLanguage string
	Languages             string
	Access                string
}

// Website identifies a course on the courses website, e.g. laurea/IngegneriaInformatica.
type Website struct {
	Typology string
	ID       string
}

type Curriculum struct {
	Selected bool   `json:"selected"`
	Value    string `json:"value"`
	Label    string `json:"label"`
}

type CalendarTime struct {
	time.Time
}

const calendarTimeLayout = `"2006-01-02T15:04:05"`

func (t *CalendarTime) UnmarshalJSON(b []byte) error {
	parsed, err := time.ParseInLocation(calendarTimeLayout, string(b), rome())
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

func (t CalendarTime) MarshalJSON() ([]byte, error) {
	return []byte(t.In(rome()).Format(calendarTimeLayout)), nil
}

type Classroom struct {
	Description string `json:"des_risorsa"`
}

type TimetableEvent struct {
	ModuleCode string       `json:"cod_modulo"`
	Title      string       `json:"title"`
	Period     string       `json:"periodo"`
	Teacher    string       `json:"docente"`
	Cfu        int          `json:"cfu"`
	Remote     bool         `json:"teledidattica"`
	Teams      string       `json:"teams,omitempty"`
	Start      CalendarTime `json:"start"`
	End        CalendarTime `json:"end"`
	Classrooms []Classroom  `json:"aule"`
}

type Timetable []TimetableEvent

type Subject struct {
	Code string
	Name string
}

// Subjects returns the distinct subjects of the timetable sorted by name.
func (timetable Timetable) Subjects() []Subject {
	seen := map[string]bool{}
	subjects := []Subject{}

	for _, event := range timetable {
		if event.ModuleCode == "" || seen[event.ModuleCode] {
			continue
		}

		seen[event.ModuleCode] = true
		subjects = append(subjects, Subject{
			Code: event.ModuleCode,
			Name: event.Title,
		})
	}

	slices.SortFunc(subjects, func(a, b Subject) int {
		return strings.Compare(a.Name, b.Name)
	})

	return subjects
}

// Filter keeps the events whose module code is in codes.
func (timetable Timetable) Filter(codes []string) Timetable {
	filtered := make(Timetable, 0, len(timetable))
	for _, event := range timetable {
		if slices.Contains(codes, event.ModuleCode) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

type Exam struct {
	SubjectCode string
	SubjectName string
	Date        time.Time
	Type        string
	Location    string
	Teacher     string
}

func rome() *time.Location {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		return time.UTC
	}
	return loc
}
