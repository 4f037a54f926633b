package unibo_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"unical.xdoubleu.com/apps/courses/pkg/unibo"
)

const coursesCSV = `anno_accademico,immatricolabile,corso_codice,corso_descrizione,url,campus,sede_didattica,ambiti,tipologia,durata,internazionale,internazionale_titolo,internazionale_lingua,lingue,accesso
2025/2026,SI,8009,INFORMATICA,https://example.com/8009,Bologna,Bologna,Scienze,Laurea,3,false,,,italiano,libero
2025/2026,SI,9254,COMPUTER SCIENCE,https://example.com/9254,Bologna,Bologna,Scienze,Laurea Magistrale,2,true,Double degree,inglese,inglese,libero
`

const examsHTML = `<html><body>
<div class="dropdown-component">
  <h3>CS301 - SISTEMI OPERATIVI</h3>
  <table class="single-item">
    <tr><th>Data e ora</th><td>16 gennaio 2026 ore 09:30</td></tr>
    <tr><th>Tipo prova</th><td>Scritto</td></tr>
    <tr><th>Luogo</th><td>Aula 1</td></tr>
    <tr><th>Docente</th><td>Mario Rossi</td></tr>
  </table>
  <table class="single-item">
    <tr><th>Data e ora</th><td>da definire</td></tr>
  </table>
</div>
</body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("GET /api/3/action/package_show", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "degree-programmes", r.URL.Query().Get("id"))
		fmt.Fprintf(w, `{"success":true,"result":{"resources":[
			{"alias":"other","url":"%[1]s/other.csv"},
			{"alias":"corsi_latest_it","url":"%[1]s/courses.csv","format":"CSV"}
		]}}`, server.URL)
	})
	mux.HandleFunc("GET /courses.csv", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, coursesCSV)
	})
	mux.HandleFunc("GET /course-page", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(
			w,
			`<html><body><a href="https://other.com/x">x</a><a href="%s/laurea/Informatica/">sito</a></body></html>`,
			server.URL,
		)
	})
	mux.HandleFunc(
		"GET /laurea/Informatica/orario-lezioni/@@available_curricula",
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("anno"))
			fmt.Fprint(w, `[{"selected":false,"value":"A","label":"Curriculum A"}]`)
		},
	)
	mux.HandleFunc(
		"GET /laurea/Informatica/orario-lezioni/@@orario_reale_json",
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "A", r.URL.Query().Get("curricula"))
			fmt.Fprint(w, `[
				{"cod_modulo":"CS302","title":"Reti","docente":"Anna","cfu":6,
				 "start":"2025-10-06T09:00:00","end":"2025-10-06T11:00:00",
				 "aule":[{"des_risorsa":"Aula 2"}],"extra":true},
				{"cod_modulo":"CS301","title":"Sistemi operativi","docente":"Mario","cfu":6,
				 "start":"2025-10-07T09:00:00","end":"2025-10-07T11:00:00","aule":[]},
				{"cod_modulo":"CS302","title":"Reti","docente":"Anna","cfu":6,
				 "start":"2025-10-08T09:00:00","end":"2025-10-08T11:00:00","aule":[]}
			]`)
		},
	)
	mux.HandleFunc("GET /laurea/Informatica/appelli", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, examsHTML)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestGetCourses(t *testing.T) {
	server := newTestServer(t)
	client := unibo.New(logging.NewNopLogger(), server.URL, server.URL)

	courses, err := client.GetCourses(context.Background())
	require.Nil(t, err)
	require.Len(t, courses, 2)

	assert.Equal(t, 8009, courses[0].Code)
	assert.Equal(t, "INFORMATICA", courses[0].Description)
	assert.Equal(t, 3, courses[0].DurationYears)
	assert.False(t, courses[0].International)
	assert.True(t, courses[1].International)
	assert.Equal(t, "inglese", courses[1].InternationalLanguage)
}

func TestGetWebsite(t *testing.T) {
	server := newTestServer(t)
	client := unibo.New(logging.NewNopLogger(), server.URL, server.URL)

	website, err := client.GetWebsite(context.Background(), server.URL+"/course-page")
	require.Nil(t, err)
	assert.Equal(t, unibo.Website{Typology: "laurea", ID: "Informatica"}, *website)
}

func TestGetCurriculaAndTimetable(t *testing.T) {
	server := newTestServer(t)
	client := unibo.New(logging.NewNopLogger(), server.URL, server.URL)
	website := unibo.Website{Typology: "laurea", ID: "Informatica"}

	curricula, err := client.GetCurricula(context.Background(), website, 2)
	require.Nil(t, err)
	require.Len(t, curricula, 1)
	assert.Equal(t, "A", curricula[0].Value)

	timetable, err := client.GetTimetable(context.Background(), website, 2, "A")
	require.Nil(t, err)
	require.Len(t, timetable, 3)

	assert.Equal(t, "Aula 2", timetable[0].Classrooms[0].Description)
	assert.Equal(t, 9, timetable[0].Start.Hour())
	assert.Equal(t, time.October, timetable[0].Start.Month())

	subjects := timetable.Subjects()
	assert.Equal(t, []unibo.Subject{
		{Code: "CS302", Name: "Reti"},
		{Code: "CS301", Name: "Sistemi operativi"},
	}, subjects)

	assert.Len(t, timetable.Filter([]string{"CS302"}), 2)
	assert.Empty(t, timetable.Filter([]string{}))
}

func TestGetExams(t *testing.T) {
	server := newTestServer(t)
	client := unibo.New(logging.NewNopLogger(), server.URL, server.URL)

	exams, err := client.GetExams(
		context.Background(),
		unibo.Website{Typology: "laurea", ID: "Informatica"},
	)
	require.Nil(t, err)
	require.Len(t, exams, 1)

	exam := exams[0]
	assert.Equal(t, "CS301", exam.SubjectCode)
	assert.Equal(t, "SISTEMI OPERATIVI", exam.SubjectName)
	assert.Equal(t, "Scritto", exam.Type)
	assert.Equal(t, "Aula 1", exam.Location)
	assert.Equal(t, "Mario Rossi", exam.Teacher)
	assert.Equal(t, 2026, exam.Date.Year())
	assert.Equal(t, time.January, exam.Date.Month())
	assert.Equal(t, 16, exam.Date.Day())
	assert.Equal(t, 9, exam.Date.Hour())
	assert.Equal(t, 30, exam.Date.Minute())
}

func TestNon200(t *testing.T) {
	server := newTestServer(t)
	client := unibo.New(logging.NewNopLogger(), server.URL, server.URL)

	_, err := client.GetCurricula(
		context.Background(),
		unibo.Website{Typology: "laurea", ID: "Missing"},
		1,
	)
	assert.NotNil(t, err)
}
