package filter_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unical.xdoubleu.com/apps/courses/internal/filter"
)

func TestRenderLinks(t *testing.T) {
	renderer := filter.NewLinkRenderer("", "")
	link := "webcal://example.com/courses/cal/8009/3?subjects=CS301"

	links := renderer.Render(link, filter.Lectures)

	assert.Equal(t, link, links.Plain)
	assert.Equal(t, link, links.Native)
	assert.Equal(
		t,
		"https://simonrob.github.io/online-ics-feed-viewer/#?"+
			"feed=https%3A%2F%2Fexample.com%2Fcourses%2Fcal%2F8009%2F3%3Fsubjects%3DCS301"+
			"&cors=false&title=Lezioni&hideinput=true",
		links.Viewer,
	)
	assert.Equal(
		t,
		"https://www.google.com/calendar/render?cid="+
			"webcal%3A%2F%2Fexample.com%2Fcourses%2Fcal%2F8009%2F3%3Fsubjects%3DCS301",
		links.Provider,
	)
}

func TestRenderExamsTitle(t *testing.T) {
	renderer := filter.NewLinkRenderer("https://viewer.test/", "https://provider.test/add")

	links := renderer.Render("webcal://example.com/courses/exams/8009/3", filter.Exams)

	assert.True(t, strings.HasPrefix(links.Viewer, "https://viewer.test/#?"))
	assert.Contains(t, links.Viewer, "&title=Esami&")
	assert.True(t, strings.HasPrefix(links.Provider, "https://provider.test/add?cid="))
}

func TestDerivedLinksDecodeToSameTokens(t *testing.T) {
	renderer := filter.NewLinkRenderer("", "")
	link := "webcal://example.com/courses/cal/8009/3?curr=A&subjects=CS301,CS302"

	links := renderer.Render(link, filter.Lectures)

	_, fragment, ok := strings.Cut(links.Viewer, "#?")
	require.True(t, ok)
	viewerQuery, err := url.ParseQuery(fragment)
	require.Nil(t, err)
	assert.Equal(t, "false", viewerQuery.Get("cors"))
	assert.Equal(t, "true", viewerQuery.Get("hideinput"))
	assert.Equal(t, filter.FeedURL(link), viewerQuery.Get("feed"))
	assert.Equal(t, filter.Subjects(link), filter.Subjects(viewerQuery.Get("feed")))

	provider, err := url.Parse(links.Provider)
	require.Nil(t, err)
	assert.Equal(t, link, provider.Query().Get("cid"))
	assert.Equal(t, filter.Subjects(link), filter.Subjects(provider.Query().Get("cid")))
}

func TestWebcalLink(t *testing.T) {
	link := filter.WebcalLink("example.com", "/courses/cal/8009/3?curr=A")

	assert.Equal(t, "webcal://example.com/courses/cal/8009/3?curr=A", link)
	assert.Equal(t, "https://example.com/courses/cal/8009/3?curr=A", filter.FeedURL(link))
	assert.Equal(t, "https://example.com/x", filter.FeedURL("https://example.com/x"))
}

func TestRenderBadges(t *testing.T) {
	renderer := filter.NewBadgeRenderer("")

	assert.Equal(t, "", renderer.Render(nil))

	rendered := renderer.Render([]string{"Reti", "Basi <di> dati"})
	assert.Equal(
		t,
		`<span class="badge badge-outline badge-sm text-unibo border-[#b5142a]">Reti</span> `+
			`<span class="badge badge-outline badge-sm text-unibo border-[#b5142a]">Basi &lt;di&gt; dati</span>`,
		rendered,
	)
	assert.Equal(t, rendered, renderer.Render([]string{"Reti", "Basi <di> dati"}))
}
