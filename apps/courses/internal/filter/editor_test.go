package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"unical.xdoubleu.com/apps/courses/internal/filter"
)

const feed = "webcal://example.com/courses/cal/8009/3"

func TestAddSubjectWithoutParam(t *testing.T) {
	assert.Equal(t, feed+"?subjects=MATH101", filter.AddSubject(feed, "MATH101"))
	assert.Equal(
		t,
		feed+"?curr=A&subjects=MATH101",
		filter.AddSubject(feed+"?curr=A", "MATH101"),
	)
}

func TestAddSubjectAppends(t *testing.T) {
	link := filter.AddSubject(feed+"?curr=A&subjects=MATH101", "PHYS201")

	assert.Equal(t, feed+"?curr=A&subjects=MATH101,PHYS201", link)
	assert.Equal(t, []string{"MATH101", "PHYS201"}, filter.Subjects(link))
}

func TestAddSubjectTwice(t *testing.T) {
	once := filter.AddSubject(feed, "MATH101")
	twice := filter.AddSubject(once, "MATH101")

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"MATH101"}, filter.Subjects(twice))
}

func TestRemoveSubject(t *testing.T) {
	link := filter.RemoveSubject(feed+"?subjects=MATH101,PHYS201", "MATH101")
	assert.Equal(t, feed+"?subjects=PHYS201", link)

	link = filter.RemoveSubject(feed+"?subjects=MATH101,PHYS201", "PHYS201")
	assert.Equal(t, feed+"?subjects=MATH101", link)

	link = filter.RemoveSubject(feed+"?subjects=MATH101,PHYS201,CHEM301", "PHYS201")
	assert.Equal(t, feed+"?subjects=MATH101,CHEM301", link)
}

func TestRemoveLastSubjectDropsParam(t *testing.T) {
	assert.Equal(t, feed, filter.RemoveSubject(feed+"?subjects=MATH101", "MATH101"))
	assert.Equal(
		t,
		feed+"?curr=A",
		filter.RemoveSubject(feed+"?curr=A&subjects=MATH101", "MATH101"),
	)
}

func TestRemoveSubjectIsTokenAware(t *testing.T) {
	link := filter.RemoveSubject(feed+"?subjects=CS30,CS301", "CS30")
	assert.Equal(t, feed+"?subjects=CS301", link)

	link = filter.RemoveSubject(feed+"?subjects=CS301", "CS30")
	assert.Equal(t, feed+"?subjects=CS301", link)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	links := []string{
		feed,
		feed + "?curr=A",
		feed + "?subjects=CS301",
		feed + "?curr=A&subjects=CS301,CS302",
		feed + "?subjects=",
		feed + "?subjects=,CS301,,CS302,",
		"webcal://example.com/cal?x=1&subjects=CS301&y=2",
	}

	for _, link := range links {
		t.Run(link, func(t *testing.T) {
			result := filter.RemoveSubject(filter.AddSubject(link, "NEW100"), "NEW100")
			assert.ElementsMatch(t, filter.Subjects(link), filter.Subjects(result))
		})
	}

	assert.Equal(
		t,
		feed+"?curr=A",
		filter.RemoveSubject(filter.AddSubject(feed+"?curr=A", "NEW100"), "NEW100"),
	)
}

func TestLegacyArtifactsAreNormalised(t *testing.T) {
	assert.Equal(
		t,
		feed+"?subjects=A,B,C",
		filter.AddSubject(feed+"?subjects=,A,,B,", "C"),
	)
	assert.Equal(t, feed+"?subjects=A", filter.AddSubject(feed+"?subjects=", "A"))
	assert.Equal(t, feed+"?curr=A", filter.RemoveSubject(feed+"?curr=A&&subjects=,", "X"))
}

func TestRepeatedSubjectsParamsAreMerged(t *testing.T) {
	link := feed + "?subjects=A&curr=X&subjects=B"

	assert.Equal(t, []string{"A", "B"}, filter.Subjects(link))
	assert.Equal(t, feed+"?subjects=A,B,C&curr=X", filter.AddSubject(link, "C"))
}

func TestFragmentIsPreserved(t *testing.T) {
	assert.Equal(
		t,
		"https://example.com/p?x=1&subjects=A#top",
		filter.AddSubject("https://example.com/p?x=1#top", "A"),
	)
}

func TestTokensAreEscaped(t *testing.T) {
	link := filter.AddSubject(feed, "A B,C")

	assert.Equal(t, feed+"?subjects=A%20B%2CC", link)
	assert.Equal(t, []string{"A B,C"}, filter.Subjects(link))
	assert.Equal(t, feed, filter.RemoveSubject(link, "A B,C"))
}

func TestLiteralPlusInToken(t *testing.T) {
	link := feed + "?subjects=C++,D"

	assert.Equal(t, []string{"C++", "D"}, filter.Subjects(link))
	assert.Equal(t, feed+"?subjects=D", filter.RemoveSubject(link, "C++"))
	assert.Equal(
		t,
		feed+"?subjects=C%2B%2B,D",
		filter.AddSubject(feed+"?subjects=D", "C++"),
	)
}

func TestSubjectsWithoutParam(t *testing.T) {
	assert.Empty(t, filter.Subjects(feed))
	assert.Empty(t, filter.Subjects(feed+"?curr=A"))
}
