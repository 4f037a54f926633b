package filter

import (
	"fmt"
	"slices"
)

// Mode distinguishes the lecture and exam feeds of a group.
type Mode string

const (
	Lectures Mode = "l"
	Exams    Mode = "e"
)

//nolint:gochecknoglobals //fixed set of modes
var Modes = []Mode{Lectures, Exams}

// Title is the human-readable feed title shown by external viewers.
func (mode Mode) Title() string {
	if mode == Exams {
		return "Esami"
	}
	return "Lezioni"
}

// GroupKey identifies a (year, curriculum) pair of a course.
type GroupKey struct {
	Year       int
	Curriculum string
}

func (key GroupKey) String() string {
	return fmt.Sprintf("%d_%s", key.Year, key.Curriculum)
}

// Control is one subject checkbox.
type Control struct {
	Group   GroupKey
	Token   string
	Label   string
	Checked bool
}

// Registry holds the live filter controls of a page in page order.
type Registry struct {
	controls []Control
}

func NewRegistry(controls []Control) Registry {
	return Registry{controls: slices.Clone(controls)}
}

func (registry Registry) Clone() Registry {
	return NewRegistry(registry.controls)
}

func (registry Registry) Controls() []Control {
	return slices.Clone(registry.controls)
}

// Group returns all controls sharing key.
func (registry Registry) Group(key GroupKey) []Control {
	group := []Control{}
	for _, control := range registry.controls {
		if control.Group == key {
			group = append(group, control)
		}
	}
	return group
}

// Groups returns the distinct group keys in order of first appearance.
func (registry Registry) Groups() []GroupKey {
	groups := []GroupKey{}
	for _, control := range registry.controls {
		if !slices.Contains(groups, control.Group) {
			groups = append(groups, control.Group)
		}
	}
	return groups
}

func (registry Registry) CheckedTokens(key GroupKey) []string {
	tokens := []string{}
	for _, control := range registry.Group(key) {
		if control.Checked {
			tokens = append(tokens, control.Token)
		}
	}
	return tokens
}

func (registry Registry) CheckedLabels(key GroupKey) []string {
	labels := []string{}
	for _, control := range registry.Group(key) {
		if control.Checked {
			labels = append(labels, control.Label)
		}
	}
	return labels
}

func (registry Registry) Find(key GroupKey, token string) (Control, bool) {
	i := registry.index(key, token)
	if i < 0 {
		return Control{}, false
	}
	return registry.controls[i], true
}

func (registry Registry) index(key GroupKey, token string) int {
	return slices.IndexFunc(registry.controls, func(control Control) bool {
		return control.Group == key && control.Token == token
	})
}
