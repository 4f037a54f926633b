package filter

import (
	"fmt"
	"html"
	"strings"
)

const DefaultBadgeClass = "badge badge-outline badge-sm text-unibo border-[#b5142a]"

type BadgeRenderer struct {
	class string
}

func NewBadgeRenderer(class string) BadgeRenderer {
	if class == "" {
		class = DefaultBadgeClass
	}
	return BadgeRenderer{class: class}
}

// Render returns the badge markup for labels, or an empty string when there are none.
func (renderer BadgeRenderer) Render(labels []string) string {
	badges := make([]string, 0, len(labels))
	for _, label := range labels {
		badges = append(badges, fmt.Sprintf(
			`<span class="%s">%s</span>`,
			html.EscapeString(renderer.class),
			html.EscapeString(label),
		))
	}
	return strings.Join(badges, " ")
}
