package filter

// PageConfig describes the calendar blocks and controls of one page.
type PageConfig struct {
	Host        string
	Blocks      []Block
	Controls    []Control
	BadgeGroups []GroupKey
	Links       LinkRenderer
	Badges      BadgeRenderer
}

// Page is the filter state of one page session. It is not safe for
// concurrent use; each session owns its page.
type Page struct {
	controller Controller
	layout     Layout
	links      LinkRenderer
	state      State
}

func NewPage(cfg PageConfig) *Page {
	if cfg.Links == (LinkRenderer{}) {
		cfg.Links = NewLinkRenderer("", "")
	}
	if cfg.Badges == (BadgeRenderer{}) {
		cfg.Badges = NewBadgeRenderer("")
	}

	layout := NewLayout(cfg.Blocks, cfg.BadgeGroups)

	return &Page{
		controller: NewController(layout, cfg.Links, cfg.Badges),
		layout:     layout,
		links:      cfg.Links,
		state:      NewState(cfg.Host, cfg.Blocks, cfg.Controls),
	}
}

func (page *Page) Toggle(ev Toggle) []Command {
	var commands []Command
	page.state, commands = page.controller.Toggle(page.state, ev)
	return commands
}

func (page *Page) Render() []Command {
	return page.controller.Render(page.state)
}

func (page *Page) Links(mode Mode, group GroupKey) (Links, bool) {
	link, ok := page.state.LinkText(mode, group)
	if !ok {
		return Links{}, false
	}
	return page.links.Render(link, mode), true
}

func (page *Page) Layout() Layout {
	return page.layout
}

func (page *Page) State() State {
	return page.state
}
