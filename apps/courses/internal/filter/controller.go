package filter

import "maps"

type CommandKind string

const (
	SetText CommandKind = "text"
	SetHref CommandKind = "href"
	SetHTML CommandKind = "html"
)

// Command is a single update of a rendered element.
type Command struct {
	Kind   CommandKind
	Target string
	Value  string
}

// Toggle is a checkbox transition.
type Toggle struct {
	Group   GroupKey
	Token   string
	Checked bool
}

// State is the registry plus the current link text of every block.
type State struct {
	Registry Registry
	links    map[blockKey]string
}

func NewState(host string, blocks []Block, controls []Control) State {
	state := State{
		Registry: NewRegistry(controls),
		links:    make(map[blockKey]string),
	}

	for _, block := range blocks {
		key := blockKey{mode: block.Mode, group: block.Group}
		if _, ok := state.links[key]; ok {
			continue
		}
		state.links[key] = WebcalLink(host, block.FeedPath)
	}

	return state
}

func (state State) LinkText(mode Mode, group GroupKey) (string, bool) {
	link, ok := state.links[blockKey{mode: mode, group: group}]
	return link, ok
}

func (state State) clone() State {
	return State{
		Registry: state.Registry.Clone(),
		links:    maps.Clone(state.links),
	}
}

type Controller struct {
	layout Layout
	links  LinkRenderer
	badges BadgeRenderer
}

func NewController(layout Layout, links LinkRenderer, badges BadgeRenderer) Controller {
	return Controller{
		layout: layout,
		links:  links,
		badges: badges,
	}
}

// Toggle applies ev to state. The given state is left untouched; unknown
// controls yield the same state and no commands.
func (controller Controller) Toggle(state State, ev Toggle) (State, []Command) {
	i := state.Registry.index(ev.Group, ev.Token)
	if i < 0 {
		return state, nil
	}

	next := state.clone()
	next.Registry.controls[i].Checked = ev.Checked

	commands := []Command{}
	for _, mode := range Modes {
		key := blockKey{mode: mode, group: ev.Group}

		link, ok := next.links[key]
		if !ok {
			continue
		}

		if ev.Checked {
			link = AddSubject(link, ev.Token)
		} else {
			link = RemoveSubject(link, ev.Token)
		}
		next.links[key] = link

		commands = append(commands, controller.blockCommands(mode, ev.Group, link)...)
	}

	if command, ok := controller.badgeCommand(next, ev.Group); ok {
		commands = append(commands, command)
	}

	return next, commands
}

// Render returns the commands redrawing every target of the layout.
func (controller Controller) Render(state State) []Command {
	commands := []Command{}
	for _, key := range controller.layout.blockOrder {
		link, ok := state.links[key]
		if !ok {
			continue
		}
		commands = append(commands, controller.blockCommands(key.mode, key.group, link)...)
	}

	for _, group := range controller.layout.badgeOrder {
		if command, ok := controller.badgeCommand(state, group); ok {
			commands = append(commands, command)
		}
	}

	return commands
}

func (controller Controller) blockCommands(
	mode Mode,
	group GroupKey,
	link string,
) []Command {
	targets, ok := controller.layout.Block(mode, group)
	if !ok {
		return nil
	}

	links := controller.links.Render(link, mode)
	return []Command{
		{Kind: SetText, Target: targets.Plain, Value: links.Plain},
		{Kind: SetHref, Target: targets.Viewer, Value: links.Viewer},
		{Kind: SetHref, Target: targets.Provider, Value: links.Provider},
		{Kind: SetHref, Target: targets.Native, Value: links.Native},
	}
}

func (controller Controller) badgeCommand(state State, group GroupKey) (Command, bool) {
	target, ok := controller.layout.Badges(group)
	if !ok {
		return Command{}, false
	}

	return Command{
		Kind:   SetHTML,
		Target: target,
		Value:  controller.badges.Render(state.Registry.CheckedLabels(group)),
	}, true
}
