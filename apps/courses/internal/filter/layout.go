package filter

import (
	"fmt"
	"net/url"
	"strings"
)

const idSeparator = "_"

// Block is the calendar block of one mode for one group.
type Block struct {
	Mode     Mode
	Group    GroupKey
	FeedPath string
}

// BlockTargets are the element ids rendering one block.
type BlockTargets struct {
	Plain    string
	Viewer   string
	Provider string
	Native   string
}

type blockKey struct {
	mode  Mode
	group GroupKey
}

// Layout maps every group to its render targets. It is built once per page.
type Layout struct {
	blockOrder []blockKey
	blocks     map[blockKey]BlockTargets
	badgeOrder []GroupKey
	badges     map[GroupKey]string
}

func NewLayout(blocks []Block, badgeGroups []GroupKey) Layout {
	layout := Layout{
		blockOrder: []blockKey{},
		blocks:     make(map[blockKey]BlockTargets),
		badgeOrder: []GroupKey{},
		badges:     make(map[GroupKey]string),
	}

	for _, block := range blocks {
		key := blockKey{mode: block.Mode, group: block.Group}
		if _, ok := layout.blocks[key]; ok {
			continue
		}

		id := BlockID(block.Mode, block.Group)
		layout.blockOrder = append(layout.blockOrder, key)
		layout.blocks[key] = BlockTargets{
			Plain:    id,
			Viewer:   id + idSeparator + "open",
			Provider: id + idSeparator + "google",
			Native:   id + idSeparator + "apple",
		}
	}

	for _, group := range badgeGroups {
		if _, ok := layout.badges[group]; ok {
			continue
		}

		layout.badgeOrder = append(layout.badgeOrder, group)
		layout.badges[group] = BadgesID(group)
	}

	return layout
}

func (layout Layout) Block(mode Mode, group GroupKey) (BlockTargets, bool) {
	targets, ok := layout.blocks[blockKey{mode: mode, group: group}]
	return targets, ok
}

func (layout Layout) Badges(group GroupKey) (string, bool) {
	id, ok := layout.badges[group]
	return id, ok
}

// BlockID is the id of the element holding the link text of a block.
// Distinct blocks always get distinct ids, and no id ends in a suffix
// used for another target.
func BlockID(mode Mode, group GroupKey) string {
	return fmt.Sprintf(
		"%s%d%s%s",
		mode,
		group.Year,
		idSeparator,
		curriculumID(group.Curriculum),
	)
}

func BadgesID(group GroupKey) string {
	return BlockID(Lectures, group) + idSeparator + "badges"
}

// curriculumID escapes a curriculum code so it never contains the separator.
func curriculumID(curriculum string) string {
	return strings.ReplaceAll(url.PathEscape(curriculum), idSeparator, "%5F")
}
