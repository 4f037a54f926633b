package dtos

import (
	"github.com/xdoubleu/essentia/v2/pkg/validate"
	"unical.xdoubleu.com/apps/courses/internal/filter"
)

// ToggleMessageDto is sent by the page when a subject checkbox changes.
type ToggleMessageDto struct {
	Year       int    `json:"year"`
	Curriculum string `json:"curriculum"`
	Token      string `json:"token"`
	Checked    bool   `json:"checked"`
}

func (dto ToggleMessageDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "token", dto.Token, validate.IsNotEmpty)

	return v.Valid(), v.Errors()
}

func (dto ToggleMessageDto) Toggle() filter.Toggle {
	return filter.Toggle{
		Group:   filter.GroupKey{Year: dto.Year, Curriculum: dto.Curriculum},
		Token:   dto.Token,
		Checked: dto.Checked,
	}
}

type CommandDto struct {
	Kind   filter.CommandKind `json:"kind"`
	Target string             `json:"target"`
	Value  string             `json:"value"`
}

type CommandsMessageDto struct {
	Commands []CommandDto `json:"commands"`
}

func NewCommandsMessageDto(commands []filter.Command) CommandsMessageDto {
	dto := CommandsMessageDto{Commands: make([]CommandDto, 0, len(commands))}
	for _, command := range commands {
		dto.Commands = append(dto.Commands, CommandDto{
			Kind:   command.Kind,
			Target: command.Target,
			Value:  command.Value,
		})
	}
	return dto
}
