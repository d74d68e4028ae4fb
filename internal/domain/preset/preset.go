package preset

import (
	"errors"
	"fmt"

	"unmute-configurator-golang/constants"
	"unmute-configurator-golang/internal/domain/unmute"
)

var ErrUnknownPreset = errors.New("unknown preset")

// ID 预置的声音 + instructions 组合
type ID string

const (
	Female ID = constants.PresetFemale
	Male   ID = constants.PresetMale
)

// Default 没有配置 configurator.preset 时使用
const Default = Female

// Preset 一组不需要用户交互即可选定的声音和 instructions
type Preset struct {
	ID           ID                  `json:"id"`
	Voice        string              `json:"voice"`
	VoiceName    string              `json:"voice_name"`
	Description  string              `json:"description"`
	Persona      string              `json:"persona"`
	Instructions unmute.Instructions `json:"instructions"`
}

var order = []ID{Female, Male}

var presets = map[ID]Preset{
	Female: {
		ID:           Female,
		Voice:        "unmute-prod-website/ex04_narration_longform_00001.wav",
		VoiceName:    "Female",
		Description:  "Long-form narration voice",
		Persona:      "Sanofi Pharma Assistant",
		Instructions: unmute.Preset(unmute.InstructionsSanofiPharma, unmute.LanguageEn),
	},
	Male: {
		ID:           Male,
		Voice:        "unmute-prod-website/developer-1.mp3",
		VoiceName:    "Male",
		Description:  "Václav from Kyutai",
		Persona:      "Sanofi Pharma Assistant",
		Instructions: unmute.Preset(unmute.InstructionsSanofiPharma, unmute.LanguageEn),
	},
}

// Lookup 按ID查找预置, 空ID返回 Default
func Lookup(id ID) (Preset, error) {
	if id == "" {
		id = Default
	}
	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return p, nil
}

// IDs 按固定顺序返回所有预置ID
func IDs() []ID {
	ids := make([]ID, len(order))
	copy(ids, order)
	return ids
}

// All 按 IDs 的顺序返回所有预置
func All() []Preset {
	all := make([]Preset, 0, len(order))
	for _, id := range order {
		all = append(all, presets[id])
	}
	return all
}

// Apply 用预置覆盖配置中的声音和 instructions, 与传入配置的内容无关
func (p Preset) Apply(cfg unmute.UnmuteConfig) unmute.UnmuteConfig {
	cfg.Voice = p.Voice
	cfg.VoiceName = p.VoiceName
	cfg.Instructions = p.Instructions
	cfg.IsCustomInstructions = false
	return cfg
}

// Sample 把预置表示成声音目录里的一项
func (p Preset) Sample() unmute.VoiceSample {
	name := p.VoiceName
	ins := p.Instructions
	return unmute.VoiceSample{
		Name:         &name,
		Comment:      p.Persona,
		Good:         true,
		Instructions: &ins,
		Source: unmute.FileSource(unmute.FileVoiceSource{
			PathOnServer: p.Voice,
			Description:  p.Description,
		}),
	}
}
