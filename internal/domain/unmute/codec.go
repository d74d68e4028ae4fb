package unmute

import (
	"encoding/json"
	"fmt"
)

type instructionsWire struct {
	Type     InstructionsType `json:"type"`
	Text     *string          `json:"text,omitempty"`
	Language LanguageCode     `json:"language,omitempty"`
}

func (i Instructions) MarshalJSON() ([]byte, error) {
	if !i.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstructionsType, i.Type)
	}
	w := instructionsWire{Type: i.Type, Language: i.Language}
	if i.IsConstant() {
		text := i.Text
		w.Text = &text
	}
	return json.Marshal(w)
}

func (i *Instructions) UnmarshalJSON(data []byte) error {
	var w instructionsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownInstructionsType, w.Type)
	}
	if !w.Language.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, w.Language)
	}
	*i = Instructions{Type: w.Type, Language: w.Language}
	// 非 constant 变体上多余的 text 直接丢弃
	if w.Type == InstructionsConstant && w.Text != nil {
		i.Text = *w.Text
	}
	return nil
}

type sourceTypeWire struct {
	SourceType VoiceSourceType `json:"source_type"`
}

type freesoundWire struct {
	SourceType VoiceSourceType `json:"source_type"`
	FreesoundVoiceSource
}

type fileWire struct {
	SourceType VoiceSourceType `json:"source_type"`
	FileVoiceSource
}

func (s VoiceSource) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Type == VoiceSourceFreesound {
		return json.Marshal(freesoundWire{SourceType: s.Type, FreesoundVoiceSource: *s.Freesound})
	}
	return json.Marshal(fileWire{SourceType: s.Type, FileVoiceSource: *s.File})
}

func (s *VoiceSource) UnmarshalJSON(data []byte) error {
	var head sourceTypeWire
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	switch head.SourceType {
	case VoiceSourceFreesound:
		var w freesoundWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*s = FreesoundSource(w.FreesoundVoiceSource)
	case VoiceSourceFile:
		var w fileWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*s = FileSource(w.FileVoiceSource)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVoiceSource, head.SourceType)
	}
	return s.Validate()
}

// DecodeConfig 解析并校验一份 UnmuteConfig
func DecodeConfig(data []byte) (UnmuteConfig, error) {
	var cfg UnmuteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return UnmuteConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return UnmuteConfig{}, err
	}
	return cfg, nil
}

// DecodeVoiceSamples 解析后端返回的声音目录
func DecodeVoiceSamples(data []byte) ([]VoiceSample, error) {
	var samples []VoiceSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, err
	}
	for idx, sample := range samples {
		if err := sample.Validate(); err != nil {
			return nil, fmt.Errorf("voice sample %d: %w", idx, err)
		}
	}
	return samples, nil
}
