package unmute

import (
	"errors"
	"fmt"

	"unmute-configurator-golang/constants"
)

var (
	ErrUnknownInstructionsType = errors.New("unknown instructions type")
	ErrInvalidInstructions     = errors.New("invalid instructions")
	ErrUnknownLanguage         = errors.New("unknown language code")
	ErrUnknownVoiceSource      = errors.New("unknown voice source type")
	ErrInvalidVoiceSource      = errors.New("invalid voice source")
	ErrInvalidConfig           = errors.New("invalid unmute config")
)

// LanguageCode 会话语言, en/fr 与 fr/en 表示双语, 前者为主语言
// 空字符串表示未指定, 由应用的默认语言决定
type LanguageCode string

const (
	LanguageEn   LanguageCode = constants.LanguageEn
	LanguageFr   LanguageCode = constants.LanguageFr
	LanguageEnFr LanguageCode = constants.LanguageEnFr
	LanguageFrEn LanguageCode = constants.LanguageFrEn
)

func (l LanguageCode) Valid() bool {
	switch l {
	case "", LanguageEn, LanguageFr, LanguageEnFr, LanguageFrEn:
		return true
	}
	return false
}

type InstructionsType string

const (
	InstructionsConstant          InstructionsType = constants.InstructionsTypeConstant
	InstructionsSmalltalk         InstructionsType = constants.InstructionsTypeSmalltalk
	InstructionsGuessAnimal       InstructionsType = constants.InstructionsTypeGuessAnimal
	InstructionsQuizShow          InstructionsType = constants.InstructionsTypeQuizShow
	InstructionsUnmuteExplanation InstructionsType = constants.InstructionsTypeUnmuteExplanation
	InstructionsNews              InstructionsType = constants.InstructionsTypeNews
	InstructionsSanofiPharma      InstructionsType = constants.InstructionsTypeSanofiPharma
)

// InstructionsTypes 所有已知的 instructions 类型
var InstructionsTypes = []InstructionsType{
	InstructionsConstant,
	InstructionsSmalltalk,
	InstructionsGuessAnimal,
	InstructionsQuizShow,
	InstructionsUnmuteExplanation,
	InstructionsNews,
	InstructionsSanofiPharma,
}

func (t InstructionsType) Valid() bool {
	switch t {
	case InstructionsConstant, InstructionsSmalltalk, InstructionsGuessAnimal, InstructionsQuizShow,
		InstructionsUnmuteExplanation, InstructionsNews, InstructionsSanofiPharma:
		return true
	}
	return false
}

// Instructions 语音会话使用的角色/剧本, 以 type 字段区分变体
// 只有 constant 变体携带 Text
type Instructions struct {
	Type     InstructionsType
	Text     string
	Language LanguageCode
}

// Constant 创建固定文本的 instructions
func Constant(text string, language LanguageCode) Instructions {
	return Instructions{Type: InstructionsConstant, Text: text, Language: language}
}

// Preset 创建不带文本的内置 instructions
func Preset(t InstructionsType, language LanguageCode) Instructions {
	return Instructions{Type: t, Language: language}
}

func (i Instructions) IsConstant() bool {
	return i.Type == InstructionsConstant
}

func (i Instructions) Validate() error {
	if !i.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownInstructionsType, i.Type)
	}
	if !i.Language.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, i.Language)
	}
	if !i.IsConstant() && i.Text != "" {
		return fmt.Errorf("%w: text is only allowed on %s instructions", ErrInvalidInstructions, InstructionsConstant)
	}
	return nil
}

type VoiceSourceType string

const (
	VoiceSourceFreesound VoiceSourceType = constants.VoiceSourceFreesound
	VoiceSourceFile      VoiceSourceType = constants.VoiceSourceFile
)

// SoundInstance freesound 上的声音条目
type SoundInstance struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	License  string `json:"license"`
}

type FreesoundVoiceSource struct {
	URL           string        `json:"url"`
	StartTime     float64       `json:"start_time"`
	SoundInstance SoundInstance `json:"sound_instance"`
	PathOnServer  string        `json:"path_on_server"`
}

type FileVoiceSource struct {
	PathOnServer    string `json:"path_on_server"`
	Description     string `json:"description,omitempty"`
	DescriptionLink string `json:"description_link,omitempty"`
}

// VoiceSource 声音样本的来源, Type 决定哪一个变体有效
type VoiceSource struct {
	Type      VoiceSourceType
	Freesound *FreesoundVoiceSource
	File      *FileVoiceSource
}

func FreesoundSource(src FreesoundVoiceSource) VoiceSource {
	return VoiceSource{Type: VoiceSourceFreesound, Freesound: &src}
}

func FileSource(src FileVoiceSource) VoiceSource {
	return VoiceSource{Type: VoiceSourceFile, File: &src}
}

// PathOnServer 返回后端可以解析的样本路径
func (s VoiceSource) PathOnServer() string {
	switch s.Type {
	case VoiceSourceFreesound:
		if s.Freesound != nil {
			return s.Freesound.PathOnServer
		}
	case VoiceSourceFile:
		if s.File != nil {
			return s.File.PathOnServer
		}
	}
	return ""
}

func (s VoiceSource) Validate() error {
	switch s.Type {
	case VoiceSourceFreesound:
		if s.Freesound == nil || s.File != nil {
			return fmt.Errorf("%w: freesound source must carry only freesound fields", ErrInvalidVoiceSource)
		}
		if s.Freesound.StartTime < 0 {
			return fmt.Errorf("%w: negative start_time %v", ErrInvalidVoiceSource, s.Freesound.StartTime)
		}
	case VoiceSourceFile:
		if s.File == nil || s.Freesound != nil {
			return fmt.Errorf("%w: file source must carry only file fields", ErrInvalidVoiceSource)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownVoiceSource, s.Type)
	}
	return nil
}

// VoiceSample 后端提供的一条声音目录项
// Good 标记人工筛选过的样本, Instructions 非空时覆盖会话默认值
type VoiceSample struct {
	Name         *string       `json:"name"`
	Comment      string        `json:"comment"`
	Good         bool          `json:"good"`
	Instructions *Instructions `json:"instructions"`
	Source       VoiceSource   `json:"source"`
}

func (v VoiceSample) Validate() error {
	if v.Instructions != nil {
		if err := v.Instructions.Validate(); err != nil {
			return err
		}
	}
	return v.Source.Validate()
}

// UnmuteConfig 传给实时语音会话的配置
// VoiceName 与 IsCustomInstructions 只用于展示和统计, 后端不读取
type UnmuteConfig struct {
	Instructions         Instructions `json:"instructions"`
	Voice                string       `json:"voice"`
	VoiceName            string       `json:"voiceName"`
	IsCustomInstructions bool         `json:"isCustomInstructions"`
}

// DefaultUnmuteConfig 挂载时的占位配置, 拿到真实会话参数后立即被覆盖
func DefaultUnmuteConfig() UnmuteConfig {
	return UnmuteConfig{
		Instructions:         Preset(InstructionsSmalltalk, LanguageEnFr),
		Voice:                "barack_demo.wav",
		VoiceName:            "Missing voice",
		IsCustomInstructions: false,
	}
}

func (c UnmuteConfig) Validate() error {
	if err := c.Instructions.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Voice == "" {
		return fmt.Errorf("%w: empty voice", ErrInvalidConfig)
	}
	return nil
}
