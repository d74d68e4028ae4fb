package constants

const (
	InstructionsTypeConstant          = "constant"
	InstructionsTypeSmalltalk         = "smalltalk"
	InstructionsTypeGuessAnimal       = "guess_animal"
	InstructionsTypeQuizShow          = "quiz_show"
	InstructionsTypeUnmuteExplanation = "unmute_explanation"
	InstructionsTypeNews              = "news"
	InstructionsTypeSanofiPharma      = "sanofi_pharma"
)

const (
	LanguageEn   = "en"
	LanguageFr   = "fr"
	LanguageEnFr = "en/fr"
	LanguageFrEn = "fr/en"
)

const (
	VoiceSourceFreesound = "freesound"
	VoiceSourceFile      = "file"
)

const (
	ConfigStoreTypeMemory = "memory"
	ConfigStoreTypeRedis  = "redis"
)

const (
	PresetFemale = "female"
	PresetMale   = "male"
)

// websocket 消息类型
const (
	MessageTypeHello     = "hello"
	MessageTypeRender    = "render"
	MessageTypeView      = "view"
	MessageTypeSetConfig = "set_config"
	MessageTypeConfig    = "config"
	MessageTypeError     = "error"
)
