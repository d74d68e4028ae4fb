package header

// Link 外部链接
type Link struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// Modal "More info" 展开面板
type Modal struct {
	Trigger         string   `json:"trigger"`
	ForceFullscreen bool     `json:"force_fullscreen"`
	Paragraphs      []string `json:"paragraphs"`
	Contact         Link     `json:"contact"`
}

// Attribution 标题下方的署名
type Attribution struct {
	Prefix  string `json:"prefix"`
	Link    Link   `json:"link"`
	LogoAlt string `json:"logo_alt"`
}

// Info 页头的静态内容, 不依赖也不修改任何配置
type Info struct {
	Title       string      `json:"title"`
	Attribution Attribution `json:"attribution"`
	Tagline     string      `json:"tagline"`
	MoreInfo    Modal       `json:"more_info"`
}

func Default() Info {
	return Info{
		Title: "Super Agent Pro",
		Attribution: Attribution{
			Prefix:  "by",
			Link:    Link{Href: "https://ailylabs.com", Label: "Aily Labs"},
			LogoAlt: "Aily Labs logo",
		},
		Tagline: "Real-time AI conversation for business decision support.",
		MoreInfo: Modal{
			Trigger:         "More info",
			ForceFullscreen: true,
			Paragraphs: []string{
				"Super Agent Pro is a real-time conversational AI prototype built by Aily Labs " +
					"using Kyutai's open-source TTS, STT, and Unmute services. " +
					"It combines speech-to-text, language models, and text-to-speech for natural voice interactions.",
				"This system processes your speech, generates intelligent responses, and speaks back " +
					"with low latency. You can customize the AI's personality and voice to match your needs.",
				"Aily Labs specializes in decision intelligence solutions that help businesses " +
					"make better, faster decisions with AI.",
			},
			Contact: Link{Href: "mailto:info@ailylabs.com", Label: "info@ailylabs.com"},
		},
	}
}
