package configurator

import (
	"fmt"
	"sync"

	"unmute-configurator-golang/internal/domain/preset"
	"unmute-configurator-golang/internal/domain/unmute"
)

// State 本地就绪标记
type State int

const (
	StatePending State = iota
	StateDone
)

func (s State) String() string {
	if s == StateDone {
		return "done"
	}
	return "pending"
}

const LoadingText = "Loading..."

// SetConfigFunc 由配置的持有方提供, 同步替换整份配置
type SetConfigFunc func(cfg unmute.UnmuteConfig)

// Props 每次渲染时由外部传入
type Props struct {
	Config           unmute.UnmuteConfig
	BackendServerURL string
	SetConfig        SetConfigFunc
	// 预留给声音克隆, 目前不参与任何逻辑
	VoiceCloningUp bool
}

// View 渲染结果
type View struct {
	Loading bool   `json:"loading"`
	Text    string `json:"text"`
}

// Configurator 在后端地址可用后把预置写入外部配置, 每次挂载只写一次
// 除就绪标记和(空的)声音目录外不持有其他状态
type Configurator struct {
	mu     sync.Mutex
	state  State
	voices []unmute.VoiceSample
	preset preset.Preset
}

func New(p preset.Preset) *Configurator {
	return &Configurator{
		state:  StatePending,
		preset: p,
	}
}

// NewWithPreset 按ID创建, ID未知时返回错误
func NewWithPreset(id preset.ID) (*Configurator, error) {
	p, err := preset.Lookup(id)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

func (c *Configurator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Voices 就绪前返回 nil, 就绪后返回空目录
func (c *Configurator) Voices() []unmute.VoiceSample {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.voices
}

func (c *Configurator) Preset() preset.Preset {
	return c.preset
}

// Render 每次外部状态变化都会调用
// 条件是电平触发的: 只要后端地址非空且尚未就绪就执行一次写入
func (c *Configurator) Render(props Props) View {
	if c.trigger(props.BackendServerURL) && props.SetConfig != nil {
		props.SetConfig(c.preset.Apply(props.Config))
	}

	if c.State() == StatePending {
		return View{Loading: true, Text: LoadingText}
	}
	return View{
		Loading: false,
		Text:    fmt.Sprintf("Using %s voice for %s", props.Config.VoiceName, c.preset.Persona),
	}
}

// trigger 在锁内翻转状态, setter 在锁外执行, 同步重入的渲染不会再次触发
func (c *Configurator) trigger(backendServerURL string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if backendServerURL == "" || c.state != StatePending {
		return false
	}
	c.state = StateDone
	c.voices = []unmute.VoiceSample{}
	return true
}
