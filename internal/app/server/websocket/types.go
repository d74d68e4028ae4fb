package websocket

import (
	"encoding/json"

	"unmute-configurator-golang/internal/domain/configurator"
	"unmute-configurator-golang/internal/domain/unmute"
)

/*
客户端 -> 服务端
{"type": "render", "backend_server_url": "https://api.example", "voice_cloning_up": false}
{"type": "set_config", "config": {"instructions": {"type": "constant", "text": "..."}, "voice": "...", "voiceName": "...", "isCustomInstructions": true}}

服务端 -> 客户端
{"type": "hello", "session_id": "...", "config": {...}}
{"type": "view", "loading": false, "text": "Using Female voice for Sanofi Pharma Assistant", "config": {...}}
{"type": "config", "config": {...}}
{"type": "error", "message": "..."}
*/

// ClientMessage 客户端发来的消息, 按 Type 读取对应字段
type ClientMessage struct {
	Type             string          `json:"type"`
	BackendServerURL string          `json:"backend_server_url,omitempty"`
	VoiceCloningUp   bool            `json:"voice_cloning_up,omitempty"`
	Config           json.RawMessage `json:"config,omitempty"`
}

type HelloMessage struct {
	Type      string              `json:"type"`
	SessionID string              `json:"session_id"`
	Config    unmute.UnmuteConfig `json:"config"`
}

type ViewMessage struct {
	Type string `json:"type"`
	configurator.View
	Config unmute.UnmuteConfig `json:"config"`
}

type ConfigMessage struct {
	Type   string              `json:"type"`
	Config unmute.UnmuteConfig `json:"config"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
