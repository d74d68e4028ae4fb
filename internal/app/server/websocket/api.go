package websocket

import (
	"encoding/json"
	"net/http"

	session_config "unmute-configurator-golang/internal/domain/config"
	"unmute-configurator-golang/internal/domain/header"
	"unmute-configurator-golang/internal/domain/preset"
	"unmute-configurator-golang/internal/domain/unmute"
	log "unmute-configurator-golang/logger"
)

type presetsResponse struct {
	Active  preset.ID            `json:"active"`
	Presets []preset.Preset      `json:"presets"`
	Samples []unmute.VoiceSample `json:"samples"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("写入响应失败: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func onlyGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

func (s *WebSocketServer) handleHeader(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, header.Default())
}

func (s *WebSocketServer) handlePresets(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	all := preset.All()
	resp := presetsResponse{
		Active:  s.preset.ID,
		Presets: all,
		Samples: make([]unmute.VoiceSample, 0, len(all)),
	}
	for _, p := range all {
		resp.Samples = append(resp.Samples, p.Sample())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *WebSocketServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !onlyGet(w, r) {
		return
	}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	cfg, err := session_config.GetOrDefault(r.Context(), s.store, sessionID)
	if err != nil {
		log.Session(sessionID).Errorf("读取会话配置失败: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load config")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *WebSocketServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: s.registry.SessionCount(),
	})
}
