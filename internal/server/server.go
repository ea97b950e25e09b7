// Package server exposes the portal HTTP API: authentication, topic and
// lesson management, AI generation proxying and lesson rendering.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/teachpad/learning-assist/internal/auth"
	"github.com/teachpad/learning-assist/internal/core"
	"github.com/teachpad/learning-assist/internal/provider"
	"github.com/teachpad/learning-assist/internal/provider/youtube"
	"github.com/teachpad/learning-assist/internal/store"
)

type Server struct {
	mux      *http.ServeMux
	store    *store.Store
	registry *provider.Registry
	auth     *auth.Service
	config   *core.Config
	videos   *youtube.Client
}

func NewServer(st *store.Store, registry *provider.Registry, authService *auth.Service, config *core.Config) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		store:    st,
		registry: registry,
		auth:     authService,
		config:   config,
	}
	if config.YouTubeAPIKey != "" {
		s.videos = youtube.NewClient(config.YouTubeAPIKey)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	s.mux.HandleFunc("GET /api/topics", s.handleListTopics)
	s.mux.HandleFunc("POST /api/topics", s.handleCreateTopic)
	s.mux.HandleFunc("GET /api/topics/{id}", s.handleGetTopic)
	s.mux.HandleFunc("PUT /api/topics/{id}", s.handleUpdateTopic)
	s.mux.HandleFunc("DELETE /api/topics/{id}", s.handleDeleteTopic)

	s.mux.HandleFunc("GET /api/topics/{id}/lesson", s.handleGetLesson)
	s.mux.HandleFunc("PUT /api/topics/{id}/lesson", s.handleSaveLesson)

	s.mux.HandleFunc("POST /api/ai/generate-content", s.aiHandler("generate-content"))
	s.mux.HandleFunc("POST /api/ai/enhance-section", s.aiHandler("enhance-section"))
	s.mux.HandleFunc("POST /api/ai/analyze-chapter", s.aiHandler("analyze-chapter"))
	s.mux.HandleFunc("POST /api/ai/discover-documents", s.aiHandler("discover-documents"))

	s.mux.HandleFunc("GET /api/videos/search", s.handleSearchVideos)

	s.mux.HandleFunc("POST /api/academic-records", s.handleCreateRecord)
	s.mux.HandleFunc("GET /api/academic-records", s.handleQueryRecords)
	s.mux.HandleFunc("GET /api/academic-records/{record}/{topic}", s.handleGetRecord)
	s.mux.HandleFunc("PUT /api/academic-records/{record}/{topic}", s.handleUpdateRecord)
	s.mux.HandleFunc("DELETE /api/academic-records/{record}/{topic}", s.handleDeleteRecord)
	s.mux.HandleFunc("GET /api/records/topic/{id}", s.handleRecordsByTopic)

	s.mux.HandleFunc("POST /api/render", s.handleRender)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	core.CurrentLogger().Debugf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		core.CurrentLogger().Warnf("unable to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
