package server

import (
	"net/http"
	"strings"

	"github.com/teachpad/learning-assist/internal/provider/youtube"
)

// Channels boosted when ranking search results for teachers.
var preferredChannels = []string{
	"Khan Academy",
	"Crash Course",
	"TED-Ed",
	"SciShow",
	"National Geographic",
	"Free School",
}

const maxVideoResults = 10

// handleSearchVideos searches YouTube for lesson videos and returns them
// ranked by keyword and channel fit.
func (s *Server) handleSearchVideos(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	if s.videos == nil {
		writeError(w, http.StatusServiceUnavailable, "video search is not configured")
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	found, err := s.videos.Search(r.Context(), query, maxVideoResults)
	if err != nil {
		writeError(w, http.StatusBadGateway, "video search failed")
		return
	}
	ranked := youtube.Rank(found, strings.Fields(query), preferredChannels)

	type video struct {
		youtube.Video
		URL string `json:"url"`
	}
	result := make([]video, 0, len(ranked))
	for _, v := range ranked {
		result = append(result, video{Video: v, URL: v.URL()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": result})
}
