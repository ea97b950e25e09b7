package server

import (
	"net/http"
	"strings"

	"github.com/teachpad/learning-assist/internal/lesson"
	"github.com/teachpad/learning-assist/internal/render"
)

type renderRequest struct {
	Content  string            `json:"content"`
	Sections []*lesson.Section `json:"sections"`
}

type renderedSection struct {
	*lesson.Section
	HTML string `json:"html"`
}

// handleRender turns raw lesson text (or already-parsed sections) into
// per-section HTML fragments.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sections := req.Sections
	if len(sections) == 0 {
		if req.Content == "" {
			writeError(w, http.StatusBadRequest, "content or sections are required")
			return
		}
		sections = lesson.Parse(req.Content)
	}

	// Normalization below mutates, so work on a copy of the caller's sections.
	sections = lesson.CloneSections(sections)
	result := make([]renderedSection, 0, len(sections))
	for _, section := range sections {
		section.Title = strings.TrimSpace(section.Title)
		section.Content = strings.TrimSpace(section.Content)
		result = append(result, renderedSection{
			Section: section,
			HTML:    render.RenderSection(section.Content),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": result})
}
