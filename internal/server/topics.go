package server

import (
	"errors"
	"net/http"

	"github.com/teachpad/learning-assist/internal/lesson"
	"github.com/teachpad/learning-assist/internal/store"
)

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	var (
		topics []*store.Topic
		err    error
	)
	if subjectID := r.URL.Query().Get("subject_id"); subjectID != "" {
		topics, err = s.store.ListTopicsBySubject(r.Context(), subjectID)
	} else {
		topics, err = s.store.ListTopics(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to list topics")
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	var topic store.Topic
	if !decodeBody(w, r, &topic) {
		return
	}
	if err := s.store.CreateTopic(r.Context(), &topic); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, &topic)
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	topic, err := s.store.GetTopic(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to read topic")
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleUpdateTopic(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	var update store.TopicUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	topic, err := s.store.UpdateTopic(r.Context(), r.PathValue("id"), update)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to update topic")
		return
	}
	writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	err := s.store.DeleteTopic(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to delete topic")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	content, err := s.store.GetLesson(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "lesson not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to read lesson")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"content":  content,
		"sections": lesson.Parse(content),
	})
}

type saveLessonRequest struct {
	Sections []*lesson.Section `json:"sections"`
}

// handleSaveLesson persists edited sections as canonical lesson text, so
// stored documents converge on one format regardless of their origin.
func (s *Server) handleSaveLesson(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	var req saveLessonRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Sections) == 0 {
		writeError(w, http.StatusBadRequest, "sections are required")
		return
	}
	content := lesson.Reconstruct(req.Sections)
	err := s.store.SaveLesson(r.Context(), r.PathValue("id"), content)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to save lesson")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}
