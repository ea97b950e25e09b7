package server

import (
	"errors"
	"net/http"

	"github.com/teachpad/learning-assist/internal/store"
)

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	var record store.AcademicRecord
	if !decodeBody(w, r, &record) {
		return
	}
	if err := s.store.CreateAcademicRecord(r.Context(), &record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, &record)
}

// handleQueryRecords dispatches on query parameters: teacher_id, or
// school_id (optionally narrowed to one class by academic_year, grade and
// section).
func (s *Server) handleQueryRecords(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	query := r.URL.Query()

	var (
		records []*store.AcademicRecord
		err     error
	)
	switch {
	case query.Get("teacher_id") != "":
		records, err = s.store.ListAcademicRecordsByTeacher(r.Context(), query.Get("teacher_id"))
	case query.Get("school_id") != "":
		if query.Get("academic_year") != "" && query.Get("grade") != "" && query.Get("section") != "" {
			records, err = s.store.ListAcademicRecordsByClass(r.Context(),
				query.Get("school_id"), query.Get("academic_year"), query.Get("grade"), query.Get("section"))
		} else {
			records, err = s.store.ListAcademicRecordsBySchool(r.Context(), query.Get("school_id"))
		}
	default:
		writeError(w, http.StatusBadRequest, "teacher_id or school_id query parameter is required")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to list academic records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	record, err := s.store.GetAcademicRecord(r.Context(), r.PathValue("record"), r.PathValue("topic"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "academic record not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to read academic record")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	var update store.AcademicRecordUpdate
	if !decodeBody(w, r, &update) {
		return
	}
	record, err := s.store.UpdateAcademicRecord(r.Context(), r.PathValue("record"), r.PathValue("topic"), update)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "academic record not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	err := s.store.DeleteAcademicRecord(r.Context(), r.PathValue("record"), r.PathValue("topic"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "academic record not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to delete academic record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRecordsByTopic returns all class records teaching the given topic.
func (s *Server) handleRecordsByTopic(w http.ResponseWriter, r *http.Request) {
	if s.authenticate(w, r) == nil {
		return
	}
	records, err := s.store.ListAcademicRecordsByTopic(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "unable to list academic records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
