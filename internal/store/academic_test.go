package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachpad/learning-assist/internal/store"
	"github.com/teachpad/learning-assist/pkg/clock"
)

func newTestRecord() *store.AcademicRecord {
	return &store.AcademicRecord{
		TopicID:      "topic-1",
		SchoolID:     "school-1",
		AcademicYear: "2026-27",
		Grade:        "5",
		Section:      "a",
		SubjectID:    "biology",
		SubjectName:  "Biology",
		TopicName:    "Photosynthesis",
		TeacherID:    "teacher-1",
		TeacherName:  "Sam",
	}
}

func TestAcademicRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("Create derives the class key", func(t *testing.T) {
		clock.FreezeAt(time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC))
		defer clock.Unfreeze()
		s := newTestStore(t)

		record := newTestRecord()
		require.NoError(t, s.CreateAcademicRecord(ctx, record))
		assert.Equal(t, "school-1#2026-27#5#A#biology", record.RecordID)
		assert.Equal(t, "A", record.Section)
		assert.Equal(t, "not_started", record.Status)
		assert.Equal(t, "2026-06-01T08:00:00Z", record.CreatedAt)
		assert.Equal(t, record.CreatedAt, record.UpdatedAt)

		found, err := s.GetAcademicRecord(ctx, record.RecordID, record.TopicID)
		require.NoError(t, err)
		assert.Equal(t, record, found)
	})

	t.Run("Create requires the class fields", func(t *testing.T) {
		s := newTestStore(t)
		record := newTestRecord()
		record.Grade = ""
		assert.Error(t, s.CreateAcademicRecord(ctx, record))
	})

	t.Run("Create rejects unknown statuses", func(t *testing.T) {
		s := newTestStore(t)
		record := newTestRecord()
		record.Status = "paused"
		assert.Error(t, s.CreateAcademicRecord(ctx, record))
	})

	t.Run("Partial update", func(t *testing.T) {
		s := newTestStore(t)
		record := newTestRecord()
		require.NoError(t, s.CreateAcademicRecord(ctx, record))

		status := "in_progress"
		notes := "Covered the light reactions."
		updated, err := s.UpdateAcademicRecord(ctx, record.RecordID, record.TopicID,
			store.AcademicRecordUpdate{Status: &status, Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, "in_progress", updated.Status)
		assert.Equal(t, notes, updated.Notes)
		assert.Equal(t, "Sam", updated.TeacherName)
	})

	t.Run("Update rejects unknown statuses", func(t *testing.T) {
		s := newTestStore(t)
		record := newTestRecord()
		require.NoError(t, s.CreateAcademicRecord(ctx, record))

		status := "paused"
		_, err := s.UpdateAcademicRecord(ctx, record.RecordID, record.TopicID,
			store.AcademicRecordUpdate{Status: &status})
		assert.Error(t, err)
	})

	t.Run("Missing records", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.GetAcademicRecord(ctx, "missing", "topic-1")
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.UpdateAcademicRecord(ctx, "missing", "topic-1", store.AcademicRecordUpdate{})
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = s.DeleteAcademicRecord(ctx, "missing", "topic-1")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newTestStore(t)
		record := newTestRecord()
		require.NoError(t, s.CreateAcademicRecord(ctx, record))
		require.NoError(t, s.DeleteAcademicRecord(ctx, record.RecordID, record.TopicID))

		_, err := s.GetAcademicRecord(ctx, record.RecordID, record.TopicID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestAcademicRecordQueries(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, s *store.Store) {
		t.Helper()
		records := []*store.AcademicRecord{
			newTestRecord(),
			newTestRecord(),
			newTestRecord(),
			newTestRecord(),
		}
		records[1].TopicID = "topic-2"
		records[1].TopicName = "Cell Respiration"
		records[2].Section = "b"
		records[2].TeacherID = "teacher-2"
		records[3].SchoolID = "school-2"
		for _, record := range records {
			require.NoError(t, s.CreateAcademicRecord(ctx, record))
		}
	}

	t.Run("By teacher", func(t *testing.T) {
		s := newTestStore(t)
		seed(t, s)

		records, err := s.ListAcademicRecordsByTeacher(ctx, "teacher-2")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "B", records[0].Section)
	})

	t.Run("By school", func(t *testing.T) {
		s := newTestStore(t)
		seed(t, s)

		records, err := s.ListAcademicRecordsBySchool(ctx, "school-1")
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("By class", func(t *testing.T) {
		s := newTestStore(t)
		seed(t, s)

		records, err := s.ListAcademicRecordsByClass(ctx, "school-1", "2026-27", "5", "a")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "topic-1", records[0].TopicID)
		assert.Equal(t, "topic-2", records[1].TopicID)
	})

	t.Run("By topic", func(t *testing.T) {
		s := newTestStore(t)
		seed(t, s)

		records, err := s.ListAcademicRecordsByTopic(ctx, "topic-1")
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})
}
