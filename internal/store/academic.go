package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teachpad/learning-assist/pkg/clock"
)

// ValidStatuses lists the accepted progress states of an academic record.
var ValidStatuses = []string{"not_started", "in_progress", "completed", "on_hold", "cancelled"}

func validStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// AcademicRecord tracks one topic's teaching progress for one class
// (school, academic year, grade, section, subject).
type AcademicRecord struct {
	RecordID     string `json:"record_id"`
	TopicID      string `json:"topic_id"`
	SchoolID     string `json:"school_id"`
	AcademicYear string `json:"academic_year"`
	Grade        string `json:"grade"`
	Section      string `json:"section"`
	SubjectID    string `json:"subject_id"`
	SubjectName  string `json:"subject_name"`
	TopicName    string `json:"topic_name"`
	TeacherID    string `json:"teacher_id"`
	TeacherName  string `json:"teacher_name"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// RecordID builds the composite class key "school#year#grade#section#subject".
func RecordID(schoolID, academicYear, grade, section, subjectID string) string {
	return strings.Join([]string{schoolID, academicYear, grade, section, subjectID}, "#")
}

const academicRecordColumns = `record_id, topic_id, school_id, academic_year, grade, section,
	subject_id, subject_name, topic_name, teacher_id, teacher_name, status, notes, created_at, updated_at`

// CreateAcademicRecord inserts a new record, deriving its composite ID and
// timestamps. Sections are stored uppercased.
func (s *Store) CreateAcademicRecord(ctx context.Context, record *AcademicRecord) error {
	if record.SchoolID == "" || record.AcademicYear == "" || record.Grade == "" ||
		record.Section == "" || record.SubjectID == "" || record.TopicID == "" {
		return fmt.Errorf("missing required academic record field")
	}
	if record.Status == "" {
		record.Status = "not_started"
	}
	if !validStatus(record.Status) {
		return fmt.Errorf("invalid status %q, must be one of %s", record.Status, strings.Join(ValidStatuses, ", "))
	}
	record.Section = strings.ToUpper(record.Section)
	record.RecordID = RecordID(record.SchoolID, record.AcademicYear, record.Grade, record.Section, record.SubjectID)
	now := clock.Now().UTC().Format(time.RFC3339)
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := s.client.ExecContext(ctx, `
		INSERT INTO academic_records (`+academicRecordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RecordID, record.TopicID, record.SchoolID, record.AcademicYear,
		record.Grade, record.Section, record.SubjectID, record.SubjectName,
		record.TopicName, record.TeacherID, record.TeacherName, record.Status,
		record.Notes, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("unable to create academic record: %w", err)
	}
	return nil
}

func (s *Store) GetAcademicRecord(ctx context.Context, recordID, topicID string) (*AcademicRecord, error) {
	row := s.client.QueryRowContext(ctx, `
		SELECT `+academicRecordColumns+` FROM academic_records
		WHERE record_id = ? AND topic_id = ?`, recordID, topicID)
	return scanAcademicRecord(row)
}

// AcademicRecordUpdate carries the updatable fields; nil means leave
// unchanged. The class key and topic never change after creation.
type AcademicRecordUpdate struct {
	Status      *string `json:"status"`
	TeacherID   *string `json:"teacher_id"`
	TeacherName *string `json:"teacher_name"`
	SubjectName *string `json:"subject_name"`
	TopicName   *string `json:"topic_name"`
	Notes       *string `json:"notes"`
}

func (s *Store) UpdateAcademicRecord(ctx context.Context, recordID, topicID string, update AcademicRecordUpdate) (*AcademicRecord, error) {
	existing, err := s.GetAcademicRecord(ctx, recordID, topicID)
	if err != nil {
		return nil, err
	}
	if update.Status != nil {
		if !validStatus(*update.Status) {
			return nil, fmt.Errorf("invalid status %q, must be one of %s", *update.Status, strings.Join(ValidStatuses, ", "))
		}
		existing.Status = *update.Status
	}
	if update.TeacherID != nil {
		existing.TeacherID = *update.TeacherID
	}
	if update.TeacherName != nil {
		existing.TeacherName = *update.TeacherName
	}
	if update.SubjectName != nil {
		existing.SubjectName = *update.SubjectName
	}
	if update.TopicName != nil {
		existing.TopicName = *update.TopicName
	}
	if update.Notes != nil {
		existing.Notes = *update.Notes
	}
	existing.UpdatedAt = clock.Now().UTC().Format(time.RFC3339)

	_, err = s.client.ExecContext(ctx, `
		UPDATE academic_records
		SET status = ?, teacher_id = ?, teacher_name = ?, subject_name = ?, topic_name = ?, notes = ?, updated_at = ?
		WHERE record_id = ? AND topic_id = ?`,
		existing.Status, existing.TeacherID, existing.TeacherName, existing.SubjectName,
		existing.TopicName, existing.Notes, existing.UpdatedAt, recordID, topicID)
	if err != nil {
		return nil, fmt.Errorf("unable to update academic record: %w", err)
	}
	return existing, nil
}

func (s *Store) DeleteAcademicRecord(ctx context.Context, recordID, topicID string) error {
	result, err := s.client.ExecContext(ctx, `
		DELETE FROM academic_records WHERE record_id = ? AND topic_id = ?`, recordID, topicID)
	if err != nil {
		return fmt.Errorf("unable to delete academic record: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListAcademicRecordsByTeacher(ctx context.Context, teacherID string) ([]*AcademicRecord, error) {
	return s.queryAcademicRecords(ctx, `
		SELECT `+academicRecordColumns+` FROM academic_records
		WHERE teacher_id = ? ORDER BY record_id, topic_id`, teacherID)
}

func (s *Store) ListAcademicRecordsBySchool(ctx context.Context, schoolID string) ([]*AcademicRecord, error) {
	return s.queryAcademicRecords(ctx, `
		SELECT `+academicRecordColumns+` FROM academic_records
		WHERE school_id = ? ORDER BY record_id, topic_id`, schoolID)
}

// ListAcademicRecordsByClass returns every record of one class, matching the
// composite key prefix.
func (s *Store) ListAcademicRecordsByClass(ctx context.Context, schoolID, academicYear, grade, section string) ([]*AcademicRecord, error) {
	prefix := strings.Join([]string{schoolID, academicYear, grade, strings.ToUpper(section)}, "#") + "#"
	return s.queryAcademicRecords(ctx, `
		SELECT `+academicRecordColumns+` FROM academic_records
		WHERE record_id LIKE ? ESCAPE '\' ORDER BY record_id, topic_id`, likePrefix(prefix))
}

func (s *Store) ListAcademicRecordsByTopic(ctx context.Context, topicID string) ([]*AcademicRecord, error) {
	return s.queryAcademicRecords(ctx, `
		SELECT `+academicRecordColumns+` FROM academic_records
		WHERE topic_id = ? ORDER BY record_id`, topicID)
}

// likePrefix escapes LIKE metacharacters so the prefix matches literally.
func likePrefix(prefix string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(prefix) + "%"
}

func (s *Store) queryAcademicRecords(ctx context.Context, query string, args ...any) ([]*AcademicRecord, error) {
	rows, err := s.client.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to list academic records: %w", err)
	}
	defer rows.Close()

	records := make([]*AcademicRecord, 0)
	for rows.Next() {
		var record AcademicRecord
		if err := rows.Scan(&record.RecordID, &record.TopicID, &record.SchoolID, &record.AcademicYear,
			&record.Grade, &record.Section, &record.SubjectID, &record.SubjectName, &record.TopicName,
			&record.TeacherID, &record.TeacherName, &record.Status, &record.Notes,
			&record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

func scanAcademicRecord(row *sql.Row) (*AcademicRecord, error) {
	var record AcademicRecord
	err := row.Scan(&record.RecordID, &record.TopicID, &record.SchoolID, &record.AcademicYear,
		&record.Grade, &record.Section, &record.SubjectID, &record.SubjectName, &record.TopicName,
		&record.TeacherID, &record.TeacherName, &record.Status, &record.Notes,
		&record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
