// Package store persists topics, lesson documents, users and API usage in
// a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/teachpad/learning-assist/pkg/clock"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

var ErrNotFound = errors.New("not found")

type Store struct {
	client *sql.DB
}

// Open connects to the sqlite database at path and runs pending migrations.
// Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	client, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		client.SetMaxOpenConns(1)
	}

	instance, err := sqlite3.WithInstance(client, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("unable to prepare migrations: %w", err)
	}
	d, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("unable to read migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", d, "sqlite3", instance)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize migrations: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return nil, fmt.Errorf("unable to run migrations: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

/*
 * Topics
 */

type Topic struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	NotebookLMURL string `json:"notebookLMUrl"`
	SubjectID     string `json:"subject_id"`
	SchoolID      string `json:"school_id"`
	ClassID       string `json:"class_id"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// TopicUpdate carries the updatable fields; nil means leave unchanged.
type TopicUpdate struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	NotebookLMURL *string `json:"notebookLMUrl"`
}

// CreateTopic inserts a new topic, assigning its ID and timestamps.
func (s *Store) CreateTopic(ctx context.Context, topic *Topic) error {
	if topic.Name == "" || topic.SubjectID == "" || topic.SchoolID == "" || topic.ClassID == "" {
		return fmt.Errorf("missing required topic field")
	}
	topic.ID = uuid.NewString()
	now := clock.Now().UTC().Format(time.RFC3339)
	topic.CreatedAt = now
	topic.UpdatedAt = now

	_, err := s.client.ExecContext(ctx, `
		INSERT INTO topics (id, name, description, notebook_lm_url, subject_id, school_id, class_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		topic.ID, topic.Name, topic.Description, topic.NotebookLMURL,
		topic.SubjectID, topic.SchoolID, topic.ClassID, topic.CreatedAt, topic.UpdatedAt)
	if err != nil {
		return fmt.Errorf("unable to create topic: %w", err)
	}
	return nil
}

func (s *Store) GetTopic(ctx context.Context, id string) (*Topic, error) {
	row := s.client.QueryRowContext(ctx, `
		SELECT id, name, description, notebook_lm_url, subject_id, school_id, class_id, created_at, updated_at
		FROM topics WHERE id = ?`, id)
	return scanTopic(row)
}

func (s *Store) ListTopics(ctx context.Context) ([]*Topic, error) {
	return s.queryTopics(ctx, `
		SELECT id, name, description, notebook_lm_url, subject_id, school_id, class_id, created_at, updated_at
		FROM topics ORDER BY created_at`)
}

func (s *Store) ListTopicsBySubject(ctx context.Context, subjectID string) ([]*Topic, error) {
	return s.queryTopics(ctx, `
		SELECT id, name, description, notebook_lm_url, subject_id, school_id, class_id, created_at, updated_at
		FROM topics WHERE subject_id = ? ORDER BY created_at`, subjectID)
}

// UpdateTopic applies the given field updates and returns the new row.
// Only name, description and notebook_lm_url are updatable.
func (s *Store) UpdateTopic(ctx context.Context, id string, update TopicUpdate) (*Topic, error) {
	existing, err := s.GetTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.NotebookLMURL != nil {
		existing.NotebookLMURL = *update.NotebookLMURL
	}
	existing.UpdatedAt = clock.Now().UTC().Format(time.RFC3339)

	_, err = s.client.ExecContext(ctx, `
		UPDATE topics SET name = ?, description = ?, notebook_lm_url = ?, updated_at = ? WHERE id = ?`,
		existing.Name, existing.Description, existing.NotebookLMURL, existing.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("unable to update topic: %w", err)
	}
	return existing, nil
}

func (s *Store) DeleteTopic(ctx context.Context, id string) error {
	result, err := s.client.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("unable to delete topic: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) queryTopics(ctx context.Context, query string, args ...any) ([]*Topic, error) {
	rows, err := s.client.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unable to list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]*Topic, 0)
	for rows.Next() {
		var topic Topic
		if err := rows.Scan(&topic.ID, &topic.Name, &topic.Description, &topic.NotebookLMURL,
			&topic.SubjectID, &topic.SchoolID, &topic.ClassID, &topic.CreatedAt, &topic.UpdatedAt); err != nil {
			return nil, err
		}
		topics = append(topics, &topic)
	}
	return topics, rows.Err()
}

func scanTopic(row *sql.Row) (*Topic, error) {
	var topic Topic
	err := row.Scan(&topic.ID, &topic.Name, &topic.Description, &topic.NotebookLMURL,
		&topic.SubjectID, &topic.SchoolID, &topic.ClassID, &topic.CreatedAt, &topic.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

/*
 * Lessons
 */

// SaveLesson persists the canonical reconstructed text for a topic.
func (s *Store) SaveLesson(ctx context.Context, topicID string, content string) error {
	if _, err := s.GetTopic(ctx, topicID); err != nil {
		return err
	}
	now := clock.Now().UTC().Format(time.RFC3339)
	_, err := s.client.ExecContext(ctx, `
		INSERT INTO lessons (topic_id, content, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(topic_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		topicID, content, now)
	if err != nil {
		return fmt.Errorf("unable to save lesson: %w", err)
	}
	return nil
}

func (s *Store) GetLesson(ctx context.Context, topicID string) (string, error) {
	var content string
	err := s.client.QueryRowContext(ctx, `SELECT content FROM lessons WHERE topic_id = ?`, topicID).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return content, nil
}

/*
 * Users
 */

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
	CreatedAt    string `json:"created_at"`
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = clock.Now().UTC().Format(time.RFC3339)
	_, err := s.client.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, password_hash, salt, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.Role, user.PasswordHash, user.Salt, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("unable to create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.client.QueryRowContext(ctx, `
		SELECT id, email, name, role, password_hash, salt, created_at FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.PasswordHash, &user.Salt, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

/*
 * Usage tracking
 */

type Usage struct {
	UserID     string
	Endpoint   string
	TokensUsed int
}

// TrackUsage records one API call for billing and rate limiting.
func (s *Store) TrackUsage(ctx context.Context, usage Usage) error {
	now := clock.Now().UTC()
	_, err := s.client.ExecContext(ctx, `
		INSERT INTO usage (usage_id, user_id, endpoint, tokens_used, timestamp, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), usage.UserID, usage.Endpoint, usage.TokensUsed,
		now.Format(time.RFC3339), now.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("unable to track usage: %w", err)
	}
	return nil
}

// DailyRequestCount returns how many requests the user made today.
func (s *Store) DailyRequestCount(ctx context.Context, userID string) (int, error) {
	today := clock.Now().UTC().Format("2006-01-02")
	var count int
	err := s.client.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM usage WHERE user_id = ? AND date = ?`, userID, today).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unable to count usage: %w", err)
	}
	return count, nil
}
