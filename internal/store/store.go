// Package store handles SQLite persistence of the task inbox.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when no task matches an identifier.
var ErrNotFound = errors.New("task not found")

// ErrAmbiguous is returned when an identifier prefix matches several tasks.
var ErrAmbiguous = errors.New("task id prefix is ambiguous")

// Store wraps SQLite access for tasks and their scheduled sessions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			urgency TEXT NOT NULL,
			due_at TEXT NOT NULL,
			total_minutes INTEGER NOT NULL,
			question_count INTEGER,
			minutes_per_question REAL,
			session_length INTEGER,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			start_at TEXT NOT NULL,
			end_at TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL,
			question_start INTEGER,
			question_end INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_task_id ON sessions(task_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_start_at ON sessions(start_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertTask stores a new task and any sessions it already carries.
func (s *Store) InsertTask(ctx context.Context, task *model.Task) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tasks (id, name, type, urgency, due_at, total_minutes, question_count, minutes_per_question, session_length, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.Name,
		string(task.Type),
		string(task.Urgency),
		task.DueDate.Format(time.RFC3339Nano),
		task.TotalMinutes,
		nullInt(task.QuestionCount),
		nullFloat(task.MinutesPerQuestion),
		nullInt(task.SessionLengthMinutes),
		boolInt(task.Completed),
		s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	if err = insertSessions(ctx, tx, task.Sessions); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceSessions swaps the stored sessions of each task for its current ones.
func (s *Store) ReplaceSessions(ctx context.Context, tasks []*model.Task) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	for _, task := range tasks {
		if _, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE task_id = ?`, task.ID); err != nil {
			return err
		}
		if err = insertSessions(ctx, tx, task.Sessions); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertSessions(ctx context.Context, tx *sql.Tx, sessions []model.ScheduledSession) error {
	if len(sessions) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sessions (id, task_id, start_at, end_at, duration_minutes, question_start, question_end)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, sess := range sessions {
		var qStart, qEnd any
		if sess.QuestionRange != nil {
			qStart, qEnd = sess.QuestionRange.Start, sess.QuestionRange.End
		}
		if _, err := stmt.ExecContext(ctx, sess.ID, sess.TaskID,
			sess.Start.Format(time.RFC3339Nano), sess.End.Format(time.RFC3339Nano),
			sess.DurationMinutes, qStart, qEnd); err != nil {
			return err
		}
	}
	return nil
}

// ListTasks returns tasks in insertion order with their sessions loaded.
func (s *Store) ListTasks(ctx context.Context, includeCompleted bool) ([]*model.Task, error) {
	query := `SELECT id, name, type, urgency, due_at, total_minutes, question_count, minutes_per_question, session_length, completed
		FROM tasks`
	if !includeCompleted {
		query += ` WHERE completed = 0`
	}
	query += ` ORDER BY created_at ASC, rowid ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var tasks []*model.Task
	byID := map[string]*model.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
		byID[task.ID] = task
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadSessions(ctx, byID); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask loads a single task by exact id.
func (s *Store) GetTask(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, type, urgency, due_at, total_minutes, question_count, minutes_per_question, session_length, completed
		 FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadSessions(ctx, map[string]*model.Task{task.ID: task}); err != nil {
		return nil, err
	}
	return task, nil
}

// ResolveID expands a unique id prefix to the full task id.
func (s *Store) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM tasks WHERE id LIKE ? ESCAPE '\' LIMIT 2`, escaped+"%")
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
	}
}

// SetCompleted marks a task done or not done.
func (s *Store) SetCompleted(ctx context.Context, id string, done bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, boolInt(done), id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// DeleteTask removes a task and its sessions.
func (s *Store) DeleteTask(ctx context.Context, id string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions WHERE task_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err = requireRow(res, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) loadSessions(ctx context.Context, byID map[string]*model.Task) error {
	if len(byID) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(byID))
	args := make([]any, 0, len(byID))
	for id := range byID {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := fmt.Sprintf(`SELECT id, task_id, start_at, end_at, duration_minutes, question_start, question_end
		FROM sessions
		WHERE task_id IN (%s)
		ORDER BY start_at ASC`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var sess model.ScheduledSession
		var startAt, endAt string
		var qStart, qEnd sql.NullInt64
		if err := rows.Scan(&sess.ID, &sess.TaskID, &startAt, &endAt, &sess.DurationMinutes, &qStart, &qEnd); err != nil {
			return err
		}
		if sess.Start, err = parseTime(startAt); err != nil {
			return err
		}
		if sess.End, err = parseTime(endAt); err != nil {
			return err
		}
		if qStart.Valid && qEnd.Valid {
			sess.QuestionRange = &model.QuestionRange{Start: int(qStart.Int64), End: int(qEnd.Int64)}
		}
		if task, ok := byID[sess.TaskID]; ok {
			task.Sessions = append(task.Sessions, sess)
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*model.Task, error) {
	var task model.Task
	var taskType, urgency, dueAt string
	var questions, sessionLength sql.NullInt64
	var perQuestion sql.NullFloat64
	var completed int
	if err := row.Scan(&task.ID, &task.Name, &taskType, &urgency, &dueAt, &task.TotalMinutes,
		&questions, &perQuestion, &sessionLength, &completed); err != nil {
		return nil, err
	}
	task.Type = model.TaskType(taskType)
	task.Urgency = model.Urgency(urgency)
	due, err := parseTime(dueAt)
	if err != nil {
		return nil, err
	}
	task.DueDate = due
	if questions.Valid {
		task.QuestionCount = model.IntPtr(int(questions.Int64))
	}
	if perQuestion.Valid {
		task.MinutesPerQuestion = model.FloatPtr(perQuestion.Float64)
	}
	if sessionLength.Valid {
		task.SessionLengthMinutes = model.IntPtr(int(sessionLength.Int64))
	}
	task.Completed = completed != 0
	return &task, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
