package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MaxMinutes bounds every duration a task may carry.
const MaxMinutes = math.MaxInt32

// Task is a unit of work to be placed into free time.
type Task struct {
	ID                   string
	Name                 string
	Type                 TaskType
	Urgency              Urgency
	DueDate              time.Time
	TotalMinutes         int
	QuestionCount        *int
	MinutesPerQuestion   *float64
	SessionLengthMinutes *int
	Completed            bool
	Sessions             []ScheduledSession
}

// NewTaskID returns a fresh unique task identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// HasQuestions reports whether the task carries a usable question basis.
func (t *Task) HasQuestions() bool {
	return t.QuestionCount != nil && t.MinutesPerQuestion != nil &&
		*t.QuestionCount > 0 && *t.MinutesPerQuestion > 0
}

// EffectiveMinutes is questionCount*minutesPerQuestion when both are present, else TotalMinutes.
func (t *Task) EffectiveMinutes() int {
	if t.QuestionCount != nil && t.MinutesPerQuestion != nil {
		product := math.Round(float64(*t.QuestionCount) * *t.MinutesPerQuestion)
		switch {
		case math.IsNaN(product):
			return t.TotalMinutes
		case product > MaxMinutes:
			return MaxMinutes
		case product < -MaxMinutes:
			return -MaxMinutes
		}
		return int(product)
	}
	return t.TotalMinutes
}

// ScheduledMinutes sums the duration of every scheduled session.
func (t *Task) ScheduledMinutes() int {
	total := 0
	for _, s := range t.Sessions {
		total += s.DurationMinutes
	}
	return total
}

// IsScheduled reports whether at least one session was placed.
func (t *Task) IsScheduled() bool {
	return len(t.Sessions) > 0
}

// ClearSessions drops previously placed sessions before a new scheduling run.
func (t *Task) ClearSessions() {
	t.Sessions = nil
}

// SetCompleted toggles the completion flag.
func (t *Task) SetCompleted(done bool) {
	t.Completed = done
}

// QuestionRange is an inclusive, 1-based range of question indexes.
type QuestionRange struct {
	Start int
	End   int
}

// Count returns the number of questions in the range.
func (r QuestionRange) Count() int {
	return r.End - r.Start + 1
}

// ScheduledSession is one placed block of work for a task.
type ScheduledSession struct {
	ID              string
	TaskID          string
	Start           time.Time
	End             time.Time
	DurationMinutes int
	QuestionRange   *QuestionRange
}

// NewSession builds a session whose end time is derived from its duration.
func NewSession(taskID string, start time.Time, minutes int, qr *QuestionRange) ScheduledSession {
	return ScheduledSession{
		ID:              uuid.NewString(),
		TaskID:          taskID,
		Start:           start,
		End:             start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		QuestionRange:   qr,
	}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }
