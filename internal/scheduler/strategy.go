package scheduler

import (
	"math"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
)

// Strategy places one task into the shared pool, consuming capacity from the
// blocks it uses, and returns the sessions it created.
type Strategy interface {
	Place(task *model.Task, pool []*AvailableBlock) []model.ScheduledSession
}

// oneShot places the whole task into the first block that can hold it.
type oneShot struct{}

func (oneShot) Place(task *model.Task, pool []*AvailableBlock) []model.ScheduledSession {
	required := task.EffectiveMinutes()
	if required <= 0 {
		return nil
	}
	for _, b := range pool {
		if !b.usableBy(task.DueDate) || b.Remaining < required {
			continue
		}
		start := b.take(required)
		return []model.ScheduledSession{model.NewSession(task.ID, start, required, nil)}
	}
	return nil
}

// chunked spreads a task over several days, at most one session per day,
// never carving a session shorter than minChunk.
type chunked struct {
	minChunk      int
	defaultLength int
}

func (c chunked) Place(task *model.Task, pool []*AvailableBlock) []model.ScheduledSession {
	remaining := task.EffectiveMinutes()
	length := sessionLength(task, c.defaultLength)
	lastDay := -1
	var sessions []model.ScheduledSession
	for _, b := range pool {
		if remaining <= 0 {
			break
		}
		if !b.usableBy(task.DueDate) || b.Start.Day() == lastDay {
			continue
		}
		chunk := min(length, remaining, b.Remaining)
		if chunk < c.minChunk {
			continue
		}
		start := b.take(chunk)
		sessions = append(sessions, model.NewSession(task.ID, start, chunk, nil))
		remaining -= chunk
		lastDay = b.Start.Day()
	}
	return sessions
}

// practice allocates whole questions, recording which questions each session covers.
type practice struct {
	defaultLength int
	fallback      Strategy
}

func (p practice) Place(task *model.Task, pool []*AvailableBlock) []model.ScheduledSession {
	if !task.HasQuestions() {
		return p.fallback.Place(task, pool)
	}
	remaining := *task.QuestionCount
	perQuestion := *task.MinutesPerQuestion
	length := sessionLength(task, p.defaultLength)
	next := 1
	var sessions []model.ScheduledSession
	for _, b := range pool {
		if remaining <= 0 {
			break
		}
		if !b.usableBy(task.DueDate) {
			continue
		}
		fit := int(math.Floor(float64(min(length, b.Remaining)) / perQuestion))
		if fit <= 0 {
			continue
		}
		questions := min(fit, remaining)
		minutes := int(math.Floor(float64(questions) * perQuestion))
		if minutes <= 0 {
			continue
		}
		start := b.take(minutes)
		qr := &model.QuestionRange{Start: next, End: next + questions - 1}
		sessions = append(sessions, model.NewSession(task.ID, start, minutes, qr))
		next += questions
		remaining -= questions
	}
	return sessions
}

func sessionLength(task *model.Task, fallback int) int {
	if task.SessionLengthMinutes != nil && *task.SessionLengthMinutes > 0 {
		return *task.SessionLengthMinutes
	}
	return fallback
}
