// Package scheduler places tasks into the free time of a weekly schedule.
package scheduler

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
)

const (
	defaultProjectSession  = 60
	defaultStudySession    = 30
	defaultPracticeSession = 45

	minProjectChunk = 30
	minStudyChunk   = 20
)

// Options holds the default session length per chunked task type. A task's
// explicit session length always wins.
type Options struct {
	ProjectSessionMinutes  int
	StudySessionMinutes    int
	PracticeSessionMinutes int
}

// DefaultOptions returns 60/30/45 minute sessions for project, study and practice tasks.
func DefaultOptions() Options {
	return Options{
		ProjectSessionMinutes:  defaultProjectSession,
		StudySessionMinutes:    defaultStudySession,
		PracticeSessionMinutes: defaultPracticeSession,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ProjectSessionMinutes <= 0 {
		o.ProjectSessionMinutes = d.ProjectSessionMinutes
	}
	if o.StudySessionMinutes <= 0 {
		o.StudySessionMinutes = d.StudySessionMinutes
	}
	if o.PracticeSessionMinutes <= 0 {
		o.PracticeSessionMinutes = d.PracticeSessionMinutes
	}
	return o
}

// Scheduler dispatches each task to the strategy registered for its type.
type Scheduler struct {
	strategies map[model.TaskType]Strategy
	log        zerolog.Logger
}

// New builds a scheduler. Non-positive option values fall back to the defaults.
func New(opts Options, log zerolog.Logger) *Scheduler {
	opts = opts.withDefaults()
	study := chunked{minChunk: minStudyChunk, defaultLength: opts.StudySessionMinutes}
	return &Scheduler{
		strategies: map[model.TaskType]Strategy{
			model.OneTimeAssignment: oneShot{},
			model.RecurringTask:     oneShot{},
			model.Project:           chunked{minChunk: minProjectChunk, defaultLength: opts.ProjectSessionMinutes},
			model.StudySession:      study,
			model.PracticeSession: practice{
				defaultLength: opts.PracticeSessionMinutes,
				fallback:      chunked{minChunk: minStudyChunk, defaultLength: opts.PracticeSessionMinutes},
			},
		},
		log: log,
	}
}

// ScheduleTasks runs a scheduler with the default options.
func ScheduleTasks(tasks []*model.Task, ws schedule.WeeklySchedule, weekStart time.Time) []*model.Task {
	return New(DefaultOptions(), zerolog.Nop()).Schedule(tasks, ws, weekStart)
}

// Schedule orders tasks by urgency then due date and places each one into the
// free blocks of the week starting at weekStart. Blocks are shared across the
// run, so earlier tasks leave less room for later ones. Sessions are appended
// to each task; callers clear previous sessions before re-scheduling. The
// returned slice is the scheduling order.
func (s *Scheduler) Schedule(tasks []*model.Task, ws schedule.WeeklySchedule, weekStart time.Time) []*model.Task {
	ordered := SortTasks(tasks)
	pool := NewPool(ws, weekStart)
	for _, task := range ordered {
		strategy, ok := s.strategies[task.Type]
		if !ok {
			s.log.Warn().Str("task", task.Name).Str("type", string(task.Type)).Msg("unknown task type; placing as one-time assignment")
			strategy = oneShot{}
		}
		sessions := strategy.Place(task, pool)
		task.Sessions = append(task.Sessions, sessions...)

		placed := 0
		for _, sess := range sessions {
			placed += sess.DurationMinutes
		}
		switch {
		case len(sessions) == 0:
			s.log.Debug().Str("task", task.Name).Int("minutes", task.EffectiveMinutes()).Msg("no free block fits task")
		case placed < task.EffectiveMinutes():
			s.log.Debug().Str("task", task.Name).Int("placed", placed).Int("minutes", task.EffectiveMinutes()).Msg("task partially scheduled")
		}
	}
	return ordered
}

// SortTasks returns a copy of tasks stably ordered by urgency, then by due date.
func SortTasks(tasks []*model.Task) []*model.Task {
	ordered := make([]*model.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Urgency.Rank(), ordered[j].Urgency.Rank()
		if ri != rj {
			return ri < rj
		}
		return ordered[i].DueDate.Before(ordered[j].DueDate)
	})
	return ordered
}
