// Package legacy places task events directly into FREE calendar events.
package legacy

import (
	"fmt"
	"sort"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
)

const (
	maxProjectSession  = 2 * time.Hour
	maxSATStudySession = 75 * time.Minute
	minLeftover        = 15 * time.Minute
)

// Result holds the outcome of one legacy scheduling run.
type Result struct {
	Scheduled   []model.CalendarEvent
	Unscheduled []model.CalendarEvent
	Free        []model.CalendarEvent
}

// Schedule places every task event into the free events found in events.
// Tasks are taken most urgent first, shorter work first on ties.
func Schedule(tasks, events []model.CalendarEvent) Result {
	var pool []model.CalendarEvent
	for _, e := range events {
		if e.IsFree() {
			pool = append(pool, e)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Start.Before(pool[j].Start)
	})

	ordered := make([]model.CalendarEvent, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].UrgencyRank(), ordered[j].UrgencyRank()
		if ri != rj {
			return ri < rj
		}
		return ordered[i].RequiredDuration() < ordered[j].RequiredDuration()
	})

	var res Result
	for _, task := range ordered {
		lengths := splitSessions(task.RequiredDuration(), maxSession(task))
		placed := 0
		for i, length := range lengths {
			var start time.Time
			var ok bool
			pool, start, ok = take(pool, length)
			if !ok {
				continue
			}
			session := task.WithTimes(start, start.Add(length))
			if len(lengths) > 1 {
				session.Title = fmt.Sprintf("%s (Session %d/%d)", task.Title, i+1, len(lengths))
			}
			res.Scheduled = append(res.Scheduled, session)
			placed++
		}
		if placed == 0 {
			res.Unscheduled = append(res.Unscheduled, task)
		}
	}
	res.Free = pool
	return res
}

func maxSession(task model.CalendarEvent) time.Duration {
	if task.TaskType == nil {
		return 0
	}
	switch *task.TaskType {
	case model.EventProject:
		return maxProjectSession
	case model.EventSATStudy:
		return maxSATStudySession
	default:
		return 0
	}
}

// splitSessions cuts total into pieces of at most limit. A zero limit keeps
// the work in one piece.
func splitSessions(total, limit time.Duration) []time.Duration {
	if total <= 0 {
		return nil
	}
	if limit <= 0 || total <= limit {
		return []time.Duration{total}
	}
	var out []time.Duration
	for remaining := total; remaining > 0; remaining -= limit {
		out = append(out, min(remaining, limit))
	}
	return out
}

// take claims the first pool block long enough for length. The block is
// removed and any leftover longer than minLeftover goes back to the front.
func take(pool []model.CalendarEvent, length time.Duration) ([]model.CalendarEvent, time.Time, bool) {
	for i, block := range pool {
		if block.Duration() < length {
			continue
		}
		rest := make([]model.CalendarEvent, 0, len(pool))
		if leftover := block.Duration() - length; leftover > minLeftover {
			rest = append(rest, block.WithTimes(block.Start.Add(length), block.End))
		}
		rest = append(rest, pool[:i]...)
		rest = append(rest, pool[i+1:]...)
		return rest, block.Start, true
	}
	return pool, time.Time{}, false
}
