package stats

import (
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
)

// InWeek returns copies of tasks holding only the sessions that start in
// [weekStart, weekStart+7d). Tasks with no session in the week are kept and
// count as unscheduled for that week.
func InWeek(tasks []*model.Task, weekStart time.Time) []*model.Task {
	weekEnd := weekStart.AddDate(0, 0, 7)
	out := make([]*model.Task, 0, len(tasks))
	for _, task := range tasks {
		copied := *task
		copied.Sessions = nil
		for _, s := range task.Sessions {
			if s.Start.Before(weekStart) || !s.Start.Before(weekEnd) {
				continue
			}
			copied.Sessions = append(copied.Sessions, s)
		}
		out = append(out, &copied)
	}
	return out
}
