package stats

import (
	"context"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Tasks []*model.Task
	Stats model.SchedulingStatistics
}

// BuildReport loads the open tasks, keeps their sessions in the week starting
// at weekStart and summarizes them against ws.
func BuildReport(ctx context.Context, st *store.Store, ws schedule.WeeklySchedule, weekStart time.Time) (Report, error) {
	stored, err := st.ListTasks(ctx, false)
	if err != nil {
		return Report{}, err
	}
	tasks := InWeek(stored, weekStart)
	return Report{
		Tasks: tasks,
		Stats: Calculate(tasks, ws),
	}, nil
}
