// Package stats contains scheduling statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
)

const sparkChars = " .:-=+*#%@"

// Calculate summarizes how much of the schedule's free time the tasks use.
func Calculate(tasks []*model.Task, ws schedule.WeeklySchedule) model.SchedulingStatistics {
	var st model.SchedulingStatistics
	totalFree := 0
	for _, b := range ws.FreeBlocks() {
		st.FreeMinutesByDay[b.Day] += b.DurationMinutes()
		totalFree += b.DurationMinutes()
	}
	scheduled := 0
	for _, task := range tasks {
		if task.IsScheduled() {
			st.TasksScheduled++
		} else {
			st.TasksUnscheduled++
		}
		for _, s := range task.Sessions {
			scheduled += s.DurationMinutes
			st.ScheduledMinutesByDay[s.Start.Weekday()] += s.DurationMinutes
		}
	}
	st.TotalFreeHours = float64(totalFree) / 60.0
	st.ScheduledHours = float64(scheduled) / 60.0
	st.RemainingFreeHours = float64(totalFree-scheduled) / 60.0
	if totalFree > 0 {
		st.UtilizationPercent = float64(scheduled) / float64(totalFree) * 100
	}
	return st
}

// Sparkline renders one glyph per percentage, scaled from 0% (blank) to
// 100% or more (full).
func Sparkline(percents []float64) string {
	top := len(sparkChars) - 1
	out := make([]byte, len(percents))
	for i, p := range percents {
		idx := int(math.Round(p / 100 * float64(top)))
		out[i] = sparkChars[min(max(idx, 0), top)]
	}
	return string(out)
}

// RenderSummary prints the headline numbers.
func RenderSummary(w io.Writer, st model.SchedulingStatistics) error {
	lines := []string{
		"Summary",
		fmt.Sprintf("Free time: %.1fh", st.TotalFreeHours),
		fmt.Sprintf("Scheduled: %.1fh", st.ScheduledHours),
		fmt.Sprintf("Remaining: %.1fh", st.RemainingFreeHours),
		fmt.Sprintf("Utilization: %.1f%%", st.UtilizationPercent),
		fmt.Sprintf("Tasks scheduled: %d", st.TasksScheduled),
		fmt.Sprintf("Tasks unscheduled: %d", st.TasksUnscheduled),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDayUsage prints per-day free and scheduled minutes with a sparkline
// of the daily utilization.
func RenderDayUsage(w io.Writer, st model.SchedulingStatistics) error {
	usage := make([]float64, 7)
	rows := make([][]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		free := st.FreeMinutesByDay[d]
		used := st.ScheduledMinutesByDay[d]
		pct := 0.0
		if free > 0 {
			pct = float64(used) / float64(free) * 100
		}
		usage[d] = pct
		rows = append(rows, []string{
			d.String()[:3],
			fmt.Sprintf("%d", free),
			fmt.Sprintf("%d", used),
			fmt.Sprintf("%.1f%%", pct),
		})
	}
	if _, err := fmt.Fprintf(w, "Per-Day Usage  [%s]\n", Sparkline(usage)); err != nil {
		return err
	}
	headers := []string{"Day", "Free (min)", "Scheduled (min)", "Used"}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSessions prints every scheduled session in start order, followed by
// the names of tasks that got no session. Task names are cut to maxName
// display columns when maxName is positive.
func RenderSessions(w io.Writer, tasks []*model.Task, maxName int) error {
	type row struct {
		task    *model.Task
		session model.ScheduledSession
	}
	var all []row
	var unscheduled []string
	for _, task := range tasks {
		if !task.IsScheduled() {
			unscheduled = append(unscheduled, task.Name)
		}
		for _, s := range task.Sessions {
			all = append(all, row{task: task, session: s})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].session.Start.Before(all[j].session.Start)
	})

	if len(all) == 0 {
		if _, err := fmt.Fprintln(w, "No sessions scheduled."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
			return err
		}
		headers := []string{"Day", "Start", "End", "Min", "Task", "Type", "Questions"}
		tableRows := make([][]string, 0, len(all))
		for _, r := range all {
			questions := ""
			if qr := r.session.QuestionRange; qr != nil {
				questions = fmt.Sprintf("%d-%d", qr.Start, qr.End)
			}
			tableRows = append(tableRows, []string{
				r.session.Start.Format("Mon Jan 2"),
				dateparse.FormatTime(r.session.Start),
				dateparse.FormatTime(r.session.End),
				fmt.Sprintf("%d", r.session.DurationMinutes),
				truncateCell(r.task.Name, maxName),
				r.task.Type.Label(),
				questions,
			})
		}
		rightAlign := map[int]bool{1: true, 2: true, 3: true}
		for _, line := range formatTable(headers, tableRows, rightAlign) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if len(unscheduled) > 0 {
		if _, err := fmt.Fprintf(w, "Unscheduled: %s\n", strings.Join(unscheduled, ", ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
