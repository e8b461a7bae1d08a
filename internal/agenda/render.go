package agenda

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
)

// Entry is one scheduled session with the task it belongs to.
type Entry struct {
	Task    *model.Task
	Session model.ScheduledSession
}

// groupByDay buckets the sessions that start inside the week by weekday,
// each bucket sorted by start time.
func groupByDay(tasks []*model.Task, weekStart time.Time) [7][]Entry {
	var days [7][]Entry
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, task := range tasks {
		for _, s := range task.Sessions {
			if s.Start.Before(weekStart) || !s.Start.Before(weekEnd) {
				continue
			}
			day := s.Start.Weekday()
			days[day] = append(days[day], Entry{Task: task, Session: s})
		}
	}
	for d := range days {
		sort.SliceStable(days[d], func(i, j int) bool {
			return days[d][i].Session.Start.Before(days[d][j].Session.Start)
		})
	}
	return days
}

func renderWeek(theme Theme, st model.SchedulingStatistics, days [7][]Entry, width int) string {
	count := 0
	for _, entries := range days {
		count += len(entries)
	}
	cards := []string{
		metricCard(theme, "Sessions", fmt.Sprintf("%d", count)),
		metricCard(theme, "Free", fmt.Sprintf("%.1fh", st.TotalFreeHours)),
		metricCard(theme, "Scheduled", fmt.Sprintf("%.1fh", st.ScheduledHours)),
		metricCard(theme, "Utilization", fmt.Sprintf("%.1f%%", st.UtilizationPercent)),
		metricCard(theme, "Unscheduled", fmt.Sprintf("%d", st.TasksUnscheduled)),
	}
	var summary string
	if width < 80 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}

	lines := []string{summary, ""}
	for d := time.Sunday; d <= time.Saturday; d++ {
		free := st.FreeMinutesByDay[d]
		used := st.ScheduledMinutesByDay[d]
		line := fmt.Sprintf("%-9s %3d sessions  %4d/%d min", d.String(), len(days[d]), used, free)
		lines = append(lines, truncateLine(line, width))
	}
	return strings.Join(lines, "\n")
}

func renderDay(theme Theme, day time.Time, blocks []schedule.TimeBlock, entries []Entry, width int) string {
	lines := []string{theme.CardValue.Render(dateparse.FormatDate(day)), ""}
	if len(blocks) > 0 {
		lines = append(lines, theme.Header.Render("Blocks"))
		for _, b := range blocks {
			start := day.Add(time.Duration(b.StartOfDayMinutes()) * time.Minute)
			end := day.Add(time.Duration(b.EndOfDayMinutes()) * time.Minute)
			label := "busy"
			style := theme.Busy
			if b.IsFree {
				label = "free"
				style = theme.Free
			}
			line := fmt.Sprintf("  %7s-%-7s %s (%s)", dateparse.FormatTime(start), dateparse.FormatTime(end), b.Name, label)
			lines = append(lines, style.Render(truncateLine(line, width)))
		}
		lines = append(lines, "")
	}
	if len(entries) == 0 {
		lines = append(lines, "No sessions scheduled.")
		return strings.Join(lines, "\n")
	}
	lines = append(lines, theme.Header.Render("Sessions"))
	for _, e := range entries {
		lines = append(lines, sessionCard(theme, e, width))
	}
	return strings.Join(lines, "\n")
}

func sessionCard(theme Theme, e Entry, width int) string {
	title := fmt.Sprintf("%s-%s  %d min  %s",
		dateparse.FormatTime(e.Session.Start),
		dateparse.FormatTime(e.Session.End),
		e.Session.DurationMinutes,
		e.Task.Type.Label(),
	)
	detail := e.Task.Name
	if qr := e.Session.QuestionRange; qr != nil {
		detail = fmt.Sprintf("%s  questions %d-%d", detail, qr.Start, qr.End)
	}
	inner := max(10, width-4)
	content := fmt.Sprintf("%s\n%s", theme.CardTitle.Render(truncateLine(title, inner)), theme.CardValue.Render(truncateLine(detail, inner)))
	return theme.Card.Render(content)
}

func metricCard(theme Theme, label, value string) string {
	content := fmt.Sprintf("%s\n%s", theme.CardTitle.Render(label), theme.CardValue.Render(value))
	return theme.Card.Render(content)
}
