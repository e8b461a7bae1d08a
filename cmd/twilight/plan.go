package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/agenda"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/legacy"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/scheduler"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/stats"
)

var agendaDark bool

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Place open tasks into the week's free time",
		Args:  cobra.NoArgs,
		RunE:  runScheduleCmd,
	}
	addWeekFlag(cmd)
	addScheduleFileFlag(cmd)
	return cmd
}

func runScheduleCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	weekStart, err := resolveWeek(weekFlag, time.Now())
	if err != nil {
		return err
	}
	ws, err := resolveSchedule(cmd, fileCfg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	tasks, err := st.ListTasks(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	for _, task := range tasks {
		task.ClearSessions()
	}
	sched := scheduler.New(schedulerOptions(fileCfg), logger)
	ordered := sched.Schedule(tasks, ws, weekStart)
	if err := st.ReplaceSessions(ctx, ordered); err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}
	logger.Debug().Time("week", weekStart).Int("tasks", len(ordered)).Msg("scheduled week")

	return renderPlan(cmd.OutOrStdout(), weekStart, ordered, ws)
}

func renderPlan(w io.Writer, weekStart time.Time, tasks []*model.Task, ws schedule.WeeklySchedule) error {
	if _, err := fmt.Fprintf(w, "Week of %s\n\n", dateparse.FormatDate(weekStart)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSessions(w, tasks, stats.TerminalWidth()/3); err != nil {
		return fmt.Errorf("failed to render sessions: %w", err)
	}
	st := stats.Calculate(tasks, ws)
	if err := stats.RenderSummary(w, st); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if err := stats.RenderDayUsage(w, st); err != nil {
		return fmt.Errorf("failed to render day usage: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show statistics for the stored schedule",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	addWeekFlag(cmd)
	addScheduleFileFlag(cmd)
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	weekStart, err := resolveWeek(weekFlag, time.Now())
	if err != nil {
		return err
	}
	ws, err := resolveSchedule(cmd, fileCfg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := stats.BuildReport(context.Background(), st, ws, weekStart)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return renderPlan(cmd.OutOrStdout(), weekStart, report.Tasks, ws)
}

func newAgendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Browse the stored schedule day by day",
		Args:  cobra.NoArgs,
		RunE:  runAgendaCmd,
	}
	addWeekFlag(cmd)
	addScheduleFileFlag(cmd)
	cmd.Flags().BoolVar(&agendaDark, "dark", false, "use the dark theme")
	return cmd
}

func runAgendaCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "dark", &agendaDark, fileCfg.Display.Dark)
	weekStart, err := resolveWeek(weekFlag, time.Now())
	if err != nil {
		return err
	}
	ws, err := resolveSchedule(cmd, fileCfg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	tasks, err := st.ListTasks(context.Background(), false)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	m := agenda.NewModel(agenda.Input{WeekStart: weekStart, Tasks: tasks, Schedule: ws}, agenda.NewTheme(agendaDark))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run agenda TUI: %w", err)
	}
	return nil
}

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print the weekly schedule in text form",
		Args:  cobra.NoArgs,
		RunE:  runTemplateCmd,
	}
	addScheduleFileFlag(cmd)
	return cmd
}

func runTemplateCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	ws, err := resolveSchedule(cmd, fileCfg)
	if err != nil {
		return err
	}
	if err := schedule.Format(cmd.OutOrStdout(), ws); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}
	return nil
}

func newLegacyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legacy <events.toml>",
		Short: "Place task events into FREE calendar events",
		Args:  cobra.ExactArgs(1),
		RunE:  runLegacyCmd,
	}
}

func runLegacyCmd(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open events: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
	}()
	events, err := legacy.DecodeEvents(f)
	if err != nil {
		return err
	}

	var tasks, calendar []model.CalendarEvent
	for _, e := range events {
		if e.TaskType != nil {
			tasks = append(tasks, e)
		} else {
			calendar = append(calendar, e)
		}
	}
	logger.Debug().Int("tasks", len(tasks)).Int("events", len(calendar)).Msg("loaded events")

	res := legacy.Schedule(tasks, calendar)
	return renderLegacy(cmd.OutOrStdout(), res)
}

func renderLegacy(w io.Writer, res legacy.Result) error {
	lines := []string{"Scheduled"}
	if len(res.Scheduled) == 0 {
		lines = append(lines, "  none")
	}
	for _, e := range res.Scheduled {
		lines = append(lines, fmt.Sprintf("  %s - %s  %s", dateparse.FormatDateTime(e.Start), dateparse.FormatTime(e.End), e.Title))
	}
	if len(res.Unscheduled) > 0 {
		lines = append(lines, "", "Unscheduled")
		for _, e := range res.Unscheduled {
			lines = append(lines, fmt.Sprintf("  %s (%s)", e.Title, e.RequiredDuration()))
		}
	}
	var free time.Duration
	for _, e := range res.Free {
		free += e.Duration()
	}
	lines = append(lines, "", fmt.Sprintf("Free time left: %.1fh in %d blocks", free.Hours(), len(res.Free)))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
