package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/store"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/taskparse"
)

const shortIDLen = 8

var (
	addFile string
	listAll bool
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a task description without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParseCmd,
	}
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	task, err := taskparse.Parse(text, time.Now())
	if err != nil {
		return fmt.Errorf("could not parse %q: %w", text, err)
	}
	return writeTask(cmd.OutOrStdout(), task)
}

func writeTask(w io.Writer, task *model.Task) error {
	lines := []string{
		fmt.Sprintf("Name:     %s", task.Name),
		fmt.Sprintf("Type:     %s", task.Type),
		fmt.Sprintf("Urgency:  %s", task.Urgency),
		fmt.Sprintf("Due:      %s", dateparse.FormatDateTime(task.DueDate)),
		fmt.Sprintf("Minutes:  %d", task.EffectiveMinutes()),
	}
	if task.QuestionCount != nil {
		lines = append(lines, fmt.Sprintf("Questions: %d", *task.QuestionCount))
	}
	if task.MinutesPerQuestion != nil {
		lines = append(lines, fmt.Sprintf("Per question: %.2g min", *task.MinutesPerQuestion))
	}
	if task.SessionLengthMinutes != nil {
		lines = append(lines, fmt.Sprintf("Session length: %d min", *task.SessionLengthMinutes))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Parse and save tasks",
		RunE:  runAddCmd,
	}
	cmd.Flags().StringVarP(&addFile, "file", "f", "", "read one task per line from a file (- for stdin)")
	return cmd
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	now := time.Now()
	var tasks []*model.Task
	switch {
	case addFile != "":
		parsed, err := parseTaskFile(cmd, addFile, now)
		if err != nil {
			return err
		}
		tasks = parsed
	case len(args) > 0:
		text := strings.Join(args, " ")
		task, err := taskparse.Parse(text, now)
		if err != nil {
			return fmt.Errorf("could not parse %q: %w", text, err)
		}
		tasks = append(tasks, task)
	default:
		return fmt.Errorf("provide a task description or --file")
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks parsed")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	for _, task := range tasks {
		if err := st.InsertTask(ctx, task); err != nil {
			return fmt.Errorf("failed to save task: %w", err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Added %s  %s (%s, due %s)\n",
			shortID(task.ID), task.Name, task.Type.Label(), dateparse.FormatDate(task.DueDate)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func parseTaskFile(cmd *cobra.Command, path string, now time.Time) ([]*model.Task, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open task file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				_ = cerr
			}
		}()
		r = f
	}
	tasks, failures, err := taskparse.ParseLines(r, now)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	for _, f := range failures {
		logger.Warn().Int("line", f.Line).Str("text", f.Text).Msg("could not parse task")
	}
	return tasks, nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved tasks",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	tasks, err := st.ListTasks(context.Background(), listAll)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(out, "No tasks.")
		return err
	}
	for _, task := range tasks {
		if _, err := fmt.Fprintln(out, formatListLine(task, time.Now())); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func formatListLine(task *model.Task, now time.Time) string {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	sessions := "unscheduled"
	if task.IsScheduled() {
		sessions = fmt.Sprintf("%d sessions, %d/%d min", len(task.Sessions), task.ScheduledMinutes(), task.EffectiveMinutes())
	}
	return fmt.Sprintf("[%s] %s  %-6s  %-10s  %s  due %s  (%s)",
		mark,
		shortID(task.ID),
		task.Urgency,
		task.Type.Label(),
		task.Name,
		humanize.RelTime(task.DueDate, now, "ago", "from now"),
		sessions,
	)
}

func newDoneCmd(done bool) *cobra.Command {
	use, short := "done <id>", "Mark a task completed"
	if !done {
		use, short = "undone <id>", "Mark a task open again"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(args[0], func(ctx context.Context, st *store.Store, id string) error {
				if err := st.SetCompleted(ctx, id, done); err != nil {
					return fmt.Errorf("failed to update task: %w", err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", shortID(id))
				return err
			})
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a task and its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(args[0], func(ctx context.Context, st *store.Store, id string) error {
				if err := st.DeleteTask(ctx, id); err != nil {
					return fmt.Errorf("failed to delete task: %w", err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", shortID(id))
				return err
			})
		},
	}
}

func withTask(prefix string, fn func(ctx context.Context, st *store.Store, id string) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	id, err := st.ResolveID(ctx, prefix)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("no task matches %q", prefix)
	case errors.Is(err, store.ErrAmbiguous):
		return fmt.Errorf("%q matches more than one task; use a longer id", prefix)
	case err != nil:
		return fmt.Errorf("failed to resolve task: %w", err)
	}
	return fn(ctx, st, id)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
