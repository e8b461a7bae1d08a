// Package main provides the CLI entrypoint for twilight.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/config"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/scheduler"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/store"
)

const weekLayout = "2006-01-02"

var logger = zerolog.Nop()

var (
	verbose      bool
	weekFlag     string
	scheduleFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "twilight",
		Short:         "Natural-language task scheduler",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger = newLogger(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug diagnostics")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDoneCmd(true))
	rootCmd.AddCommand(newDoneCmd(false))
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newAgendaCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newLegacyCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logger.Warn().Err(cerr).Msg("failed to close db")
	}
}

func addWeekFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&weekFlag, "week", "", "any date in the week to plan (YYYY-MM-DD, default: this week)")
}

func addScheduleFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scheduleFile, "schedule-file", "", "weekly schedule text file (default: built-in template)")
}

// resolveWeek returns the Sunday that starts the week containing value.
func resolveWeek(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return dateparse.WeekStart(now), nil
	}
	parsed, err := time.ParseInLocation(weekLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --week value (expected YYYY-MM-DD): %w", err)
	}
	return dateparse.WeekStart(parsed), nil
}

func resolveSchedule(cmd *cobra.Command, fileCfg config.FileConfig) (schedule.WeeklySchedule, error) {
	applyStringConfig(cmd, "schedule-file", &scheduleFile, fileCfg.Schedule.File)
	if scheduleFile == "" {
		return schedule.Default(), nil
	}
	ws, failures, err := schedule.LoadFile(scheduleFile)
	if err != nil {
		return schedule.WeeklySchedule{}, err
	}
	for _, f := range failures {
		logger.Warn().Str("file", scheduleFile).Int("line", f.Line).Str("text", f.Text).Err(f.Err).Msg("skipped schedule line")
	}
	logger.Debug().Str("file", scheduleFile).Int("blocks", len(ws.Blocks)).Msg("loaded schedule")
	return ws, nil
}

func schedulerOptions(fileCfg config.FileConfig) scheduler.Options {
	opts := scheduler.DefaultOptions()
	applyIntValue(&opts.ProjectSessionMinutes, fileCfg.Scheduler.ProjectSession)
	applyIntValue(&opts.StudySessionMinutes, fileCfg.Scheduler.StudySession)
	applyIntValue(&opts.PracticeSessionMinutes, fileCfg.Scheduler.PracticeSession)
	return opts
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntValue(target, value *int) {
	if value == nil || *value <= 0 {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	opts := scheduler.DefaultOptions()
	return fmt.Sprintf(`# twilight configuration
# Uncomment a value to enable it. CLI flags override config values.

[schedule]
# file = "week.txt"          # Weekly schedule text file (default: built-in template)

[scheduler]
# project-session = %d       # Suggested project session length in minutes
# study-session = %d         # Suggested study session length in minutes
# practice-session = %d      # Suggested practice session length in minutes

[display]
# dark = true                # Dark agenda theme
`,
		opts.ProjectSessionMinutes,
		opts.StudySessionMinutes,
		opts.PracticeSessionMinutes,
	)
}
