package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/config"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/legacy"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
)

func TestResolveWeek(t *testing.T) {
	now := time.Date(2025, 11, 5, 14, 30, 0, 0, time.Local)
	got, err := resolveWeek("", now)
	if err != nil {
		t.Fatalf("resolveWeek: %v", err)
	}
	if want := time.Date(2025, 11, 2, 0, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	got, err = resolveWeek("2025-11-13", now)
	if err != nil {
		t.Fatalf("resolveWeek: %v", err)
	}
	if want := time.Date(2025, 11, 9, 0, 0, 0, 0, time.Local); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if _, err := resolveWeek("next week", now); err == nil {
		t.Fatalf("expected error for invalid week")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Schedule.File != nil || cfg.Display.Dark != nil {
		t.Fatalf("expected commented template to set nothing, got %+v", cfg)
	}
	if !strings.Contains(defaultConfigTemplate(), "project-session = 60") {
		t.Fatalf("expected default project session in template")
	}
}

func TestSchedulerOptionsFromConfig(t *testing.T) {
	study := 25
	zero := 0
	opts := schedulerOptions(config.FileConfig{Scheduler: config.SchedulerConfig{StudySession: &study, ProjectSession: &zero}})
	if opts.StudySessionMinutes != 25 {
		t.Fatalf("expected study session from config, got %d", opts.StudySessionMinutes)
	}
	if opts.ProjectSessionMinutes != 60 || opts.PracticeSessionMinutes != 45 {
		t.Fatalf("expected defaults to remain, got %+v", opts)
	}
}

func TestFormatListLine(t *testing.T) {
	now := time.Date(2025, 11, 5, 12, 0, 0, 0, time.Local)
	task := &model.Task{
		ID:           "0123456789abcdef",
		Name:         "History Essay",
		Type:         model.Project,
		Urgency:      model.Medium,
		DueDate:      now.Add(72 * time.Hour),
		TotalMinutes: 180,
	}
	line := formatListLine(task, now)
	for _, want := range []string{"[ ] 01234567", "History Essay", "3 days from now", "unscheduled"} {
		if !strings.Contains(line, want) {
			t.Fatalf("list line missing %q: %q", want, line)
		}
	}
	task.Completed = true
	task.Sessions = []model.ScheduledSession{model.NewSession(task.ID, now, 60, nil)}
	line = formatListLine(task, now)
	if !strings.HasPrefix(line, "[x]") || !strings.Contains(line, "1 sessions, 60/180 min") {
		t.Fatalf("unexpected completed line %q", line)
	}
}

func TestRenderLegacy(t *testing.T) {
	start := time.Date(2025, 11, 3, 15, 0, 0, 0, time.Local)
	res := legacy.Result{
		Scheduled:   []model.CalendarEvent{model.NewEvent("Essay (Session 1/2)", start, start.Add(2*time.Hour))},
		Unscheduled: []model.CalendarEvent{model.NewEvent("Lab", start, start.Add(90*time.Minute))},
		Free:        []model.CalendarEvent{model.NewEvent("FREE", start.Add(2*time.Hour), start.Add(3*time.Hour))},
	}
	var buf bytes.Buffer
	if err := renderLegacy(&buf, res); err != nil {
		t.Fatalf("renderLegacy: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Monday, Nov 3, 2025 at 3:00pm - 5:00pm  Essay (Session 1/2)", "Lab (1h30m0s)", "Free time left: 1.0h in 1 blocks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("legacy output missing %q:\n%s", want, out)
		}
	}
}
