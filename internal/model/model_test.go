package model

import (
	"testing"
	"time"
)

func TestEffectiveMinutesPrefersQuestions(t *testing.T) {
	task := Task{TotalMinutes: 90, QuestionCount: IntPtr(25), MinutesPerQuestion: FloatPtr(1.5)}
	if got := task.EffectiveMinutes(); got != 38 {
		t.Fatalf("expected 38 minutes, got %d", got)
	}
	task.MinutesPerQuestion = nil
	if got := task.EffectiveMinutes(); got != 90 {
		t.Fatalf("expected fallback to total minutes, got %d", got)
	}
}

func TestEffectiveMinutesClampsOversizedProduct(t *testing.T) {
	task := Task{TotalMinutes: 60, QuestionCount: IntPtr(2000000000), MinutesPerQuestion: FloatPtr(1e12)}
	if got := task.EffectiveMinutes(); got != MaxMinutes {
		t.Fatalf("expected %d minutes, got %d", MaxMinutes, got)
	}
}

func TestNewSessionDerivesEnd(t *testing.T) {
	start := time.Date(2025, 11, 5, 15, 0, 0, 0, time.Local)
	s := NewSession("task", start, 45, nil)
	if !s.End.Equal(start.Add(45 * time.Minute)) {
		t.Fatalf("unexpected end %v", s.End)
	}
	if s.ID == "" || s.TaskID != "task" {
		t.Fatalf("unexpected identity %+v", s)
	}
}

func TestUrgencyRank(t *testing.T) {
	if !(High.Rank() < Medium.Rank() && Medium.Rank() < Low.Rank()) {
		t.Fatalf("urgency ranks out of order")
	}
	if _, err := ParseUrgency("urgent"); err == nil {
		t.Fatalf("expected error for unknown urgency")
	}
}

func TestCalendarEventIsFree(t *testing.T) {
	for _, title := range []string{"FREE", "free time", "Afternoon Free"} {
		if !(CalendarEvent{Title: title}).IsFree() {
			t.Fatalf("expected %q to be free", title)
		}
	}
	if (CalendarEvent{Title: "Chemistry"}).IsFree() {
		t.Fatalf("expected Chemistry to be busy")
	}
}

func TestCalendarEventRequiredDuration(t *testing.T) {
	start := time.Date(2025, 11, 5, 9, 0, 0, 0, time.Local)
	e := NewEvent("Quiz prep", start, start.Add(time.Hour))
	if e.RequiredDuration() != time.Hour {
		t.Fatalf("expected event length, got %v", e.RequiredDuration())
	}
	e.NumQuestions = IntPtr(20)
	e.TimePerQuestion = FloatPtr(1.5)
	if e.RequiredDuration() != 30*time.Minute {
		t.Fatalf("expected 30m from questions, got %v", e.RequiredDuration())
	}
}

func TestCalendarEventOccursOn(t *testing.T) {
	start := time.Date(2025, 1, 15, 18, 0, 0, 0, time.Local)
	e := NewEvent("Practice", start, start.Add(time.Hour))
	cases := []struct {
		repeat Repeat
		date   time.Time
		want   bool
	}{
		{RepeatNone, start, true},
		{RepeatNone, start.AddDate(0, 0, 1), false},
		{RepeatDaily, start.AddDate(0, 0, 3), true},
		{RepeatDaily, start.AddDate(0, 0, -1), false},
		{RepeatWeekly, start.AddDate(0, 0, 14), true},
		{RepeatWeekly, start.AddDate(0, 0, 10), false},
		{RepeatMonthly, start.AddDate(0, 2, 0), true},
		{RepeatMonthly, start.AddDate(0, 2, 1), false},
		{RepeatYearly, start.AddDate(1, 0, 0), true},
		{RepeatYearly, start.AddDate(0, 1, 0), false},
	}
	for _, tc := range cases {
		e.Repeat = tc.repeat
		if got := e.OccursOn(tc.date); got != tc.want {
			t.Fatalf("repeat %q on %s: expected %v, got %v", tc.repeat, tc.date.Format("2006-01-02"), tc.want, got)
		}
	}
}

func TestWithTimesKeepsTaskFields(t *testing.T) {
	start := time.Date(2025, 11, 5, 9, 0, 0, 0, time.Local)
	tt := EventProject
	e := NewEvent("Robotics", start, start.Add(time.Hour))
	e.TaskType = &tt
	moved := e.WithTimes(start.Add(2*time.Hour), start.Add(3*time.Hour))
	if moved.ID == e.ID {
		t.Fatalf("expected new identifier")
	}
	if moved.TaskType == nil || *moved.TaskType != EventProject || moved.Title != "Robotics" {
		t.Fatalf("expected fields preserved, got %+v", moved)
	}
}
