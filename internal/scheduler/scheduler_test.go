package scheduler

import (
	"testing"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
)

// Sunday.
var weekStart = time.Date(2025, 11, 2, 0, 0, 0, 0, time.Local)

func freeBlock(day time.Weekday, startH, startM, endH, endM int) schedule.TimeBlock {
	return schedule.TimeBlock{
		Name:        day.String() + " free",
		Day:         day,
		StartHour:   startH,
		StartMinute: startM,
		EndHour:     endH,
		EndMinute:   endM,
		IsFree:      true,
	}
}

func sevenTwoHourBlocks() schedule.WeeklySchedule {
	var ws schedule.WeeklySchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		ws.Blocks = append(ws.Blocks, freeBlock(d, 16, 0, 18, 0))
	}
	return ws
}

func newTask(name string, tt model.TaskType, minutes int) *model.Task {
	return &model.Task{
		ID:           model.NewTaskID(),
		Name:         name,
		Type:         tt,
		Urgency:      model.Medium,
		DueDate:      weekStart.AddDate(0, 0, 14),
		TotalMinutes: minutes,
	}
}

func TestProjectSpreadsAcrossDistinctDays(t *testing.T) {
	task := newTask("History Essay", model.Project, 180)
	ScheduleTasks([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)

	if len(task.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(task.Sessions))
	}
	days := map[int]bool{}
	total := 0
	for _, s := range task.Sessions {
		if s.DurationMinutes > 120 {
			t.Fatalf("session longer than block: %d", s.DurationMinutes)
		}
		if s.End.Sub(s.Start) != time.Duration(s.DurationMinutes)*time.Minute {
			t.Fatalf("session end inconsistent with duration: %+v", s)
		}
		days[s.Start.Day()] = true
		total += s.DurationMinutes
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 distinct days, got %d", len(days))
	}
	if total != 180 {
		t.Fatalf("expected 180 minutes, got %d", total)
	}
}

func TestProjectOneSessionPerDay(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Monday, 9, 0, 10, 0),
		freeBlock(time.Monday, 15, 0, 17, 0),
		freeBlock(time.Tuesday, 15, 0, 17, 0),
	}}
	task := newTask("Robot", model.Project, 180)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(task.Sessions))
	}
	if task.Sessions[0].Start.Day() == task.Sessions[1].Start.Day() {
		t.Fatalf("expected sessions on different days")
	}
	if task.ScheduledMinutes() != 120 {
		t.Fatalf("expected partial 120 minutes, got %d", task.ScheduledMinutes())
	}
}

func TestProjectSkipsChunksUnderThirtyMinutes(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Monday, 9, 0, 9, 25),
		freeBlock(time.Tuesday, 9, 0, 10, 0),
	}}
	task := newTask("Model UN", model.Project, 60)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 1 || task.Sessions[0].Start.Weekday() != time.Tuesday {
		t.Fatalf("expected single Tuesday session, got %+v", task.Sessions)
	}
}

func TestStudyMinimumChunkIsTwentyMinutes(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Monday, 9, 0, 9, 25),
		freeBlock(time.Tuesday, 9, 0, 9, 15),
	}}
	task := newTask("Read chapter", model.StudySession, 60)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(task.Sessions))
	}
	if task.Sessions[0].DurationMinutes != 25 {
		t.Fatalf("expected 25 minute session, got %d", task.Sessions[0].DurationMinutes)
	}
}

func TestStudyUsesThirtyMinuteSessions(t *testing.T) {
	task := newTask("Review notes", model.StudySession, 90)
	ScheduleTasks([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)
	if len(task.Sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(task.Sessions))
	}
	for _, s := range task.Sessions {
		if s.DurationMinutes != 30 {
			t.Fatalf("expected 30 minute sessions, got %d", s.DurationMinutes)
		}
	}
}

func TestExplicitSessionLengthOverridesDefault(t *testing.T) {
	task := newTask("Portfolio", model.Project, 180)
	task.SessionLengthMinutes = model.IntPtr(90)
	ScheduleTasks([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)
	if len(task.Sessions) != 2 || task.Sessions[0].DurationMinutes != 90 {
		t.Fatalf("expected two 90 minute sessions, got %+v", task.Sessions)
	}
}

func TestOneShotUsesFirstBlockWithRoom(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Tuesday, 15, 0, 17, 0),
		freeBlock(time.Monday, 9, 0, 9, 30),
	}}
	task := newTask("Worksheet", model.OneTimeAssignment, 60)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 1 {
		t.Fatalf("expected a session, got %d", len(task.Sessions))
	}
	want := time.Date(2025, 11, 4, 15, 0, 0, 0, time.Local)
	if !task.Sessions[0].Start.Equal(want) || task.Sessions[0].DurationMinutes != 60 {
		t.Fatalf("expected Tuesday 15:00 for 60 minutes, got %+v", task.Sessions[0])
	}
}

func TestOneShotRespectsDueDate(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Friday, 15, 0, 17, 0),
	}}
	task := newTask("Permission slip", model.RecurringTask, 30)
	task.DueDate = time.Date(2025, 11, 6, 0, 0, 0, 0, time.Local)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 0 {
		t.Fatalf("expected no session after due date, got %+v", task.Sessions)
	}

	task.DueDate = time.Date(2025, 11, 7, 15, 0, 0, 0, time.Local)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 1 {
		t.Fatalf("expected block starting exactly at due date to be usable")
	}
}

func TestOneShotTooLargeStaysUnscheduled(t *testing.T) {
	task := newTask("Marathon", model.OneTimeAssignment, 500)
	ScheduleTasks([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)
	if task.IsScheduled() {
		t.Fatalf("expected task to stay unscheduled")
	}
}

func TestPracticeQuestionRangesAreContiguous(t *testing.T) {
	task := newTask("SAT Math", model.PracticeSession, 50)
	task.QuestionCount = model.IntPtr(50)
	task.MinutesPerQuestion = model.FloatPtr(1)
	ScheduleTasks([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)

	if len(task.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(task.Sessions))
	}
	first, second := task.Sessions[0], task.Sessions[1]
	if first.QuestionRange == nil || second.QuestionRange == nil {
		t.Fatalf("expected question ranges")
	}
	if first.QuestionRange.Start != 1 || first.QuestionRange.End != 45 || first.DurationMinutes != 45 {
		t.Fatalf("unexpected first session %+v %+v", first, *first.QuestionRange)
	}
	if second.QuestionRange.Start != 46 || second.QuestionRange.End != 50 || second.DurationMinutes != 5 {
		t.Fatalf("unexpected second session %+v %+v", second, *second.QuestionRange)
	}
}

func TestPracticeRoundsMinutesDown(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Monday, 9, 0, 9, 40),
		freeBlock(time.Tuesday, 9, 0, 9, 40),
	}}
	task := newTask("Chem problems", model.PracticeSession, 0)
	task.QuestionCount = model.IntPtr(8)
	task.MinutesPerQuestion = model.FloatPtr(7)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)

	covered := 0
	expectNext := 1
	for _, s := range task.Sessions {
		if s.QuestionRange.Start != expectNext {
			t.Fatalf("expected range to start at %d, got %d", expectNext, s.QuestionRange.Start)
		}
		if s.DurationMinutes != s.QuestionRange.Count()*7 {
			t.Fatalf("expected %d minutes, got %d", s.QuestionRange.Count()*7, s.DurationMinutes)
		}
		expectNext = s.QuestionRange.End + 1
		covered += s.QuestionRange.Count()
	}
	// 40 minute blocks fit 5 questions each.
	if covered != 8 || len(task.Sessions) != 2 {
		t.Fatalf("expected 8 questions over 2 sessions, got %d over %d", covered, len(task.Sessions))
	}
}

func TestPracticeCoversOnlyWhatFits(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Monday, 9, 0, 9, 30),
	}}
	task := newTask("Vocab", model.PracticeSession, 0)
	task.QuestionCount = model.IntPtr(100)
	task.MinutesPerQuestion = model.FloatPtr(2)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 1 || task.Sessions[0].QuestionRange.Count() != 15 {
		t.Fatalf("expected 15 questions placed, got %+v", task.Sessions)
	}
}

func TestPracticeWithoutQuestionsFallsBackToMinutes(t *testing.T) {
	task := newTask("Scales", model.PracticeSession, 90)
	ScheduleTasks([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)
	if task.ScheduledMinutes() != 90 || len(task.Sessions) != 2 {
		t.Fatalf("expected two 45 minute sessions, got %+v", task.Sessions)
	}
	for _, s := range task.Sessions {
		if s.QuestionRange != nil {
			t.Fatalf("expected no question range on minute-based sessions")
		}
	}
}

func TestUrgencyOrderWins(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Monday, 15, 0, 16, 0),
		freeBlock(time.Tuesday, 15, 0, 16, 0),
	}}
	low := newTask("Low", model.OneTimeAssignment, 60)
	low.Urgency = model.Low
	high := newTask("High", model.OneTimeAssignment, 60)
	high.Urgency = model.High

	ordered := ScheduleTasks([]*model.Task{low, high}, ws, weekStart)
	if ordered[0] != high || ordered[1] != low {
		t.Fatalf("expected HIGH task first in scheduling order")
	}
	if !high.Sessions[0].Start.Before(low.Sessions[0].Start) {
		t.Fatalf("expected HIGH task to get the earlier block")
	}
}

func TestSortTasksBreaksTiesByDueDate(t *testing.T) {
	a := newTask("a", model.OneTimeAssignment, 10)
	b := newTask("b", model.OneTimeAssignment, 10)
	c := newTask("c", model.OneTimeAssignment, 10)
	b.DueDate = a.DueDate.Add(-time.Hour)
	c.Urgency = model.High
	c.DueDate = a.DueDate.Add(time.Hour)
	ordered := SortTasks([]*model.Task{a, b, c})
	if ordered[0] != c || ordered[1] != b || ordered[2] != a {
		t.Fatalf("unexpected order %s %s %s", ordered[0].Name, ordered[1].Name, ordered[2].Name)
	}
}

func TestLaterTasksSeeDepletedBlocks(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Monday, 15, 0, 17, 0),
	}}
	first := newTask("first", model.OneTimeAssignment, 90)
	first.Urgency = model.High
	second := newTask("second", model.OneTimeAssignment, 30)
	third := newTask("third", model.OneTimeAssignment, 30)
	third.Urgency = model.Low
	ScheduleTasks([]*model.Task{third, second, first}, ws, weekStart)

	if want := time.Date(2025, 11, 3, 16, 30, 0, 0, time.Local); !second.Sessions[0].Start.Equal(want) {
		t.Fatalf("expected second task packed after first at %v, got %v", want, second.Sessions[0].Start)
	}
	if third.IsScheduled() {
		t.Fatalf("expected block to be exhausted for third task")
	}
}

func TestRepeatedRunsAccumulateUnlessCleared(t *testing.T) {
	task := newTask("Worksheet", model.OneTimeAssignment, 30)
	ws := sevenTwoHourBlocks()
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 2 {
		t.Fatalf("expected sessions to accumulate, got %d", len(task.Sessions))
	}
	task.ClearSessions()
	ScheduleTasks([]*model.Task{task}, ws, weekStart)
	if len(task.Sessions) != 1 {
		t.Fatalf("expected a single session after clearing, got %d", len(task.Sessions))
	}
}

func TestCapacityAndTaskTotalsHold(t *testing.T) {
	ws := schedule.Default()
	tasks := []*model.Task{
		newTask("Essay", model.Project, 300),
		newTask("Chapter", model.StudySession, 200),
		newTask("Worksheet", model.OneTimeAssignment, 45),
		newTask("Chores", model.RecurringTask, 60),
		newTask("Lab", model.Project, 240),
	}
	practiceTask := newTask("SAT", model.PracticeSession, 0)
	practiceTask.QuestionCount = model.IntPtr(120)
	practiceTask.MinutesPerQuestion = model.FloatPtr(1.25)
	tasks = append(tasks, practiceTask)
	tasks[1].Urgency = model.High
	tasks[4].Urgency = model.Low

	ScheduleTasks(tasks, ws, weekStart)

	for _, task := range tasks {
		if task.ScheduledMinutes() > task.EffectiveMinutes() {
			t.Fatalf("%s over-scheduled: %d > %d", task.Name, task.ScheduledMinutes(), task.EffectiveMinutes())
		}
	}
	free := schedule.WeeklySchedule{Blocks: ws.FreeBlocks()}
	for _, block := range free.ToDateSchedule(weekStart) {
		used := 0
		for _, task := range tasks {
			for _, s := range task.Sessions {
				if !s.Start.Before(block.Start) && s.Start.Before(block.End) {
					if s.End.After(block.End) {
						t.Fatalf("session %v-%v overruns block %s", s.Start, s.End, block.Name)
					}
					used += s.DurationMinutes
				}
			}
		}
		if used > block.DurationMinutes() {
			t.Fatalf("block %s over-allocated: %d > %d", block.Name, used, block.DurationMinutes())
		}
	}
}

func TestNewPoolOrdersByStart(t *testing.T) {
	ws := schedule.WeeklySchedule{Blocks: []schedule.TimeBlock{
		freeBlock(time.Friday, 9, 0, 10, 0),
		{Name: "busy", Day: time.Monday, StartHour: 8, EndHour: 9},
		freeBlock(time.Monday, 13, 0, 14, 0),
		freeBlock(time.Monday, 9, 0, 10, 0),
	}}
	pool := NewPool(ws, weekStart)
	if len(pool) != 3 {
		t.Fatalf("expected only free blocks, got %d", len(pool))
	}
	for i := 1; i < len(pool); i++ {
		if pool[i].Start.Before(pool[i-1].Start) {
			t.Fatalf("pool not sorted at %d", i)
		}
	}
	if pool[0].Remaining != 60 || pool[0].Consumed() != 0 {
		t.Fatalf("expected full capacity, got %+v", pool[0])
	}
}

func TestNewFallsBackToDefaultOptions(t *testing.T) {
	s := New(Options{}, zeroLogger())
	task := newTask("Essay", model.Project, 120)
	s.Schedule([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)
	if len(task.Sessions) != 2 || task.Sessions[0].DurationMinutes != 60 {
		t.Fatalf("expected default 60 minute sessions, got %+v", task.Sessions)
	}
}
