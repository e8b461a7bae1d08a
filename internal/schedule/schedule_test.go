package schedule

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestTimeBlockDuration(t *testing.T) {
	b := TimeBlock{StartHour: 9, StartMinute: 59, EndHour: 10, EndMinute: 34}
	if got := b.DurationMinutes(); got != 35 {
		t.Fatalf("expected 35 minutes, got %d", got)
	}
	allDay := TimeBlock{EndHour: 24}
	if got := allDay.DurationMinutes(); got != 1440 {
		t.Fatalf("expected 1440 minutes, got %d", got)
	}
	backwards := TimeBlock{StartHour: 10, EndHour: 9}
	if got := backwards.DurationMinutes(); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if err := backwards.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestDefaultTemplate(t *testing.T) {
	ws := Default()
	var period2 *TimeBlock
	for i, b := range ws.Blocks {
		if err := b.Validate(); err != nil {
			t.Fatalf("block %s invalid: %v", b.Name, err)
		}
		if b.Day == time.Monday && b.Name == "Period 2" {
			period2 = &ws.Blocks[i]
		}
	}
	if period2 == nil {
		t.Fatalf("expected Monday Period 2")
	}
	if period2.IsFree || period2.StartHour != 9 || period2.StartMinute != 59 || period2.EndHour != 10 || period2.EndMinute != 34 {
		t.Fatalf("unexpected Period 2 block %+v", *period2)
	}
	sunday := ws.FreeBlocksForDay(time.Sunday)
	if len(sunday) != 1 || sunday[0].DurationMinutes() != 24*60 {
		t.Fatalf("expected Sunday free all day, got %+v", sunday)
	}
	if got := ws.TotalFreeMinutes(); got != 3445 {
		t.Fatalf("expected 3445 free minutes, got %d", got)
	}
}

func TestFreeBlocksFilters(t *testing.T) {
	ws := WeeklySchedule{Blocks: []TimeBlock{
		{Name: "a", Day: time.Monday, StartHour: 9, EndHour: 10, IsFree: true},
		{Name: "b", Day: time.Monday, StartHour: 10, EndHour: 11},
		{Name: "c", Day: time.Tuesday, StartHour: 9, EndHour: 11, IsFree: true},
	}}
	if got := len(ws.FreeBlocks()); got != 2 {
		t.Fatalf("expected 2 free blocks, got %d", got)
	}
	if got := ws.FreeBlocksForDay(time.Tuesday); len(got) != 1 || got[0].Name != "c" {
		t.Fatalf("unexpected tuesday blocks %+v", got)
	}
	if got := ws.TotalFreeHours(); got != 3 {
		t.Fatalf("expected 3 free hours, got %v", got)
	}
}

func TestBlocksForDayOrdersByStart(t *testing.T) {
	ws := WeeklySchedule{Blocks: []TimeBlock{
		{Name: "late", Day: time.Monday, StartHour: 19, EndHour: 21, IsFree: true},
		{Name: "class", Day: time.Monday, StartHour: 8, EndHour: 15},
		{Name: "other", Day: time.Tuesday, StartHour: 7, EndHour: 8},
	}}
	got := ws.BlocksForDay(time.Monday)
	if len(got) != 2 || got[0].Name != "class" || got[1].Name != "late" {
		t.Fatalf("unexpected monday blocks %+v", got)
	}
}

func TestToDateSchedule(t *testing.T) {
	weekStart := time.Date(2025, 11, 2, 0, 0, 0, 0, time.Local)
	ws := WeeklySchedule{Blocks: []TimeBlock{
		{Name: "sat", Day: time.Saturday, StartHour: 13, StartMinute: 15, EndHour: 14},
		{Name: "sun", Day: time.Sunday, EndHour: 24, IsFree: true},
	}}
	blocks := ws.ToDateSchedule(weekStart)
	if len(blocks) != 2 {
		t.Fatalf("expected every block to be materialized, got %d", len(blocks))
	}
	if want := time.Date(2025, 11, 8, 13, 15, 0, 0, time.Local); !blocks[0].Start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, blocks[0].Start)
	}
	if want := time.Date(2025, 11, 3, 0, 0, 0, 0, time.Local); !blocks[1].End.Equal(want) {
		t.Fatalf("expected midnight end %v, got %v", want, blocks[1].End)
	}
}

func TestParseText(t *testing.T) {
	input := strings.Join([]string{
		"- Orphan (FREE): 9:00am-10:00am",
		"MONDAY:",
		"- Period 2 (BUSY): 9:59am-10:34am",
		"- After School (free): 3:30pm-6:00pm",
		"- Broken line",
		"- Backwards (FREE): 5:00pm-4:00pm",
		"",
		"Sunday:",
		"- All Day (FREE): 12:00am-12:00am",
		"- Noon (FREE): 12:00pm-12:30pm",
	}, "\n")
	ws, skipped, err := ParseText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(ws.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d: %+v", len(ws.Blocks), ws.Blocks)
	}
	if len(skipped) != 3 {
		t.Fatalf("expected 3 skipped lines, got %+v", skipped)
	}
	if skipped[0].Line != 1 || skipped[1].Line != 5 || skipped[2].Line != 6 {
		t.Fatalf("unexpected skipped lines %+v", skipped)
	}
	after := ws.Blocks[1]
	if !after.IsFree || after.StartHour != 15 || after.StartMinute != 30 || after.EndHour != 18 {
		t.Fatalf("unexpected after-school block %+v", after)
	}
	allDay := ws.Blocks[2]
	if allDay.Day != time.Sunday || allDay.StartHour != 0 || allDay.EndHour != 24 {
		t.Fatalf("unexpected all-day block %+v", allDay)
	}
	if noon := ws.Blocks[3]; noon.StartHour != 12 || noon.EndMinute != 30 {
		t.Fatalf("unexpected noon block %+v", noon)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	original := Default()
	var buf bytes.Buffer
	if err := Format(&buf, original); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "MONDAY:\n") || !strings.Contains(buf.String(), "- Period 2 (BUSY): 9:59am-10:34am") {
		t.Fatalf("unexpected formatted output:\n%s", buf.String())
	}
	parsed, skipped, err := ParseText(&buf)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("expected clean round trip, skipped %+v", skipped)
	}
	if !reflect.DeepEqual(parsed, original) {
		t.Fatalf("round trip mismatch")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.txt")
	if err := os.WriteFile(path, []byte("TUESDAY:\n- Study Hall (FREE): 1:00pm-2:15pm\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ws, _, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := ws.TotalFreeMinutes(); got != 75 {
		t.Fatalf("expected 75 minutes, got %d", got)
	}
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
