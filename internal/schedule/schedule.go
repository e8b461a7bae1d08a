// Package schedule models a recurring week of free and busy time.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
)

// TimeBlock is a named wall-clock interval on one day of a template week.
// EndHour 24 means midnight at the end of the day.
type TimeBlock struct {
	ID          string
	Name        string
	Day         time.Weekday
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
	IsFree      bool
}

// StartOfDayMinutes is the block start as minutes since midnight.
func (b TimeBlock) StartOfDayMinutes() int {
	return b.StartHour*60 + b.StartMinute
}

// EndOfDayMinutes is the block end as minutes since midnight.
func (b TimeBlock) EndOfDayMinutes() int {
	return b.EndHour*60 + b.EndMinute
}

// DurationMinutes is end minus start, never negative.
func (b TimeBlock) DurationMinutes() int {
	d := b.EndOfDayMinutes() - b.StartOfDayMinutes()
	if d < 0 {
		return 0
	}
	return d
}

// Validate checks field ranges and ordering.
func (b TimeBlock) Validate() error {
	if b.Day < time.Sunday || b.Day > time.Saturday {
		return fmt.Errorf("invalid day %d", b.Day)
	}
	if b.StartHour < 0 || b.StartHour > 23 || b.StartMinute < 0 || b.StartMinute > 59 {
		return fmt.Errorf("invalid start %02d:%02d", b.StartHour, b.StartMinute)
	}
	if b.EndHour < 0 || b.EndHour > 24 || b.EndMinute < 0 || b.EndMinute > 59 || (b.EndHour == 24 && b.EndMinute != 0) {
		return fmt.Errorf("invalid end %02d:%02d", b.EndHour, b.EndMinute)
	}
	if b.EndOfDayMinutes() < b.StartOfDayMinutes() {
		return fmt.Errorf("end %02d:%02d before start %02d:%02d", b.EndHour, b.EndMinute, b.StartHour, b.StartMinute)
	}
	return nil
}

// DateTimeBlock is a TimeBlock anchored to a concrete week.
type DateTimeBlock struct {
	TimeBlock
	Start time.Time
	End   time.Time
}

// WeeklySchedule is an ordered set of blocks making up one recurring week.
type WeeklySchedule struct {
	Blocks []TimeBlock
}

// FreeBlocks returns every free block.
func (s WeeklySchedule) FreeBlocks() []TimeBlock {
	out := make([]TimeBlock, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		if b.IsFree {
			out = append(out, b)
		}
	}
	return out
}

// FreeBlocksForDay returns the free blocks on day.
func (s WeeklySchedule) FreeBlocksForDay(day time.Weekday) []TimeBlock {
	var out []TimeBlock
	for _, b := range s.Blocks {
		if b.IsFree && b.Day == day {
			out = append(out, b)
		}
	}
	return out
}

// BlocksForDay returns every block on day ordered by start time.
func (s WeeklySchedule) BlocksForDay(day time.Weekday) []TimeBlock {
	var out []TimeBlock
	for _, b := range s.Blocks {
		if b.Day == day {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartOfDayMinutes() < out[j].StartOfDayMinutes()
	})
	return out
}

// TotalFreeMinutes sums the duration of every free block.
func (s WeeklySchedule) TotalFreeMinutes() int {
	total := 0
	for _, b := range s.Blocks {
		if b.IsFree {
			total += b.DurationMinutes()
		}
	}
	return total
}

// TotalFreeHours is TotalFreeMinutes in hours.
func (s WeeklySchedule) TotalFreeHours() float64 {
	return float64(s.TotalFreeMinutes()) / 60.0
}

// ToDateSchedule anchors every block to the week starting at weekStart,
// which is expected to be a Sunday.
func (s WeeklySchedule) ToDateSchedule(weekStart time.Time) []DateTimeBlock {
	base := dateparse.StartOfDay(weekStart)
	out := make([]DateTimeBlock, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		y, m, d := base.Date()
		d += int(b.Day)
		out = append(out, DateTimeBlock{
			TimeBlock: b,
			Start:     time.Date(y, m, d, b.StartHour, b.StartMinute, 0, 0, base.Location()),
			End:       time.Date(y, m, d, b.EndHour, b.EndMinute, 0, 0, base.Location()),
		})
	}
	return out
}
