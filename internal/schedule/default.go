package schedule

import (
	"fmt"
	"strings"
	"time"
)

type clock struct{ h, m int }

type span struct {
	name  string
	start clock
	end   clock
	free  bool
}

var bellSchedule = []span{
	{"Morning Routine", clock{6, 45}, clock{8, 15}, false},
	{"Homeroom", clock{8, 45}, clock{9, 16}, false},
	{"Period 1", clock{9, 20}, clock{9, 55}, false},
	{"Period 2", clock{9, 59}, clock{10, 34}, false},
	{"Period 3", clock{10, 38}, clock{11, 13}, false},
	{"Period 4", clock{11, 17}, clock{11, 52}, false},
	{"Lunch", clock{11, 52}, clock{12, 27}, true},
	{"Period 5", clock{12, 31}, clock{13, 6}, false},
	{"Period 6", clock{13, 10}, clock{13, 45}, false},
	{"Period 7", clock{13, 49}, clock{14, 24}, false},
	{"Period 8", clock{14, 28}, clock{15, 3}, false},
}

var (
	afternoonFree = []span{
		{"After School", clock{15, 30}, clock{18, 0}, true},
	}
	afternoonPractice = []span{
		{"Team Practice", clock{15, 30}, clock{17, 0}, false},
		{"After Practice", clock{17, 0}, clock{18, 0}, true},
	}
	weeknight = []span{
		{"Dinner", clock{18, 0}, clock{19, 0}, false},
		{"Evening", clock{19, 0}, clock{21, 30}, true},
	}
	fridayNight = []span{
		{"Dinner", clock{18, 0}, clock{19, 0}, false},
		{"Friday Evening", clock{19, 0}, clock{23, 0}, true},
	}
	saturday = []span{
		{"Saturday Morning", clock{10, 0}, clock{12, 0}, true},
		{"Lunch", clock{12, 0}, clock{13, 0}, false},
		{"Saturday Afternoon", clock{13, 0}, clock{18, 0}, true},
	}
	sunday = []span{
		{"All Day", clock{0, 0}, clock{24, 0}, true},
	}
)

// Default returns the built-in school-week template.
func Default() WeeklySchedule {
	days := map[time.Weekday][][]span{
		time.Sunday:    {sunday},
		time.Monday:    {bellSchedule, afternoonFree, weeknight},
		time.Tuesday:   {bellSchedule, afternoonPractice, weeknight},
		time.Wednesday: {bellSchedule, afternoonFree, weeknight},
		time.Thursday:  {bellSchedule, afternoonPractice, weeknight},
		time.Friday:    {bellSchedule, afternoonFree, fridayNight},
		time.Saturday:  {saturday},
	}
	var ws WeeklySchedule
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, group := range days[day] {
			for _, sp := range group {
				ws.Blocks = append(ws.Blocks, TimeBlock{
					ID:          blockID(day, len(ws.Blocks)),
					Name:        sp.name,
					Day:         day,
					StartHour:   sp.start.h,
					StartMinute: sp.start.m,
					EndHour:     sp.end.h,
					EndMinute:   sp.end.m,
					IsFree:      sp.free,
				})
			}
		}
	}
	return ws
}

func blockID(day time.Weekday, seq int) string {
	return fmt.Sprintf("%s-%d", strings.ToLower(day.String()[:3]), seq+1)
}
