package model

// SchedulingStatistics is a derived snapshot of how much free time was used.
type SchedulingStatistics struct {
	TotalFreeHours     float64
	ScheduledHours     float64
	RemainingFreeHours float64
	TasksScheduled     int
	TasksUnscheduled   int
	UtilizationPercent float64

	// Indexed by time.Weekday.
	FreeMinutesByDay      [7]int
	ScheduledMinutesByDay [7]int
}
