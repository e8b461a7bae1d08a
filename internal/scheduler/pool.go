package scheduler

import (
	"sort"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/schedule"
)

// AvailableBlock is a free block of a concrete week with capacity left to give.
type AvailableBlock struct {
	schedule.DateTimeBlock
	Remaining int
}

// Consumed is the number of minutes already handed out from the block.
func (b *AvailableBlock) Consumed() int {
	return b.DurationMinutes() - b.Remaining
}

// NextStart is where the next session carved from the block begins.
func (b *AvailableBlock) NextStart() time.Time {
	return b.Start.Add(time.Duration(b.Consumed()) * time.Minute)
}

// usableBy reports whether the block still has capacity and starts no later than due.
func (b *AvailableBlock) usableBy(due time.Time) bool {
	return b.Remaining > 0 && !b.Start.After(due)
}

// take consumes minutes from the block and returns the session start.
func (b *AvailableBlock) take(minutes int) time.Time {
	start := b.NextStart()
	b.Remaining -= minutes
	return start
}

// NewPool materializes the free blocks of ws for the week at weekStart,
// ordered by start time, each with its full duration available.
func NewPool(ws schedule.WeeklySchedule, weekStart time.Time) []*AvailableBlock {
	free := schedule.WeeklySchedule{Blocks: ws.FreeBlocks()}
	dated := free.ToDateSchedule(weekStart)
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Start.Before(dated[j].Start)
	})
	pool := make([]*AvailableBlock, 0, len(dated))
	for _, b := range dated {
		pool = append(pool, &AvailableBlock{DateTimeBlock: b, Remaining: b.DurationMinutes()})
	}
	return pool
}
