package scheduler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
)

func zeroLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestScheduleLogsUnplacedTasks(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	task := newTask("Marathon", model.OneTimeAssignment, 500)
	New(DefaultOptions(), log).Schedule([]*model.Task{task}, sevenTwoHourBlocks(), weekStart)
	if !strings.Contains(buf.String(), "no free block fits task") || !strings.Contains(buf.String(), "Marathon") {
		t.Fatalf("expected debug log for unplaced task, got %q", buf.String())
	}
}
