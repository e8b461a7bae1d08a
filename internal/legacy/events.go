package legacy

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
)

const eventTimeLayout = "2006-01-02 15:04"

type eventFile struct {
	Event []eventEntry `toml:"event"`
}

type eventEntry struct {
	Title              string   `toml:"title"`
	Start              string   `toml:"start"`
	End                string   `toml:"end"`
	Type               string   `toml:"type"`
	Urgency            string   `toml:"urgency"`
	Questions          *int     `toml:"questions"`
	MinutesPerQuestion *float64 `toml:"minutes-per-question"`
	Repeat             string   `toml:"repeat"`
}

// DecodeEvents reads [[event]] tables from r. Times use the local
// "YYYY-MM-DD HH:MM" form.
func DecodeEvents(r io.Reader) ([]model.CalendarEvent, error) {
	var file eventFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	events := make([]model.CalendarEvent, 0, len(file.Event))
	for i, entry := range file.Event {
		event, err := entry.toEvent()
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i+1, entry.Title, err)
		}
		events = append(events, event)
	}
	return events, nil
}

func (e eventEntry) toEvent() (model.CalendarEvent, error) {
	start, err := time.ParseInLocation(eventTimeLayout, e.Start, time.Local)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := time.ParseInLocation(eventTimeLayout, e.End, time.Local)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("invalid end: %w", err)
	}
	if end.Before(start) {
		return model.CalendarEvent{}, errors.New("end before start")
	}
	event := model.NewEvent(e.Title, start, end)
	if e.Type != "" {
		tt := model.EventTaskType(strings.ToUpper(e.Type))
		switch tt {
		case model.EventProject, model.EventSATStudy, model.EventAssignment, model.EventHomework, model.EventPractice:
			event.TaskType = &tt
		default:
			return model.CalendarEvent{}, fmt.Errorf("unknown type %q", e.Type)
		}
	}
	if e.Urgency != "" {
		u, err := model.ParseUrgency(e.Urgency)
		if err != nil {
			return model.CalendarEvent{}, err
		}
		event.Urgency = &u
	}
	event.NumQuestions = e.Questions
	event.TimePerQuestion = e.MinutesPerQuestion
	switch r := model.Repeat(strings.ToLower(e.Repeat)); r {
	case model.RepeatNone, model.RepeatDaily, model.RepeatWeekly, model.RepeatMonthly, model.RepeatYearly:
		event.Repeat = r
	default:
		return model.CalendarEvent{}, fmt.Errorf("unknown repeat %q", e.Repeat)
	}
	return event, nil
}
