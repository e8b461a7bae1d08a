package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventTaskType tags a calendar event with the legacy scheduler's task kinds.
type EventTaskType string

const (
	EventProject    EventTaskType = "PROJECT"
	EventSATStudy   EventTaskType = "SAT_STUDY"
	EventAssignment EventTaskType = "ASSIGNMENT"
	EventHomework   EventTaskType = "HOMEWORK"
	EventPractice   EventTaskType = "PRACTICE"
)

// Repeat is a simple recurrence marker on a calendar event.
type Repeat string

const (
	RepeatNone    Repeat = ""
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

// CalendarEvent is an event in the legacy event-centric model. Events titled
// with FREE double as available time.
type CalendarEvent struct {
	ID              string
	Title           string
	Start           time.Time
	End             time.Time
	TaskType        *EventTaskType
	Urgency         *Urgency
	NumQuestions    *int
	TimePerQuestion *float64
	Repeat          Repeat
}

// NewEvent builds an event with a fresh identifier.
func NewEvent(title string, start, end time.Time) CalendarEvent {
	return CalendarEvent{
		ID:    uuid.NewString(),
		Title: title,
		Start: start,
		End:   end,
	}
}

// WithTimes returns a copy of e carrying a new identifier and the given times.
func (e CalendarEvent) WithTimes(start, end time.Time) CalendarEvent {
	out := e
	out.ID = uuid.NewString()
	out.Start = start
	out.End = end
	return out
}

// IsFree reports whether the event title marks it as free time.
func (e CalendarEvent) IsFree() bool {
	return strings.Contains(strings.ToUpper(e.Title), "FREE")
}

// Duration is the wall-clock length of the event.
func (e CalendarEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// RequiredDuration is the work the event represents: questions*timePerQuestion
// when both are set, otherwise the event's own length.
func (e CalendarEvent) RequiredDuration() time.Duration {
	if e.NumQuestions != nil && e.TimePerQuestion != nil {
		return time.Duration(float64(*e.NumQuestions) * *e.TimePerQuestion * float64(time.Minute))
	}
	return e.Duration()
}

// UrgencyRank ranks the event's urgency, treating a missing value as MEDIUM.
func (e CalendarEvent) UrgencyRank() int {
	if e.Urgency == nil {
		return Medium.Rank()
	}
	return e.Urgency.Rank()
}

// OccursOn reports whether the event falls on the calendar day of date.
func (e CalendarEvent) OccursOn(date time.Time) bool {
	day := dayStart(date)
	first := dayStart(e.Start)
	if day.Before(first) {
		return false
	}
	switch e.Repeat {
	case RepeatDaily:
		return true
	case RepeatWeekly:
		return day.Weekday() == first.Weekday()
	case RepeatMonthly:
		return day.Day() == first.Day()
	case RepeatYearly:
		return day.Day() == first.Day() && day.Month() == first.Month()
	default:
		return day.Equal(first)
	}
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
