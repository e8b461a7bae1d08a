// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// TaskType selects the placement strategy for a task.
type TaskType string

const (
	OneTimeAssignment TaskType = "ONE_TIME_ASSIGNMENT"
	Project           TaskType = "PROJECT"
	StudySession      TaskType = "STUDY_SESSION"
	PracticeSession   TaskType = "PRACTICE_SESSION"
	RecurringTask     TaskType = "RECURRING_TASK"
)

// TaskTypes lists every task type in declaration order.
var TaskTypes = []TaskType{OneTimeAssignment, Project, StudySession, PracticeSession, RecurringTask}

// ParseTaskType resolves a task type name case-insensitively.
func ParseTaskType(s string) (TaskType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for _, tt := range TaskTypes {
		if string(tt) == norm {
			return tt, nil
		}
	}
	return "", fmt.Errorf("unknown task type %q", s)
}

// Label returns a short human label.
func (t TaskType) Label() string {
	switch t {
	case OneTimeAssignment:
		return "assignment"
	case Project:
		return "project"
	case StudySession:
		return "study"
	case PracticeSession:
		return "practice"
	case RecurringTask:
		return "recurring"
	default:
		return strings.ToLower(string(t))
	}
}

// Urgency orders tasks from most to least urgent.
type Urgency string

const (
	High   Urgency = "HIGH"
	Medium Urgency = "MEDIUM"
	Low    Urgency = "LOW"
)

// Rank returns 0 for HIGH, 1 for MEDIUM and 2 for LOW. Unknown values rank as MEDIUM.
func (u Urgency) Rank() int {
	switch u {
	case High:
		return 0
	case Low:
		return 2
	default:
		return 1
	}
}

// ParseUrgency resolves an urgency name case-insensitively.
func ParseUrgency(s string) (Urgency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(High):
		return High, nil
	case string(Medium):
		return Medium, nil
	case string(Low):
		return Low, nil
	}
	return "", fmt.Errorf("unknown urgency %q", s)
}
