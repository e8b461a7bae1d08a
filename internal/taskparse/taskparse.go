// Package taskparse extracts structured tasks from one line of free text.
package taskparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/LuxuryShampoo/Twilight-sub000/internal/dateparse"
	"github.com/LuxuryShampoo/Twilight-sub000/internal/model"
)

// ErrUnparseable is returned when the input cannot be turned into a task.
var ErrUnparseable = errors.New("could not parse task")

const (
	defaultTotalMinutes = 60
	defaultDueDays      = 7
)

var (
	questionPattern    = regexp.MustCompile(`(?i)(\d+)\s*questions?\b`)
	perQuestionPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*min(?:ute)?s?\s*(?:each|per\s+question)`)
	hoursPattern       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[\s-]*(?:hours?|hrs?)\b(?:\s+total)?`)
	minutesPattern     = regexp.MustCompile(`(?i)(\d+)[\s-]*(?:minutes?|mins?)\b(?:\s+total)?`)
	sessionMinPattern  = regexp.MustCompile(`(?i)(\d+)[\s-]*min(?:ute)?s?[\s-]+sessions?\b`)
	sessionHourPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[\s-]*(?:hours?|hrs?)[\s-]+sessions?\b`)
	duePattern         = regexp.MustCompile(`(?i)\bdue\s+([^,]+)`)
	notTotalSuffix     = regexp.MustCompile(`(?i)^[\s-]*(?:sessions?\b|each\b|per\s+question)`)

	urgencyOrder = []model.Urgency{model.High, model.Medium, model.Low}
)

// Parse turns text of the form "<name> - <details>" into a task. Details may
// carry a question count, minutes per question, a total duration, an urgency
// keyword, a "due <date>" clause and a session length. On any failure no
// partial task is returned.
func Parse(input string, ref time.Time) (*model.Task, error) {
	parts := strings.SplitN(input, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: missing \"-\" between name and details", ErrUnparseable)
	}
	name := strings.TrimSpace(parts[0])
	details := strings.TrimSpace(parts[1])
	if name == "" {
		return nil, fmt.Errorf("%w: empty task name", ErrUnparseable)
	}
	if details == "" {
		return nil, fmt.Errorf("%w: empty details", ErrUnparseable)
	}

	questions, err := matchInt(questionPattern, details, nil)
	if err != nil {
		return nil, err
	}
	perQuestion, err := matchFloat(perQuestionPattern, details, nil)
	if err != nil {
		return nil, err
	}
	total, err := totalMinutes(details)
	if err != nil {
		return nil, err
	}
	sessionLength, err := sessionMinutes(details)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:                   model.NewTaskID(),
		Name:                 name,
		QuestionCount:        questions,
		MinutesPerQuestion:   perQuestion,
		SessionLengthMinutes: sessionLength,
		Urgency:              model.Medium,
		DueDate:              dateparse.AddDays(ref, defaultDueDays),
	}

	switch {
	case total != nil:
		task.TotalMinutes = *total
	case questions != nil && perQuestion != nil:
		product, err := toMinutes(float64(*questions) * *perQuestion)
		if err != nil {
			return nil, err
		}
		task.TotalMinutes = product
	default:
		task.TotalMinutes = defaultTotalMinutes
	}

	if u, ok := findUrgency(details); ok {
		task.Urgency = u
	}
	if m := duePattern.FindStringSubmatch(details); m != nil {
		if due, ok := dateparse.Parse(m[1], ref); ok {
			task.DueDate = due
		}
	}
	task.Type = inferType(input, questions != nil, sessionLength != nil)
	return task, nil
}

func inferType(input string, hasQuestions, hasSessionLength bool) model.TaskType {
	lower := strings.ToLower(input)
	switch {
	case hasQuestions:
		return model.PracticeSession
	case containsAny(lower, "study", "read", "review"):
		return model.StudySession
	case containsAny(lower, "project", "essay") || hasSessionLength:
		return model.Project
	case containsAny(lower, "daily", "weekly", "recurring"):
		return model.RecurringTask
	default:
		return model.OneTimeAssignment
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// findUrgency matches the urgency labels anywhere in details, HIGH first.
func findUrgency(details string) (model.Urgency, bool) {
	upper := strings.ToUpper(details)
	for _, u := range urgencyOrder {
		if strings.Contains(upper, string(u)) {
			return u, true
		}
	}
	return "", false
}

// totalMinutes prefers an hours total over a minutes total.
func totalMinutes(details string) (*int, error) {
	hours, err := matchFloat(hoursPattern, details, isNotTotal)
	if err != nil {
		return nil, err
	}
	if hours != nil {
		return minutesPtr(*hours * 60)
	}
	return matchInt(minutesPattern, details, isNotTotal)
}

func sessionMinutes(details string) (*int, error) {
	mins, err := matchInt(sessionMinPattern, details, nil)
	if err != nil || mins != nil {
		return mins, err
	}
	hours, err := matchFloat(sessionHourPattern, details, nil)
	if err != nil || hours == nil {
		return nil, err
	}
	return minutesPtr(*hours * 60)
}

// toMinutes rounds v and rejects values no task duration can hold.
func toMinutes(v float64) (int, error) {
	v = math.Round(v)
	if math.IsNaN(v) || math.IsInf(v, 0) || v > model.MaxMinutes {
		return 0, fmt.Errorf("%w: duration too large", ErrUnparseable)
	}
	return int(v), nil
}

func minutesPtr(v float64) (*int, error) {
	m, err := toMinutes(v)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// isNotTotal rejects duration matches that describe a session length or a
// per-question rate, and integer matches cut out of a decimal number.
func isNotTotal(details string, loc []int) bool {
	if loc[0] > 0 {
		prev := details[loc[0]-1]
		if prev == '.' || (prev >= '0' && prev <= '9') {
			return true
		}
	}
	return notTotalSuffix.MatchString(details[loc[1]:])
}

type rejectFunc func(details string, loc []int) bool

func firstMatch(re *regexp.Regexp, details string, reject rejectFunc) (string, bool) {
	for _, loc := range re.FindAllStringSubmatchIndex(details, -1) {
		if reject != nil && reject(details, loc) {
			continue
		}
		return details[loc[2]:loc[3]], true
	}
	return "", false
}

func matchInt(re *regexp.Regexp, details string, reject rejectFunc) (*int, error) {
	raw, ok := firstMatch(re, details, reject)
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid number %q: %v", ErrUnparseable, raw, err)
	}
	if v > model.MaxMinutes {
		return nil, fmt.Errorf("%w: number %q too large", ErrUnparseable, raw)
	}
	return &v, nil
}

func matchFloat(re *regexp.Regexp, details string, reject rejectFunc) (*float64, error) {
	raw, ok := firstMatch(re, details, reject)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid number %q: %v", ErrUnparseable, raw, err)
	}
	return &v, nil
}

// LineError records a line that could not be parsed.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ParseLines parses one task per line, skipping blank lines and "#" comments.
// Lines that fail to parse are reported and do not stop the scan.
func ParseLines(r io.Reader, ref time.Time) ([]*model.Task, []LineError, error) {
	var tasks []*model.Task
	var failures []LineError
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		task, err := Parse(line, ref)
		if err != nil {
			failures = append(failures, LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		tasks = append(tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return tasks, failures, nil
}
