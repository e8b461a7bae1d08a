package schedule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dayHeaderPattern = regexp.MustCompile(`(?i)^(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\s*:$`)
	blockLinePattern = regexp.MustCompile(`(?i)^-\s*(.+?)\s*\((free|busy)\)\s*:\s*(\d{1,2}):(\d{2})\s*(am|pm)\s*-\s*(\d{1,2}):(\d{2})\s*(am|pm)$`)
)

// LineError records a schedule line that was skipped.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ParseText reads a schedule written as day headers ("MONDAY:") followed by
// block lines ("- Period 2 (BUSY): 9:59am-10:34am"). Malformed lines are
// skipped and reported; the rest of the input is still parsed.
func ParseText(r io.Reader) (WeeklySchedule, []LineError, error) {
	var ws WeeklySchedule
	var skipped []LineError
	day := time.Weekday(-1)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := dayHeaderPattern.FindStringSubmatch(line); m != nil {
			day = weekdayByName(m[1])
			continue
		}
		if day < 0 {
			skipped = append(skipped, LineError{Line: lineNo, Text: line, Err: fmt.Errorf("block before any day header")})
			continue
		}
		block, err := parseBlockLine(line, day)
		if err != nil {
			skipped = append(skipped, LineError{Line: lineNo, Text: line, Err: err})
			continue
		}
		block.ID = blockID(day, len(ws.Blocks))
		ws.Blocks = append(ws.Blocks, block)
	}
	if err := scanner.Err(); err != nil {
		return WeeklySchedule{}, nil, err
	}
	return ws, skipped, nil
}

func parseBlockLine(line string, day time.Weekday) (TimeBlock, error) {
	m := blockLinePattern.FindStringSubmatch(line)
	if m == nil {
		return TimeBlock{}, fmt.Errorf("unrecognized block line")
	}
	startH, startM, err := to24Hour(m[3], m[4], m[5])
	if err != nil {
		return TimeBlock{}, err
	}
	endH, endM, err := to24Hour(m[6], m[7], m[8])
	if err != nil {
		return TimeBlock{}, err
	}
	// 12:00am as an end time closes the day.
	if endH == 0 && endM == 0 {
		endH = 24
	}
	block := TimeBlock{
		Name:        m[1],
		Day:         day,
		StartHour:   startH,
		StartMinute: startM,
		EndHour:     endH,
		EndMinute:   endM,
		IsFree:      strings.EqualFold(m[2], "free"),
	}
	if err := block.Validate(); err != nil {
		return TimeBlock{}, err
	}
	return block, nil
}

func to24Hour(hourStr, minStr, meridiem string) (int, int, error) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("invalid hour %q", hourStr)
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute %q", minStr)
	}
	hour %= 12
	if strings.EqualFold(meridiem, "pm") {
		hour += 12
	}
	return hour, minute, nil
}

func weekdayByName(name string) time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d
		}
	}
	return -1
}

// Format writes ws in the text form accepted by ParseText, grouped by day.
func Format(w io.Writer, ws WeeklySchedule) error {
	first := true
	for day := time.Sunday; day <= time.Saturday; day++ {
		var lines []string
		for _, b := range ws.Blocks {
			if b.Day != day {
				continue
			}
			kind := "BUSY"
			if b.IsFree {
				kind = "FREE"
			}
			lines = append(lines, fmt.Sprintf("- %s (%s): %s-%s", b.Name, kind,
				formatClock(b.StartHour, b.StartMinute), formatClock(b.EndHour, b.EndMinute)))
		}
		if len(lines) == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if _, err := fmt.Fprintf(w, "%s:\n", strings.ToUpper(day.String())); err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatClock(hour, minute int) string {
	meridiem := "am"
	if hour >= 12 && hour < 24 {
		meridiem = "pm"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d%s", h, minute, meridiem)
}

// LoadFile parses the schedule file at path. Files ending in .yaml or .yml
// are read with ParseYAML, anything else with ParseText.
func LoadFile(path string) (WeeklySchedule, []LineError, error) {
	file, err := os.Open(path)
	if err != nil {
		return WeeklySchedule{}, nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only schedule file.
			_ = cerr
		}
	}()
	if isYAMLPath(path) {
		return ParseYAML(file)
	}
	return ParseText(file)
}
