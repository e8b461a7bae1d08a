package schedule

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(am|pm)$`)

type yamlBlock struct {
	Day   string `yaml:"day"`
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// ParseYAML reads a schedule written as a YAML sequence of blocks:
//
//	- day: monday
//	  name: Period 2
//	  kind: busy
//	  start: 9:59am
//	  end: 10:34am
//
// Entries that fail to decode are skipped and reported with their line.
func ParseYAML(r io.Reader) (WeeklySchedule, []LineError, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return WeeklySchedule{}, nil, nil
		}
		return WeeklySchedule{}, nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	seq := &root
	if seq.Kind == yaml.DocumentNode && len(seq.Content) > 0 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return WeeklySchedule{}, nil, fmt.Errorf("schedule yaml must be a list of blocks")
	}

	var ws WeeklySchedule
	var skipped []LineError
	for _, node := range seq.Content {
		block, err := decodeYAMLBlock(node)
		if err != nil {
			skipped = append(skipped, LineError{Line: node.Line, Text: yamlSummary(node), Err: err})
			continue
		}
		block.ID = blockID(block.Day, len(ws.Blocks))
		ws.Blocks = append(ws.Blocks, block)
	}
	return ws, skipped, nil
}

func decodeYAMLBlock(node *yaml.Node) (TimeBlock, error) {
	var raw yamlBlock
	if err := node.Decode(&raw); err != nil {
		return TimeBlock{}, err
	}
	day := weekdayByName(strings.TrimSpace(raw.Day))
	if day < 0 {
		return TimeBlock{}, fmt.Errorf("unknown day %q", raw.Day)
	}
	var free bool
	switch strings.ToLower(strings.TrimSpace(raw.Kind)) {
	case "free":
		free = true
	case "busy":
	default:
		return TimeBlock{}, fmt.Errorf("kind must be free or busy, got %q", raw.Kind)
	}
	startH, startM, err := parseClock(raw.Start)
	if err != nil {
		return TimeBlock{}, err
	}
	endH, endM, err := parseClock(raw.End)
	if err != nil {
		return TimeBlock{}, err
	}
	if endH == 0 && endM == 0 {
		endH = 24
	}
	block := TimeBlock{
		Name:        strings.TrimSpace(raw.Name),
		Day:         day,
		StartHour:   startH,
		StartMinute: startM,
		EndHour:     endH,
		EndMinute:   endM,
		IsFree:      free,
	}
	if err := block.Validate(); err != nil {
		return TimeBlock{}, err
	}
	return block, nil
}

func parseClock(value string) (int, int, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid time %q", value)
	}
	return to24Hour(m[1], m[2], m[3])
}

func yamlSummary(node *yaml.Node) string {
	out, err := yaml.Marshal(node)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(string(out)), " ")
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
