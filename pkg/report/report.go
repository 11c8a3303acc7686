// Package report renders schedules for people (console summary) and for other programs (JSON or YAML documents)
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/limaJavier/examscheduling/pkg/model"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Summary struct {
	Students        int
	Tests           int
	Entries         int
	TestsPerStudent int // Zero when the input was not generated
	Order           model.TestOrder
	Duration        time.Duration
	Groupings       int
	MaxDegree       int
	GreedyBound     int
}

// GroupingDocument is one time slot of the schedule document. Period is empty unless periods were assigned
type GroupingDocument struct {
	Period string   `json:"period,omitempty" yaml:"period,omitempty"`
	Tests  []string `json:"tests" yaml:"tests"`
}

type Document struct {
	RunId     string             `json:"runId" yaml:"runId"`
	Order     string             `json:"order" yaml:"order"`
	Tests     int                `json:"tests" yaml:"tests"`
	Generated string             `json:"generated" yaml:"generated"`
	Groupings []GroupingDocument `json:"groupings" yaml:"groupings"`
}

func NewSummary(index model.EnrollmentIndex, schedule model.Schedule, order model.TestOrder, duration time.Duration, students int) Summary {
	summary := Summary{
		Students:  students,
		Tests:     index.Len(),
		Entries:   index.Entries(),
		Order:     order,
		Duration:  duration,
		Groupings: len(schedule),
	}
	if index.Len() > 0 {
		summary.MaxDegree = model.MaxConflictDegree(index)
		summary.GreedyBound = summary.MaxDegree + 1
	}
	return summary
}

// PrintSummary writes the console report followed by the first preview groupings
func PrintSummary(writer io.Writer, summary Summary, schedule model.Schedule, preview int) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite)
	value := color.New(color.FgGreen)

	header.Fprintln(writer, "Exam scheduling summary")
	line := func(name string, format string, args ...any) {
		label.Fprintf(writer, "  %-26s", name+":")
		value.Fprintf(writer, format+"\n", args...)
	}

	line("Number of students", "%d", summary.Students)
	line("Number of tests", "%d", summary.Tests)
	if summary.TestsPerStudent > 0 {
		line("Num tests per student", "%d", summary.TestsPerStudent)
	}
	line("Enrollment entries", "%d", summary.Entries)
	line("Test order", "%s", summary.Order)
	line("Execution time", "%.3f seconds", summary.Duration.Seconds())
	line("Number of test groupings", "%d", summary.Groupings)
	line("Greedy bound", "%d (max conflict degree %d)", summary.GreedyBound, summary.MaxDegree)

	if preview > len(schedule) {
		preview = len(schedule)
	}
	if preview == 0 {
		return
	}

	header.Fprintf(writer, "First %d test groupings\n", preview)
	for i, grouping := range schedule[:preview] {
		label.Fprintf(writer, "  %3d ", i+1)
		fmt.Fprintf(writer, "[%s]\n", strings.Join(grouping, ", "))
	}
}

// NewDocument builds the schedule document. periodNames may be nil; otherwise its i-th element labels the i-th grouping
func NewDocument(schedule model.Schedule, order model.TestOrder, periodNames []string) Document {
	return Document{
		RunId:     uuid.NewString(),
		Order:     string(order),
		Tests:     lo.SumBy(schedule, func(grouping model.Grouping) int { return len(grouping) }),
		Generated: time.Now().Format(time.RFC3339),
		Groupings: lo.Map(schedule, func(grouping model.Grouping, i int) GroupingDocument {
			document := GroupingDocument{Tests: grouping}
			if i < len(periodNames) {
				document.Period = periodNames[i]
			}
			return document
		}),
	}
}

func Marshal(document Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		data, err := json.MarshalIndent(document, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal schedule: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(document)
		if err != nil {
			return nil, fmt.Errorf("marshal schedule: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%v is not a valid format", format)
	}
}

// Write stores the document at path, or writes it to stdout when path is empty
func Write(document Document, format string, path string, stdout io.Writer) error {
	data, err := Marshal(document, format)
	if err != nil {
		return err
	}

	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}
