package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/limaJavier/examscheduling/pkg/generator"
	"github.com/limaJavier/examscheduling/pkg/model"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
)

const (
	defaultScenarios = "1000x50x4,17000x750x4,17000x750x8,50000x1500x4"
	MB               = 1024 * 1024
)

type ResultType int

const (
	verified ResultType = iota
	invalid
)

var resultTypes = map[ResultType]string{
	verified: "verified",
	invalid:  "invalid",
}

type BenchmarkResult struct {
	Scenario    generator.Parameters
	Order       model.TestOrder
	Tests       int
	Groupings   int
	GreedyBound int
	Duration    int64   // Milliseconds spent partitioning (index construction excluded)
	Memory      float32 // MB allocated while partitioning
	Result      ResultType
}

func main() {
	scenariosPtr := flag.String("scenarios", defaultScenarios, "Comma-separated scenarios shaped as STUDENTSxTESTSxPER_STUDENT")
	seedPtr := flag.Uint64("seed", 1, "Seed of the synthetic generator")
	repetitionsPtr := flag.Int("repetitions", 3, "Runs per scenario and order; the fastest one is kept")
	outPtr := flag.String("out", "benchmark_results.csv", "Path to the CSV file")
	flag.Parse()

	scenarios, err := parseScenarios(*scenariosPtr, *seedPtr)
	if err != nil {
		log.Fatalf("invalid scenarios: %v", err)
	} else if *repetitionsPtr <= 0 {
		log.Fatalf("repetitions must be positive: %v", *repetitionsPtr)
	}

	results := make([]BenchmarkResult, 0, len(scenarios)*len(model.TestOrders))
	bar := progressbar.NewOptions(len(scenarios)*len(model.TestOrders),
		progressbar.OptionSetDescription(color.CyanString("Benchmarking: ")),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
	)

	for _, scenario := range scenarios {
		table, err := generator.Generate(scenario)
		if err != nil {
			log.Fatalf("cannot generate scenario %v: %v", scenario, err)
		}
		index := model.NewEnrollmentIndex(table)
		greedyBound := model.GreedyBound(index)

		for _, order := range model.TestOrders {
			bar.Describe(color.CyanString("Benchmarking: ") + fmt.Sprintf("%dx%dx%d %v", scenario.Students, scenario.Tests, scenario.TestsPerStudent, order))

			result := measure(index, order, *repetitionsPtr)
			result.Scenario = scenario
			result.GreedyBound = greedyBound
			results = append(results, result)

			bar.Add(1)
		}
	}

	if err := toCsv(results, *outPtr); err != nil {
		log.Fatalf("cannot write benchmark results: %v", err)
	}
	color.Green("✓ %d results written to %s", len(results), *outPtr)
}

func measure(index model.EnrollmentIndex, order model.TestOrder, repetitions int) BenchmarkResult {
	partitioner := model.NewGreedyPartitioner(order)
	result := BenchmarkResult{
		Order:    order,
		Tests:    index.Len(),
		Duration: -1,
	}

	for range repetitions {
		var before, after runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&before)

		start := time.Now()
		schedule := partitioner.Partition(index)
		duration := time.Since(start).Milliseconds()

		runtime.ReadMemStats(&after)

		if result.Duration < 0 || duration < result.Duration {
			result.Duration = duration
			result.Memory = float32(after.TotalAlloc-before.TotalAlloc) / MB
		}
		result.Groupings = len(schedule)
		result.Result = lo.Ternary(partitioner.Verify(schedule, index), verified, invalid)
	}

	return result
}

// Parses "17000x750x4,1000x50x2" into generator parameters sharing the same seed
func parseScenarios(scenariosStr string, seed uint64) ([]generator.Parameters, error) {
	scenarios := make([]generator.Parameters, 0)
	for _, scenarioStr := range strings.Split(scenariosStr, ",") {
		scenarioStr = strings.TrimSpace(scenarioStr)
		if scenarioStr == "" {
			continue
		}

		parts := strings.Split(strings.ToLower(scenarioStr), "x")
		if len(parts) != 3 {
			return nil, fmt.Errorf("scenario %q must be shaped as STUDENTSxTESTSxPER_STUDENT", scenarioStr)
		}

		sizes := make([]int, len(parts))
		for i, part := range parts {
			size, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", scenarioStr, err)
			}
			sizes[i] = size
		}

		scenario := generator.Parameters{Students: sizes[0], Tests: sizes[1], TestsPerStudent: sizes[2], Seed: seed}
		if err := scenario.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenarioStr, err)
		}
		scenarios = append(scenarios, scenario)
	}

	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios given")
	}
	return scenarios, nil
}

func toCsv(results []BenchmarkResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Students", "Tests", "TestsPerStudent", "Seed", "Order", "IndexedTests", "Groupings", "GreedyBound", "Duration(ms)", "Memory(MB)", "Result"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("cannot write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{
			fmt.Sprintf("%d", result.Scenario.Students),
			fmt.Sprintf("%d", result.Scenario.Tests),
			fmt.Sprintf("%d", result.Scenario.TestsPerStudent),
			fmt.Sprintf("%d", result.Scenario.Seed),
			string(result.Order),
			fmt.Sprintf("%d", result.Tests),
			fmt.Sprintf("%d", result.Groupings),
			fmt.Sprintf("%d", result.GreedyBound),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("cannot flush CSV file: %w", err)
	}
	return file.Close()
}
