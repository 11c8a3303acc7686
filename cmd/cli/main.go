package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/limaJavier/examscheduling/pkg/config"
	"github.com/limaJavier/examscheduling/pkg/generator"
	"github.com/limaJavier/examscheduling/pkg/model"
	"github.com/limaJavier/examscheduling/pkg/report"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type Flags struct {
	ConfigPath      string
	EnvFile         string
	File            string
	PeriodsFile     string
	Out             string
	Format          string
	Order           string
	Preview         int
	Students        int
	Tests           int
	TestsPerStudent int
	Seed            uint64
}

var (
	version = "dev"
	flags   Flags
	rootCmd = &cobra.Command{
		Use:   "examsched",
		Short: "Greedy exam scheduler",
		Long: `Groups tests into the fewest practical time slots such that no student
takes two tests of the same slot (first-fit greedy coloring of the conflict graph).`,
		Version:      version,
		SilenceUsage: true,
	}
	scheduleCmd = &cobra.Command{
		Use:   "schedule",
		Short: "Partition the tests of an enrollment file into non-conflicting groupings",
		Long: `Reads one line per student with whitespace-separated test identifiers (or a JSON
document with a "records" array) and prints the resulting schedule. Without --file a
synthetic enrollment is generated from the configured sizes.`,
		RunE: runSchedule,
	}
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic enrollment file",
		RunE:  runGenerate,
	}
)

func init() {
	// Root cmd
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to a config.json file")
	rootCmd.PersistentFlags().StringVar(&flags.EnvFile, "env", config.DefaultEnvFile, "Path to a dotenv file with EXAMSCHED_* overrides")
	registerGeneratorFlags(rootCmd)

	// Schedule cmd
	scheduleCmd.Flags().StringVarP(&flags.File, "file", "f", "", "Path to the enrollment file (.txt or .json)")
	scheduleCmd.Flags().StringVarP(&flags.PeriodsFile, "periods", "p", "", "Path to a JSON file with the available exam periods")
	scheduleCmd.Flags().StringVarP(&flags.Out, "out", "o", "", "Path to the file where the schedule will be written; if empty, it'll be written into the Standard Output")
	scheduleCmd.Flags().StringVar(&flags.Format, "format", config.DefaultFormat, `Schedule document format: "json" or "yaml"`)
	scheduleCmd.Flags().StringVar(&flags.Order, "order", config.DefaultOrder, `Worklist order: "insertion", "sorted" or "degree"`)
	scheduleCmd.Flags().IntVar(&flags.Preview, "preview", config.DefaultPreview, "Number of groupings shown in the summary")

	// Generate cmd
	generateCmd.Flags().StringVarP(&flags.Out, "out", "o", "", "Path to the enrollment file to write")
	generateCmd.MarkFlagRequired("out")
}

func registerGeneratorFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVar(&flags.Students, "students", config.DefaultStudents, "Number of synthetic students")
	cmd.PersistentFlags().IntVar(&flags.Tests, "tests", config.DefaultTests, "Number of distinct synthetic tests")
	cmd.PersistentFlags().IntVar(&flags.TestsPerStudent, "per-student", config.DefaultTestsPerStudent, "Number of tests drawn per synthetic student")
	cmd.PersistentFlags().Uint64Var(&flags.Seed, "seed", 0, "Seed of the synthetic generator")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers config.json, the dotenv overrides and finally the explicitly set flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(flags.EnvFile); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("students") {
		cfg.Students = flags.Students
	}
	if changed("tests") {
		cfg.Tests = flags.Tests
	}
	if changed("per-student") {
		cfg.TestsPerStudent = flags.TestsPerStudent
	}
	if changed("seed") {
		cfg.Seed = flags.Seed
	}
	if changed("order") {
		cfg.Order = flags.Order
	}
	if changed("preview") {
		cfg.Preview = flags.Preview
	}
	if changed("format") {
		cfg.Format = flags.Format
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	order := lo.Must(cfg.TestOrder()) // Validated by loadConfig

	//** Extract input
	var table model.EnrollmentTable
	testsPerStudent := 0
	if flags.File != "" {
		table, err = model.EnrollmentFromFile(flags.File)
		if err != nil {
			return fmt.Errorf("cannot parse input file: %w", err)
		}
	} else {
		table, err = generator.Generate(cfg.GeneratorParameters())
		if err != nil {
			return err
		}
		testsPerStudent = cfg.TestsPerStudent
	}

	var periodInput model.PeriodInput
	if flags.PeriodsFile != "" {
		periodInput, err = model.PeriodsFromJson(flags.PeriodsFile)
		if err != nil {
			return err
		}
	}

	//** Build schedule
	index := model.NewEnrollmentIndex(table)
	partitioner := model.NewGreedyPartitioner(order)

	start := time.Now()
	schedule := partitioner.Partition(index)
	duration := time.Since(start)

	// Verify schedule correctness
	if !partitioner.Verify(schedule, index) {
		return errors.New("schedule verification failed")
	}

	//** Assign periods
	var periodNames []string
	if flags.PeriodsFile != "" {
		assignment, err := model.AssignPeriods(schedule, periodInput)
		if err != nil {
			return err
		}
		periodNames = lo.Map(assignment, func(period uint64, _ int) string {
			return periodInput.Periods[period].Name
		})
	}

	//** Report
	// The summary moves to the Standard Error when the document takes the Standard Output
	var summaryWriter io.Writer = os.Stdout
	if flags.Out == "" {
		summaryWriter = os.Stderr
	}
	summary := report.NewSummary(index, schedule, order, duration, len(table))
	summary.TestsPerStudent = testsPerStudent
	report.PrintSummary(summaryWriter, summary, schedule, cfg.Preview)

	document := report.NewDocument(schedule, order, periodNames)
	if err := report.Write(document, cfg.Format, flags.Out, os.Stdout); err != nil {
		return fmt.Errorf("an error occurred while writing the schedule: %w", err)
	}
	if flags.Out != "" {
		color.Green("✓ Schedule written to %s", flags.Out)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	table, err := generator.Generate(cfg.GeneratorParameters())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flags.Out), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.Create(flags.Out)
	if err != nil {
		return fmt.Errorf("cannot create enrollment file: %w", err)
	}
	defer file.Close()

	bar := progressbar.NewOptions(len(table),
		progressbar.OptionSetDescription(color.CyanString("Writing students: ")),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)

	writer := bufio.NewWriter(file)
	for _, record := range table {
		if err := generator.EncodeRecord(writer, record); err != nil {
			return err
		}
		bar.Add(1)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("cannot write enrollment file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("cannot close enrollment file: %w", err)
	}

	color.Green("✓ Generated %d students (%d tests, %d per student) into %s", cfg.Students, cfg.Tests, cfg.TestsPerStudent, flags.Out)
	return nil
}
