package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/limaJavier/examscheduling/pkg/generator"
	"github.com/limaJavier/examscheduling/pkg/model"
	"github.com/mitchellh/mapstructure"
)

// Config holds the harness settings: synthetic input sizes and how schedules are ordered and reported
type Config struct {
	// Generator settings
	Students        int    `mapstructure:"students"`
	Tests           int    `mapstructure:"tests"`
	TestsPerStudent int    `mapstructure:"testsPerStudent"`
	Seed            uint64 `mapstructure:"seed"`

	// Scheduling settings
	Order string `mapstructure:"order"`

	// Output settings
	Preview int    `mapstructure:"preview"`
	Format  string `mapstructure:"format"`
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		Students:        DefaultStudents,
		Tests:           DefaultTests,
		TestsPerStudent: DefaultTestsPerStudent,
		Order:           DefaultOrder,
		Preview:         DefaultPreview,
		Format:          DefaultFormat,
	}
}

// Load reads a config.json file on top of the defaults. An empty path yields the defaults
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}

	// Keys absent from the file keep their default value
	if err := mapstructure.Decode(inputJson, cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv loads envFile (if it exists) into the process environment and applies the EXAMSCHED_* overrides
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot load env file: %w", err)
		}
	}

	for variable, target := range map[string]*int{
		envStudents:        &c.Students,
		envTests:           &c.Tests,
		envTestsPerStudent: &c.TestsPerStudent,
		envPreview:         &c.Preview,
	} {
		if value := os.Getenv(variable); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid %v: %w", variable, err)
			}
			*target = parsed
		}
	}

	if value := os.Getenv(envSeed); value != "" {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %v: %w", envSeed, err)
		}
		c.Seed = seed
	}
	if value := os.Getenv(envOrder); value != "" {
		c.Order = value
	}
	if value := os.Getenv(envFormat); value != "" {
		c.Format = value
	}

	return nil
}

func (c *Config) Validate() error {
	errs := []error{c.GeneratorParameters().Validate()}
	if _, err := c.TestOrder(); err != nil {
		errs = append(errs, err)
	}
	if c.Preview < 0 {
		errs = append(errs, fmt.Errorf("preview must not be negative: %v", c.Preview))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Format)) {
		errs = append(errs, fmt.Errorf("%v is not a valid format: allowed values are %v", c.Format, validFormats))
	}
	return errors.Join(errs...)
}

// GeneratorParameters returns the synthetic input sizes
func (c *Config) GeneratorParameters() generator.Parameters {
	return generator.Parameters{
		Students:        c.Students,
		Tests:           c.Tests,
		TestsPerStudent: c.TestsPerStudent,
		Seed:            c.Seed,
	}
}

func (c *Config) TestOrder() (model.TestOrder, error) {
	return model.ParseTestOrder(c.Order)
}
