package config

const (
	// DefaultStudents is the number of synthetic students generated when none is configured
	DefaultStudents = 17000
	// DefaultTests is the number of distinct synthetic tests
	DefaultTests = 750
	// DefaultTestsPerStudent is the number of tests drawn for every synthetic student
	DefaultTestsPerStudent = 4
	// DefaultOrder is the worklist enumeration order
	DefaultOrder = "insertion"
	// DefaultPreview is the number of groupings printed by the console report
	DefaultPreview = 3
	// DefaultFormat is the schedule document format
	DefaultFormat = "json"
	// DefaultEnvFile is the dotenv file read for overrides
	DefaultEnvFile = ".env"
)

var validFormats = []string{"json", "yaml"}

// Environment variables overriding the configuration
const (
	envStudents        = "EXAMSCHED_STUDENTS"
	envTests           = "EXAMSCHED_TESTS"
	envTestsPerStudent = "EXAMSCHED_TESTS_PER_STUDENT"
	envSeed            = "EXAMSCHED_SEED"
	envOrder           = "EXAMSCHED_ORDER"
	envPreview         = "EXAMSCHED_PREVIEW"
	envFormat          = "EXAMSCHED_FORMAT"
)
