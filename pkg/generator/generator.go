// Package generator creates synthetic enrollment tables: every student draws a fixed number of tests uniformly at random (with replacement)
package generator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/limaJavier/examscheduling/pkg/model"
)

type Parameters struct {
	Students        int
	Tests           int
	TestsPerStudent int
	Seed            uint64
}

func (params Parameters) Validate() error {
	var errs []error
	if params.Students < 0 {
		errs = append(errs, fmt.Errorf("students must not be negative: %v", params.Students))
	}
	if params.Tests <= 0 {
		errs = append(errs, fmt.Errorf("tests must be positive: %v", params.Tests))
	}
	if params.TestsPerStudent <= 0 {
		errs = append(errs, fmt.Errorf("tests per student must be positive: %v", params.TestsPerStudent))
	}
	return errors.Join(errs...)
}

// Generate builds a table of params.Students records. Equal parameters (seed included) always produce the same table
func Generate(params Parameters) (model.EnrollmentTable, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	random := rand.New(rand.NewPCG(params.Seed, params.Seed^0x9e3779b97f4a7c15))

	table := make(model.EnrollmentTable, params.Students)
	for student := range table {
		record := make(model.EnrollmentRecord, params.TestsPerStudent)
		for i := range record {
			record[i] = strconv.Itoa(random.IntN(params.Tests))
		}
		table[student] = record
	}

	return table, nil
}

// Encode writes the table in the line-oriented text format understood by model.ParseEnrollment
func Encode(writer io.Writer, table model.EnrollmentTable) error {
	buffered := bufio.NewWriter(writer)
	for _, record := range table {
		if err := EncodeRecord(buffered, record); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

func EncodeRecord(writer io.Writer, record model.EnrollmentRecord) error {
	if _, err := io.WriteString(writer, strings.Join(record, " ")+"\n"); err != nil {
		return fmt.Errorf("cannot write enrollment record: %w", err)
	}
	return nil
}
