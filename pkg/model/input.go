package model

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// EnrollmentRecord holds the tests taken by one entity (e.g. a student). The entity's index is the record's position in the table
type EnrollmentRecord []string

type EnrollmentTable []EnrollmentRecord

type rawEnrollmentInput struct {
	Records [][]any `mapstructure:"records"`
}

// ParseError reports the first malformed record found while loading an enrollment table
type ParseError struct {
	Line   int
	Token  string
	Reason string
}

func (err *ParseError) Error() string {
	if err.Line == 0 {
		return err.Reason
	}
	if err.Token == "" {
		return fmt.Sprintf("line %d: %v", err.Line, err.Reason)
	}
	return fmt.Sprintf("line %d: token %q: %v", err.Line, err.Token, err.Reason)
}

// Loads an enrollment table from a file, choosing the decoder by its extension (".json" or plain text)
func EnrollmentFromFile(file string) (EnrollmentTable, error) {
	if strings.EqualFold(filepath.Ext(file), ".json") {
		return EnrollmentFromJson(file)
	}
	return EnrollmentFromText(file)
}

func EnrollmentFromText(file string) (EnrollmentTable, error) {
	reader, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open enrollment file: %w", err)
	}
	defer reader.Close()

	return ParseEnrollment(reader)
}

// ParseEnrollment reads one record per line, each one made of whitespace-separated test identifiers.
// Ingestion stops at the first blank line or malformed token
func ParseEnrollment(reader io.Reader) (EnrollmentTable, error) {
	table := make(EnrollmentTable, 0)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024) // Records may be long when a student takes many tests

	line := 0
	for scanner.Scan() {
		line++
		record, err := parseRecord(line, strings.Fields(scanner.Text()))
		if err != nil {
			return nil, err
		}
		table = append(table, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read enrollment input at line %d: %w", line+1, err)
	}

	return table, nil
}

// EnrollmentFromJson decodes a document shaped as {"records": [["1", "2"], [2, 3]]}. Integral JSON numbers are accepted and turned into strings
func EnrollmentFromJson(file string) (EnrollmentTable, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read enrollment file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, fmt.Errorf("cannot parse enrollment file: %w", err)
	}
	if records, found := inputJson["records"]; !found || records == nil {
		return nil, &ParseError{Reason: `missing "records" array`}
	}

	var rawInput rawEnrollmentInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &rawInput,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return nil, fmt.Errorf("cannot decode enrollment records: %w", err)
	}

	table := make(EnrollmentTable, 0, len(rawInput.Records))
	for i, values := range rawInput.Records {
		tokens := make([]string, len(values))
		for j, value := range values {
			token, ok := jsonIdentifier(value)
			if !ok {
				return nil, &ParseError{Line: i + 1, Token: fmt.Sprint(value), Reason: "not a string or an integral number"}
			}
			tokens[j] = token
		}

		record, err := parseRecord(i+1, tokens)
		if err != nil {
			return nil, err
		}
		table = append(table, record)
	}

	return table, nil
}

// Only strings and integral numbers name a test; booleans, objects and fractions are rejected
func jsonIdentifier(value any) (string, bool) {
	switch value := value.(type) {
	case string:
		return value, true
	case float64:
		if value != math.Trunc(value) || math.IsInf(value, 0) {
			return "", false
		}
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return "", false
	}
}

func parseRecord(line int, tokens []string) (EnrollmentRecord, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Line: line, Reason: "empty record"}
	}

	if token, found := lo.Find(tokens, func(token string) bool { return !validIdentifier(token) }); found {
		return nil, &ParseError{Line: line, Token: token, Reason: "not a valid test identifier"}
	}

	return EnrollmentRecord(tokens), nil
}

// Identifiers are opaque, but restricted to letters, digits and "_.:-"
func validIdentifier(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("_.:-", r) {
			return false
		}
	}
	return true
}
