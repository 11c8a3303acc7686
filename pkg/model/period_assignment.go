package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type Period struct {
	Id   uint64
	Name string
}

type PeriodInput struct {
	Periods      []Period
	Restrictions map[string][]uint64 // Allowed periods per test; tests without an entry may be held in any period
}

type rawPeriodInput struct {
	Periods      []string            `mapstructure:"periods"`
	Restrictions map[string][]uint64 `mapstructure:"restrictions"`
}

type unassignableError struct {
	groupings int
	periods   int
}

func (err unassignableError) Error() string {
	return fmt.Sprintf("cannot assign %d groupings to %d periods: not every grouping can be given a distinct allowed period", err.groupings, err.periods)
}

// PeriodsFromJson decodes a document shaped as {"periods": ["Mon AM", "Mon PM"], "restrictions": {"12": [0]}}
func PeriodsFromJson(file string) (PeriodInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return PeriodInput{}, fmt.Errorf("cannot read periods file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return PeriodInput{}, fmt.Errorf("cannot parse periods file: %w", err)
	}

	var rawInput rawPeriodInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.DecodeHookFuncType(periodIdHook),
		ErrorUnused: true,
		Result:      &rawInput,
	})
	if err != nil {
		return PeriodInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return PeriodInput{}, fmt.Errorf("cannot decode periods file: %w", err)
	}

	return NewPeriodInput(rawInput.Periods, rawInput.Restrictions)
}

// JSON numbers reach mapstructure as float64, which it would otherwise truncate into a period id
func periodIdHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 || to.Kind() != reflect.Uint64 {
		return data, nil
	}
	period := data.(float64)
	if period < 0 || period != math.Trunc(period) || math.IsInf(period, 0) {
		return nil, fmt.Errorf("%v is not a valid period id", period)
	}
	return uint64(period), nil
}

func NewPeriodInput(names []string, restrictions map[string][]uint64) (PeriodInput, error) {
	periods := lo.Map(names, func(name string, i int) Period {
		return Period{Id: uint64(i), Name: name}
	})

	for test, allowed := range restrictions {
		if period, found := lo.Find(allowed, func(period uint64) bool { return period >= uint64(len(periods)) }); found {
			return PeriodInput{}, fmt.Errorf("test \"%v\" is restricted to period %d, but only %d periods exist", test, period, len(periods))
		}
	}

	if restrictions == nil {
		restrictions = make(map[string][]uint64)
	}

	return PeriodInput{
		Periods:      periods,
		Restrictions: restrictions,
	}, nil
}

// AssignPeriods gives every grouping of the schedule a distinct period allowed by all of its tests.
// The i-th element of the result is the period id of the i-th grouping
func AssignPeriods(schedule Schedule, periodInput PeriodInput) ([]uint64, error) {
	if len(schedule) == 0 {
		return []uint64{}, nil
	} else if len(schedule) > len(periodInput.Periods) {
		return nil, unassignableError{groupings: len(schedule), periods: len(periodInput.Periods)}
	}

	evaluator := newPredicateEvaluator(periodInput)

	// Build neighbors predicate based on permissibility
	neighbors := func(groupingAny any, periodAny any) (bool, error) {
		grouping := groupingAny.(int)
		period := periodAny.(uint64)

		return evaluator.GroupingAllowed(schedule[grouping], period), nil
	}

	// Transform groupings and periods to slices of any
	groupingsAny := lo.Map(lo.Range(len(schedule)), func(grouping int, _ int) any { return grouping })
	periodsAny := lo.Map(periodInput.Periods, func(period Period, _ int) any { return period.Id })

	graph, err := bipartitegraph.NewBipartiteGraph(groupingsAny, periodsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	// Check the matching covers every grouping
	if len(matching) < len(schedule) {
		return nil, unassignableError{groupings: len(schedule), periods: len(periodInput.Periods)}
	}

	assignment := make([]uint64, len(schedule))
	for _, edge := range matching {
		groupingIndex, periodIndex := edge.Node1, edge.Node2-len(schedule)
		assignment[groupingIndex] = periodInput.Periods[periodIndex].Id
	}

	return assignment, nil
}
