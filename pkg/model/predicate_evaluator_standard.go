package model

import (
	"github.com/samber/lo"
)

type predicateEvaluatorStandard struct {
	allowed map[string]map[uint64]bool // Allowed periods per restricted test
}

func newPredicateEvaluator(periodInput PeriodInput) predicateEvaluator {
	evaluator := predicateEvaluatorStandard{
		allowed: make(map[string]map[uint64]bool, len(periodInput.Restrictions)),
	}

	for test, periods := range periodInput.Restrictions {
		evaluator.allowed[test] = lo.SliceToMap(periods, func(period uint64) (uint64, bool) {
			return period, true
		})
	}

	return &evaluator
}

func (evaluator *predicateEvaluatorStandard) Allowed(test string, period uint64) bool {
	allowed, restricted := evaluator.allowed[test]
	// Unrestricted tests may be held in any period
	return !restricted || allowed[period]
}

func (evaluator *predicateEvaluatorStandard) GroupingAllowed(grouping Grouping, period uint64) bool {
	return lo.EveryBy(grouping, func(test string) bool {
		return evaluator.Allowed(test, period)
	})
}
