package model

type predicateEvaluator interface {
	// Checks whether the test may be held in the given period
	Allowed(test string, period uint64) bool

	// Checks whether every test of the grouping may be held in the given period
	GroupingAllowed(grouping Grouping, period uint64) bool
}
