package model

import (
	"github.com/samber/lo"
)

func verify(schedule Schedule, index EnrollmentIndex) bool {
	placed := make(map[string]bool, index.Len())

	for _, grouping := range schedule {
		if len(grouping) == 0 {
			return false
		}

		for i, test := range grouping {
			// Check that:
			// - Test is indexed
			// - Test is not placed twice (within the grouping or across groupings)
			// - Test does not conflict with any test placed before it in the same grouping
			if !index.Contains(test) ||
				placed[test] ||
				lo.SomeBy(grouping[:i], func(other string) bool { return index.Conflict(test, other) }) {
				return false
			}
			placed[test] = true
		}
	}

	// Every indexed test must be covered
	return len(placed) == index.Len()
}

// ConflictDegrees returns, for every test, the number of distinct tests it conflicts with
func ConflictDegrees(index EnrollmentIndex) map[string]int {
	tests := index.Tests()

	//** Invert index (entity -> tests)
	testsPerEntity := make(map[uint64][]string)
	for _, test := range tests {
		for _, entity := range index.Entities(test) {
			testsPerEntity[entity] = append(testsPerEntity[entity], test)
		}
	}

	//** Count distinct neighbors
	degrees := make(map[string]int, len(tests))
	for _, test := range tests {
		neighbors := make(map[string]bool)
		for _, entity := range index.Entities(test) {
			for _, neighbor := range testsPerEntity[entity] {
				if neighbor != test {
					neighbors[neighbor] = true
				}
			}
		}
		degrees[test] = len(neighbors)
	}

	return degrees
}

func MaxConflictDegree(index EnrollmentIndex) int {
	return lo.Max(lo.Values(ConflictDegrees(index)))
}

// GreedyBound is the largest number of groupings any first-fit partition of index can produce
func GreedyBound(index EnrollmentIndex) int {
	if index.Len() == 0 {
		return 0
	}
	return MaxConflictDegree(index) + 1
}
