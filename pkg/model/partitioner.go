package model

// Grouping is a set of pairwise non-conflicting tests sharing one time slot. Tests are kept in placement order
type Grouping []string

// Schedule is the ordered sequence of groupings covering every indexed test exactly once
type Schedule []Grouping

type Partitioner interface {
	Partition(index EnrollmentIndex) Schedule

	Verify(schedule Schedule, index EnrollmentIndex) bool
}
