package model

import "github.com/samber/lo"

type greedyPartitioner struct {
	order TestOrder
}

// NewGreedyPartitioner returns a first-fit partitioner: each round scans the remaining tests once, in the given order,
// and places every test that does not conflict with the ones already placed in the round
func NewGreedyPartitioner(order TestOrder) Partitioner {
	return &greedyPartitioner{
		order: order,
	}
}

func (partitioner *greedyPartitioner) Partition(index EnrollmentIndex) Schedule {
	//** Initialize worklist
	remaining := partitioner.order.Arrange(index)

	schedule := make(Schedule, 0)
	for len(remaining) > 0 {
		grouping := make(Grouping, 0)

		// Rejected tests are compacted in place; the write position never overtakes the read position
		rejected := remaining[:0]
		for _, test := range remaining {
			if lo.SomeBy(grouping, func(placed string) bool { return index.Conflict(test, placed) }) {
				rejected = append(rejected, test)
				continue
			}
			grouping = append(grouping, test)
		}

		remaining = rejected
		schedule = append(schedule, grouping) // The first scanned test always fits, so every round shrinks the worklist
	}

	return schedule
}

func (partitioner *greedyPartitioner) Verify(schedule Schedule, index EnrollmentIndex) bool {
	return verify(schedule, index)
}
