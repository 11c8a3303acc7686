package model

import (
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyPartition(t *testing.T) {
	t.Run("No conflicts", func(t *testing.T) {
		// Arrange
		index := NewEnrollmentIndex(EnrollmentTable{{"1"}, {"2"}, {"3"}})
		partitioner := NewGreedyPartitioner(InsertionOrder)

		// Act
		schedule := partitioner.Partition(index)

		// Assert
		require.Len(t, schedule, 1)
		assert.ElementsMatch(t, []string{"1", "2", "3"}, schedule[0])
		assert.True(t, partitioner.Verify(schedule, index))
	})

	t.Run("Total conflict (triangle)", func(t *testing.T) {
		// Arrange
		index := NewEnrollmentIndex(EnrollmentTable{{"1", "2"}, {"2", "3"}, {"3", "1"}})
		partitioner := NewGreedyPartitioner(InsertionOrder)

		// Act
		schedule := partitioner.Partition(index)

		// Assert
		assert.Equal(t, Schedule{{"1"}, {"2"}, {"3"}}, schedule)
		assert.True(t, partitioner.Verify(schedule, index))
	})

	t.Run("Empty input", func(t *testing.T) {
		// Arrange
		index := NewEnrollmentIndex(EnrollmentTable{})
		partitioner := NewGreedyPartitioner(InsertionOrder)

		// Act
		schedule := partitioner.Partition(index)

		// Assert
		assert.NotNil(t, schedule)
		assert.Empty(t, schedule)
		assert.True(t, partitioner.Verify(schedule, index))
	})

	t.Run("Scan continues after a placement", func(t *testing.T) {
		// Arrange: a-b and c-d conflict, so the first round takes a and c, the second one b and d
		index := NewEnrollmentIndex(EnrollmentTable{{"a", "b"}, {"c", "d"}})
		partitioner := NewGreedyPartitioner(InsertionOrder)

		// Act
		schedule := partitioner.Partition(index)

		// Assert
		assert.Equal(t, Schedule{{"a", "c"}, {"b", "d"}}, schedule)
	})

	t.Run("Order changes the outcome", func(t *testing.T) {
		// Arrange: the path x-y-z-w. Insertion order (y, x, z, w) needs 2 groupings, sorted order (w, x, y, z) needs 3
		index := NewEnrollmentIndex(EnrollmentTable{{"y", "x"}, {"y", "z"}, {"w", "z"}})

		// Act
		insertion := NewGreedyPartitioner(InsertionOrder).Partition(index)
		sorted := NewGreedyPartitioner(SortedOrder).Partition(index)

		// Assert
		assert.Equal(t, Schedule{{"y", "w"}, {"x", "z"}}, insertion)
		assert.Equal(t, Schedule{{"w", "x"}, {"y"}, {"z"}}, sorted)
	})
}

func TestGreedyPartitionProperties(t *testing.T) {
	for _, order := range TestOrders {
		t.Run(string(order), func(t *testing.T) {
			for range 10 {
				// Arrange
				students := rand.IntN(2000) + 1
				tests := rand.IntN(150) + 1
				index := NewEnrollmentIndex(randomTable(students, tests, rand.IntN(5)+1))
				partitioner := NewGreedyPartitioner(order)

				// Act
				schedule := partitioner.Partition(index)

				// Assert
				// Coverage: every indexed test exactly once
				placed := lo.Flatten(lo.Map(schedule, func(grouping Grouping, _ int) []string { return grouping }))
				assert.ElementsMatch(t, index.Tests(), placed)

				// Conflict-freedom
				for _, grouping := range schedule {
					for i := range grouping {
						for j := i + 1; j < len(grouping); j++ {
							assert.False(t, index.Conflict(grouping[i], grouping[j]))
						}
					}
				}

				// Greedy bound
				assert.LessOrEqual(t, len(schedule), GreedyBound(index))

				assert.True(t, partitioner.Verify(schedule, index))

				// Reproducibility for a fixed order
				assert.Equal(t, schedule, partitioner.Partition(index))
			}
		})
	}
}

func TestVerify(t *testing.T) {
	// Arrange
	index := NewEnrollmentIndex(EnrollmentTable{{"1", "2"}, {"3"}})

	scenarios := []struct {
		name     string
		schedule Schedule
		valid    bool
	}{
		{name: "Valid", schedule: Schedule{{"1", "3"}, {"2"}}, valid: true},
		{name: "Conflicting grouping", schedule: Schedule{{"1", "2"}, {"3"}}},
		{name: "Missing test", schedule: Schedule{{"1", "3"}}},
		{name: "Duplicated across groupings", schedule: Schedule{{"1", "3"}, {"2", "3"}}},
		{name: "Duplicated within grouping", schedule: Schedule{{"1", "3", "3"}, {"2"}}},
		{name: "Unknown test", schedule: Schedule{{"1", "3"}, {"2"}, {"4"}}},
		{name: "Empty grouping", schedule: Schedule{{"1", "3"}, {}, {"2"}}},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			assert.Equal(t, scenario.valid, verify(scenario.schedule, index))
		})
	}
}

func TestConflictDegrees(t *testing.T) {
	// Arrange
	index := NewEnrollmentIndex(EnrollmentTable{{"1", "2"}, {"2", "3"}, {"3", "1"}, {"4"}, {"1", "2"}})

	// Act
	degrees := ConflictDegrees(index)

	// Assert
	assert.Equal(t, map[string]int{"1": 2, "2": 2, "3": 2, "4": 0}, degrees)
	assert.Equal(t, 2, MaxConflictDegree(index))
	assert.Equal(t, 3, GreedyBound(index))
	assert.Equal(t, 0, GreedyBound(NewEnrollmentIndex(EnrollmentTable{})))
}

func BenchmarkGreedyPartition(b *testing.B) {
	index := NewEnrollmentIndex(randomTable(17000, 750, 4))
	for _, order := range TestOrders {
		b.Run(string(order), func(b *testing.B) {
			partitioner := NewGreedyPartitioner(order)
			for b.Loop() {
				partitioner.Partition(index)
			}
		})
	}
}
