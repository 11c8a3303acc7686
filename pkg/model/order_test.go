package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTestOrder(t *testing.T) {
	scenarios := map[string]TestOrder{
		"":          InsertionOrder,
		"insertion": InsertionOrder,
		" Sorted ":  SortedOrder,
		"DEGREE":    DegreeOrder,
	}

	for name, expected := range scenarios {
		order, err := ParseTestOrder(name)
		require.NoError(t, err)
		assert.Equal(t, expected, order)
	}

	_, err := ParseTestOrder("random")
	assert.Error(t, err)
}

func TestArrange(t *testing.T) {
	// Arrange
	table := EnrollmentTable{
		{"10", "b"},
		{"2", "a", "10"},
		{"01", "1"},
		{"10", "c"},
	}
	index := NewEnrollmentIndex(table)

	t.Run("Insertion", func(t *testing.T) {
		assert.Equal(t, []string{"10", "b", "2", "a", "01", "1", "c"}, InsertionOrder.Arrange(index))
	})

	t.Run("Sorted", func(t *testing.T) {
		assert.Equal(t, []string{"01", "1", "2", "10", "a", "b", "c"}, SortedOrder.Arrange(index))
	})

	t.Run("Degree", func(t *testing.T) {
		// Degrees: 10 -> 4 (b, 2, a, c), 2 -> 2, a -> 2, 01 -> 1, 1 -> 1, b -> 1, c -> 1
		assert.Equal(t, []string{"10", "2", "a", "b", "01", "1", "c"}, DegreeOrder.Arrange(index))
	})

	t.Run("Arrangement does not alter the index", func(t *testing.T) {
		SortedOrder.Arrange(index)
		assert.Equal(t, []string{"10", "b", "2", "a", "01", "1", "c"}, index.Tests())
	})

	t.Run("Unknown order panics", func(t *testing.T) {
		assert.PanicsWithValue(t, `unknown test order "random"`, func() { TestOrder("random").Arrange(index) })
	})
}
