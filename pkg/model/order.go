package model

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
)

// TestOrder fixes the order in which the partitioner's worklist enumerates the tests. A given input and order always yield the same schedule
type TestOrder string

const (
	// Tests in order of first appearance in the enrollment table
	InsertionOrder TestOrder = "insertion"
	// Numeric identifiers ascending, followed by the remaining identifiers in lexicographic order
	SortedOrder TestOrder = "sorted"
	// Descending conflict degree, ties broken by first appearance (Welsh-Powell)
	DegreeOrder TestOrder = "degree"
)

var TestOrders = []TestOrder{InsertionOrder, SortedOrder, DegreeOrder}

func ParseTestOrder(name string) (TestOrder, error) {
	order := TestOrder(strings.ToLower(strings.TrimSpace(name)))
	if order == "" {
		return InsertionOrder, nil
	}
	if !slices.Contains(TestOrders, order) {
		return "", fmt.Errorf("%v is not a valid test order: allowed values are %v", name, TestOrders)
	}
	return order, nil
}

// Enumerates the index's tests according to order
func (order TestOrder) Arrange(index EnrollmentIndex) []string {
	tests := index.Tests()

	switch order {
	case InsertionOrder, "":
	case SortedOrder:
		slices.SortStableFunc(tests, compareIdentifiers)
	case DegreeOrder:
		degrees := ConflictDegrees(index)
		slices.SortStableFunc(tests, func(test1, test2 string) int {
			return cmp.Compare(degrees[test2], degrees[test1])
		})
	default:
		log.Panicf("unknown test order %q", string(order))
	}

	return tests
}

func compareIdentifiers(identifier1, identifier2 string) int {
	number1, err1 := strconv.ParseUint(identifier1, 10, 64)
	number2, err2 := strconv.ParseUint(identifier2, 10, 64)

	switch {
	case err1 == nil && err2 == nil:
		if c := cmp.Compare(number1, number2); c != 0 {
			return c
		}
		return strings.Compare(identifier1, identifier2) // "01" and "1"
	case err1 == nil:
		return -1
	case err2 == nil:
		return 1
	default:
		return strings.Compare(identifier1, identifier2)
	}
}
