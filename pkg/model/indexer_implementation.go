package model

import (
	"log"
	"slices"
)

type indexerImplementation struct {
	entities map[string][]uint64
	tests    []string
	entries  int
}

func (index *indexerImplementation) Tests() []string {
	return slices.Clone(index.tests)
}

func (index *indexerImplementation) Entities(test string) []uint64 {
	return index.entities[test]
}

func (index *indexerImplementation) Contains(test string) bool {
	_, ok := index.entities[test]
	return ok
}

func (index *indexerImplementation) Conflict(test1, test2 string) bool {
	entities1, ok := index.entities[test1]
	if !ok {
		log.Panicf("test \"%v\" is not present in the enrollment index", test1)
	}
	entities2, ok := index.entities[test2]
	if !ok {
		log.Panicf("test \"%v\" is not present in the enrollment index", test2)
	}
	return intersects(entities1, entities2)
}

func (index *indexerImplementation) Len() int {
	return len(index.tests)
}

func (index *indexerImplementation) Entries() int {
	return index.entries
}

// Merge-scans two strictly ascending sequences and reports whether they share an element
func intersects(entities1, entities2 []uint64) bool {
	i, j := 0, 0
	for i < len(entities1) && j < len(entities2) {
		if entities1[i] < entities2[j] {
			i++
		} else if entities2[j] < entities1[i] {
			j++
		} else {
			return true
		}
	}
	return false
}
