package model

// EnrollmentIndex maps every test identifier to the ascending set of entities enrolled in it. It's built once and never mutated afterwards
type EnrollmentIndex interface {
	// Returns the test identifiers in order of first appearance in the enrollment table
	Tests() []string
	// Returns the strictly ascending entity indices enrolled in test (nil if test is not indexed). The slice is owned by the index and must not be modified
	Entities(test string) []uint64
	// Checks whether test is present in the index
	Contains(test string) bool
	// Checks whether test1 and test2 share at least one enrolled entity. Both tests must be indexed
	Conflict(test1, test2 string) bool
	// Number of distinct tests
	Len() int
	// Number of distinct (entity, test) pairs
	Entries() int
}

func NewEnrollmentIndex(table EnrollmentTable) EnrollmentIndex {
	index := &indexerImplementation{
		entities: make(map[string][]uint64),
		tests:    make([]string, 0),
	}

	for i, record := range table {
		entity := uint64(i)
		for _, test := range record {
			entities, ok := index.entities[test]
			if !ok {
				index.tests = append(index.tests, test)
			}
			// Entities are visited in ascending order, so a repeated test within the same record can only clash with the last element
			if len(entities) > 0 && entities[len(entities)-1] == entity {
				continue
			}
			index.entities[test] = append(entities, entity)
			index.entries++
		}
	}

	return index
}
