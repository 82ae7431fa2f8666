package domain

// Gym is an entry in the grade taxonomy: a gym identity together with
// its ordered set of valid grade labels. The taxonomy is static
// reference data; it determines both form validity and the derived
// climb type.
type Gym struct {
	Name   string
	Grades []string
}

// HasGrade reports whether the grade label belongs to this gym's set.
func (g Gym) HasGrade(grade string) bool {
	for _, label := range g.Grades {
		if label == grade {
			return true
		}
	}
	return false
}
