package service

import (
	"strings"

	"github.com/msomdec/crag-log/internal/domain"
)

// sportPrefix marks roped-climbing grades (the "5." family). Everything
// else in a gym's grade set is a boulder grade.
const sportPrefix = "5."

// Taxonomy is the static gym → ordered grade set mapping. Lookups fail
// closed: an unrecognized gym is an error, never a stale grade list.
type Taxonomy struct {
	gyms []domain.Gym
}

// NewTaxonomy creates the taxonomy over the built-in gym list.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{gyms: defaultGyms}
}

// Gyms returns all known gyms in display order.
func (t *Taxonomy) Gyms() []domain.Gym {
	return t.gyms
}

// GradesFor returns the ordered grade set for a gym, or ErrUnknownGym.
func (t *Taxonomy) GradesFor(gymName string) ([]string, error) {
	for _, g := range t.gyms {
		if g.Name == gymName {
			return g.Grades, nil
		}
	}
	return nil, domain.ErrUnknownGym
}

// HasGrade reports whether the grade belongs to the gym's set. Unknown
// gyms have no grades.
func (t *Taxonomy) HasGrade(gymName, grade string) bool {
	grades, err := t.GradesFor(gymName)
	if err != nil {
		return false
	}
	for _, g := range grades {
		if g == grade {
			return true
		}
	}
	return false
}

// ClimbTypeFor derives the climb type from a grade label.
func ClimbTypeFor(grade string) domain.ClimbType {
	if strings.HasPrefix(grade, sportPrefix) {
		return domain.ClimbTypeSport
	}
	return domain.ClimbTypeBoulder
}

var ropeAndBoulderGrades = []string{
	"5.6", "5.7", "5.8", "5.9", "5.10-", "5.10+", "5.11-", "5.11+", "5.12-", "5.12+",
	"VB", "V1-2", "V2-3", "V4-5", "V5-6", "V7-8", "V9-10", "V11",
}

var boulderOnlyGrades = []string{
	"VB", "V1-2", "V2-3", "V4-5", "V5-6", "V7-8", "V9-10", "V11",
}

var colorGrades = []string{
	"Yellow", "Red", "Green", "Purple", "Orange", "Black", "Blue", "Pink", "White",
}

var defaultGyms = []domain.Gym{
	{Name: "VE Minneapolis", Grades: ropeAndBoulderGrades},
	{Name: "VE Bloomington", Grades: ropeAndBoulderGrades},
	{Name: "VE St.Paul", Grades: ropeAndBoulderGrades},
	{Name: "VE TCB", Grades: boulderOnlyGrades},
	{Name: "MBP", Grades: colorGrades},
}
