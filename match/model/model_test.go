package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakdownDimensionsInEvaluationOrder(t *testing.T) {
	b := Breakdown{Skills: 67, Experience: 50, Location: 100, Salary: 80}

	dims := b.Dimensions()
	assert.Equal(t, []Dimension{DimensionSkills, DimensionExperience, DimensionLocation, DimensionSalary}, dims)

	scores := make([]int, 0, len(dims))
	for _, d := range dims {
		scores = append(scores, b.Get(d))
	}
	assert.Equal(t, []int{67, 50, 100, 80}, scores)

	dims[0] = DimensionSalary
	assert.Equal(t, DimensionSkills, b.Dimensions()[0])
	assert.Equal(t, DimensionSkills, Dimensions[0])
}
