package score

import (
	"fmt"
	"math"

	"wevolve-backend/match/model"
)

// Default dimension weights. They sum to 1.0; changing any of them changes
// every composite score the service reports.
const (
	SkillsWeight     = 0.40
	ExperienceWeight = 0.25
	LocationWeight   = 0.15
	SalaryWeight     = 0.20
)

const weightTolerance = 1e-9

// Weights maps each dimension to its share of the composite score.
type Weights struct {
	Skills     float64
	Experience float64
	Location   float64
	Salary     float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:     SkillsWeight,
		Experience: ExperienceWeight,
		Location:   LocationWeight,
		Salary:     SalaryWeight,
	}
}

// Of returns the weight assigned to d.
func (w Weights) Of(d model.Dimension) float64 {
	switch d {
	case model.DimensionSkills:
		return w.Skills
	case model.DimensionExperience:
		return w.Experience
	case model.DimensionLocation:
		return w.Location
	case model.DimensionSalary:
		return w.Salary
	default:
		return 0
	}
}

// Validate checks that every weight is non-negative and that they sum to 1.
func (w Weights) Validate() error {
	total := 0.0
	for _, d := range model.Dimensions {
		v := w.Of(d)
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight for %s must be non-negative, got %v", d, v)
		}
		total += v
	}
	if math.Abs(total-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %.6f", total)
	}
	return nil
}
