// Package model defines the values exchanged with the compatibility engine.
package model

// Dimension names one scored axis of compatibility.
type Dimension string

const (
	DimensionSkills     Dimension = "skills"
	DimensionExperience Dimension = "experience"
	DimensionLocation   Dimension = "location"
	DimensionSalary     Dimension = "salary"
)

// Dimensions lists every dimension in evaluation order. The same order is the
// tie-break precedence used when naming the weakest dimension.
var Dimensions = []Dimension{
	DimensionSkills,
	DimensionExperience,
	DimensionLocation,
	DimensionSalary,
}

// Education is profile metadata; it does not contribute to the composite score.
type Education struct {
	Degree string  `json:"degree"`
	Field  string  `json:"field"`
	CGPA   float64 `json:"cgpa"`
}

// CandidateProfile is a normalized candidate profile.
// Sets are kept as slices ordered by first occurrence so output is deterministic.
type CandidateProfile struct {
	Skills             []string  `json:"skills"`
	ExperienceYears    float64   `json:"experience_years"`
	Education          Education `json:"education"`
	PreferredLocations []string  `json:"preferred_locations"`
	PreferredRoles     []string  `json:"preferred_roles"`
	ExpectedSalary     float64   `json:"expected_salary"`
}

// Range is an inclusive numeric interval with Min <= Max.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// JobPosting is a normalized job posting.
type JobPosting struct {
	JobID              string   `json:"job_id"`
	Title              string   `json:"title"`
	Company            string   `json:"company"`
	Location           string   `json:"location"`
	ExperienceRequired Range    `json:"experience_required"`
	SalaryRange        Range    `json:"salary_range"`
	RequiredSkills     []string `json:"required_skills"`
}

// Breakdown holds one percentage per dimension. Field order is evaluation
// order, which keeps the JSON key order stable.
type Breakdown struct {
	Skills     int `json:"skills"`
	Experience int `json:"experience"`
	Location   int `json:"location"`
	Salary     int `json:"salary"`
}

// Get returns the score recorded for d, or 0 for an unknown dimension.
func (b Breakdown) Get(d Dimension) int {
	switch d {
	case DimensionSkills:
		return b.Skills
	case DimensionExperience:
		return b.Experience
	case DimensionLocation:
		return b.Location
	case DimensionSalary:
		return b.Salary
	default:
		return 0
	}
}

// Dimensions returns the dimensions of b in evaluation order. The slice is a
// fresh copy and may be modified by the caller.
func (b Breakdown) Dimensions() []Dimension {
	return append([]Dimension(nil), Dimensions...)
}

// MatchResult is the engine output for one candidate/posting pair.
type MatchResult struct {
	MatchScore           int       `json:"match_score"`
	RecommendationReason string    `json:"recommendation_reason"`
	MissingSkills        []string  `json:"missing_skills"`
	Breakdown            Breakdown `json:"breakdown"`
}
