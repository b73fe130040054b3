package normalize

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// RawEducation mirrors model.Education before coercion.
type RawEducation struct {
	Degree any `json:"degree" mapstructure:"degree"`
	Field  any `json:"field" mapstructure:"field"`
	CGPA   any `json:"cgpa" mapstructure:"cgpa"`
}

// RawProfile is a candidate profile as received at the boundary. String sets
// may be comma-delimited text or lists; numbers may be strings or numbers.
type RawProfile struct {
	Skills             any           `json:"skills" mapstructure:"skills"`
	ExperienceYears    any           `json:"experience_years" mapstructure:"experience_years"`
	Education          *RawEducation `json:"education" mapstructure:"education"`
	Degree             any           `json:"degree" mapstructure:"degree"`
	Field              any           `json:"field" mapstructure:"field"`
	CGPA               any           `json:"cgpa" mapstructure:"cgpa"`
	PreferredLocations any           `json:"preferred_locations" mapstructure:"preferred_locations"`
	PreferredRoles     any           `json:"preferred_roles" mapstructure:"preferred_roles"`
	ExpectedSalary     any           `json:"expected_salary" mapstructure:"expected_salary"`
}

// RawRange is an experience range before coercion.
type RawRange struct {
	Min any `json:"min" mapstructure:"min"`
	Max any `json:"max" mapstructure:"max"`
}

// RawPosting is a job posting as received at the boundary.
type RawPosting struct {
	JobID              any       `json:"job_id" mapstructure:"job_id"`
	Title              any       `json:"title" mapstructure:"title"`
	Company            any       `json:"company" mapstructure:"company"`
	Location           any       `json:"location" mapstructure:"location"`
	ExperienceRequired *RawRange `json:"experience_required" mapstructure:"experience_required"`
	SalaryRange        any       `json:"salary_range" mapstructure:"salary_range"`
	RequiredSkills     any       `json:"required_skills" mapstructure:"required_skills"`
}

// DecodeProfile decodes a loosely typed map (a parsed JSON or YAML document)
// into a RawProfile. Unknown keys are ignored.
func DecodeProfile(input map[string]any) (RawProfile, error) {
	var raw RawProfile
	if err := decode(input, &raw); err != nil {
		return RawProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return raw, nil
}

// DecodePosting decodes a loosely typed map into a RawPosting.
func DecodePosting(input map[string]any) (RawPosting, error) {
	var raw RawPosting
	if err := decode(input, &raw); err != nil {
		return RawPosting{}, fmt.Errorf("decode posting: %w", err)
	}
	return raw, nil
}

func decode(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
