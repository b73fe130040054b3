// Package normalize canonicalizes raw profile and posting fields into the
// comparable sets and ranges the scorers consume.
package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"wevolve-backend/match/model"
)

const maxCGPA = 10

// Normalize canonicalizes both sides of a match. The first invalid field
// aborts normalization; nothing partial is returned.
func Normalize(profile RawProfile, posting RawPosting) (model.CandidateProfile, model.JobPosting, error) {
	p, err := NormalizeProfile(profile)
	if err != nil {
		return model.CandidateProfile{}, model.JobPosting{}, err
	}
	j, err := NormalizePosting(posting)
	if err != nil {
		return model.CandidateProfile{}, model.JobPosting{}, err
	}
	return p, j, nil
}

// NormalizeProfile validates and canonicalizes a candidate profile.
func NormalizeProfile(raw RawProfile) (model.CandidateProfile, error) {
	skills, err := RequiredStringSet("skills", raw.Skills)
	if err != nil {
		return model.CandidateProfile{}, err
	}
	locations, err := StringSet("preferred_locations", raw.PreferredLocations)
	if err != nil {
		return model.CandidateProfile{}, err
	}
	roles, err := StringSet("preferred_roles", raw.PreferredRoles)
	if err != nil {
		return model.CandidateProfile{}, err
	}
	years, err := requiredNonNegative("experience_years", raw.ExperienceYears)
	if err != nil {
		return model.CandidateProfile{}, err
	}
	salary, err := requiredNonNegative("expected_salary", raw.ExpectedSalary)
	if err != nil {
		return model.CandidateProfile{}, err
	}
	edu, err := normalizeEducation(raw)
	if err != nil {
		return model.CandidateProfile{}, err
	}

	return model.CandidateProfile{
		Skills:             skills,
		ExperienceYears:    years,
		Education:          edu,
		PreferredLocations: locations,
		PreferredRoles:     roles,
		ExpectedSalary:     salary,
	}, nil
}

// NormalizePosting validates and canonicalizes a job posting.
func NormalizePosting(raw RawPosting) (model.JobPosting, error) {
	jobID, err := Text("job_id", raw.JobID)
	if err != nil {
		return model.JobPosting{}, err
	}
	if jobID == "" {
		return model.JobPosting{}, model.NewValidationError("job_id", "is required")
	}
	title, err := Text("title", raw.Title)
	if err != nil {
		return model.JobPosting{}, err
	}
	company, err := Text("company", raw.Company)
	if err != nil {
		return model.JobPosting{}, err
	}
	location, err := Text("location", raw.Location)
	if err != nil {
		return model.JobPosting{}, err
	}
	skills, err := RequiredStringSet("required_skills", raw.RequiredSkills)
	if err != nil {
		return model.JobPosting{}, err
	}

	if raw.ExperienceRequired == nil {
		return model.JobPosting{}, model.NewValidationError("experience_required", "is required")
	}
	experience, err := normalizeRange("experience_required", raw.ExperienceRequired.Min, raw.ExperienceRequired.Max)
	if err != nil {
		return model.JobPosting{}, err
	}

	bounds, err := pair("salary_range", raw.SalaryRange)
	if err != nil {
		return model.JobPosting{}, err
	}
	salary, err := normalizeRange("salary_range", bounds[0], bounds[1])
	if err != nil {
		return model.JobPosting{}, err
	}

	return model.JobPosting{
		JobID:              jobID,
		Title:              title,
		Company:            company,
		Location:           canonical(location),
		ExperienceRequired: experience,
		SalaryRange:        salary,
		RequiredSkills:     skills,
	}, nil
}

// StringSet lower-cases, trims, comma-splits and deduplicates v. Accepted
// shapes are nil, a string, a []string or a []any of strings. Order of first
// occurrence is kept.
func StringSet(field string, v any) ([]string, error) {
	out, _, err := stringSet(field, v)
	return out, err
}

// RequiredStringSet is StringSet for skill fields. An absent value or an
// empty list is the empty set, but text that holds no token after trimming
// (" , ") is rejected.
func RequiredStringSet(field string, v any) ([]string, error) {
	out, parts, err := stringSet(field, v)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 && parts > 0 {
		return nil, model.NewValidationError(field, "must name at least one skill")
	}
	return out, nil
}

func stringSet(field string, v any) ([]string, int, error) {
	var parts []string
	switch t := v.(type) {
	case nil:
	case string:
		parts = strings.Split(t, ",")
	case []string:
		for _, s := range t {
			parts = append(parts, strings.Split(s, ",")...)
		}
	case []any:
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, 0, model.NewValidationError(fmt.Sprintf("%s[%d]", field, i), "must be a string")
			}
			parts = append(parts, strings.Split(s, ",")...)
		}
	default:
		return nil, 0, model.NewValidationError(field, "must be a string or a list of strings")
	}

	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		token := canonical(part)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out, len(parts), nil
}

// Text coerces v to a trimmed string. Numeric ids are formatted without a
// trailing fraction.
func Text(field string, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(t), nil
	case json.Number:
		return t.String(), nil
	default:
		n, ok := toFloat(v)
		if !ok {
			return "", model.NewValidationError(field, "must be a string")
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
}

// Number coerces v to a finite float64. A nil value reports ok=false.
func Number(field string, v any) (value float64, ok bool, err error) {
	if v == nil {
		return 0, false, nil
	}
	if s, isString := v.(string); isString {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		n, parseErr := strconv.ParseFloat(s, 64)
		if parseErr != nil {
			return 0, false, model.NewValidationError(field, fmt.Sprintf("%q is not a number", s))
		}
		v = n
	}
	n, isNumber := toFloat(v)
	if !isNumber {
		return 0, false, model.NewValidationError(field, "must be a number")
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false, model.NewValidationError(field, "must be a finite number")
	}
	return n, true, nil
}

func canonical(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func requiredNonNegative(field string, v any) (float64, error) {
	n, ok, err := Number(field, v)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, model.NewValidationError(field, "is required")
	}
	if n < 0 {
		return 0, model.NewValidationError(field, "must not be negative")
	}
	return n, nil
}

func normalizeRange(field string, rawMin, rawMax any) (model.Range, error) {
	lo, err := requiredNonNegative(field+".min", rawMin)
	if err != nil {
		return model.Range{}, err
	}
	hi, err := requiredNonNegative(field+".max", rawMax)
	if err != nil {
		return model.Range{}, err
	}
	if lo > hi {
		return model.Range{}, model.NewValidationError(field, fmt.Sprintf("min %s exceeds max %s", formatNumber(lo), formatNumber(hi)))
	}
	return model.Range{Min: lo, Max: hi}, nil
}

func pair(field string, v any) ([2]any, error) {
	var items []any
	switch t := v.(type) {
	case nil:
		return [2]any{}, model.NewValidationError(field, "is required")
	case []any:
		items = t
	case []float64:
		for _, f := range t {
			items = append(items, f)
		}
	case []int:
		for _, i := range t {
			items = append(items, i)
		}
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case model.Range:
		return [2]any{t.Min, t.Max}, nil
	default:
		return [2]any{}, model.NewValidationError(field, "must be a [min, max] pair")
	}
	if len(items) != 2 {
		return [2]any{}, model.NewValidationError(field, fmt.Sprintf("must have exactly 2 elements, got %d", len(items)))
	}
	return [2]any{items[0], items[1]}, nil
}

func normalizeEducation(raw RawProfile) (model.Education, error) {
	degree, field, cgpa := raw.Degree, raw.Field, raw.CGPA
	if raw.Education != nil {
		degree, field, cgpa = raw.Education.Degree, raw.Education.Field, raw.Education.CGPA
	}

	var edu model.Education
	var err error
	if edu.Degree, err = Text("education.degree", degree); err != nil {
		return model.Education{}, err
	}
	if edu.Field, err = Text("education.field", field); err != nil {
		return model.Education{}, err
	}
	n, ok, err := Number("education.cgpa", cgpa)
	if err != nil {
		return model.Education{}, err
	}
	if ok {
		if n < 0 || n > maxCGPA {
			return model.Education{}, model.NewValidationError("education.cgpa", "must be between 0 and 10")
		}
		edu.CGPA = n
	}
	return edu, nil
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
