// Package score computes the per-dimension percentages and the weighted
// composite. Every function here is pure and total over normalized input.
package score

import (
	"math"
	"strings"
	"unicode"

	"wevolve-backend/match/model"
)

const remoteToken = "remote"

// Breakdown runs every dimension scorer.
func Breakdown(profile model.CandidateProfile, posting model.JobPosting) model.Breakdown {
	return model.Breakdown{
		Skills:     Skills(profile, posting),
		Experience: Experience(profile, posting),
		Location:   Location(profile, posting),
		Salary:     Salary(profile, posting),
	}
}

// Skills is the share of required skills the candidate has. A posting with no
// required skills scores 100.
func Skills(profile model.CandidateProfile, posting model.JobPosting) int {
	required := posting.RequiredSkills
	if len(required) == 0 {
		return 100
	}
	have := toSet(profile.Skills)
	matched := 0
	seen := make(map[string]struct{}, len(required))
	for _, skill := range required {
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		if _, ok := have[skill]; ok {
			matched++
		}
	}
	return percent(float64(matched), float64(len(seen)))
}

// Experience is 100 at or above the required minimum. Below it the score
// falls off linearly to 0. Over-qualification is not penalized.
func Experience(profile model.CandidateProfile, posting model.JobPosting) int {
	years := profile.ExperienceYears
	minYears := posting.ExperienceRequired.Min
	if years >= minYears || minYears <= 0 {
		return 100
	}
	return percent(years, minYears)
}

// Location is binary: 100 when the posting location is one of the
// candidate's preferred locations or either side is remote, otherwise 0.
// A posting location such as "Bangalore, India" also matches a preference
// equal to one of its comma-separated parts.
func Location(profile model.CandidateProfile, posting model.JobPosting) int {
	jobLocation := strings.ToLower(strings.TrimSpace(posting.Location))
	if hasToken(jobLocation, remoteToken) {
		return 100
	}
	jobParts := locationParts(jobLocation)
	for _, preferred := range profile.PreferredLocations {
		preferred = strings.ToLower(strings.TrimSpace(preferred))
		if hasToken(preferred, remoteToken) {
			return 100
		}
		if preferred == "" {
			continue
		}
		if preferred == jobLocation {
			return 100
		}
		for _, part := range jobParts {
			if preferred == part {
				return 100
			}
		}
	}
	return 0
}

func locationParts(location string) []string {
	if !strings.Contains(location, ",") {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(location, ",") {
		if part = strings.Join(strings.Fields(part), " "); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Salary is 100 while the expectation fits under the budget ceiling. Above it
// the score is the ratio of the ceiling to the expectation.
func Salary(profile model.CandidateProfile, posting model.JobPosting) int {
	expected := profile.ExpectedSalary
	ceiling := posting.SalaryRange.Max
	if expected <= ceiling {
		return 100
	}
	return percent(ceiling, expected)
}

// Aggregate combines a breakdown into the composite score using w.
func Aggregate(b model.Breakdown, w Weights) int {
	total := 0.0
	for _, d := range b.Dimensions() {
		total += float64(b.Get(d)) * w.Of(d)
	}
	return Clamp(int(math.Round(total)))
}

// Clamp bounds v to [0, 100].
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func percent(num, den float64) int {
	if den <= 0 {
		return 0
	}
	ratio := num / den
	if math.IsNaN(ratio) || ratio <= 0 {
		return 0
	}
	return Clamp(int(math.Round(100 * ratio)))
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func hasToken(s, token string) bool {
	if s == "" {
		return false
	}
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if field == token {
			return true
		}
	}
	return false
}
