// Package explain derives the gap analysis and the recommendation text for a
// scored candidate/posting pair.
package explain

import (
	"fmt"

	"wevolve-backend/match/model"
)

// Explain returns the required skills the candidate lacks, in the posting's
// declared order, and the recommendation for matchScore.
func Explain(profile model.CandidateProfile, posting model.JobPosting, breakdown model.Breakdown, matchScore int) ([]string, string) {
	missing := MissingSkills(profile, posting)
	if len(posting.RequiredSkills) == 0 {
		return missing, genericReason(TierFor(matchScore))
	}
	return missing, Reason(breakdown, matchScore)
}

// MissingSkills is posting.RequiredSkills minus profile.Skills. The result is
// never nil.
func MissingSkills(profile model.CandidateProfile, posting model.JobPosting) []string {
	have := make(map[string]struct{}, len(profile.Skills))
	for _, s := range profile.Skills {
		have[s] = struct{}{}
	}
	missing := make([]string, 0, len(posting.RequiredSkills))
	emitted := make(map[string]struct{}, len(posting.RequiredSkills))
	for _, s := range posting.RequiredSkills {
		if _, ok := have[s]; ok {
			continue
		}
		if _, dup := emitted[s]; dup {
			continue
		}
		emitted[s] = struct{}{}
		missing = append(missing, s)
	}
	return missing
}

// Reason picks the tier text and names the weakest dimension where the tier
// calls for one.
func Reason(breakdown model.Breakdown, matchScore int) string {
	switch TierFor(matchScore) {
	case TierExcellent:
		return excellentReason
	case TierGood:
		dim, ok := Lowest(breakdown, model.DimensionExperience, model.DimensionLocation, model.DimensionSalary)
		if !ok || breakdown.Get(dim) >= 100 {
			dim = model.DimensionSkills
		}
		return fmt.Sprintf(goodReason, dim)
	case TierModerate:
		dim, _ := Lowest(breakdown, model.Dimensions...)
		return fmt.Sprintf(moderateReason, dim)
	default:
		dim, _ := Lowest(breakdown, model.Dimensions...)
		switch {
		case dim == model.DimensionSkills:
			return lowSkillsReason
		case breakdown.Skills >= 100:
			return fmt.Sprintf(lowPlainReason, dim)
		default:
			return fmt.Sprintf(lowReason, dim)
		}
	}
}

// Lowest returns the lowest-scoring of candidates. Ties go to the candidate
// listed first, so callers pass dimensions in precedence order.
func Lowest(breakdown model.Breakdown, candidates ...model.Dimension) (model.Dimension, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	best := candidates[0]
	for _, d := range candidates[1:] {
		if breakdown.Get(d) < breakdown.Get(best) {
			best = d
		}
	}
	return best, true
}

func genericReason(tier Tier) string {
	switch tier {
	case TierExcellent:
		return excellentReason
	case TierGood:
		return goodGenericReason
	case TierModerate:
		return moderateGenericReason
	default:
		return lowGenericReason
	}
}
