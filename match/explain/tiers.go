package explain

// Score-tier lower bounds, inclusive.
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
	ModerateThreshold  = 40
)

// Tier is the recommendation band a composite score falls into.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierModerate  Tier = "moderate"
	TierLow       Tier = "low"
)

// TierFor maps a composite score to its tier.
func TierFor(matchScore int) Tier {
	switch {
	case matchScore >= ExcellentThreshold:
		return TierExcellent
	case matchScore >= GoodThreshold:
		return TierGood
	case matchScore >= ModerateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

const (
	excellentReason = "Excellent match — your profile strongly aligns with this role."
	goodReason      = "Good match — minor gaps in %s."
	moderateReason  = "Moderate match — consider improving %s."
	lowReason       = "Low match — significant gaps in %s, particularly skills."
	lowSkillsReason = "Low match — significant gaps in skills."
	lowPlainReason  = "Low match — significant gaps in %s."

	goodGenericReason     = "Good match — your profile fits most requirements of this role."
	moderateGenericReason = "Moderate match — your profile partially fits this role."
	lowGenericReason      = "Low match — your profile does not fit this role well."
)
