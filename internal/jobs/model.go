package jobs

import "wevolve-backend/match/model"

// View is the JSON shape of a posting. salary_range is a [min, max] pair.
type View struct {
	JobID              string      `json:"job_id"`
	Title              string      `json:"title"`
	Company            string      `json:"company"`
	Location           string      `json:"location"`
	ExperienceRequired model.Range `json:"experience_required"`
	SalaryRange        [2]float64  `json:"salary_range"`
	RequiredSkills     []string    `json:"required_skills"`
}

// ToView renders a posting for clients.
func ToView(p model.JobPosting) View {
	skills := p.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return View{
		JobID:              p.JobID,
		Title:              p.Title,
		Company:            p.Company,
		Location:           p.Location,
		ExperienceRequired: p.ExperienceRequired,
		SalaryRange:        [2]float64{p.SalaryRange.Min, p.SalaryRange.Max},
		RequiredSkills:     skills,
	}
}

// ToViews renders postings in order.
func ToViews(postings []model.JobPosting) []View {
	out := make([]View, 0, len(postings))
	for _, p := range postings {
		out = append(out, ToView(p))
	}
	return out
}
