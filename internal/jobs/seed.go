package jobs

import "wevolve-backend/match/normalize"

// SeedPostings are loaded into the in-memory store for local development.
func SeedPostings() []normalize.RawPosting {
	return []normalize.RawPosting{
		{
			JobID:              "101",
			Title:              "Frontend Developer",
			Company:            "PixelCraft",
			Location:           "Bangalore",
			ExperienceRequired: &normalize.RawRange{Min: 1, Max: 3},
			SalaryRange:        []any{600000, 1000000},
			RequiredSkills:     []string{"React", "JavaScript", "CSS", "HTML"},
		},
		{
			JobID:              "102",
			Title:              "Backend Engineer",
			Company:            "Cloudline",
			Location:           "Pune",
			ExperienceRequired: &normalize.RawRange{Min: 2, Max: 5},
			SalaryRange:        []any{800000, 1400000},
			RequiredSkills:     []string{"Python", "Django", "PostgreSQL", "Docker"},
		},
		{
			JobID:              "103",
			Title:              "Full Stack Engineer",
			Company:            "Wevolve Labs",
			Location:           "Remote",
			ExperienceRequired: &normalize.RawRange{Min: 2, Max: 6},
			SalaryRange:        []any{900000, 1600000},
			RequiredSkills:     []string{"React", "Node.js", "MongoDB", "AWS"},
		},
		{
			JobID:              "104",
			Title:              "Data Scientist",
			Company:            "InsightWorks",
			Location:           "Hyderabad",
			ExperienceRequired: &normalize.RawRange{Min: 3, Max: 7},
			SalaryRange:        []any{1200000, 2200000},
			RequiredSkills:     []string{"Python", "Machine Learning", "SQL", "Pandas"},
		},
		{
			JobID:              "105",
			Title:              "DevOps Engineer",
			Company:            "Stackforge",
			Location:           "Delhi",
			ExperienceRequired: &normalize.RawRange{Min: 4, Max: 8},
			SalaryRange:        []any{1400000, 2400000},
			RequiredSkills:     []string{"Kubernetes", "Docker", "AWS", "Terraform", "Go"},
		},
		{
			JobID:              "106",
			Title:              "Junior Go Developer",
			Company:            "Gopherhouse",
			Location:           "Remote - India",
			ExperienceRequired: &normalize.RawRange{Min: 0, Max: 2},
			SalaryRange:        []any{400000, 800000},
			RequiredSkills:     []string{"Go", "SQL", "Git"},
		},
	}
}
