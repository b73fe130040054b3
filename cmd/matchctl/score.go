package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wevolve-backend/match/engine"
	"wevolve-backend/match/model"
	"wevolve-backend/match/normalize"
	"wevolve-backend/match/score"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a candidate profile against a job posting",
	Long:  "Score reads a profile and a posting from JSON or YAML files and prints the match result as JSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		jobPath, _ := cmd.Flags().GetString("job")
		weights := score.DefaultWeights()
		weights.Skills, _ = cmd.Flags().GetFloat64("skills-weight")
		weights.Experience, _ = cmd.Flags().GetFloat64("experience-weight")
		weights.Location, _ = cmd.Flags().GetFloat64("location-weight")
		weights.Salary, _ = cmd.Flags().GetFloat64("salary-weight")
		return runScore(cmd.OutOrStdout(), profilePath, jobPath, weights)
	},
}

func init() {
	scoreCmd.Flags().String("profile", "", "Path to the candidate profile (JSON or YAML)")
	scoreCmd.Flags().String("job", "", "Path to the job posting (JSON or YAML)")
	scoreCmd.Flags().Float64("skills-weight", score.SkillsWeight, "Composite weight of the skills dimension")
	scoreCmd.Flags().Float64("experience-weight", score.ExperienceWeight, "Composite weight of the experience dimension")
	scoreCmd.Flags().Float64("location-weight", score.LocationWeight, "Composite weight of the location dimension")
	scoreCmd.Flags().Float64("salary-weight", score.SalaryWeight, "Composite weight of the salary dimension")
	_ = scoreCmd.MarkFlagRequired("profile")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(out io.Writer, profilePath, jobPath string, weights score.Weights) error {
	eng, err := engine.New(engine.WithWeights(weights))
	if err != nil {
		return err
	}

	profileDoc, err := readDocument(profilePath)
	if err != nil {
		return err
	}
	jobDoc, err := readDocument(jobPath)
	if err != nil {
		return err
	}
	profile, err := normalize.DecodeProfile(profileDoc)
	if err != nil {
		return err
	}
	posting, err := normalize.DecodePosting(jobDoc)
	if err != nil {
		return err
	}

	result, err := eng.Evaluate(profile, posting)
	if err != nil {
		if ve, ok := model.AsValidationError(err); ok {
			return fmt.Errorf("invalid input: %s", ve.Error())
		}
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// readDocument loads a JSON or YAML file, chosen by extension.
func readDocument(path string) (map[string]any, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return v.AllSettings(), nil
}
