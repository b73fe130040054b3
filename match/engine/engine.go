// Package engine runs the compatibility pipeline: normalize, score each
// dimension, aggregate, explain.
//
// Composite weights are skills 0.40, experience 0.25, location 0.15 and
// salary 0.20 (see score.DefaultWeights). Recommendation tiers start at 80
// (excellent), 60 (good) and 40 (moderate); see explain.TierFor.
//
// An Engine holds no mutable state and is safe for concurrent use.
package engine

import (
	"fmt"

	"wevolve-backend/match/explain"
	"wevolve-backend/match/model"
	"wevolve-backend/match/normalize"
	"wevolve-backend/match/score"
)

// Engine scores one candidate against one posting.
type Engine struct {
	weights score.Weights
}

// Option configures an Engine.
type Option func(*Engine) error

// WithWeights overrides the composite weights. Intended for calibration runs,
// not for request-time configuration.
func WithWeights(w score.Weights) Option {
	return func(e *Engine) error {
		if err := w.Validate(); err != nil {
			return err
		}
		e.weights = w
		return nil
	}
}

// New builds an Engine with the default weights unless overridden.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{weights: score.DefaultWeights()}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("configure engine: %w", err)
		}
	}
	return e, nil
}

// Default returns an Engine with the production weights.
func Default() *Engine {
	return &Engine{weights: score.DefaultWeights()}
}

// Weights reports the weights the engine aggregates with.
func (e *Engine) Weights() score.Weights {
	return e.weights
}

// Score computes the result for an already normalized pair.
func (e *Engine) Score(profile model.CandidateProfile, posting model.JobPosting) model.MatchResult {
	breakdown := score.Breakdown(profile, posting)
	composite := score.Aggregate(breakdown, e.weights)
	missing, reason := explain.Explain(profile, posting, breakdown, composite)
	return model.MatchResult{
		MatchScore:           composite,
		RecommendationReason: reason,
		MissingSkills:        missing,
		Breakdown:            breakdown,
	}
}

// Evaluate normalizes raw input and scores it. A validation failure returns
// the error and a zero result.
func (e *Engine) Evaluate(profile normalize.RawProfile, posting normalize.RawPosting) (model.MatchResult, error) {
	p, j, err := normalize.Normalize(profile, posting)
	if err != nil {
		return model.MatchResult{}, err
	}
	return e.Score(p, j), nil
}
