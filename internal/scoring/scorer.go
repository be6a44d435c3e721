// Package scoring converts extracted resume signals into per-criterion scores
// and a weighted total, and ranks batches of candidates.
package scoring

import (
	"strings"

	"github.com/adeolu/candidate-ranker/internal/config"
	"github.com/adeolu/candidate-ranker/internal/models"
)

// A skill set of ten or more terms earns the full base score.
const skillSetTarget = 10.0

// Each matched required skill adds this on top of the base score.
const requiredSkillBonus = 0.2

// Fixed score for any experience text carrying an indicator word. Duration
// parsing never shipped; this stands in for "some experience".
const experiencePlaceholderScore = 0.7

// Scorer computes deterministic criterion scores. It holds only fixed
// configuration, so one instance can serve any number of parallel callers.
type Scorer struct {
	tiers      []config.EducationTier
	indicators []string
}

// NewScorer creates a scorer with the given education tier table (most senior
// tier first) and experience indicator words.
func NewScorer(tiers []config.EducationTier, indicators []string) *Scorer {
	lowered := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		lowered = append(lowered, strings.ToLower(ind))
	}
	return &Scorer{tiers: tiers, indicators: lowered}
}

// SkillsScore scores a skill set in [0,1]. The base score grows linearly with
// the number of skills and caps at 1.0; every required-skill match adds a
// fixed bonus, with the sum capped at 1.0 again.
func (s *Scorer) SkillsScore(skills []string, required []string) float64 {
	if len(skills) == 0 {
		return 0.0
	}

	requiredSet := make(map[string]struct{}, len(required))
	for _, r := range required {
		requiredSet[strings.ToLower(r)] = struct{}{}
	}

	matched := 0
	for _, skill := range skills {
		if _, ok := requiredSet[strings.ToLower(skill)]; ok {
			matched++
		}
	}

	base := float64(len(skills)) / skillSetTarget
	if base > 1.0 {
		base = 1.0
	}

	score := base + float64(matched)*requiredSkillBonus
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// EducationScore scores the education sentences by qualification tier. The
// tiers are tested in order and the first match wins, so with the table sorted
// most-senior-first a resume mentioning both "bachelor" and "phd" scores at
// the doctorate tier.
func (s *Scorer) EducationScore(education []string) float64 {
	if len(education) == 0 {
		return 0.0
	}

	text := strings.ToLower(strings.Join(education, " "))
	for _, tier := range s.tiers {
		for _, term := range tier.Terms {
			if strings.Contains(text, strings.ToLower(term)) {
				return tier.Score
			}
		}
	}
	return 0.0
}

// ExperienceScore scores the experience statement: empty text scores zero, any
// text containing an indicator word scores the fixed placeholder value.
func (s *Scorer) ExperienceScore(experience string) float64 {
	if experience == "" {
		return 0.0
	}

	lowered := strings.ToLower(experience)
	for _, ind := range s.indicators {
		if strings.Contains(lowered, ind) {
			return experiencePlaceholderScore
		}
	}
	return 0.0
}

// ScoreCandidate computes the breakdown and weighted total for one profile and
// writes them onto it. The total is not clamped: weights that do not sum to 1
// produce totals outside [0,1], which is the caller's contract to manage.
// Scoring never fails; empty signals yield zero scores.
func (s *Scorer) ScoreCandidate(profile *models.CandidateProfile, criteria models.RankingCriteria) *models.CandidateProfile {
	data := profile.ExtractedData

	breakdown := map[string]float64{
		models.CriterionSkills:     s.SkillsScore(data.Skills, criteria.RequiredSkills),
		models.CriterionEducation:  s.EducationScore(data.Education),
		models.CriterionExperience: s.ExperienceScore(data.Experience),
	}

	profile.ScoreBreakdown = breakdown
	profile.Score = breakdown[models.CriterionSkills]*criteria.SkillsWeight +
		breakdown[models.CriterionEducation]*criteria.EducationWeight +
		breakdown[models.CriterionExperience]*criteria.ExperienceWeight

	return profile
}
