package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeolu/candidate-ranker/internal/config"
	"github.com/adeolu/candidate-ranker/internal/models"
)

func newTestScorer() *Scorer {
	cfg := config.Default().Scoring
	return NewScorer(cfg.EducationTiers, cfg.ExperienceIndicators)
}

func TestSkillsScore(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name     string
		skills   []string
		required []string
		want     float64
	}{
		{
			name:   "empty skill set",
			skills: nil,
			want:   0.0,
		},
		{
			name:   "three skills no required matches",
			skills: []string{"python", "docker", "git"},
			want:   0.3,
		},
		{
			name:   "twelve skills cap base at one",
			skills: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"},
			want:   1.0,
		},
		{
			name:     "one required match adds exactly the bonus",
			skills:   []string{"python", "docker", "git"},
			required: []string{"python"},
			want:     0.5,
		},
		{
			name:     "bonus capped at one",
			skills:   []string{"python", "sql", "react", "docker", "git"},
			required: []string{"python", "sql", "react"},
			want:     1.0, // min(0.5 + 3*0.2, 1.0)
		},
		{
			name:     "required matching is case-insensitive",
			skills:   []string{"python"},
			required: []string{"PYTHON"},
			want:     0.3,
		},
		{
			name:     "required skill absent from set adds nothing",
			skills:   []string{"docker"},
			required: []string{"python"},
			want:     0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SkillsScore(tt.skills, tt.required)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEducationScore(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name      string
		education []string
		want      float64
	}{
		{
			name:      "empty list",
			education: nil,
			want:      0.0,
		},
		{
			name:      "doctorate",
			education: []string{"Completed a PhD at the University of Lagos."},
			want:      1.0,
		},
		{
			name:      "masters",
			education: []string{"MSc in Data Science"},
			want:      0.8,
		},
		{
			name:      "bachelors",
			education: []string{"B.Sc Computer Science, 2019"},
			want:      0.6,
		},
		{
			name:      "diploma",
			education: []string{"OND in Electrical Engineering"},
			want:      0.4,
		},
		{
			name:      "no qualification terms",
			education: []string{"Attended several workshops."},
			want:      0.0,
		},
		{
			// The tier table is tested top-down; the doctorate tier wins
			// even when a lower qualification appears first in the text.
			name:      "first tier match wins over later mention",
			education: []string{"Bachelor of Science in Physics", "PhD in Astrophysics"},
			want:      1.0,
		},
		{
			name:      "terms matched across joined sentences",
			education: []string{"Graduated from the polytechnic.", "Then earned an MBA."},
			want:      0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.EducationScore(tt.education)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExperienceScore(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		name       string
		experience string
		want       float64
	}{
		{name: "empty text", experience: "", want: 0.0},
		{name: "indicator word experience", experience: "5 years of experience", want: 0.7},
		{name: "indicator word yr", experience: "3 yr at Acme", want: 0.7},
		{name: "indicator is fixed regardless of duration", experience: "1 year", want: 0.7},
		{name: "no indicator words", experience: "worked at Acme", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ExperienceScore(tt.experience)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreCandidate(t *testing.T) {
	s := newTestScorer()

	t.Run("weighted total", func(t *testing.T) {
		// skills 0.6, education 0.8, experience 0.0 with weights
		// (0.5, 0.2, 0.3) must give 0.46.
		profile := &models.CandidateProfile{
			CandidateID: "c1",
			ExtractedData: models.ExtractedData{
				Skills:    []string{"a", "b", "c", "d", "e", "f"},
				Education: []string{"MSc in Statistics"},
			},
		}
		criteria := models.RankingCriteria{
			SkillsWeight:     0.5,
			EducationWeight:  0.2,
			ExperienceWeight: 0.3,
		}

		got := s.ScoreCandidate(profile, criteria)

		require.Same(t, profile, got, "profile must be returned for chaining")
		assert.InDelta(t, 0.6, profile.ScoreBreakdown[models.CriterionSkills], 1e-9)
		assert.InDelta(t, 0.8, profile.ScoreBreakdown[models.CriterionEducation], 1e-9)
		assert.InDelta(t, 0.0, profile.ScoreBreakdown[models.CriterionExperience], 1e-9)
		assert.InDelta(t, 0.46, profile.Score, 1e-9)
	})

	t.Run("empty signals score zero not error", func(t *testing.T) {
		profile := &models.CandidateProfile{CandidateID: "empty"}
		s.ScoreCandidate(profile, models.RankingCriteria{SkillsWeight: 0.5, EducationWeight: 0.2, ExperienceWeight: 0.3})

		assert.Zero(t, profile.Score)
		assert.Equal(t, map[string]float64{
			models.CriterionSkills:     0.0,
			models.CriterionEducation:  0.0,
			models.CriterionExperience: 0.0,
		}, profile.ScoreBreakdown)
	})

	t.Run("total is not clamped when weights exceed one", func(t *testing.T) {
		profile := &models.CandidateProfile{
			ExtractedData: models.ExtractedData{
				Skills:    []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
				Education: []string{"PhD in Chemistry"},
			},
		}
		criteria := models.RankingCriteria{SkillsWeight: 2.0, EducationWeight: 1.0}

		s.ScoreCandidate(profile, criteria)
		assert.InDelta(t, 3.0, profile.Score, 1e-9)
	})

	t.Run("rescoring overwrites previous results", func(t *testing.T) {
		profile := &models.CandidateProfile{
			ExtractedData: models.ExtractedData{
				Skills: []string{"python"},
			},
		}

		s.ScoreCandidate(profile, models.RankingCriteria{SkillsWeight: 1.0})
		first := profile.Score
		s.ScoreCandidate(profile, models.RankingCriteria{SkillsWeight: 0.5})

		assert.InDelta(t, first/2, profile.Score, 1e-9)
	})
}
