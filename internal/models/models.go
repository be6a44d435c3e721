package models

// ExtractedData holds the structured signals pulled out of a resume.
type ExtractedData struct {
	RawText    string   `json:"raw_text"`
	Skills     []string `json:"skills"`    // deduplicated, lowercase, sorted
	Education  []string `json:"education"` // sentences in source order, no dedup
	Experience string   `json:"experience,omitempty"`
}

// CandidateProfile is one candidate ready for scoring and ranking.
// Score and ScoreBreakdown are written by the scorer and overwritten on rescore.
type CandidateProfile struct {
	CandidateID    string             `json:"candidate_id"`
	ExtractedData  ExtractedData      `json:"extracted_data"`
	Score          float64            `json:"score"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown"`
	SourcePath     string             `json:"source_path,omitempty"`
}

// RankingCriteria holds the weights applied to each criterion. The weights are
// not required to sum to 1; callers that want totals in [0,1] must normalize
// them themselves. RequiredSkills comparison is case-insensitive.
type RankingCriteria struct {
	SkillsWeight     float64  `json:"skills_weight" mapstructure:"skills-weight"`
	ExperienceWeight float64  `json:"experience_weight" mapstructure:"experience-weight"`
	EducationWeight  float64  `json:"education_weight" mapstructure:"education-weight"`
	RequiredSkills   []string `json:"required_skills" mapstructure:"required-skills"`
}

// Breakdown map keys.
const (
	CriterionSkills     = "skills"
	CriterionEducation  = "education"
	CriterionExperience = "experience"
)

// RankedCandidate is one row of a ranking report.
type RankedCandidate struct {
	Rank              int                `json:"rank"`
	CandidateID       string             `json:"candidate_id"`
	Score             float64            `json:"score"`
	ScoreBreakdown    map[string]float64 `json:"score_breakdown"`
	Skills            []string           `json:"skills"`
	EducationSnippets []string           `json:"education_snippets"`
	SourcePath        string             `json:"source_path,omitempty"`
}

// CandidateReport is the result of ranking a batch of candidates.
type CandidateReport struct {
	Candidates []RankedCandidate `json:"candidates"`
	Total      int               `json:"total_candidates"`
	Criteria   RankingCriteria   `json:"criteria"`
	Timestamp  string            `json:"timestamp"`
}
