package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/adeolu/candidate-ranker/internal/models"
)

// EducationTier maps a group of qualification terms to a score. Tiers are
// evaluated in slice order and the first matching tier wins, so they must be
// listed from most to least senior.
type EducationTier struct {
	Terms []string `mapstructure:"terms"`
	Score float64  `mapstructure:"score"`
}

// Config holds application configuration.
type Config struct {
	Port       string           `mapstructure:"port"`
	UploadsDir string           `mapstructure:"uploads-dir"`
	Criteria   CriteriaConfig   `mapstructure:"criteria"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Gmail      GmailConfig      `mapstructure:"gmail"`
}

// CriteriaConfig is the default ranking criteria applied when a request does
// not carry its own.
type CriteriaConfig struct {
	SkillsWeight     float64  `mapstructure:"skills-weight"`
	ExperienceWeight float64  `mapstructure:"experience-weight"`
	EducationWeight  float64  `mapstructure:"education-weight"`
	RequiredSkills   []string `mapstructure:"required-skills"`
}

// ExtractionConfig holds the fixed vocabularies used by the extractors.
type ExtractionConfig struct {
	SkillVocabulary  []string `mapstructure:"skill-vocabulary"`
	EducationMarkers []string `mapstructure:"education-markers"`
}

// ScoringConfig holds the education tier table and experience indicator words.
type ScoringConfig struct {
	EducationTiers       []EducationTier `mapstructure:"education-tiers"`
	ExperienceIndicators []string        `mapstructure:"experience-indicators"`
}

// GmailConfig holds the OAuth file locations for Gmail ingestion.
type GmailConfig struct {
	CredentialsFile string `mapstructure:"credentials-file"`
	TokenFile       string `mapstructure:"token-file"`
}

// Default returns the built-in configuration. The vocabularies and weights
// mirror the values the recruitment pipeline has always shipped with.
func Default() *Config {
	return &Config{
		Port:       "8080",
		UploadsDir: "uploads",
		Criteria: CriteriaConfig{
			SkillsWeight:     0.5,
			ExperienceWeight: 0.3,
			EducationWeight:  0.2,
			RequiredSkills:   []string{"python", "javascript", "sql", "react", "node.js", "aws"},
		},
		Extraction: ExtractionConfig{
			SkillVocabulary: []string{
				"python", "javascript", "java", "html", "css", "react", "node.js",
				"sql", "nosql", "mongodb", "aws", "docker", "kubernetes", "git",
				"machine learning", "data analysis", "project management",
				"digital marketing", "ui/ux", "figma",
			},
			EducationMarkers: []string{
				"b.sc", "bachelor", "degree", "university", "polytechnic", "ond", "hnd",
			},
		},
		Scoring: ScoringConfig{
			EducationTiers: []EducationTier{
				{Terms: []string{"phd", "doctorate"}, Score: 1.0},
				{Terms: []string{"master", "msc", "mba"}, Score: 0.8},
				{Terms: []string{"bachelor", "b.sc", "undergraduate"}, Score: 0.6},
				{Terms: []string{"diploma", "certificate", "ond", "hnd"}, Score: 0.4},
			},
			ExperienceIndicators: []string{"year", "yr", "experience"},
		},
		Gmail: GmailConfig{
			CredentialsFile: "credentials.json",
			TokenFile:       "token.json",
		},
	}
}

// Load unmarshals the viper-backed configuration on top of the defaults.
// Keys absent from the config file keep their default values.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// DefaultCriteria converts the configured criteria into the value passed
// through scoring calls.
func (c *Config) DefaultCriteria() models.RankingCriteria {
	return models.RankingCriteria{
		SkillsWeight:     c.Criteria.SkillsWeight,
		ExperienceWeight: c.Criteria.ExperienceWeight,
		EducationWeight:  c.Criteria.EducationWeight,
		RequiredSkills:   append([]string(nil), c.Criteria.RequiredSkills...),
	}
}

// Validate checks the parts of the configuration that must be present.
// Criteria weights are deliberately not validated: scores are computed from
// whatever weights the caller supplies.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.UploadsDir == "" {
		return fmt.Errorf("uploads-dir is required")
	}
	if len(c.Extraction.SkillVocabulary) == 0 {
		return fmt.Errorf("extraction.skill-vocabulary must not be empty")
	}
	if len(c.Scoring.EducationTiers) == 0 {
		return fmt.Errorf("scoring.education-tiers must not be empty")
	}
	return nil
}
