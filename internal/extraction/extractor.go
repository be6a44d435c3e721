// Package extraction turns raw resume text into the discrete signals the
// scorer consumes: matched skill terms, education sentences and an experience
// statement.
package extraction

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adeolu/candidate-ranker/internal/models"
	"github.com/adeolu/candidate-ranker/internal/nlp"
)

// Extractor matches resume text against fixed vocabularies using the NLP
// engine. It is stateless after construction and safe for concurrent use.
type Extractor struct {
	engine  nlp.Engine
	vocab   map[string]struct{}
	markers []string
}

// NewExtractor creates an extractor with the given skill vocabulary and
// education markers. Vocabulary entries and markers are compared lowercase.
func NewExtractor(engine nlp.Engine, vocabulary, educationMarkers []string) *Extractor {
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, term := range vocabulary {
		vocab[strings.ToLower(term)] = struct{}{}
	}

	markers := make([]string, 0, len(educationMarkers))
	for _, m := range educationMarkers {
		markers = append(markers, strings.ToLower(m))
	}

	return &Extractor{
		engine:  engine,
		vocab:   vocab,
		markers: markers,
	}
}

// ExtractSkills returns the deduplicated, sorted set of vocabulary terms found
// in text. Matching runs over single tokens plus organization entities, so a
// multi-word vocabulary entry ("machine learning", "ui/ux") only ever matches
// when the NER model groups it into one entity. That is a known limitation of
// the matching scheme, kept deliberately.
func (e *Extractor) ExtractSkills(text string) ([]string, error) {
	lowered := strings.ToLower(text)

	tokens, err := e.engine.Tokens(lowered)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize resume text: %w", err)
	}

	found := make(map[string]struct{})
	for _, tok := range tokens {
		if _, ok := e.vocab[tok]; ok {
			found[tok] = struct{}{}
		}
	}

	entities, err := e.engine.Entities(lowered)
	if err != nil {
		return nil, fmt.Errorf("failed to recognize entities: %w", err)
	}
	for _, ent := range entities {
		if ent.Label != nlp.LabelOrganization {
			continue
		}
		term := strings.ToLower(ent.Text)
		if _, ok := e.vocab[term]; ok {
			found[term] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills, nil
}

// ExtractEducation returns every sentence mentioning an education marker,
// trimmed, in source order. Repeated sentences produce repeated entries.
func (e *Extractor) ExtractEducation(text string) ([]string, error) {
	sentences, err := e.engine.Sentences(text)
	if err != nil {
		return nil, fmt.Errorf("failed to segment resume text: %w", err)
	}

	var entries []string
	for _, sent := range sentences {
		lowered := strings.ToLower(sent)
		for _, marker := range e.markers {
			if strings.Contains(lowered, marker) {
				entries = append(entries, strings.TrimSpace(sent))
				break
			}
		}
	}
	return entries, nil
}

// ExtractExperience is a stub: structured experience parsing never shipped, so
// the signal is always empty and the scorer treats it as absent.
func (e *Extractor) ExtractExperience(text string) string {
	return ""
}

// ExtractAll runs every extractor over the raw text. It never returns a
// partial result: any engine failure surfaces as a single extraction error.
func (e *Extractor) ExtractAll(rawText string) (models.ExtractedData, error) {
	skills, err := e.ExtractSkills(rawText)
	if err != nil {
		return models.ExtractedData{}, fmt.Errorf("extraction failed: %w", err)
	}

	education, err := e.ExtractEducation(rawText)
	if err != nil {
		return models.ExtractedData{}, fmt.Errorf("extraction failed: %w", err)
	}

	return models.ExtractedData{
		RawText:    rawText,
		Skills:     skills,
		Education:  education,
		Experience: e.ExtractExperience(rawText),
	}, nil
}
