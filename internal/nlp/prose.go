package nlp

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseEngine implements Engine on top of the prose toolkit. Each call builds
// its own document, so the engine carries no state and is safe to share.
//
// Note: prose's bundled NER model emits a small label set (PERSON, GPE); how
// often organization entities appear depends entirely on the model in use.
type ProseEngine struct{}

// NewProseEngine returns the default NLP engine.
func NewProseEngine() *ProseEngine {
	return &ProseEngine{}
}

// Tokens splits text into word tokens.
func (e *ProseEngine) Tokens(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize text: %w", err)
	}

	tokens := doc.Tokens()
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}
	return out, nil
}

// Sentences segments text into sentences.
func (e *ProseEngine) Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to segment text: %w", err)
	}

	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out, nil
}

// Entities returns the named entities recognized in text.
func (e *ProseEngine) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to recognize entities: %w", err)
	}

	ents := doc.Entities()
	out := make([]Entity, 0, len(ents))
	for _, ent := range ents {
		out = append(out, Entity{Text: ent.Text, Label: ent.Label})
	}
	return out, nil
}
