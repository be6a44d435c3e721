// Package nlp is the boundary to the natural-language toolkit the extractors
// depend on. The extractors only ever see word tokens, sentence segments and
// named entities; which model produces them is an implementation detail behind
// the Engine interface.
package nlp

// LabelOrganization is the entity category the skill extractor matches
// against the vocabulary. Label values come from the underlying model.
const LabelOrganization = "ORG"

// Entity is a named entity recognized in text.
type Entity struct {
	Text  string
	Label string
}

// Engine provides tokenization, sentence segmentation and named-entity
// recognition. Implementations must be safe for concurrent use.
type Engine interface {
	// Tokens splits text into word tokens.
	Tokens(text string) ([]string, error)

	// Sentences segments text into sentences.
	Sentences(text string) ([]string, error)

	// Entities returns the named entities recognized in text.
	Entities(text string) ([]Entity, error)
}
