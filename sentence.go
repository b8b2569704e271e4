package ovp

import (
	"errors"
	"strings"
)

// Role is the syntactic role of an assembled phrase.
type Role string

const (
	RoleSubject Role = "subject"
	RoleVerb    Role = "verb"
	RoleObject  Role = "object"
)

// PartRole names the morpheme a Part stands for.
type PartRole string

const (
	PartPronoun       PartRole = "pronoun"
	PartNoun          PartRole = "noun"
	PartPossessive    PartRole = "possessive_pronoun"
	PartNominalizer   PartRole = "nominalizer"
	PartSubjectSuffix PartRole = "subject_suffix"
	PartObjectPronoun PartRole = "object_pronoun"
	PartVerbStem      PartRole = "verb_stem"
	PartTense         PartRole = "tense"
	PartObjectSuffix  PartRole = "object_suffix"
)

// Part is one morpheme of a phrase with its dictionary gloss.
type Part struct {
	Role  PartRole `json:"type" yaml:"type"`
	Text  string   `json:"text" yaml:"text"`
	Gloss string   `json:"definition" yaml:"definition"`
}

// Phrase is one surface word of a sentence together with its morphemes.
type Phrase struct {
	Role  Role   `json:"type" yaml:"type"`
	Text  string `json:"text" yaml:"text"`
	Parts []Part `json:"parts" yaml:"parts"`
}

// Sentence is an ordered list of phrases.
type Sentence []Phrase

// Text joins the phrase texts with spaces.
func (s Sentence) Text() string {
	words := make([]string, len(s))
	for i, p := range s {
		words[i] = p.Text
	}
	return strings.Join(words, " ")
}

// ErrIncomplete is matched by every *IncompleteError.
var ErrIncomplete = errors.New("sentence incomplete")

// IncompleteError reports a selection that cannot be assembled yet.
// Callers treat it as "not ready", not as a fault.
type IncompleteError struct {
	Reason string
}

func (e *IncompleteError) Error() string {
	return "sentence incomplete: " + e.Reason
}

// Is makes errors.Is(err, ErrIncomplete) true.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

func incomplete(reason string) error {
	return &IncompleteError{Reason: reason}
}
