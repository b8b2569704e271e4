package ovp

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ArgumentType tells a pronoun argument from a noun argument.
type ArgumentType string

const (
	ArgumentPronoun ArgumentType = "pronoun"
	ArgumentNoun    ArgumentType = "noun"
)

// PronounFeatures describes a pronoun (or possessor) by its grammatical
// features. Empty features match anything.
type PronounFeatures struct {
	Person      Person      `json:"person,omitempty" yaml:"person,omitempty"`
	Plurality   Plurality   `json:"plurality,omitempty" yaml:"plurality,omitempty"`
	Proximity   Proximity   `json:"proximity,omitempty" yaml:"proximity,omitempty"`
	Inclusivity Inclusivity `json:"inclusivity,omitempty" yaml:"inclusivity,omitempty"`
	Reflexive   bool        `json:"reflexive,omitempty" yaml:"reflexive,omitempty"`
}

// Head is the head of a noun argument: an English noun, or a verb lemma
// used as a noun ("the runner").
type Head struct {
	Noun  string
	Lemma string
	Tense string
}

// Nominalized reports whether the head is a verb used as a noun.
func (h Head) Nominalized() bool {
	return h.Lemma != ""
}

// UnmarshalJSON accepts either "dog" or {"lemma": "run", "tense": "present"}.
func (h *Head) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		*h = Head{}
		return json.Unmarshal(b, &h.Noun)
	}
	var v struct {
		Lemma string `json:"lemma"`
		Tense string `json:"tense"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("head: %w", err)
	}
	*h = Head{Lemma: v.Lemma, Tense: v.Tense}
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (h Head) MarshalJSON() ([]byte, error) {
	if !h.Nominalized() {
		return json.Marshal(h.Noun)
	}
	return json.Marshal(struct {
		Lemma string `json:"lemma"`
		Tense string `json:"tense,omitempty"`
	}{h.Lemma, h.Tense})
}

// Argument is the subject or object of a simple sentence.
type Argument struct {
	Type ArgumentType `json:"type" yaml:"type"`
	PronounFeatures
	Head       *Head            `json:"head,omitempty" yaml:"head,omitempty"`
	Possessive *PronounFeatures `json:"possessive,omitempty" yaml:"possessive,omitempty"`
}

// VerbPhrase is the English verb of a simple sentence.
type VerbPhrase struct {
	Lemma  string `json:"lemma" yaml:"lemma"`
	Tense  string `json:"tense" yaml:"tense"`
	Aspect string `json:"aspect" yaml:"aspect"`
}

// SimpleSentence is one SV or SVO clause produced by decomposing an
// English sentence.
type SimpleSentence struct {
	Subject Argument   `json:"subject" yaml:"subject"`
	Verb    VerbPhrase `json:"verb" yaml:"verb"`
	Object  *Argument  `json:"object,omitempty" yaml:"object,omitempty"`
}

// StructurePart is one element of the structured description handed to an
// external generator to back-translate a selection into English.
type StructurePart struct {
	PartOfSpeech     string `json:"part_of_speech" yaml:"part_of_speech"`
	Word             string `json:"word" yaml:"word"`
	Positional       string `json:"positional,omitempty" yaml:"positional,omitempty"`
	AgentNominalizer string `json:"agent_nominalizer,omitempty" yaml:"agent_nominalizer,omitempty"`
	Possessive       string `json:"possessive,omitempty" yaml:"possessive,omitempty"`
	Tense            string `json:"tense,omitempty" yaml:"tense,omitempty"`
}
