package ovp

// Field identifies one of the eleven grammatical slots of a selection.
// Fields are ordered the way the resolver evaluates them.
type Field int

const (
	SubjectNoun Field = iota
	SubjectSuffix
	SubjectPossessivePronoun
	SubjectNounNominalizer
	Verb
	VerbTense
	ObjectPronoun
	ObjectNoun
	ObjectNounNominalizer
	ObjectSuffix
	ObjectPossessivePronoun

	numFields
)

var fieldNames = [numFields]string{
	SubjectNoun:              "subject_noun",
	SubjectSuffix:            "subject_suffix",
	SubjectPossessivePronoun: "subject_possessive_pronoun",
	SubjectNounNominalizer:   "subject_noun_nominalizer",
	Verb:                     "verb",
	VerbTense:                "verb_tense",
	ObjectPronoun:            "object_pronoun",
	ObjectNoun:               "object_noun",
	ObjectNounNominalizer:    "object_noun_nominalizer",
	ObjectSuffix:             "object_suffix",
	ObjectPossessivePronoun:  "object_possessive_pronoun",
}

// String returns the snake_case name used in JSON payloads.
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields returns every field in resolution order.
func Fields() []Field {
	out := make([]Field, numFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// ParseField maps a snake_case field name to its Field.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// Selection is a caller's partial grammatical choices. An empty string
// means the slot is unset.
type Selection struct {
	SubjectNoun              string `json:"subject_noun,omitempty" yaml:"subject_noun,omitempty"`
	SubjectNounNominalizer   string `json:"subject_noun_nominalizer,omitempty" yaml:"subject_noun_nominalizer,omitempty"`
	SubjectSuffix            string `json:"subject_suffix,omitempty" yaml:"subject_suffix,omitempty"`
	SubjectPossessivePronoun string `json:"subject_possessive_pronoun,omitempty" yaml:"subject_possessive_pronoun,omitempty"`
	Verb                     string `json:"verb,omitempty" yaml:"verb,omitempty"`
	VerbTense                string `json:"verb_tense,omitempty" yaml:"verb_tense,omitempty"`
	ObjectPronoun            string `json:"object_pronoun,omitempty" yaml:"object_pronoun,omitempty"`
	ObjectNoun               string `json:"object_noun,omitempty" yaml:"object_noun,omitempty"`
	ObjectNounNominalizer    string `json:"object_noun_nominalizer,omitempty" yaml:"object_noun_nominalizer,omitempty"`
	ObjectSuffix             string `json:"object_suffix,omitempty" yaml:"object_suffix,omitempty"`
	ObjectPossessivePronoun  string `json:"object_possessive_pronoun,omitempty" yaml:"object_possessive_pronoun,omitempty"`
}

// slot returns a pointer to the field's storage.
func (s *Selection) slot(f Field) *string {
	switch f {
	case SubjectNoun:
		return &s.SubjectNoun
	case SubjectSuffix:
		return &s.SubjectSuffix
	case SubjectPossessivePronoun:
		return &s.SubjectPossessivePronoun
	case SubjectNounNominalizer:
		return &s.SubjectNounNominalizer
	case Verb:
		return &s.Verb
	case VerbTense:
		return &s.VerbTense
	case ObjectPronoun:
		return &s.ObjectPronoun
	case ObjectNoun:
		return &s.ObjectNoun
	case ObjectNounNominalizer:
		return &s.ObjectNounNominalizer
	case ObjectSuffix:
		return &s.ObjectSuffix
	case ObjectPossessivePronoun:
		return &s.ObjectPossessivePronoun
	}
	return nil
}

// Get returns the value of f.
func (s Selection) Get(f Field) string {
	if p := s.slot(f); p != nil {
		return *p
	}
	return ""
}

// Set assigns v to f. Unknown fields are ignored.
func (s *Selection) Set(f Field, v string) {
	if p := s.slot(f); p != nil {
		*p = v
	}
}

// Normalized returns a copy of s with every value trimmed and NFC-normalized.
func (s Selection) Normalized() Selection {
	out := s
	for _, f := range Fields() {
		out.Set(f, Normalize(s.Get(f)))
	}
	return out
}
