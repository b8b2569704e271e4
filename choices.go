package ovp

import "go.uber.org/zap"

// Requirement tells a caller whether a slot must, may or cannot be filled.
type Requirement string

const (
	Required Requirement = "required"
	Optional Requirement = "optional"
	Disabled Requirement = "disabled"
)

// Choice is the resolved state of one slot.
type Choice struct {
	// Options are the legal values, in lexicon order. Shared; do not modify.
	Options []Entry
	// Value is the current value, or "" when unset or cleared.
	Value string
	// Requirement is required, optional or disabled.
	Requirement Requirement
}

// Missing reports whether the slot is required but has no value.
func (c Choice) Missing() bool {
	return c.Requirement == Required && c.Value == ""
}

// ChoiceMap holds one Choice per Field.
type ChoiceMap [numFields]Choice

// Get returns the Choice for f.
func (m ChoiceMap) Get(f Field) Choice {
	if f < 0 || f >= numFields {
		return Choice{}
	}
	return m[f]
}

// Selection returns the current value of every slot.
func (m ChoiceMap) Selection() Selection {
	var s Selection
	for _, f := range Fields() {
		s.Set(f, m[f].Value)
	}
	return s
}

// Missing returns the required slots that have no value, in field order.
func (m ChoiceMap) Missing() []Field {
	var out []Field
	for _, f := range Fields() {
		if m[f].Missing() {
			out = append(out, f)
		}
	}
	return out
}

// Complete reports whether every required slot has a value.
func (m ChoiceMap) Complete() bool {
	return len(m.Missing()) == 0
}

func disabled() Choice {
	return Choice{Requirement: Disabled}
}

// Resolve computes, for every slot, the legal candidates, the surviving
// value and the requirement level. It never fails: values that are not in
// their table, or that contradict earlier slots, are cleared.
func (l *Lexicon) Resolve(sel Selection) ChoiceMap {
	s := l.sanitize(sel)
	var m ChoiceMap

	m[SubjectNoun] = Choice{Options: l.subjectHeads, Value: s.SubjectNoun, Requirement: Required}

	if s.SubjectNoun == "" || l.IsPronoun(s.SubjectNoun) {
		s.SubjectSuffix, s.SubjectPossessivePronoun = "", ""
		m[SubjectSuffix] = disabled()
		m[SubjectPossessivePronoun] = disabled()
	} else {
		m[SubjectSuffix] = Choice{Options: l.subjectSuffixes.Entries(), Value: s.SubjectSuffix, Requirement: Required}
		m[SubjectPossessivePronoun] = Choice{Options: l.possessives.Entries(), Value: s.SubjectPossessivePronoun, Requirement: Optional}
	}

	if l.IsVerbStem(s.SubjectNoun) {
		m[SubjectNounNominalizer] = Choice{Options: l.nominalizers.Entries(), Value: s.SubjectNounNominalizer, Requirement: Required}
	} else {
		s.SubjectNounNominalizer = ""
		m[SubjectNounNominalizer] = disabled()
	}

	if s.ObjectNoun != "" {
		if l.IsIntransitive(s.Verb) {
			s.Verb = ""
		}
		m[Verb] = Choice{Options: l.transitive.Entries(), Value: s.Verb, Requirement: Required}
	} else {
		m[Verb] = Choice{Options: l.verbs, Value: s.Verb, Requirement: Required}
	}

	if s.Verb == "" {
		s.VerbTense = ""
		m[VerbTense] = disabled()
	} else {
		m[VerbTense] = Choice{Options: l.tenses.Entries(), Value: s.VerbTense, Requirement: Required}
	}

	switch {
	case s.Verb == "" || l.IsIntransitive(s.Verb):
		s.ObjectPronoun = ""
		m[ObjectPronoun] = disabled()
	case s.ObjectNoun != "":
		prox := ProximityNone
		if e, ok := l.objectSuffixes.Entry(s.ObjectSuffix); ok {
			prox = e.Proximity
		}
		m[ObjectPronoun] = Choice{Options: l.thirdPersonObjectPronouns(prox), Value: s.ObjectPronoun, Requirement: Required}
	default:
		m[ObjectPronoun] = Choice{Options: l.objectPronouns.Entries(), Value: s.ObjectPronoun, Requirement: Optional}
	}

	if (s.Verb != "" && l.IsIntransitive(s.Verb)) || (s.ObjectPronoun != "" && !l.isThirdPersonObject(s.ObjectPronoun)) {
		s.ObjectNoun = ""
		m[ObjectNoun] = disabled()
	} else {
		m[ObjectNoun] = Choice{Options: l.nouns.Entries(), Value: s.ObjectNoun, Requirement: Optional}
	}

	if l.IsVerbStem(s.ObjectNoun) {
		m[ObjectNounNominalizer] = Choice{Options: l.nominalizers.Entries(), Value: s.ObjectNounNominalizer, Requirement: Required}
	} else {
		s.ObjectNounNominalizer = ""
		m[ObjectNounNominalizer] = disabled()
	}

	switch {
	case s.ObjectNoun == "":
		s.ObjectSuffix = ""
		m[ObjectSuffix] = disabled()
	case s.ObjectPronoun != "":
		var opts []Entry
		match, ok := l.MatchingObjectSuffix(s.ObjectPronoun)
		if ok {
			opts = []Entry{match}
		}
		if !ok || s.ObjectSuffix != match.Key {
			s.ObjectSuffix = ""
		}
		m[ObjectSuffix] = Choice{Options: opts, Value: s.ObjectSuffix, Requirement: Required}
	default:
		m[ObjectSuffix] = Choice{Options: l.objectSuffixes.Entries(), Value: s.ObjectSuffix, Requirement: Required}
	}

	if s.ObjectNoun == "" {
		m[ObjectPossessivePronoun] = disabled()
	} else {
		m[ObjectPossessivePronoun] = Choice{Options: l.possessives.Entries(), Value: s.ObjectPossessivePronoun, Requirement: Optional}
	}

	l.checkCandidates(m)
	return m
}

// sanitize normalizes sel, drops values that are not in their table, and
// applies the cross-slot checks that must run before the rule pipeline.
func (l *Lexicon) sanitize(sel Selection) Selection {
	s := sel.Normalized()
	keep := func(v string, ok bool) string {
		if ok {
			return v
		}
		return ""
	}

	s.SubjectNoun = keep(s.SubjectNoun, IsWildcard(s.SubjectNoun) ||
		l.nouns.Has(s.SubjectNoun) || l.subjectPronouns.Has(s.SubjectNoun) || l.IsVerbStem(s.SubjectNoun))
	s.SubjectNounNominalizer = keep(s.SubjectNounNominalizer, l.nominalizers.Has(s.SubjectNounNominalizer))
	s.SubjectSuffix = keep(s.SubjectSuffix, l.subjectSuffixes.Has(s.SubjectSuffix))
	s.SubjectPossessivePronoun = keep(s.SubjectPossessivePronoun, l.possessives.Has(s.SubjectPossessivePronoun))
	s.Verb = keep(s.Verb, IsWildcard(s.Verb) || l.IsVerbStem(s.Verb))
	s.VerbTense = keep(s.VerbTense, l.tenses.Has(s.VerbTense))
	s.ObjectPronoun = keep(s.ObjectPronoun, l.objectPronouns.Has(s.ObjectPronoun))
	s.ObjectNoun = keep(s.ObjectNoun, IsWildcard(s.ObjectNoun) ||
		l.nouns.Has(s.ObjectNoun) || l.IsVerbStem(s.ObjectNoun))
	s.ObjectNounNominalizer = keep(s.ObjectNounNominalizer, l.nominalizers.Has(s.ObjectNounNominalizer))
	s.ObjectSuffix = keep(s.ObjectSuffix, l.objectSuffixes.Has(s.ObjectSuffix))
	s.ObjectPossessivePronoun = keep(s.ObjectPossessivePronoun, l.possessives.Has(s.ObjectPossessivePronoun))

	if s.ObjectPronoun != "" && s.ObjectSuffix != "" && !l.PronounMatchesSuffix(s.ObjectPronoun, s.ObjectSuffix) {
		s.ObjectSuffix = ""
	}

	// A surviving first- or second-person object pronoun disables the object
	// noun. Clearing it here keeps the verb and object pronoun rules, which
	// look at the object noun, consistent with that outcome.
	if s.ObjectNoun != "" && s.ObjectPronoun != "" && !l.isThirdPersonObject(s.ObjectPronoun) &&
		s.Verb != "" && !l.IsIntransitive(s.Verb) {
		s.ObjectNoun = ""
	}
	return s
}

// checkCandidates logs required slots that have nothing to choose from.
// That can only come from broken lexicon data.
func (l *Lexicon) checkCandidates(m ChoiceMap) {
	for _, f := range Fields() {
		if c := m[f]; c.Requirement == Required && len(c.Options) == 0 {
			l.logger.Error("required field has no candidates",
				zap.String("field", f.String()),
				zap.String("value", c.Value),
			)
		}
	}
}

// isThirdPersonObject reports whether pronoun is a third-person object pronoun.
func (l *Lexicon) isThirdPersonObject(pronoun string) bool {
	e, ok := l.objectPronouns.Entry(pronoun)
	return ok && e.Person == Third
}

// thirdPersonObjectPronouns returns the third-person object pronouns with
// the given proximity, or all of them when prox is ProximityNone.
func (l *Lexicon) thirdPersonObjectPronouns(prox Proximity) []Entry {
	return l.objectPronouns.filter(func(e Entry) bool {
		if e.Person != Third {
			return false
		}
		return prox == ProximityNone || e.Proximity == prox
	})
}

// MatchingObjectSuffix returns the object suffix agreeing in proximity
// with an object pronoun. It reports false for pronouns without proximity.
func (l *Lexicon) MatchingObjectSuffix(pronoun string) (Entry, bool) {
	p, ok := l.objectPronouns.Entry(pronoun)
	if !ok || p.Proximity == ProximityNone {
		return Entry{}, false
	}
	return suffixFor(l.objectSuffixes, p.Proximity)
}

// PronounMatchesSuffix reports whether an object pronoun is a third-person
// pronoun of the suffix's proximity. An unknown suffix accepts any
// third-person pronoun.
func (l *Lexicon) PronounMatchesSuffix(pronoun, suffix string) bool {
	p, ok := l.objectPronouns.Entry(pronoun)
	if !ok || p.Person != Third {
		return false
	}
	s, ok := l.objectSuffixes.Entry(suffix)
	if !ok {
		return true
	}
	return p.Proximity == s.Proximity
}

// suffixFor returns the entry of a suffix table with proximity prox.
func suffixFor(t *Table, prox Proximity) (Entry, bool) {
	for _, e := range t.Entries() {
		if e.Proximity == prox {
			return e, true
		}
	}
	return Entry{}, false
}
