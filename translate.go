package ovp

import (
	"strings"

	"go.uber.org/zap"
)

// verbTenses maps an English tense and aspect to a tense suffix.
var verbTenses = map[string]map[string]string{
	"present": {"continuous": "ti", "completive": "ti", "simple": "dü", "perfect": "pü"},
	"past":    {"continuous": "ti", "completive": "ku", "simple": "ti", "perfect": "pü"},
	"future":  {"continuous": "wei", "completive": "wei", "simple": "wei", "perfect": "wei"},
}

const defaultTense = "dü"

// tenseSuffix returns the tense suffix for an English tense and aspect.
// Unknown tenses are read as present; unknown aspects give the plain present.
func tenseSuffix(tense, aspect string) string {
	m, ok := verbTenses[strings.ToLower(tense)]
	if !ok {
		m = verbTenses["present"]
	}
	if s, ok := m[strings.ToLower(aspect)]; ok {
		return s
	}
	return defaultTense
}

// nominalizerFor returns the nominalizer for the tense of a verb used as a noun.
func nominalizerFor(tense string) string {
	if strings.EqualFold(tense, "future") {
		return "weidü"
	}
	return "dü"
}

// FromSimple maps one decomposed English clause onto a selection.
// English words missing from the lexicon become bracketed wildcards. When
// several pronouns fit the requested features one is picked with src.
func (l *Lexicon) FromSimple(ss SimpleSentence, src Source) Selection {
	var sel Selection

	subj := ss.Subject
	if subj.Type == ArgumentPronoun {
		sel.SubjectNoun = l.matchPronoun(l.subjectPronouns, subj.PronounFeatures, false, src)
	} else {
		sel.SubjectNoun, sel.SubjectNounNominalizer = l.headKey(subj.Head, true)
		sel.SubjectSuffix = suffixKey(l.subjectSuffixes, subj.Proximity)
		if subj.Possessive != nil {
			sel.SubjectPossessivePronoun = l.matchPronoun(l.possessives, *subj.Possessive, true, src)
		}
	}

	sel.Verb = l.verbKey(ss.Verb.Lemma, ss.Object != nil)
	sel.VerbTense = tenseSuffix(ss.Verb.Tense, ss.Verb.Aspect)

	if obj := ss.Object; obj != nil {
		if obj.Type == ArgumentPronoun {
			sel.ObjectPronoun = l.matchPronoun(l.objectPronouns, obj.PronounFeatures, false, src)
		} else {
			prox := obj.Proximity
			if prox == ProximityNone {
				prox = Proximal
			}
			sel.ObjectNoun, sel.ObjectNounNominalizer = l.headKey(obj.Head, false)
			sel.ObjectSuffix = suffixKey(l.objectSuffixes, prox)
			sel.ObjectPronoun = l.matchPronoun(l.objectPronouns, PronounFeatures{
				Person:    Third,
				Plurality: obj.Plurality,
				Proximity: prox,
			}, false, src)
			if obj.Possessive != nil {
				sel.ObjectPossessivePronoun = l.matchPronoun(l.possessives, *obj.Possessive, true, src)
			}
		}
	}
	return sel
}

// headKey finds the stem for a noun head. A nominalized subject prefers the
// intransitive reading of its verb and an object the transitive one.
func (l *Lexicon) headKey(h *Head, subject bool) (key, nominalizer string) {
	if h == nil {
		return "", ""
	}
	if !h.Nominalized() {
		word := Normalize(strings.ToLower(h.Noun))
		if k, ok := l.nouns.KeyForGloss(word); ok {
			return k, ""
		}
		return Wildcard(Normalize(h.Noun)), ""
	}

	lemma := Normalize(strings.ToLower(h.Lemma))
	first, second := l.transitive, l.intransitive
	if subject {
		first, second = second, first
	}
	if k, ok := first.KeyForGloss(lemma); ok {
		return k, nominalizerFor(h.Tense)
	}
	if k, ok := second.KeyForGloss(lemma); ok {
		return k, nominalizerFor(h.Tense)
	}
	return Wildcard(lemma), nominalizerFor(h.Tense)
}

// verbKey finds the stem for an English verb lemma. Without an object the
// intransitive reading wins.
func (l *Lexicon) verbKey(lemma string, hasObject bool) string {
	lemma = Normalize(strings.ToLower(lemma))
	k, ok := l.transitive.KeyForGloss(lemma)
	if !hasObject {
		if ik, iok := l.intransitive.KeyForGloss(lemma); iok {
			k, ok = ik, true
		}
	}
	if !ok {
		return Wildcard(lemma)
	}
	return k
}

// suffixKey returns the suffix for prox, defaulting to the proximal one.
func suffixKey(t *Table, prox Proximity) string {
	if prox != Distal {
		prox = Proximal
	}
	e, _ := suffixFor(t, prox)
	return e.Key
}

// matchPronoun picks a pronoun whose features agree with q. A feature is
// compared only when both sides set it. Reflexivity is compared only when
// strictReflexive is set. Demonstratives are never picked. When nothing
// matches, the first entry of the table is returned.
func (l *Lexicon) matchPronoun(t *Table, q PronounFeatures, strictReflexive bool, src Source) string {
	var matches []string
	for _, e := range t.Entries() {
		if e.Demonstrative {
			continue
		}
		if q.Person != PersonNone && e.Person != PersonNone && q.Person != e.Person {
			continue
		}
		if q.Plurality != "" && len(e.Plurality) > 0 && !e.HasPlurality(q.Plurality) {
			continue
		}
		if q.Inclusivity != InclusivityNone && e.Inclusivity != InclusivityNone && q.Inclusivity != e.Inclusivity {
			continue
		}
		if q.Proximity != ProximityNone && e.Proximity != ProximityNone && q.Proximity != e.Proximity {
			continue
		}
		if strictReflexive && q.Reflexive != e.Reflexive {
			continue
		}
		matches = append(matches, e.Key)
	}

	if len(matches) == 0 {
		l.logger.Warn("no pronoun matches features",
			zap.String("table", t.Name),
			zap.String("person", string(q.Person)),
			zap.String("plurality", string(q.Plurality)),
			zap.String("proximity", string(q.Proximity)),
			zap.String("inclusivity", string(q.Inclusivity)),
			zap.Bool("reflexive", q.Reflexive),
		)
		if t.Len() == 0 {
			return ""
		}
		return t.Entries()[0].Key
	}
	return matches[pick(src, len(matches))]
}

// Render returns the surface text of sel. Selections that cannot be
// assembled are rendered by plain concatenation of whatever is set.
func (l *Lexicon) Render(sel Selection) string {
	if s, err := l.Assemble(sel); err == nil {
		return s.Text()
	}

	s := sel.Normalized()
	words := []string{s.SubjectNoun}
	if s.SubjectSuffix != "" {
		words[0] += "-" + s.SubjectSuffix
	}
	if s.ObjectNoun != "" && s.ObjectSuffix != "" {
		words = append(words, s.ObjectNoun+"-"+s.ObjectSuffix)
	}
	if s.ObjectPronoun != "" {
		words = append(words, s.ObjectPronoun+"-"+l.Lenis(s.Verb)+"-"+s.VerbTense)
	} else {
		words = append(words, s.Verb+"-"+s.VerbTense)
	}
	return strings.Join(words, " ")
}

// TranslateSimple maps every clause and joins the rendered clauses into
// one period-separated text.
func (l *Lexicon) TranslateSimple(sentences []SimpleSentence, src Source) ([]Selection, string) {
	if len(sentences) == 0 {
		return nil, ""
	}
	sels := make([]Selection, len(sentences))
	texts := make([]string, len(sentences))
	for i, ss := range sentences {
		sels[i] = l.FromSimple(ss, src)
		texts[i] = l.Render(sels[i])
	}
	return sels, strings.Join(texts, ". ") + "."
}

// Describe returns the English-side structure of sel: one part for the
// subject, one for the object when there is one, and one for the verb.
func (l *Lexicon) Describe(sel Selection) []StructurePart {
	s := sel.Normalized()
	var out []StructurePart

	subj := StructurePart{PartOfSpeech: string(RoleSubject), Word: s.SubjectNoun}
	switch {
	case s.SubjectNounNominalizer != "":
		if g, ok := l.verbGloss(s.SubjectNoun); ok {
			subj.Word = g
		}
		subj.AgentNominalizer = l.nominalizers.Gloss(s.SubjectNounNominalizer)
		subj.Positional = l.subjectSuffixes.Gloss(s.SubjectSuffix)
	case l.nouns.Has(s.SubjectNoun):
		subj.Word = l.nouns.Gloss(s.SubjectNoun)
		subj.Positional = l.subjectSuffixes.Gloss(s.SubjectSuffix)
	case l.subjectPronouns.Has(s.SubjectNoun):
		subj.Word = l.subjectPronouns.Gloss(s.SubjectNoun)
	}
	subj.Possessive = l.possessives.Gloss(s.SubjectPossessivePronoun)
	out = append(out, subj)

	obj := StructurePart{PartOfSpeech: string(RoleObject)}
	switch {
	case s.ObjectNoun != "":
		obj.Word = s.ObjectNoun
		switch {
		case l.nouns.Has(s.ObjectNoun):
			obj.Word = l.nouns.Gloss(s.ObjectNoun)
		case s.ObjectNounNominalizer != "":
			if g, ok := l.verbGloss(s.ObjectNoun); ok {
				obj.Word = g
			}
			obj.AgentNominalizer = l.nominalizers.Gloss(s.ObjectNounNominalizer)
		}
		obj.Positional = l.objectSuffixes.Gloss(s.ObjectSuffix)
		obj.Possessive = l.possessives.Gloss(s.ObjectPossessivePronoun)
	case s.ObjectPronoun != "":
		obj.Word = l.objectPronouns.Gloss(s.ObjectPronoun)
	}
	if obj.Word != "" {
		out = append(out, obj)
	}

	verb := StructurePart{PartOfSpeech: string(RoleVerb), Word: s.Verb, Tense: l.tenses.Gloss(s.VerbTense)}
	if g, ok := l.verbGloss(s.Verb); ok {
		verb.Word = g
	}
	return append(out, verb)
}
