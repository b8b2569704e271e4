package ovp

// Assemble concatenates the morphemes of a complete selection into surface
// words and orders them. It returns an *IncompleteError when the selection
// is missing a required slot or is contradictory.
//
// Pronoun subjects are topicalized: [object, subject, verb] or
// [verb, subject]. Noun subjects use SOV order: [subject, object, verb] or
// [subject, verb].
func (l *Lexicon) Assemble(sel Selection) (Sentence, error) {
	s := sel.Normalized()

	if s.SubjectNoun == "" {
		return nil, incomplete("subject noun is required")
	}
	pronounSubject := l.IsPronoun(s.SubjectNoun)
	if pronounSubject && s.SubjectSuffix != "" {
		return nil, incomplete("subject suffix is not allowed with pronouns")
	}
	if !pronounSubject && s.SubjectSuffix == "" {
		return nil, incomplete("subject suffix is required with non-pronoun subjects")
	}
	if s.Verb == "" || s.VerbTense == "" {
		return nil, incomplete("verb and tense are required")
	}

	subject := l.subjectPhrase(s, pronounSubject)
	verb := l.verbPhrase(s)

	var object *Phrase
	if s.ObjectNoun != "" && s.ObjectSuffix != "" {
		if s.ObjectPronoun != "" && !l.PronounMatchesSuffix(s.ObjectPronoun, s.ObjectSuffix) {
			return nil, incomplete("object pronoun and suffix do not match")
		}
		p := l.objectPhrase(s)
		object = &p
	}

	switch {
	case pronounSubject && object != nil:
		return Sentence{*object, subject, verb}, nil
	case pronounSubject:
		return Sentence{verb, subject}, nil
	case object != nil:
		return Sentence{subject, *object, verb}, nil
	default:
		return Sentence{subject, verb}, nil
	}
}

// subjectPhrase builds [possessive-]noun[-nominalizer]-suffix, or the bare
// pronoun.
func (l *Lexicon) subjectPhrase(s Selection, pronoun bool) Phrase {
	p := Phrase{Role: RoleSubject}
	if pronoun {
		p.Text = s.SubjectNoun
		p.Parts = []Part{{Role: PartPronoun, Text: s.SubjectNoun, Gloss: l.subjectPronouns.Gloss(s.SubjectNoun)}}
		return p
	}

	p.Text = s.SubjectNoun
	if s.SubjectNounNominalizer != "" {
		p.Text += "-" + s.SubjectNounNominalizer
	}
	p.Text += "-" + s.SubjectSuffix

	if s.SubjectPossessivePronoun != "" {
		p.Text = s.SubjectPossessivePronoun + "-" + p.Text
		p.Parts = append(p.Parts, Part{Role: PartPossessive, Text: s.SubjectPossessivePronoun, Gloss: l.possessives.Gloss(s.SubjectPossessivePronoun)})
	}
	p.Parts = append(p.Parts, Part{Role: PartNoun, Text: s.SubjectNoun, Gloss: l.headGloss(s.SubjectNoun)})
	if s.SubjectNounNominalizer != "" {
		p.Parts = append(p.Parts, Part{Role: PartNominalizer, Text: s.SubjectNounNominalizer, Gloss: l.nominalizers.Gloss(s.SubjectNounNominalizer)})
	}
	p.Parts = append(p.Parts, Part{Role: PartSubjectSuffix, Text: s.SubjectSuffix, Gloss: l.subjectSuffixes.Gloss(s.SubjectSuffix)})
	return p
}

// verbPhrase builds stem-tense, or pronoun-lenis(stem)-tense when an
// object pronoun is prefixed. Stems outside the lexicon are glossed as
// their surface form in brackets.
func (l *Lexicon) verbPhrase(s Selection) Phrase {
	p := Phrase{Role: RoleVerb}
	if s.ObjectPronoun == "" {
		p.Text = s.Verb + "-" + s.VerbTense
	} else {
		p.Text = s.ObjectPronoun + "-" + l.Lenis(s.Verb) + "-" + s.VerbTense
		p.Parts = append(p.Parts, Part{Role: PartObjectPronoun, Text: s.ObjectPronoun, Gloss: l.objectPronouns.Gloss(s.ObjectPronoun)})
	}
	gloss, ok := l.verbGloss(s.Verb)
	if !ok {
		gloss = "[" + s.Verb + "]"
	}
	p.Parts = append(p.Parts,
		Part{Role: PartVerbStem, Text: s.Verb, Gloss: gloss},
		Part{Role: PartTense, Text: s.VerbTense, Gloss: l.tenses.Gloss(s.VerbTense)},
	)
	return p
}

// objectPhrase builds [possessive-]noun-suffix with the suffix allomorph
// chosen by nominalization and the noun's final glottal stop.
func (l *Lexicon) objectPhrase(s Selection) Phrase {
	suffix := objectSuffixForm(s.ObjectNoun, s.ObjectNounNominalizer, s.ObjectSuffix)

	p := Phrase{Role: RoleObject, Text: s.ObjectNoun + "-" + suffix}
	if s.ObjectPossessivePronoun != "" {
		p.Text = s.ObjectPossessivePronoun + "-" + p.Text
		p.Parts = append(p.Parts, Part{Role: PartPossessive, Text: s.ObjectPossessivePronoun, Gloss: l.possessives.Gloss(s.ObjectPossessivePronoun)})
	}
	p.Parts = append(p.Parts, Part{Role: PartNoun, Text: s.ObjectNoun, Gloss: l.headGloss(s.ObjectNoun)})
	if s.ObjectNounNominalizer != "" {
		p.Parts = append(p.Parts, Part{Role: PartNominalizer, Text: s.ObjectNounNominalizer, Gloss: l.nominalizers.Gloss(s.ObjectNounNominalizer)})
	}
	p.Parts = append(p.Parts, Part{Role: PartObjectSuffix, Text: s.ObjectSuffix, Gloss: l.objectSuffixes.Gloss(s.ObjectSuffix)})
	return p
}

// objectSuffixForm returns the object suffix allomorph:
//   - nominalized: the nominalizer without its final letter fused onto the
//     suffix (dü + eika → deika);
//   - noun without a final glottal stop: n + suffix (eika → neika);
//   - otherwise the bare suffix.
func objectSuffixForm(noun, nominalizer, suffix string) string {
	switch {
	case nominalizer != "":
		return dropLastRune(nominalizer) + suffix
	case !endsInGlottalStop(noun):
		return "n" + suffix
	default:
		return suffix
	}
}

// headGloss glosses a subject or object head: a noun, a nominalized verb
// stem, or the head itself in brackets. A wildcard head is bracketed again,
// so "[elephant]" is glossed "[[elephant]]".
func (l *Lexicon) headGloss(head string) string {
	if e, ok := l.nouns.Entry(head); ok {
		return e.Gloss
	}
	if g, ok := l.verbGloss(head); ok {
		return g
	}
	return "[" + head + "]"
}
