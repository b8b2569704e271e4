package ovp

import "math/rand/v2"

// maxFillRounds bounds the fill loop in Randomize.
const maxFillRounds = 20

// Source picks uniform random indexes. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

func pick(src Source, n int) int {
	if src == nil {
		src = globalSource{}
	}
	return src.IntN(n)
}

// Randomize completes sel with uniformly random legal values and returns
// the resolved choices. A nil src uses the global random source.
func (l *Lexicon) Randomize(sel Selection, src Source) ChoiceMap {
	s := l.Resolve(sel).Selection()

	if s.SubjectNoun == "" {
		s.SubjectNoun = l.nouns.entries[pick(src, l.nouns.Len())].Key
	}
	if s.Verb == "" {
		s.Verb = l.verbs[pick(src, len(l.verbs))].Key
	}
	if l.IsTransitive(s.Verb) && s.ObjectNoun == "" {
		s.ObjectNoun = l.nouns.entries[pick(src, l.nouns.Len())].Key
	}
	m := l.Resolve(s)

	for round := 0; round < maxFillRounds; round++ {
		filled := true
		for _, f := range Fields() {
			c := m[f]
			if !c.Missing() || len(c.Options) == 0 {
				continue
			}
			s = m.Selection()
			s.Set(f, c.Options[pick(src, len(c.Options))].Key)
			m = l.Resolve(s)
			filled = false
			break
		}
		if filled {
			break
		}
	}
	return m
}
