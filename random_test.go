package ovp

import (
	"math/rand/v2"
	"testing"
)

func TestRandomizeDeterministic(t *testing.T) {
	l := Default()
	for seed := uint64(0); seed < 20; seed++ {
		a := l.Randomize(Selection{}, rand.New(rand.NewPCG(seed, 1)))
		b := l.Randomize(Selection{}, rand.New(rand.NewPCG(seed, 1)))
		if a.Selection() != b.Selection() {
			t.Errorf("seed %d: %+v != %+v", seed, a.Selection(), b.Selection())
		}
	}
}

func TestRandomizeComplete(t *testing.T) {
	l := Default()
	for seed := uint64(0); seed < 500; seed++ {
		m := l.Randomize(Selection{}, rand.New(rand.NewPCG(seed, 42)))
		if !m.Complete() {
			t.Fatalf("seed %d: incomplete, missing %v in %+v", seed, m.Missing(), m.Selection())
		}
		sel := m.Selection()
		if l.IsPronoun(sel.SubjectNoun) {
			t.Fatalf("seed %d: subject %q is a pronoun", seed, sel.SubjectNoun)
		}
		if l.IsTransitive(sel.Verb) && sel.ObjectNoun == "" {
			t.Fatalf("seed %d: transitive verb %q without object", seed, sel.Verb)
		}
		if _, err := l.Assemble(sel); err != nil {
			t.Fatalf("seed %d: %+v: %v", seed, sel, err)
		}
	}
}

func TestRandomizeKeepsGivenValues(t *testing.T) {
	l := Default()
	given := Selection{SubjectNoun: "nüü", Verb: "poyoha"}
	for seed := uint64(0); seed < 50; seed++ {
		m := l.Randomize(given, rand.New(rand.NewPCG(seed, 9)))
		sel := m.Selection()
		if sel.SubjectNoun != "nüü" || sel.Verb != "poyoha" {
			t.Fatalf("seed %d: given values replaced: %+v", seed, sel)
		}
		if sel.ObjectNoun != "" {
			t.Fatalf("seed %d: object %q added to an intransitive verb", seed, sel.ObjectNoun)
		}
		if !m.Complete() {
			t.Fatalf("seed %d: missing %v", seed, m.Missing())
		}
	}
}

func TestRandomizeGlobalSource(t *testing.T) {
	l := Default()
	if m := l.Randomize(Selection{}, nil); !m.Complete() {
		t.Errorf("nil source: missing %v", m.Missing())
	}
}
