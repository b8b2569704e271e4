// Package ovp builds Owens Valley Paiute sentences from grammatical
// selections. It holds the lexicon and grammar tables, resolves which
// further selections are valid given a partial one, and assembles complete
// selections into surface word forms.
package ovp

import (
	"embed"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

//go:embed data/*.txt
var embeddedData embed.FS

// Lexicon holds all grammar tables and provides the public API.
// A Lexicon is never modified after loading and is safe for concurrent use.
type Lexicon struct {
	nouns           *Table
	subjectPronouns *Table
	objectPronouns  *Table
	possessives     *Table
	transitive      *Table
	intransitive    *Table
	tenses          *Table
	nominalizers    *Table
	subjectSuffixes *Table
	objectSuffixes  *Table

	// subjectHeads is nouns ∪ subject pronouns, the subject_noun candidates.
	subjectHeads []Entry
	// verbs is transitive ∪ intransitive.
	verbs []Entry

	// lenis maps a fortis initial to its lenis replacement.
	lenis map[rune]string

	logger *zap.Logger
}

// Option configures a Lexicon at load time.
type Option func(*Lexicon)

// WithLogger sets the logger used to report lexicon data errors.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Lexicon) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New loads the grammar tables from dataDir and returns a ready-to-use Lexicon.
func New(dataDir string, opts ...Option) (*Lexicon, error) {
	return Load(os.DirFS(dataDir), opts...)
}

// Embedded loads the grammar tables compiled into the binary.
func Embedded(opts ...Option) (*Lexicon, error) {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub, opts...)
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the process-wide Lexicon built from the embedded tables.
// It panics if the embedded data is malformed, which is a build defect.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		l, err := Embedded()
		if err != nil {
			panic("ovp: embedded lexicon: " + err.Error())
		}
		defaultLex = l
	})
	return defaultLex
}

// Nouns returns the noun table.
func (l *Lexicon) Nouns() *Table { return l.nouns }

// SubjectPronouns returns the independent subject pronoun table.
func (l *Lexicon) SubjectPronouns() *Table { return l.subjectPronouns }

// ObjectPronouns returns the object pronoun prefix table.
func (l *Lexicon) ObjectPronouns() *Table { return l.objectPronouns }

// Possessives returns the possessive prefix table.
func (l *Lexicon) Possessives() *Table { return l.possessives }

// TransitiveVerbs returns the transitive verb stem table.
func (l *Lexicon) TransitiveVerbs() *Table { return l.transitive }

// IntransitiveVerbs returns the intransitive verb stem table.
func (l *Lexicon) IntransitiveVerbs() *Table { return l.intransitive }

// Tenses returns the tense suffix table.
func (l *Lexicon) Tenses() *Table { return l.tenses }

// Nominalizers returns the nominalizer tense table.
func (l *Lexicon) Nominalizers() *Table { return l.nominalizers }

// SubjectSuffixes returns the subject case suffix table.
func (l *Lexicon) SubjectSuffixes() *Table { return l.subjectSuffixes }

// ObjectSuffixes returns the object case suffix table.
func (l *Lexicon) ObjectSuffixes() *Table { return l.objectSuffixes }

// Verbs returns every verb stem, transitive first.
func (l *Lexicon) Verbs() []Entry { return l.verbs }

// IsPronoun reports whether key is a subject pronoun.
func (l *Lexicon) IsPronoun(key string) bool {
	return l.subjectPronouns.Has(key)
}

// IsVerbStem reports whether key is a transitive or intransitive stem.
func (l *Lexicon) IsVerbStem(key string) bool {
	return l.transitive.Has(key) || l.intransitive.Has(key)
}

// IsIntransitive reports whether verb can only be used intransitively.
// Stems listed as both transitive and intransitive are not intransitive.
func (l *Lexicon) IsIntransitive(verb string) bool {
	return l.intransitive.Has(verb) && !l.transitive.Has(verb)
}

// IsTransitive is the complement of IsIntransitive. Empty values and
// wildcards count as transitive.
func (l *Lexicon) IsTransitive(verb string) bool {
	return !l.IsIntransitive(verb)
}

// verbGloss looks a stem up in both verb tables, transitive first.
func (l *Lexicon) verbGloss(stem string) (string, bool) {
	if e, ok := l.transitive.Entry(stem); ok {
		return e.Gloss, true
	}
	if e, ok := l.intransitive.Entry(stem); ok {
		return e.Gloss, true
	}
	return "", false
}
