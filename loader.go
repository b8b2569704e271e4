package ovp

import (
	"bufio"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
)

// DataError reports a malformed line in a lexicon data file.
type DataError struct {
	File string
	Line int
	Msg  string
}

func (e *DataError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// tableFiles lists every table file with whether its lines carry a
// features field.
var tableFiles = []struct {
	name     string
	features bool
	dest     func(l *Lexicon) **Table
}{
	{"nouns.txt", false, func(l *Lexicon) **Table { return &l.nouns }},
	{"subject_pronouns.txt", true, func(l *Lexicon) **Table { return &l.subjectPronouns }},
	{"object_pronouns.txt", true, func(l *Lexicon) **Table { return &l.objectPronouns }},
	{"possessive_pronouns.txt", true, func(l *Lexicon) **Table { return &l.possessives }},
	{"transitive_verbs.txt", false, func(l *Lexicon) **Table { return &l.transitive }},
	{"intransitive_verbs.txt", false, func(l *Lexicon) **Table { return &l.intransitive }},
	{"tenses.txt", false, func(l *Lexicon) **Table { return &l.tenses }},
	{"nominalizers.txt", false, func(l *Lexicon) **Table { return &l.nominalizers }},
	{"subject_suffixes.txt", true, func(l *Lexicon) **Table { return &l.subjectSuffixes }},
	{"object_suffixes.txt", true, func(l *Lexicon) **Table { return &l.objectSuffixes }},
}

// Load reads every grammar table from fsys and returns a ready-to-use Lexicon.
func Load(fsys fs.FS, opts ...Option) (*Lexicon, error) {
	l := &Lexicon{
		lenis:  make(map[rune]string),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	for _, tf := range tableFiles {
		t, err := loadTable(fsys, tf.name, tf.features)
		if err != nil {
			return nil, err
		}
		*tf.dest(l) = t
	}
	if err := l.loadLenis(fsys); err != nil {
		return nil, err
	}
	if err := l.check(); err != nil {
		return nil, err
	}

	l.subjectHeads = union(l.nouns, l.subjectPronouns)
	l.verbs = union(l.transitive, l.intransitive)

	l.logger.Debug("lexicon loaded",
		zap.Int("nouns", l.nouns.Len()),
		zap.Int("verbs", len(l.verbs)),
		zap.Int("subject_pronouns", l.subjectPronouns.Len()),
		zap.Int("object_pronouns", l.objectPronouns.Len()),
	)
	return l, nil
}

// readLines calls fn for every non-comment, non-blank line of name.
// Lines are trimmed and NFC-normalized; "!" starts a comment line.
func readLines(fsys fs.FS, name string, fn func(lineNo int, line string) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := Normalize(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// loadTable parses a "key|gloss[|features]" file into a Table.
func loadTable(fsys fs.FS, name string, withFeatures bool) (*Table, error) {
	t := newTable(name)
	err := readLines(fsys, name, func(lineNo int, line string) error {
		parts := strings.Split(line, "|")
		if len(parts) < 2 {
			return &DataError{File: name, Line: lineNo, Msg: "want key|gloss"}
		}
		e := Entry{
			Key:   strings.TrimSpace(parts[0]),
			Gloss: strings.TrimSpace(parts[1]),
		}
		if e.Key == "" || e.Gloss == "" {
			return &DataError{File: name, Line: lineNo, Msg: "empty key or gloss"}
		}
		if len(parts) > 2 {
			if !withFeatures {
				return &DataError{File: name, Line: lineNo, Msg: "unexpected features field"}
			}
			if err := parseFeatures(&e, parts[2]); err != nil {
				return &DataError{File: name, Line: lineNo, Msg: err.Error()}
			}
		}
		if !t.add(e) {
			return &DataError{File: name, Line: lineNo, Msg: fmt.Sprintf("duplicate key %q", e.Key)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// parseFeatures fills e from a space-separated list of "name:value[,value]"
// items and bare flags.
func parseFeatures(e *Entry, field string) error {
	for _, item := range strings.Fields(field) {
		name, value, _ := strings.Cut(item, ":")
		switch name {
		case "person":
			switch p := Person(value); p {
			case First, Second, Third:
				e.Person = p
			default:
				return fmt.Errorf("unknown person %q", value)
			}
		case "plurality":
			for _, v := range strings.Split(value, ",") {
				switch p := Plurality(v); p {
				case Singular, Dual, Plural:
					e.Plurality = append(e.Plurality, p)
				default:
					return fmt.Errorf("unknown plurality %q", v)
				}
			}
		case "proximity":
			switch p := Proximity(value); p {
			case Proximal, Distal:
				e.Proximity = p
			default:
				return fmt.Errorf("unknown proximity %q", value)
			}
		case "inclusivity":
			switch i := Inclusivity(value); i {
			case Inclusive, Exclusive:
				e.Inclusivity = i
			default:
				return fmt.Errorf("unknown inclusivity %q", value)
			}
		case "demonstrative":
			e.Demonstrative = true
		case "reflexive":
			e.Reflexive = true
		default:
			return fmt.Errorf("unknown feature %q", name)
		}
	}
	return nil
}

// loadLenis reads lenis.txt, a "fortis|lenis" map keyed by a single rune.
func (l *Lexicon) loadLenis(fsys fs.FS) error {
	const name = "lenis.txt"
	return readLines(fsys, name, func(lineNo int, line string) error {
		fortis, lenis, ok := strings.Cut(line, "|")
		r := []rune(strings.TrimSpace(fortis))
		lenis = strings.TrimSpace(lenis)
		if !ok || len(r) != 1 || lenis == "" {
			return &DataError{File: name, Line: lineNo, Msg: "want single-letter fortis|lenis"}
		}
		l.lenis[r[0]] = lenis
		return nil
	})
}

// check enforces the cross-table invariants the resolver relies on.
func (l *Lexicon) check() error {
	for _, tf := range tableFiles {
		if (*tf.dest(l)).Len() == 0 {
			return &DataError{File: tf.name, Msg: "table is empty"}
		}
	}
	for _, t := range []*Table{l.subjectSuffixes, l.objectSuffixes} {
		seen := make(map[Proximity]bool)
		for _, e := range t.Entries() {
			if e.Proximity == ProximityNone {
				return &DataError{File: t.Name, Msg: fmt.Sprintf("suffix %q has no proximity", e.Key)}
			}
			if seen[e.Proximity] {
				return &DataError{File: t.Name, Msg: fmt.Sprintf("more than one %s suffix", e.Proximity)}
			}
			seen[e.Proximity] = true
		}
	}
	// Object suffix selection depends on every third-person object
	// pronoun naming a proximity.
	for _, e := range l.objectPronouns.Entries() {
		if e.Person == Third && e.Proximity == ProximityNone {
			return &DataError{File: l.objectPronouns.Name, Msg: fmt.Sprintf("third-person pronoun %q has no proximity", e.Key)}
		}
	}
	return nil
}
