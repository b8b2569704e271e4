package ovp

// Person is the grammatical person of a pronoun entry.
type Person string

const (
	PersonNone Person = ""
	First      Person = "first"
	Second     Person = "second"
	Third      Person = "third"
)

// Plurality is the grammatical number of a pronoun entry.
type Plurality string

const (
	Singular Plurality = "singular"
	Dual     Plurality = "dual"
	Plural   Plurality = "plural"
)

// Proximity is deictic distance marking, carried by third-person pronouns
// and by the subject and object suffixes.
type Proximity string

const (
	ProximityNone Proximity = ""
	Proximal      Proximity = "proximal"
	Distal        Proximity = "distal"
)

// Inclusivity distinguishes inclusive from exclusive first-person plurals.
type Inclusivity string

const (
	InclusivityNone Inclusivity = ""
	Inclusive       Inclusivity = "inclusive"
	Exclusive       Inclusivity = "exclusive"
)

// Entry is a single lexicon item: a surface key with its English gloss.
// Pronoun, possessive and suffix entries also carry grammatical features.
type Entry struct {
	// Key is the Paiute surface form (NFC).
	Key string
	// Gloss is the English definition shown to users.
	Gloss string
	// Person is set on pronoun and possessive entries.
	Person Person
	// Plurality lists every number the entry can express.
	Plurality []Plurality
	// Proximity is set on third-person pronouns and on case suffixes.
	Proximity Proximity
	// Inclusivity is set on first-person non-singular pronouns.
	Inclusivity Inclusivity
	// Demonstrative marks pronouns such as "ihi" (this) that are never
	// chosen when mapping English personal pronouns.
	Demonstrative bool
	// Reflexive marks possessives such as "tü" (his/her/its own).
	Reflexive bool
}

// HasPlurality reports whether p is one of the entry's numbers.
func (e Entry) HasPlurality(p Plurality) bool {
	for _, v := range e.Plurality {
		if v == p {
			return true
		}
	}
	return false
}

// Table is an ordered, immutable set of lexicon entries.
// Entries keep the order of the data file they were loaded from.
type Table struct {
	// Name is the data file the table was loaded from.
	Name string
	// entries in file order.
	entries []Entry
	// index maps key → position in entries.
	index map[string]int
	// byGloss maps gloss → key; a later entry with the same gloss wins.
	byGloss map[string]string
}

// newTable creates an empty Table.
func newTable(name string) *Table {
	return &Table{
		Name:    name,
		index:   make(map[string]int),
		byGloss: make(map[string]string),
	}
}

// add appends e. It reports false if the key is already present.
func (t *Table) add(e Entry) bool {
	if _, dup := t.index[e.Key]; dup {
		return false
	}
	t.index[e.Key] = len(t.entries)
	t.entries = append(t.entries, e)
	t.byGloss[e.Gloss] = e.Key
	return true
}

// Has reports whether key is in the table. A nil table contains nothing.
func (t *Table) Has(key string) bool {
	if t == nil || key == "" {
		return false
	}
	_, ok := t.index[key]
	return ok
}

// Entry returns the entry for key.
func (t *Table) Entry(key string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	i, ok := t.index[key]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Gloss returns the English gloss for key, or "" if absent.
func (t *Table) Gloss(key string) string {
	e, _ := t.Entry(key)
	return e.Gloss
}

// KeyForGloss is the reverse lookup used when mapping English words back
// to Paiute stems.
func (t *Table) KeyForGloss(gloss string) (string, bool) {
	if t == nil {
		return "", false
	}
	k, ok := t.byGloss[gloss]
	return k, ok
}

// Entries returns the table's entries in file order.
// The returned slice is shared and must not be modified.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Keys returns the table's keys in file order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.Len())
	for _, e := range t.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// filter returns the entries for which keep returns true.
func (t *Table) filter(keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range t.Entries() {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// union concatenates tables, keeping the first position of a repeated key
// and the gloss of its last occurrence.
func union(tables ...*Table) []Entry {
	pos := make(map[string]int)
	var out []Entry
	for _, t := range tables {
		for _, e := range t.Entries() {
			if i, ok := pos[e.Key]; ok {
				out[i] = e
				continue
			}
			pos[e.Key] = len(out)
			out = append(out, e)
		}
	}
	return out
}
