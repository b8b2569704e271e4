// Package render turns resolved choices into the option lists shown by
// the sentence builder UI.
package render

import (
	"slices"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kubishi/ovp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Option is a [key, gloss] pair.
type Option [2]string

// FormattedChoice is one field of the choices payload.
type FormattedChoice struct {
	Choices     []Option        `json:"choices" yaml:"choices"`
	Value       *string         `json:"value" yaml:"value"`
	Requirement ovp.Requirement `json:"requirement" yaml:"requirement"`
}

// Formatter sorts option lists by gloss and caches the result.
// A Formatter is safe for concurrent use.
type Formatter struct {
	mu  sync.Mutex
	col *collate.Collator

	cache *lru.Cache[string, []Option]
}

// NewFormatter returns a Formatter caching up to size option lists.
func NewFormatter(size int) (*Formatter, error) {
	cache, err := lru.New[string, []Option](size)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		col:   collate.New(language.English, collate.IgnoreCase),
		cache: cache,
	}, nil
}

// Options returns entries as options sorted by gloss, then key.
// The returned slice is shared and must not be modified.
func (f *Formatter) Options(entries []ovp.Entry) []Option {
	if len(entries) == 0 {
		return []Option{}
	}
	key := cacheKey(entries)
	if opts, ok := f.cache.Get(key); ok {
		return opts
	}

	opts := make([]Option, len(entries))
	for i, e := range entries {
		opts[i] = Option{e.Key, e.Gloss}
	}
	f.sort(opts)
	f.cache.Add(key, opts)
	return opts
}

func (f *Formatter) sort(opts []Option) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slices.SortStableFunc(opts, func(a, b Option) int {
		if c := f.col.CompareString(a[1], b[1]); c != 0 {
			return c
		}
		return strings.Compare(a[0], b[0])
	})
}

// Choices formats every field of m, keyed by field name.
func (f *Formatter) Choices(m ovp.ChoiceMap) map[string]FormattedChoice {
	out := make(map[string]FormattedChoice, len(ovp.Fields()))
	for _, field := range ovp.Fields() {
		c := m.Get(field)
		fc := FormattedChoice{
			Choices:     f.Options(c.Options),
			Requirement: c.Requirement,
		}
		if c.Value != "" {
			v := c.Value
			fc.Value = &v
		}
		out[field.String()] = fc
	}
	return out
}

// Len reports how many option lists are cached.
func (f *Formatter) Len() int {
	return f.cache.Len()
}

// cacheKey identifies an option list by its keys and glosses.
func cacheKey(entries []ovp.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Key)
		b.WriteByte(0)
		b.WriteString(e.Gloss)
		b.WriteByte(0)
	}
	return b.String()
}
