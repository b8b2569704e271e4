package render

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/kubishi/ovp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormatter(t *testing.T) *Formatter {
	t.Helper()
	f, err := NewFormatter(16)
	require.NoError(t, err)
	return f
}

func TestOptions_SortedByGloss(t *testing.T) {
	f := newFormatter(t)
	l := ovp.Default()

	assert.Equal(t, []Option{{"uu", "distal"}, {"ii", "proximal"}}, f.Options(l.SubjectSuffixes().Entries()))

	opts := f.Options(l.Nouns().Entries())
	require.Len(t, opts, l.Nouns().Len())
	for i := 1; i < len(opts); i++ {
		assert.LessOrEqual(t, strings.ToLower(opts[i-1][1]), strings.ToLower(opts[i][1]), "options %d and %d out of order", i-1, i)
	}
}

func TestOptions_TieBreaksOnKey(t *testing.T) {
	f := newFormatter(t)
	opts := f.Options([]ovp.Entry{
		{Key: "ma", Gloss: "him/her/it (proximal)"},
		{Key: "a", Gloss: "him/her/it (proximal)"},
		{Key: "u", Gloss: "him/her/it (distal)"},
	})
	assert.Equal(t, []Option{
		{"u", "him/her/it (distal)"},
		{"a", "him/her/it (proximal)"},
		{"ma", "him/her/it (proximal)"},
	}, opts)
}

func TestOptions_Cached(t *testing.T) {
	f := newFormatter(t)
	entries := ovp.Default().Tenses().Entries()

	first := f.Options(entries)
	second := f.Options(entries)
	require.NotEmpty(t, first)
	assert.Same(t, &first[0], &second[0])
	assert.Equal(t, 1, f.Len())

	assert.NotNil(t, f.Options(nil))
	assert.Empty(t, f.Options(nil))
	assert.Equal(t, 1, f.Len())
}

func TestOptions_Concurrent(t *testing.T) {
	f := newFormatter(t)
	l := ovp.Default()
	tables := []*ovp.Table{l.Nouns(), l.Tenses(), l.ObjectPronouns(), l.Possessives()}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tbl := tables[(i+j)%len(tables)]
				assert.Len(t, f.Options(tbl.Entries()), tbl.Len())
			}
		}(i)
	}
	wg.Wait()
}

func TestChoices(t *testing.T) {
	f := newFormatter(t)
	l := ovp.Default()

	out := f.Choices(l.Resolve(ovp.Selection{SubjectNoun: "isha'pugu"}))
	require.Len(t, out, len(ovp.Fields()))

	subj := out["subject_noun"]
	require.NotNil(t, subj.Value)
	assert.Equal(t, "isha'pugu", *subj.Value)
	assert.Equal(t, ovp.Required, subj.Requirement)

	suffix := out["subject_suffix"]
	assert.Nil(t, suffix.Value)
	assert.Equal(t, ovp.Required, suffix.Requirement)
	assert.Len(t, suffix.Choices, 2)

	tense := out["verb_tense"]
	assert.Equal(t, ovp.Disabled, tense.Requirement)
	assert.Empty(t, tense.Choices)

	b, err := json.Marshal(out["verb_tense"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"choices":[],"value":null,"requirement":"disabled"}`, string(b))
}
