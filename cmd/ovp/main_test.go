package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kubishi/ovp"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var sentenceArgs = []string{
	"sentence",
	"--set", "subject_noun=isha'pugu",
	"--set", "subject_suffix=ii",
	"--set", "verb=poyoha",
	"--set", "verb_tense=ti",
}

func TestSentenceText(t *testing.T) {
	out, err := execute(t, "", sentenceArgs...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "isha'pugu-ii poyoha-ti\n"), out)
	assert.Contains(t, out, "subject")
	assert.Contains(t, out, "verb")
}

func TestSentenceJSON(t *testing.T) {
	out, err := execute(t, "", append(sentenceArgs, "-o", "json")...)
	require.NoError(t, err)

	var s ovp.Sentence
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "isha'pugu-ii poyoha-ti", s.Text())
}

func TestSentenceIncomplete(t *testing.T) {
	_, err := execute(t, "", "sentence", "--set", "subject_noun=nüü")
	require.Error(t, err)
	assert.ErrorIs(t, err, ovp.ErrIncomplete)
}

func TestSelectionInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subject_noun: nüü\nverb: poyoha\nverb_tense: ti\n"), 0o644))

	out, err := execute(t, "", "sentence", "--input", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "poyoha-ti nüü\n"), out)

	// --set overrides the file.
	out, err = execute(t, "", "sentence", "--input", path, "--set", "verb_tense=ku")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "poyoha-ku nüü\n"), out)
}

func TestSelectionFromStdin(t *testing.T) {
	out, err := execute(t, `{"subject_noun": "nüü", "verb": "poyoha", "verb_tense": "ti"}`, "sentence", "-i", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "poyoha-ti nüü\n"), out)
}

func TestSetErrors(t *testing.T) {
	tests := []struct {
		name string
		set  string
		want string
	}{
		{"no equals", "subject_noun", "want field=value"},
		{"unknown field", "adverb=x", "unknown field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", "choices", "--set", tt.set)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestChoicesJSON(t *testing.T) {
	out, err := execute(t, "", "choices", "-o", "json", "--set", "subject_noun=nüü")
	require.NoError(t, err)

	var res choicesResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "nüü", res.Selection.SubjectNoun)
	assert.Contains(t, res.Missing, "verb")
	assert.Empty(t, res.Sentence)
	require.Contains(t, res.Choices, "verb")
	assert.NotEmpty(t, res.Choices["verb"].Choices)
	assert.Equal(t, ovp.Disabled, res.Choices["subject_suffix"].Requirement)
}

func TestChoicesText(t *testing.T) {
	out, err := execute(t, "", "choices")
	require.NoError(t, err)
	assert.Contains(t, out, "subject_noun")
	assert.Contains(t, out, "incomplete, missing:")
}

func TestRandomSeeded(t *testing.T) {
	first, err := execute(t, "", "random", "--seed", "7", "-o", "yaml")
	require.NoError(t, err)
	second, err := execute(t, "", "random", "--seed", "7", "-o", "yaml")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var res struct {
		Missing []string `yaml:"missing"`
		Text    string   `yaml:"text"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(first), &res))
	assert.Empty(t, res.Missing)
	assert.NotEmpty(t, res.Text)
}

func TestRandomKeepsSet(t *testing.T) {
	out, err := execute(t, "", "random", "-o", "json", "--set", "subject_noun=nüü")
	require.NoError(t, err)

	var res choicesResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "nüü", res.Selection.SubjectNoun)
	assert.Empty(t, res.Missing)
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "", append([]string{"describe", "-o", "json"}, sentenceArgs[1:]...)...)
	require.NoError(t, err)

	var parts []ovp.StructurePart
	require.NoError(t, json.Unmarshal([]byte(out), &parts))
	require.Len(t, parts, 2)
	assert.Equal(t, "subject", parts[0].PartOfSpeech)
	assert.Equal(t, "verb", parts[1].PartOfSpeech)
}

const runSentences = `[
  {"subject": {"type": "pronoun", "person": "first", "plurality": "singular"},
   "verb": {"lemma": "run", "tense": "present", "aspect": "continuous"}},
  {"subject": {"type": "pronoun", "person": "first", "plurality": "singular"},
   "verb": {"lemma": "sleep", "tense": "future", "aspect": "simple"}}
]`

func TestTranslateStdin(t *testing.T) {
	out, err := execute(t, runSentences, "translate", "-", "-o", "json")
	require.NoError(t, err)

	var res translateResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "poyoha-ti nüü. üwi-wei nüü.", res.Paiute)
	require.Len(t, res.Selections, 2)
	assert.Equal(t, "poyoha", res.Selections[0].Verb)
}

func TestTranslateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sentences": `+runSentences+`}`), 0o644))

	out, err := execute(t, "", "translate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "poyoha-ti nüü. üwi-wei nüü.")
}

func TestTranslateErrors(t *testing.T) {
	_, err := execute(t, "[]", "translate", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sentences")

	_, err = execute(t, "{", "translate", "-")
	require.Error(t, err)

	_, err = execute(t, "", "translate")
	require.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := execute(t, "", "choices", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestBadDataDir(t *testing.T) {
	_, err := execute(t, "", "choices", "--data", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load lexicon")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}
